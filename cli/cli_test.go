package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"bare/schema"
	"bare/store"
	"bare/value"

	"github.com/stretchr/testify/require"
)

func TestReadInput(t *testing.T) {
	data, err := ReadInput([]string{"ff01"}, strings.NewReader("ignored"), nil)
	require.NoError(t, err)
	require.Equal(t, "ff01", string(data))

	data, err = ReadInput(nil, strings.NewReader("from stdin"), nil)
	require.NoError(t, err)
	require.Equal(t, "from stdin", string(data))
}

func TestDecodeRaw(t *testing.T) {
	out, err := DecodeRaw([]byte("ff 01\n aa\tbb\n"), FormatHex)
	require.NoError(t, err)
	require.Equal(t, []byte{0xff, 0x01, 0xaa, 0xbb}, out)

	out, err = DecodeRaw([]byte{0x00, 0x01}, FormatBinary)
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0x01}, out)

	_, err = DecodeRaw([]byte("zz"), FormatHex)
	require.Error(t, err)
	_, err = DecodeRaw([]byte("00"), "base64")
	require.Error(t, err)
}

func TestWriteRaw(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRaw(&buf, []byte{0xff, 0x01}, FormatHex))
	require.Equal(t, "ff01\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteRaw(&buf, []byte{0xff, 0x01}, FormatBinary))
	require.Equal(t, []byte{0xff, 0x01}, buf.Bytes())
}

func TestWriteValue(t *testing.T) {
	st, err := schema.NewStruct(
		schema.Field{Name: "a", Type: schema.U8},
		schema.Field{Name: "b", Type: schema.Str},
	)
	require.NoError(t, err)
	v, err := value.NewStruct(
		value.Field{Name: "b", Value: value.Str("x")},
		value.Field{Name: "a", Value: value.Uint8(7)},
	)
	require.NoError(t, err)

	tests := []struct {
		output string
		out    string
	}{
		{OutputJSON, "{\n  \"a\": 7,\n  \"b\": \"x\"\n}\n"},
		{OutputYAML, "a: 7\nb: x\n"},
		{OutputHex, "070178\n"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		require.NoError(t, WriteValue(&buf, v, st, nil, tt.output))
		require.Equal(t, tt.out, buf.String(), tt.output)
	}

	var buf bytes.Buffer
	require.NoError(t, WriteValue(&buf, v, st, nil, OutputCBOR))
	require.NotEmpty(t, buf.Bytes())
	require.Error(t, WriteValue(&buf, v, st, nil, "xml"))
}

func TestTables(t *testing.T) {
	s := schema.New()
	require.NoError(t, s.Define("Note", schema.Str))

	var buf bytes.Buffer
	require.NoError(t, WriteSchema(&buf, s))
	require.Contains(t, buf.String(), "DEFINITION")
	require.Contains(t, buf.String(), "Note")
	require.Contains(t, buf.String(), "str")

	buf.Reset()
	failed := WriteVerifyResults(&buf, []*store.VerifyResult{
		{Name: "a", Type: "Note"},
		{Name: "b", Type: "Note", Err: errors.New("broken")},
	})
	require.Equal(t, 1, failed)
	require.Contains(t, buf.String(), "broken")
}
