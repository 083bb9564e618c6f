package cli

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"
	"unicode"

	"bare/jsonbare"
	"bare/schema"
	"bare/value"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
)

// ReadInput returns the command's input: the argument if one was given,
// otherwise everything on stdin. An interactive terminal is prompted and
// read until Ctrl+D.
func ReadInput(args []string, stdin io.Reader, prompt io.Writer) ([]byte, error) {
	if len(args) > 0 {
		return []byte(args[0]), nil
	}
	if f, ok := stdin.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		fmt.Fprintln(prompt, "Type or paste the input below.")
		fmt.Fprintln(prompt, "When you are finished, press Ctrl+D.")
		var buf bytes.Buffer
		scanner := bufio.NewScanner(stdin)
		for scanner.Scan() {
			buf.Write(scanner.Bytes())
			buf.WriteByte('\n')
		}
		return buf.Bytes(), scanner.Err()
	}
	data, err := ioutil.ReadAll(stdin)
	if err != nil {
		return nil, errors.Wrap(err, "error reading input")
	}
	return data, nil
}

// DecodeRaw turns input in the given raw format into encoded bytes. Hex
// input may contain whitespace.
func DecodeRaw(data []byte, format string) ([]byte, error) {
	switch format {
	case FormatBinary:
		return data, nil
	case FormatHex:
		stripped := strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return -1
			}
			return r
		}, string(data))
		out, err := hex.DecodeString(stripped)
		if err != nil {
			return nil, errors.Wrap(err, "input is not hex")
		}
		return out, nil
	default:
		return nil, errors.Errorf("unknown format %q", format)
	}
}

// WriteRaw writes encoded bytes in the given raw format.
func WriteRaw(w io.Writer, data []byte, format string) error {
	switch format {
	case FormatBinary:
		_, err := w.Write(data)
		return err
	case FormatHex:
		_, err := fmt.Fprintln(w, hex.EncodeToString(data))
		return err
	default:
		return errors.Errorf("unknown format %q", format)
	}
}

// WriteValue renders v, a value of type t, to w.
func WriteValue(w io.Writer, v value.Value, t schema.Type, s *schema.Schema, output string) error {
	var out []byte
	var err error
	switch output {
	case OutputJSON:
		out, err = jsonbare.MarshalIndent(v, t, s, "  ")
		out = append(out, '\n')
	case OutputYAML:
		out, err = jsonbare.MarshalYAML(v, t, s)
	case OutputCBOR:
		out, err = jsonbare.MarshalCBOR(v, t, s)
	case OutputHex:
		out, err = value.MarshalAs(v, t, s)
		if err == nil {
			return WriteRaw(w, out, FormatHex)
		}
	default:
		return errors.Errorf("unknown output %q", output)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
