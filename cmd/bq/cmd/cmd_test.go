package cmd

import (
	"bytes"
	"os"
	"path"
	"testing"

	"bare/testutil/testfs"

	"github.com/stretchr/testify/require"
)

const pointSchema = `
[[types]]
name = "Point"
kind = "struct"

  [[types.fields]]
  name = "x"
  type = { kind = "i32" }

  [[types.fields]]
  name = "y"
  type = { kind = "i32" }
`

func run(t *testing.T, args ...string) (string, error) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	tmp, done := testfs.NewTempDir(t)
	defer done()
	home := path.Join(tmp, "bq")

	out, err := run(t, "init", "--home", home)
	require.NoError(t, err)
	require.Contains(t, out, "Successfully initialized")
	_, err = run(t, "init", "--home", home)
	require.Error(t, err)
	require.NoError(t, os.WriteFile(path.Join(home, "schema.toml"), []byte(pointSchema), 0600))

	out, err = run(t, "encode", "--home", home, "-t", "Point", "-f", "hex", `{"x": 1, "y": -1}`)
	require.NoError(t, err)
	require.Equal(t, "01000000ffffffff\n", out)

	out, err = run(t, "decode", "--home", home, "-t", "Point", "-f", "hex", "-o", "json", "01000000 ffffffff")
	require.NoError(t, err)
	require.Equal(t, "{\n  \"x\": 1,\n  \"y\": -1\n}\n", out)

	_, err = run(t, "decode", "--home", home, "-t", "Point", "-f", "hex", "-o", "json", "010000")
	require.Error(t, err)
	_, err = run(t, "decode", "--home", home, "-t", "Point", "-f", "hex", "-o", "json", "01000000ffffffff00")
	require.Error(t, err)
	_, err = run(t, "decode", "--home", home, "-t", "Missing", "-f", "hex", "-o", "json", "00")
	require.Error(t, err)

	out, err = run(t, "describe", "--home", home, "Point")
	require.NoError(t, err)
	require.Equal(t, "Point = struct{x: i32 y: i32}\n", out)

	out, err = run(t, "put", "--home", home, "-t", "Point", "origin", `{"y": 0, "x": 0}`)
	require.NoError(t, err)
	require.Contains(t, out, "Success. Digest:")

	out, err = run(t, "get", "--home", home, "-o", "hex", "origin")
	require.NoError(t, err)
	require.Equal(t, "0000000000000000\n", out)

	out, err = run(t, "list", "--home", home, "-t", "")
	require.NoError(t, err)
	require.Contains(t, out, "origin")

	out, err = run(t, "verify", "--home", home)
	require.NoError(t, err)
	require.Contains(t, out, "ok")

	out, err = run(t, "delete", "--home", home, "origin")
	require.NoError(t, err)
	require.Equal(t, "Deleted origin.\n", out)
	_, err = run(t, "get", "--home", home, "-o", "hex", "origin")
	require.Error(t, err)

	out, err = run(t, "version")
	require.NoError(t, err)
	require.Contains(t, out, "bq ")
}
