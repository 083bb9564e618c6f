package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bare/schema"
	"bare/testutil/testfs"
	"bare/wire"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

const peopleSchema = `
[[types]]
name = "PublicKey"
kind = "data"
length = 128

[[types]]
name = "Time"
kind = "str"

[[types]]
name = "Department"
kind = "enum"

  [[types.values]]
  name = "ACCOUNTING"
  value = 0

  [[types.values]]
  name = "ADMINISTRATION"
  value = 1

  [[types.values]]
  name = "JSMITH"
  value = 99

[[types]]
name = "Customer"
kind = "struct"

  [[types.fields]]
  name = "name"
  type = { kind = "str" }

  [[types.fields]]
  name = "key"
  type = { ref = "PublicKey" }

  [[types.fields]]
  name = "orders"
  type = { kind = "list", elem = { kind = "u32" } }

  [[types.fields]]
  name = "metadata"
  type = { kind = "map", key = { kind = "str" }, value = { kind = "data" } }

[[types]]
name = "Employee"
kind = "struct"

  [[types.fields]]
  name = "name"
  type = { kind = "str" }

  [[types.fields]]
  name = "department"
  type = { ref = "Department" }

  [[types.fields]]
  name = "hireDate"
  type = { ref = "Time" }

  [[types.fields]]
  name = "manager"
  type = { kind = "optional", elem = { ref = "Employee" } }

[[types]]
name = "Person"
kind = "union"

  [[types.members]]
  tag = 0
  type = { ref = "Customer" }

  [[types.members]]
  tag = 5
  type = { ref = "Employee" }

[[types]]
name = "Checksum"
kind = "list"
length = 4
elem = { kind = "u8" }
`

func TestRead(t *testing.T) {
	s, err := Read(strings.NewReader(peopleSchema))
	require.NoError(t, err)
	require.Equal(t, []string{"PublicKey", "Time", "Department", "Customer", "Employee", "Person", "Checksum"}, s.Names())

	key, err := s.Lookup("PublicKey")
	require.NoError(t, err)
	require.Equal(t, "data[128]", key.String())

	dept, err := s.EnumValue("Department", "JSMITH")
	require.NoError(t, err)
	require.EqualValues(t, 99, dept)

	fields, err := s.StructFields("Customer")
	require.NoError(t, err)
	require.Len(t, fields, 4)
	require.Equal(t, "key", fields[1].Name)
	require.Equal(t, schema.Named("PublicKey"), fields[1].Type)
	require.Equal(t, "list<u32>", fields[2].Type.String())
	require.Equal(t, "map<str><data>", fields[3].Type.String())

	manager, err := s.StructFields("Employee")
	require.NoError(t, err)
	require.Equal(t, "optional<Employee>", manager[3].Type.String())

	member, err := s.UnionMember("Person", 5)
	require.NoError(t, err)
	require.Equal(t, schema.Named("Employee"), member)

	checksum, err := s.Lookup("Checksum")
	require.NoError(t, err)
	require.Equal(t, "list<u8>[4]", checksum.String())
}

func TestReadFile(t *testing.T) {
	path, done := testfs.WriteTempFile(t, peopleSchema)
	defer done()

	s, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, 7, s.Len())

	_, err = ReadFile(path + ".missing")
	require.Error(t, err)
}

func TestRead_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		err  error
	}{
		{
			"missing name",
			"[[types]]\nkind = \"str\"\n",
			wire.ErrInvariant,
		},
		{
			"duplicate name",
			"[[types]]\nname = \"A\"\nkind = \"str\"\n[[types]]\nname = \"A\"\nkind = \"u8\"\n",
			wire.ErrInvariant,
		},
		{
			"unresolved ref",
			"[[types]]\nname = \"A\"\nkind = \"optional\"\nelem = { ref = \"B\" }\n",
			wire.ErrUnknownType,
		},
		{
			"void list",
			"[[types]]\nname = \"A\"\nkind = \"list\"\nelem = { kind = \"void\" }\n",
			wire.ErrInvariant,
		},
		{
			"list without elem",
			"[[types]]\nname = \"A\"\nkind = \"list\"\n",
			wire.ErrInvariant,
		},
		{
			"negative length",
			"[[types]]\nname = \"A\"\nkind = \"data\"\nlength = -1\n",
			wire.ErrInvariant,
		},
		{
			"float map key",
			"[[types]]\nname = \"A\"\nkind = \"map\"\nkey = { kind = \"f64\" }\nvalue = { kind = \"str\" }\n",
			wire.ErrInvariant,
		},
		{
			"duplicate union tag",
			"[[types]]\nname = \"A\"\nkind = \"union\"\n[[types.members]]\ntag = 1\ntype = { kind = \"u8\" }\n[[types.members]]\ntag = 1\ntype = { kind = \"str\" }\n",
			wire.ErrInvariant,
		},
		{
			"alias cycle",
			"[[types]]\nname = \"A\"\nref = \"B\"\n[[types]]\nname = \"B\"\nref = \"A\"\n",
			wire.ErrInvariant,
		},
	}
	for _, tt := range tests {
		_, err := Read(strings.NewReader(tt.doc))
		require.True(t, errors.Is(err, tt.err), "%s: %v", tt.name, err)
	}

	_, err := Read(strings.NewReader("[[types]]\nname = \"A\"\nkind = \"wat\"\n"))
	require.Error(t, err)
	_, err = Read(strings.NewReader("not toml ]["))
	require.Error(t, err)
}

const pointYAML = `
types:
  - name: Axis
    kind: enum
    values:
      - name: X
        value: 0
      - name: Y
        value: 1
  - name: Point
    kind: struct
    fields:
      - name: coords
        type:
          kind: map
          key: {ref: Axis}
          value: {kind: f64}
      - name: label
        type:
          kind: optional
          elem: {kind: str}
`

func TestReadFile_YAML(t *testing.T) {
	dir, done := testfs.NewTempDir(t)
	defer done()
	path := filepath.Join(dir, "points.yaml")
	require.NoError(t, os.WriteFile(path, []byte(pointYAML), 0600))

	s, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []string{"Axis", "Point"}, s.Names())

	fields, err := s.StructFields("Point")
	require.NoError(t, err)
	require.Equal(t, "map<Axis><f64>", fields[0].Type.String())
	require.Equal(t, "optional<str>", fields[1].Type.String())

	_, err = ReadYAML(strings.NewReader("types: [{kind: str}]"))
	require.True(t, errors.Is(err, wire.ErrInvariant))
}
