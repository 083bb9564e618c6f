package config

import (
	"bytes"
	"io"
	"os"
	"path"
	"text/template"

	"bare/log"
	"bare/value"

	"github.com/pkg/errors"
)

const (
	ConfigFile = "config.toml"
	SchemaFile = "schema.toml"
)

var DefaultConfig = Config{
	LogLevel:   log.LevelInfo.String(),
	SchemaFile: SchemaFile,
	Decoder: DecoderConfig{
		MaxListLen: value.DefaultMaxListLen,
		MaxDataLen: value.DefaultMaxDataLen,
		MaxDepth:   value.DefaultMaxDepth,
	},
	Store: StoreConfig{
		CompressThreshold: 4096,
	},
	Verify: VerifyConfig{
		Workers: 4,
	},
}

const defaultConfigTemplateText = `# bq Config File

# Sets the log level. Can be one of the following values:
# - error
# - warn
# - info
# - debug
# - trace
log_level = "{{.LogLevel}}"

# Sets the schema catalogue that type names are looked up in. Relative
# paths are resolved against the home directory. Files ending in .yaml
# or .yml are read as YAML.
schema_file = "{{.SchemaFile}}"

# Configures the limits applied when decoding untrusted input. Setting
# a limit to 0 disables it.
[decoder]
  # Sets the largest str or data length that will be decoded.
  max_data_len = {{.Decoder.MaxDataLen}}
  # Sets the deepest nesting of optional, list, map, union and struct
  # values that will be decoded.
  max_depth = {{.Decoder.MaxDepth}}
  # Sets the largest list or map count that will be decoded.
  max_list_len = {{.Decoder.MaxListLen}}

# Configures the record store.
[store]
  # Sets the smallest payload, in bytes, that is stored LZ4 compressed.
  # Set to 0 to store every payload uncompressed.
  compress_threshold = {{.Store.CompressThreshold}}

# Configures bq verify.
[verify]
  # Sets how many records are verified concurrently.
  workers = {{.Verify.Workers}}
`

const defaultSchemaText = `# bq Schema Catalogue
#
# Each [[types]] table defines a named type. For example:
#
# [[types]]
# name = "Point"
# kind = "struct"
#
#   [[types.fields]]
#   name = "x"
#   type = { kind = "i32" }
#
#   [[types.fields]]
#   name = "y"
#   type = { kind = "i32" }
`

var defaultConfigTemplate *template.Template

func GenerateDefaultConfigFile() []byte {
	buf := new(bytes.Buffer)
	if err := defaultConfigTemplate.Execute(buf, DefaultConfig); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func ReadConfigFile(homeDir string) (*Config, error) {
	f, err := os.OpenFile(path.Join(homeDir, ConfigFile), os.O_RDONLY, 0755)
	if err != nil {
		return nil, errors.Wrap(err, "error opening config file for reading")
	}
	defer f.Close()
	cfg, err := ReadConfig(f)
	if err != nil {
		return nil, errors.Wrap(err, "error reading config file")
	}
	return cfg, nil
}

func WriteDefaultConfigFile(homeDir string) error {
	return writeFile(path.Join(homeDir, ConfigFile), GenerateDefaultConfigFile())
}

// WriteDefaultSchemaFile writes an empty schema catalogue unless one
// already exists.
func WriteDefaultSchemaFile(homeDir string) error {
	p := path.Join(homeDir, SchemaFile)
	if _, err := os.Stat(p); err == nil {
		return nil
	}
	return writeFile(p, []byte(defaultSchemaText))
}

func writeFile(p string, contents []byte) error {
	f, err := os.OpenFile(p, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0755)
	if err != nil {
		return errors.Wrap(err, "error opening file for writing")
	}
	defer f.Close()
	if _, err := io.Copy(f, bytes.NewReader(contents)); err != nil {
		return errors.Wrap(err, "error writing file")
	}
	return nil
}

func init() {
	tmpl := template.New("defaultConfig")
	t, err := tmpl.Parse(defaultConfigTemplateText)
	if err != nil {
		panic(err)
	}
	defaultConfigTemplate = t
}
