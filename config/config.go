package config

import (
	"bytes"
	"io"
	"io/ioutil"

	"bare/value"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
)

type Config struct {
	LogLevel   string        `mapstructure:"log_level"`
	SchemaFile string        `mapstructure:"schema_file"`
	Decoder    DecoderConfig `mapstructure:"decoder"`
	Store      StoreConfig   `mapstructure:"store"`
	Verify     VerifyConfig  `mapstructure:"verify"`
}

type DecoderConfig struct {
	MaxListLen int `mapstructure:"max_list_len"`
	MaxDataLen int `mapstructure:"max_data_len"`
	MaxDepth   int `mapstructure:"max_depth"`
}

type StoreConfig struct {
	CompressThreshold int `mapstructure:"compress_threshold"`
}

type VerifyConfig struct {
	Workers int `mapstructure:"workers"`
}

// NewDecoder returns a decoder enforcing the configured limits. Negative
// limits are treated as zero, which disables the limit.
func (c DecoderConfig) NewDecoder() *value.Decoder {
	nonNeg := func(n int) int {
		if n < 0 {
			return 0
		}
		return n
	}
	return &value.Decoder{
		MaxListLen: uint64(nonNeg(c.MaxListLen)),
		MaxDataLen: uint64(nonNeg(c.MaxDataLen)),
		MaxDepth:   nonNeg(c.MaxDepth),
	}
}

// ReadConfig decodes a config file. Keys the file leaves out keep their
// DefaultConfig values, so an explicit 0 is the only way to lift a decoder
// limit.
func ReadConfig(r io.Reader) (*Config, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "error reading config file")
	}
	tree, err := toml.LoadBytes(data)
	if err != nil {
		return nil, errors.Wrap(err, "error decoding config file")
	}
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.SetTagName("mapstructure")
	config := &Config{}
	if err := decoder.Decode(config); err != nil {
		return nil, errors.Wrap(err, "error decoding config file")
	}
	applyDefaults(tree, config)
	return config, nil
}

func applyDefaults(tree *toml.Tree, config *Config) {
	defaults := []struct {
		path []string
		fn   func()
	}{
		{[]string{"log_level"}, func() { config.LogLevel = DefaultConfig.LogLevel }},
		{[]string{"schema_file"}, func() { config.SchemaFile = DefaultConfig.SchemaFile }},
		{[]string{"decoder", "max_list_len"}, func() { config.Decoder.MaxListLen = DefaultConfig.Decoder.MaxListLen }},
		{[]string{"decoder", "max_data_len"}, func() { config.Decoder.MaxDataLen = DefaultConfig.Decoder.MaxDataLen }},
		{[]string{"decoder", "max_depth"}, func() { config.Decoder.MaxDepth = DefaultConfig.Decoder.MaxDepth }},
		{[]string{"store", "compress_threshold"}, func() { config.Store.CompressThreshold = DefaultConfig.Store.CompressThreshold }},
		{[]string{"verify", "workers"}, func() { config.Verify.Workers = DefaultConfig.Verify.Workers }},
	}
	for _, d := range defaults {
		if !tree.HasPath(d.path) {
			d.fn()
		}
	}
}
