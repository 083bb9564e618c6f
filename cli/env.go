package cli

import (
	"bare/catalog"
	"bare/config"
	"bare/log"
	"bare/schema"
	"bare/store"
	"bare/value"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/syndtr/goleveldb/leveldb"
)

// Env is everything a command needs from the home directory.
type Env struct {
	HomeDir string
	Config  *config.Config
	Schema  *schema.Schema
	Decoder *value.Decoder
}

// LoadEnv reads the configuration in the home directory, applies its log
// settings and loads the schema catalogue. The --schema flag, if given,
// replaces the configured schema file.
func LoadEnv(cmd *cobra.Command) (*Env, error) {
	homeDir := GetHomeDir(cmd)
	if err := config.EnsureHomeDir(homeDir); err != nil {
		return nil, errors.Wrap(err, "error ensuring home directory")
	}
	cfg, err := config.ReadConfigFile(homeDir)
	if err != nil {
		return nil, err
	}
	if err := ConfigureLogging(cmd, cfg.LogLevel); err != nil {
		return nil, err
	}

	schemaFile := cfg.SchemaFile
	if flag, _ := cmd.Flags().GetString(FlagSchema); flag != "" {
		schemaFile = flag
	}
	s, err := catalog.ReadFile(config.ExpandSchemaPath(homeDir, schemaFile))
	if err != nil {
		return nil, err
	}
	return &Env{
		HomeDir: homeDir,
		Config:  cfg,
		Schema:  s,
		Decoder: cfg.Decoder.NewDecoder(),
	}, nil
}

// ConfigureLogging sets the log level from the --log-level flag, falling
// back to configured, and selects JSON output if --log-json is set.
func ConfigureLogging(cmd *cobra.Command, configured string) error {
	levelStr := configured
	if flag, _ := cmd.Flags().GetString(FlagLogLevel); flag != "" {
		levelStr = flag
	}
	if levelStr != "" {
		level, err := log.NewLevel(levelStr)
		if err != nil {
			return err
		}
		log.SetLevel(level)
	}
	jsonLogs, _ := cmd.Flags().GetBool(FlagLogJSON)
	log.SetJSON(jsonLogs)
	return nil
}

// OpenDB opens the record database in the home directory.
func (e *Env) OpenDB() (*leveldb.DB, error) {
	return store.Open(config.ExpandDBPath(e.HomeDir))
}

// PutOpts returns the configured store options.
func (e *Env) PutOpts() store.PutOpts {
	return store.PutOpts{CompressThreshold: e.Config.Store.CompressThreshold}
}

// Type returns the type named by the --type flag.
func (e *Env) Type(cmd *cobra.Command) (string, schema.Type, error) {
	name, _ := cmd.Flags().GetString(FlagType)
	if name == "" {
		return "", nil, errors.New("a type is required - pass --type")
	}
	if _, err := e.Schema.Lookup(name); err != nil {
		return "", nil, err
	}
	return name, schema.Named(name), nil
}
