package config

import (
	"os"
	"path"

	"github.com/mitchellh/go-homedir"
)

const (
	DBPath = "db"
)

func ExpandHomePath(path string) string {
	res, err := homedir.Expand(path)
	if err != nil {
		panic(err)
	}
	return res
}

func ExpandDBPath(homePath string) string {
	return path.Join(homePath, DBPath)
}

func InitDBDir(homePath string) error {
	p := ExpandDBPath(homePath)
	return os.MkdirAll(p, 0700)
}

// ExpandSchemaPath resolves the configured schema file against the home
// directory.
func ExpandSchemaPath(homePath string, schemaFile string) string {
	schemaFile = ExpandHomePath(schemaFile)
	if path.IsAbs(schemaFile) {
		return schemaFile
	}
	return path.Join(homePath, schemaFile)
}
