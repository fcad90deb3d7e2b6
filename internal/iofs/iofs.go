// Package iofs prepares directories and files gnloc keeps in the home
// directory.
package iofs

import (
	"os"

	"github.com/gnames/gnloc/pkg/config"
	"github.com/gnames/gnloc/pkg/templates"
)

// EnsureDirs creates config, cache and log directories.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := os.MkdirAll(v, 0755); err != nil {
			return CreateDirError(v, err)
		}
	}
	return nil
}

// EnsureConfigFile writes the default config.yaml unless the file
// already exists. It returns true when the file was created.
func EnsureConfigFile(homeDir string) (bool, error) {
	path := config.ConfigFilePath(homeDir)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	if err := os.WriteFile(path, []byte(templates.ConfigYAML), 0600); err != nil {
		return false, CopyFileError(path, err)
	}
	return true, nil
}
