// Package iofs prepares the directories and default files instcat needs
// in the user's home.
package iofs

import (
	_ "embed"
	"os"

	"github.com/gnames/instcat/pkg/config"
)

//go:embed config.yaml
var ConfigYAML string

//go:embed catalogs.yaml
var CatalogsYAML string

func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

func EnsureConfigFile(homeDir string) error {
	return ensureFile(config.ConfigFilePath(homeDir), ConfigYAML)
}

// EnsureDefinitionsFile writes example catalog definitions unless the
// file exists.
func EnsureDefinitionsFile(homeDir string) error {
	return ensureFile(config.DefinitionsFilePath(homeDir), CatalogsYAML)
}

func ensureFile(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return CopyFileError(path, err)
	}

	return nil
}

// CreateOutput creates or truncates an output file.
func CreateOutput(path string) (*os.File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, CreateFileError(path, err)
	}
	return f, nil
}

// EnsureOutputDir creates the directory for batch output files.
func EnsureOutputDir(dir string) error {
	return touchDir(dir)
}
