package config

import (
	"errors"
	"io/fs"
	"log"
	"path/filepath"

	"github.com/spf13/afero"
)

// Initialize writes the default configuration to dir, leaving any existing
// configuration alone.
func Initialize(dir string, logger *log.Logger) error {
	return InitializeFs(afero.NewOsFs(), dir, logger)
}

// InitializeFs is Initialize over an arbitrary filesystem.
func InitializeFs(fsys afero.Fs, dir string, logger *log.Logger) error {
	if err := fsys.MkdirAll(dir, 0700); err != nil {
		return err
	}

	configPath := filepath.Join(dir, ConfigurationName)
	_, err := fsys.Stat(configPath)
	switch {
	case err == nil:
		logger.Printf("- %s already exists, skipping", configPath)
		return nil
	case !errors.Is(err, fs.ErrNotExist):
		return err
	}

	logger.Printf("- Writing %s", configPath)
	return afero.WriteFile(fsys, configPath, defaultConfigData, 0600)
}
