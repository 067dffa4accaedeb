// Package config loads mdimg settings from TOML files.
//
// Settings resolve in three layers: built-in defaults, an optional config
// file, and command-line flags (applied by the CLI, highest precedence).
// The config file is either passed explicitly or discovered as .mdimg.toml
// next to the document being processed.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"

	"github.com/mdimg/mdimg/pkg/errors"
)

// FileName is the per-directory config file discovered next to a document.
const FileName = ".mdimg.toml"

// DefaultSpaceLines is the number of blank lines placed ahead of each
// appended data block.
const DefaultSpaceLines = 20

// Config holds the tunable processing options.
type Config struct {
	// SpaceLines is the count of blank lines before each appended data block.
	SpaceLines int `toml:"spacelines"`

	// UseOldData keeps existing data blocks instead of re-encoding images.
	UseOldData bool `toml:"use_old_data"`

	// KeepUselessData keeps data blocks whose label is no longer referenced.
	KeepUselessData bool `toml:"keep_useless_data"`

	// BackupDir receives the pre-run document copy. Empty means the
	// document's own directory.
	BackupDir string `toml:"backup_dir"`

	// NoBackup disables the pre-run copy entirely.
	NoBackup bool `toml:"no_backup"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{SpaceLines: DefaultSpaceLines}
}

// Validate checks the settings for internal consistency.
func (c Config) Validate() error {
	return errors.ValidateSpaceLines(c.SpaceLines)
}

// Load reads a config file, layering it over the defaults.
// An unreadable or unparseable file is fatal, as are unknown keys.
func Load(fs afero.Fs, path string) (Config, error) {
	cfg := Default()

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.New(errors.ErrCodeFileNotFound, "no such file %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeIO, err, "read config %s", path)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Default(), errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Default(), errors.New(errors.ErrCodeInvalidConfig, "unknown key %q in %s", undecoded[0].String(), path)
	}

	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// LoadNear looks for FileName in the document's directory. It reports
// whether a config file was found; absence is not an error.
func LoadNear(fs afero.Fs, documentPath string) (Config, bool, error) {
	path := filepath.Join(filepath.Dir(documentPath), FileName)
	if exists, err := afero.Exists(fs, path); err != nil || !exists {
		return Default(), false, nil
	}

	cfg, err := Load(fs, path)
	if err != nil {
		return Default(), true, err
	}
	return cfg, true, nil
}
