package config

import (
	"testing"

	"github.com/spf13/afero"

	"github.com/mdimg/mdimg/pkg/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.SpaceLines != DefaultSpaceLines {
		t.Errorf("SpaceLines = %d, want %d", cfg.SpaceLines, DefaultSpaceLines)
	}
	if cfg.UseOldData || cfg.KeepUselessData || cfg.NoBackup {
		t.Error("boolean options should default to false")
	}
	if cfg.BackupDir != "" {
		t.Errorf("BackupDir = %q, want empty", cfg.BackupDir)
	}
}

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := `
spacelines = 5
use_old_data = true
keep_useless_data = true
backup_dir = "/backups"
`
	if err := afero.WriteFile(fs, "/docs/.mdimg.toml", []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(fs, "/docs/.mdimg.toml")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SpaceLines != 5 {
		t.Errorf("SpaceLines = %d, want 5", cfg.SpaceLines)
	}
	if !cfg.UseOldData || !cfg.KeepUselessData {
		t.Error("boolean options should be set")
	}
	if cfg.BackupDir != "/backups" {
		t.Errorf("BackupDir = %q", cfg.BackupDir)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/c.toml", []byte(`use_old_data = true`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(fs, "/c.toml")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SpaceLines != DefaultSpaceLines {
		t.Errorf("SpaceLines = %d, want default %d", cfg.SpaceLines, DefaultSpaceLines)
	}
	if !cfg.UseOldData {
		t.Error("UseOldData should be true")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantCode errors.Code
	}{
		{"malformed", "spacelines = = 5", errors.ErrCodeInvalidConfig},
		{"unknown key", `space_lines = 5`, errors.ErrCodeInvalidConfig},
		{"bad value", `spacelines = -1`, errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			if err := afero.WriteFile(fs, "/c.toml", []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(fs, "/c.toml")
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("err = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(afero.NewMemMapFs(), "/nope.toml")
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadNear(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		if err := afero.WriteFile(fs, "/docs/.mdimg.toml", []byte(`spacelines = 3`), 0644); err != nil {
			t.Fatal(err)
		}
		cfg, found, err := LoadNear(fs, "/docs/notes.md")
		if err != nil {
			t.Fatal(err)
		}
		if !found {
			t.Fatal("config file should be found")
		}
		if cfg.SpaceLines != 3 {
			t.Errorf("SpaceLines = %d, want 3", cfg.SpaceLines)
		}
	})

	t.Run("absent", func(t *testing.T) {
		cfg, found, err := LoadNear(afero.NewMemMapFs(), "/docs/notes.md")
		if err != nil {
			t.Fatal(err)
		}
		if found {
			t.Error("no config file should be found")
		}
		if cfg.SpaceLines != DefaultSpaceLines {
			t.Errorf("SpaceLines = %d, want default", cfg.SpaceLines)
		}
	})
}
