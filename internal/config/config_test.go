package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Strict {
		t.Error("Expected Strict to default to false")
	}
	if !cfg.Color {
		t.Error("Expected Color to default to true")
	}
	if cfg.BackupSuffix != ".bak" {
		t.Errorf("Expected BackupSuffix .bak, got %q", cfg.BackupSuffix)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "valid config",
			config:  DefaultConfig(),
			wantErr: false,
		},
		{
			name:    "empty backup suffix disables backups",
			config:  &Config{BackupSuffix: ""},
			wantErr: false,
		},
		{
			name:    "backup suffix without dot",
			config:  &Config{BackupSuffix: "bak"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	orig := ConfigPath
	ConfigPath = func() string {
		return filepath.Join(t.TempDir(), "config.json")
	}
	defer func() { ConfigPath = orig }()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.BackupSuffix != ".bak" {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	orig := ConfigPath
	ConfigPath = func() string {
		return filepath.Join(dir, "config.json")
	}
	defer func() { ConfigPath = orig }()

	cfg := &Config{
		Strict:       true,
		Color:        false,
		LogFile:      filepath.Join(dir, "mindbridge.log"),
		BackupSuffix: ".orig",
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !loaded.Strict {
		t.Error("Strict not round-tripped")
	}
	if loaded.Color {
		t.Error("Color not round-tripped")
	}
	if loaded.BackupSuffix != ".orig" {
		t.Errorf("BackupSuffix = %q, want .orig", loaded.BackupSuffix)
	}
	if loaded.LogFile != cfg.LogFile {
		t.Errorf("LogFile = %q, want %q", loaded.LogFile, cfg.LogFile)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	orig := ConfigPath
	ConfigPath = func() string { return path }
	defer func() { ConfigPath = orig }()

	if _, err := Load(); err == nil {
		t.Error("Load() succeeded on invalid JSON, want error")
	}
}
