package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/lixenwraith/fxworld/worldfile"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fxworld.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadEmptyPathDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
	if cfg.WriteVersion != int32(worldfile.CurrentVersion) || cfg.LogDir != "logs" || !cfg.IndentJSON {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeFile(t, `
write_version: 7
log_dir: " /tmp/fx "
debug: true
indent_json: false
validate_on_dump: true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := Config{
		WriteVersion:   7,
		LogDir:         "/tmp/fx",
		LogFileName:    DefaultLogFileName,
		Debug:          true,
		IndentJSON:     false,
		ValidateOnDump: true,
	}
	if cfg != want {
		t.Errorf("cfg = %+v, want %+v", cfg, want)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeFile(t, "debug: true\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.Debug || cfg.WriteVersion != int32(worldfile.CurrentVersion) || !cfg.IndentJSON {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		invalid bool
	}{
		{"bad yaml", "write_version: [1, 2\n", false},
		{"wrong type", "debug: sometimes\n", false},
		{"version too new", "write_version: 11\n", true},
		{"negative version", "write_version: -3\n", true},
		{"log file with path", "log_file_name: ../escape.log\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.body))
			if err == nil {
				t.Fatal("Load succeeded")
			}
			if got := errors.Is(err, ErrInvalid); got != tt.invalid {
				t.Errorf("errors.Is(ErrInvalid) = %v for %v", got, err)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: err = %v", err)
	}
}

func TestNormalize(t *testing.T) {
	c := Config{LogDir: "   "}
	c.Normalize()
	if c.LogDir != DefaultLogDir || c.LogFileName != DefaultLogFileName || c.WriteVersion != int32(worldfile.CurrentVersion) {
		t.Errorf("Normalize = %+v", c)
	}
}
