// Package config loads the fxworld tool settings from YAML
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/fxworld/worldfile"
)

var ErrInvalid = errors.New("config: invalid")

const (
	DefaultLogDir      = "logs"
	DefaultLogFileName = "fxworld.log"
)

// Config holds tool settings; zero fields take defaults
type Config struct {
	// WriteVersion is the version convert writes when no -version flag is given
	WriteVersion int32  `yaml:"write_version"`
	LogDir       string `yaml:"log_dir"`
	LogFileName  string `yaml:"log_file_name"`
	Debug        bool   `yaml:"debug"`
	IndentJSON   bool   `yaml:"indent_json"`

	// ValidateOnDump checks every dumped document against the schema
	ValidateOnDump bool `yaml:"validate_on_dump"`
}

// Default returns the settings used when no file is given
func Default() Config {
	return Config{
		WriteVersion: int32(worldfile.CurrentVersion),
		LogDir:       DefaultLogDir,
		LogFileName:  DefaultLogFileName,
		IndentJSON:   true,
	}
}

// Load reads path over the defaults; an empty path yields the defaults
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Normalize fills cleared fields back in from the defaults
func (c *Config) Normalize() {
	def := Default()
	if c.WriteVersion == 0 {
		c.WriteVersion = def.WriteVersion
	}
	c.LogDir = strings.TrimSpace(c.LogDir)
	if c.LogDir == "" {
		c.LogDir = def.LogDir
	}
	c.LogFileName = strings.TrimSpace(c.LogFileName)
	if c.LogFileName == "" {
		c.LogFileName = def.LogFileName
	}
}

// Validate rejects settings the tool cannot act on
func (c Config) Validate() error {
	if !worldfile.Version(c.WriteVersion).Supported() {
		return fmt.Errorf("%w: write_version %d outside %d..%d",
			ErrInvalid, c.WriteVersion, worldfile.MinVersion, worldfile.CurrentVersion)
	}
	if strings.ContainsAny(c.LogFileName, `/\`) {
		return fmt.Errorf("%w: log_file_name %q must not contain a path", ErrInvalid, c.LogFileName)
	}
	return nil
}
