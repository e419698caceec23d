// Package config loads optional YAML configuration. Precedence is CLI flag
// over local file over global file; pointer fields distinguish "unset" from
// zero values.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape for keyreaper.
type FileConfig struct {
	UserAgent     *string  `yaml:"user_agent"`
	Proxy         *string  `yaml:"proxy"`
	NoHashcat     *bool    `yaml:"no_hashcat"`
	NoColor       *bool    `yaml:"no_color"`
	NoCache       *bool    `yaml:"no_cache"`
	VerifyTLS     *bool    `yaml:"verify_tls"`
	CustomSecrets []string `yaml:"custom_secrets"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches the working directory for a local config file.
func LoadLocal(dir string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".keyreaper.yml", ".keyreaper.yaml", "keyreaper.yml", "keyreaper.yaml"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// LoadGlobal loads the global config from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, errors.New("no config dir")
	}
	p := filepath.Join(base, "keyreaper", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}
