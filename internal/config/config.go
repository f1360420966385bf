// Package config loads the uploader settings from a YAML file in the
// user's home directory, creating it with defaults on first run.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up under the home directory.
const FileName = ".photo-uploader.yaml"

// Config holds the upload settings. The selector core does not read
// these; the CLI uses them to print the effective upload plan.
type Config struct {
	Bucket       string `yaml:"bucket"`
	AWSProfile   string `yaml:"aws_profile"`
	TargetSizeKB int    `yaml:"target_size_kb"`
}

func defaults() Config {
	return Config{Bucket: "my-photos", AWSProfile: "default", TargetSizeKB: 400}
}

// DefaultPath returns ~/.photo-uploader.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, FileName), nil
}

// Load reads the config at path (DefaultPath when empty). A missing file
// is written with defaults first, so the operator has something to edit.
func Load(path string) (Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if werr := writeDefaults(path); werr != nil {
			return Config{}, werr
		}
		fmt.Fprintf(os.Stderr, "Created default configuration at %s\n", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("malformed YAML in %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Bucket == "" {
		return errors.New("'bucket' must be a non-empty string")
	}
	if c.AWSProfile == "" {
		return errors.New("'aws_profile' must be a non-empty string")
	}
	if c.TargetSizeKB <= 0 {
		return errors.New("'target_size_kb' must be a positive integer")
	}
	return nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(defaults())
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("create config %s: %w", path, err)
	}
	return nil
}
