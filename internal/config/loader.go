package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads a configuration file, filling unset fields from Default. A
// missing file is not an error: the defaults apply unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	absPath, err := filepath.Abs(os.ExpandEnv(path))
	if err != nil {
		return Config{}, fmt.Errorf("resolve config path: %w", err)
	}

	f, err := os.Open(absPath)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	var doc Config
	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return Config{}, fmt.Errorf("%s: decode: %w", absPath, err)
	}

	if doc.Refresh.Duration != 0 {
		cfg.Refresh = doc.Refresh
	}
	if doc.Sort != "" {
		cfg.Sort = doc.Sort
	}
	if len(doc.Columns) > 0 {
		cfg.Columns = doc.Columns
	}

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", absPath, err)
	}
	return cfg, nil
}

// DefaultPath locates the per-user configuration file.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "sysq", "config.yaml")
}
