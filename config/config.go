// Package config handles jvmapi.toml project configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/dhamidi/jvmapi/api"
)

const FileName = "jvmapi.toml"

type Config struct {
	Classpath   Classpath       `toml:"classpath"`
	Annotations api.Annotations `toml:"annotations"`
	Log         Log             `toml:"log"`

	// Dir is the directory containing jvmapi.toml, set at load time.
	// Relative classpath entries are resolved against it.
	Dir string `toml:"-"`
}

type Classpath struct {
	Entries []string `toml:"entries"`
}

type Log struct {
	Verbosity int `toml:"verbosity"`
}

// Default is the configuration used when no jvmapi.toml exists.
func Default() *Config {
	return &Config{Annotations: api.DefaultAnnotations()}
}

// Load parses jvmapi.toml from dir. Annotation lists left out of the file
// keep their defaults.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	return parse(path, dir, data)
}

// LoadFile parses a configuration file with any name.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	return parse(path, filepath.Dir(path), data)
}

// FindAndLoad walks up from startDir looking for jvmapi.toml. It returns
// Default when none is found.
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		_, err := os.Stat(filepath.Join(dir, FileName))
		if err == nil {
			return Load(dir)
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return Default(), nil
		}
		dir = parent
	}
}

func parse(path, dir string, data []byte) (*Config, error) {
	cfg := &Config{}
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}
	cfg.Annotations = cfg.Annotations.WithDefaults()

	cfg.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}
	return cfg, nil
}

// ClasspathEntries returns the configured entries, relative ones resolved
// against Dir.
func (c *Config) ClasspathEntries() []string {
	paths := make([]string, len(c.Classpath.Entries))
	for i, entry := range c.Classpath.Entries {
		if filepath.IsAbs(entry) || c.Dir == "" {
			paths[i] = entry
		} else {
			paths[i] = filepath.Join(c.Dir, entry)
		}
	}
	return paths
}
