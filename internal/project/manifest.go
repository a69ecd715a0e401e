package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest is a located and parsed gaia.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the gaia.toml layout.
type Config struct {
	Package  PackageConfig  `toml:"package"`
	Analysis AnalysisConfig `toml:"analysis"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

// AnalysisConfig tunes the checker. Zero values defer to the built-in
// defaults (fixpoint caps, one worker per CPU, no cache).
type AnalysisConfig struct {
	MaxIterations int    `toml:"max-iterations"`
	Jobs          int    `toml:"jobs"`
	Cache         bool   `toml:"cache"`
	CacheDir      string `toml:"cache-dir"`
}

// FindManifest walks from startDir toward the filesystem root looking
// for gaia.toml.
func FindManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "gaia.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadManifest locates and parses the nearest gaia.toml. The second
// return is false when no manifest exists, which is not an error.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadConfig(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, true, nil
}

func loadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Config{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if cfg.Analysis.MaxIterations < 0 {
		return Config{}, fmt.Errorf("%s: [analysis].max-iterations must not be negative", path)
	}
	if cfg.Analysis.Jobs < 0 {
		return Config{}, fmt.Errorf("%s: [analysis].jobs must not be negative", path)
	}
	return cfg, nil
}
