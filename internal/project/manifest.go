package project

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"canon/internal/diag"
)

// Manifest is a decoded canon.toml together with where it was found.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the canon.toml layout.
type Config struct {
	Package PackageConfig `toml:"package"`
	Canon   CanonConfig   `toml:"canon"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

// CanonConfig holds pass defaults; command line flags override them.
type CanonConfig struct {
	Home             string `toml:"home"`
	MaxDiagnostics   int    `toml:"max_diagnostics"`
	WarningsAsErrors bool   `toml:"warnings_as_errors"`
	Jobs             int    `toml:"jobs"`
}

// ManifestError is a canon.toml that could not be used.
type ManifestError struct {
	Path string
	Code diag.Code
	Msg  string
	Err  error
}

func (e *ManifestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}

func (e *ManifestError) Unwrap() error { return e.Err }

// HomeModule is the module name the pass runs under.
func (c *Config) HomeModule() string {
	if home := strings.TrimSpace(c.Canon.Home); home != "" {
		return home
	}
	return strings.TrimSpace(c.Package.Name)
}

// LoadManifest finds and decodes the manifest governing startDir. ok is
// false when there is none.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

// LoadConfig decodes and validates one canon.toml.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, &ManifestError{Path: path, Code: diag.ProjInvalidManifest, Msg: "failed to parse TOML", Err: err}
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, &ManifestError{Path: path, Code: diag.ProjMissingPackage, Msg: "missing [package].name"}
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, &ManifestError{Path: path, Code: diag.ProjInvalidManifest, Msg: "unknown keys " + strings.Join(keys, ", ")}
	}
	if cfg.Canon.MaxDiagnostics < 0 {
		return Config{}, &ManifestError{Path: path, Code: diag.ProjInvalidManifest, Msg: "[canon].max_diagnostics must not be negative"}
	}
	if cfg.Canon.Jobs < 0 {
		return Config{}, &ManifestError{Path: path, Code: diag.ProjInvalidManifest, Msg: "[canon].jobs must not be negative"}
	}
	return cfg, nil
}
