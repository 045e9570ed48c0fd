// Package driver loads source files and runs the front end and the
// canonicalization pass over them, one file or a whole directory at a time.
package driver

import (
	"fmt"
	"strings"
)

// DefaultHome is the home module when neither flags nor canon.toml name one.
const DefaultHome = "Main"

// IRFormat selects how the canonical tree is rendered into Result.IR.
type IRFormat string

const (
	IRNone IRFormat = ""
	IRText IRFormat = "text"
	IRYAML IRFormat = "yaml"
)

// ParseIRFormat accepts "", "none", "text" and "yaml".
func ParseIRFormat(s string) (IRFormat, error) {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "", "none":
		return IRNone, nil
	case "text":
		return IRText, nil
	case "yaml":
		return IRYAML, nil
	default:
		return IRNone, fmt.Errorf("unknown IR format %q (expected text|yaml)", s)
	}
}

// Options configure a run.
type Options struct {
	// Home is the module every file is canonicalized in.
	Home string
	// MaxDiagnostics caps the diagnostics kept per file; 0 keeps all.
	MaxDiagnostics   int
	IgnoreWarnings   bool
	WarningsAsErrors bool
	EnableTimings    bool
	EmitIR           IRFormat
	// Cache, when set, short-circuits files whose content and settings
	// were seen before.
	Cache *DiskCache
	// Progress receives per-file events; it may be called concurrently.
	Progress ProgressSink
	// PhaseObserver sees every phase boundary; it may be called concurrently.
	PhaseObserver PhaseObserver
}

func (o Options) home() string {
	if h := strings.TrimSpace(o.Home); h != "" {
		return h
	}
	return DefaultHome
}
