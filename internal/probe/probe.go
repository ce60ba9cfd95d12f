// Package probe answers "does the environment prefer a dark color scheme".
// Each Source inspects one signal; a Chain asks them in order and settles on
// the first definite answer.
package probe

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// DefaultTimeout bounds a single source query.
const DefaultTimeout = 500 * time.Millisecond

// Scheme is a color scheme preference as reported by a Source.
type Scheme int

const (
	// SchemeUnknown means the source has no opinion.
	SchemeUnknown Scheme = iota
	// SchemeDark means the environment prefers dark.
	SchemeDark
	// SchemeLight means the environment prefers light.
	SchemeLight
)

// String returns the string representation of Scheme.
func (s Scheme) String() string {
	switch s {
	case SchemeDark:
		return "dark"
	case SchemeLight:
		return "light"
	default:
		return "unknown"
	}
}

// ParseScheme parses a user supplied scheme name. Unrecognised values are
// SchemeUnknown.
func ParseScheme(s string) Scheme {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dark", "prefer-dark":
		return SchemeDark
	case "light", "prefer-light":
		return SchemeLight
	default:
		return SchemeUnknown
	}
}

// Source is one system preference signal.
type Source interface {
	Name() string
	Detect(ctx context.Context) (Scheme, error)
}

// Source names accepted by New.
const (
	SourceEnv      = "env"
	SourcePortal   = "portal"
	SourceTerminal = "terminal"
)

// SourceNames lists the sources New can build, in default order.
var SourceNames = []string{SourceEnv, SourcePortal, SourceTerminal}

// DefaultEnvVar is the environment variable read by the env source.
const DefaultEnvVar = "THEMESTATE_COLOR_SCHEME"

// Known reports whether name is a source New can build.
func Known(name string) bool {
	for _, n := range SourceNames {
		if n == name {
			return true
		}
	}
	return false
}

// New builds the named source.
func New(name, envVar string, logger *slog.Logger) (Source, error) {
	switch name {
	case SourceEnv:
		return NewEnv(envVar), nil
	case SourcePortal:
		return NewPortal(logger), nil
	case SourceTerminal:
		return NewTerminal(), nil
	default:
		return nil, fmt.Errorf("unknown probe source: %q", name)
	}
}

// Static is a Source with a fixed answer.
type Static Scheme

// Name returns "static".
func (Static) Name() string { return "static" }

// Detect returns the fixed scheme.
func (s Static) Detect(context.Context) (Scheme, error) {
	return Scheme(s), nil
}
