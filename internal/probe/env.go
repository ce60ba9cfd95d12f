package probe

import (
	"context"
	"os"
)

// Env reads the preference from an environment variable.
type Env struct {
	name   string
	lookup func(string) (string, bool)
}

// NewEnv creates an Env source for the variable name (DefaultEnvVar if empty).
func NewEnv(name string) *Env {
	if name == "" {
		name = DefaultEnvVar
	}
	return &Env{name: name, lookup: os.LookupEnv}
}

// Name returns "env".
func (e *Env) Name() string { return SourceEnv }

// Variable returns the environment variable read.
func (e *Env) Variable() string { return e.name }

// Detect parses the variable. Unset or unrecognised values are SchemeUnknown.
func (e *Env) Detect(context.Context) (Scheme, error) {
	v, ok := e.lookup(e.name)
	if !ok {
		return SchemeUnknown, nil
	}
	return ParseScheme(v), nil
}
