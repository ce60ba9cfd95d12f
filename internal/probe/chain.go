package probe

import (
	"context"
	"log/slog"
	"time"
)

// Result is one source's answer, as reported by Chain.Explain.
type Result struct {
	Source string
	Scheme Scheme
	Err    error
}

// Chain asks its sources in order. It implements the holder's
// SystemPreferenceProbe.
type Chain struct {
	sources []Source
	timeout time.Duration
	logger  *slog.Logger
}

// NewChain creates a Chain. A non-positive timeout uses DefaultTimeout.
func NewChain(logger *slog.Logger, timeout time.Duration, sources ...Source) *Chain {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Chain{
		sources: sources,
		timeout: timeout,
		logger:  logger,
	}
}

// PrefersDark reports whether the first source with an answer says dark.
// With no answer at all the environment is taken not to prefer dark.
func (c *Chain) PrefersDark() bool {
	scheme, _ := c.Detect(context.Background())
	return scheme == SchemeDark
}

// Detect returns the first definite scheme and the name of the source that
// gave it. Errors from individual sources are logged and skipped.
func (c *Chain) Detect(ctx context.Context) (Scheme, string) {
	for _, src := range c.sources {
		scheme, err := c.detect(ctx, src)
		if err != nil {
			c.logger.Debug("probe source failed", "source", src.Name(), "error", err)
			continue
		}
		if scheme != SchemeUnknown {
			c.logger.Debug("system color scheme detected", "source", src.Name(), "scheme", scheme)
			return scheme, src.Name()
		}
	}
	return SchemeUnknown, ""
}

// Explain queries every source and returns all answers, in order.
func (c *Chain) Explain(ctx context.Context) []Result {
	results := make([]Result, 0, len(c.sources))
	for _, src := range c.sources {
		scheme, err := c.detect(ctx, src)
		results = append(results, Result{Source: src.Name(), Scheme: scheme, Err: err})
	}
	return results
}

func (c *Chain) detect(ctx context.Context, src Source) (Scheme, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return src.Detect(ctx)
}
