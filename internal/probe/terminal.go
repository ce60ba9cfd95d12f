package probe

import (
	"context"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Terminal asks the terminal for its background color.
type Terminal struct {
	isTerminal func() bool
	hasDark    func() bool
}

// NewTerminal creates a Terminal source for stdout.
func NewTerminal() *Terminal {
	return &Terminal{
		isTerminal: func() bool {
			fd := os.Stdout.Fd()
			return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		},
		hasDark: lipgloss.HasDarkBackground,
	}
}

// Name returns "terminal".
func (t *Terminal) Name() string { return SourceTerminal }

// Detect reports SchemeUnknown when stdout is not a terminal, since the
// background query would only return a guess.
func (t *Terminal) Detect(ctx context.Context) (Scheme, error) {
	if !t.isTerminal() {
		return SchemeUnknown, nil
	}

	// The background query talks to the terminal and may stall.
	done := make(chan bool, 1)
	go func() { done <- t.hasDark() }()

	select {
	case <-ctx.Done():
		return SchemeUnknown, ctx.Err()
	case dark := <-done:
		if dark {
			return SchemeDark, nil
		}
		return SchemeLight, nil
	}
}
