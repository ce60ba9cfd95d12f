package theme

import (
	"log/slog"
	"sync"
	"time"
)

// PreferenceStore is durable key/value storage for the persisted preference.
// Get reports ok=false when the key has never been written.
type PreferenceStore interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// SystemPreferenceProbe reports whether the environment prefers a dark
// color scheme.
type SystemPreferenceProbe interface {
	PrefersDark() bool
}

// Provider is what views consume: the current flag and the only way to
// change it.
type Provider interface {
	IsDarkMode() bool
	ToggleTheme()
}

// Value is the (isDarkMode, toggleTheme) pair handed to views that prefer a
// plain struct over an interface.
type Value struct {
	IsDarkMode  bool
	ToggleTheme func()
}

// Source records where a mounted flag came from.
type Source int

const (
	// SourceDefault means nothing was resolved; the construction default stands.
	SourceDefault Source = iota
	// SourceStored means the persisted preference was used.
	SourceStored
	// SourceSystem means the system preference probe was used.
	SourceSystem
)

// String returns the string representation of Source.
func (s Source) String() string {
	switch s {
	case SourceDefault:
		return "default"
	case SourceStored:
		return "stored"
	case SourceSystem:
		return "system"
	default:
		return "unknown"
	}
}

// Resolution is the outcome of mounting a Holder.
type Resolution struct {
	Mode   Mode
	Source Source
	Err    error // storage read failure, if any; already logged and reported
}

// Option configures a Holder.
type Option func(*Holder)

// WithLogger sets the logger used for swallowed storage failures.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Holder) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithDiagnostics sets the sink that receives swallowed storage failures.
func WithDiagnostics(sink Sink) Option {
	return func(h *Holder) {
		h.sink = sink
	}
}

// Holder owns the theme flag.
type Holder struct {
	mu sync.Mutex

	store  PreferenceStore
	probe  SystemPreferenceProbe
	logger *slog.Logger
	sink   Sink

	dark       bool
	mounted    bool
	resolution Resolution

	now func() time.Time
}

// NewHolder creates a Holder in dark mode. Nothing is read until Mount.
// A nil store never has a persisted value; a nil probe never prefers dark.
func NewHolder(store PreferenceStore, probe SystemPreferenceProbe, opts ...Option) *Holder {
	h := &Holder{
		store:  store,
		probe:  probe,
		logger: slog.Default(),
		dark:   true,
		now:    time.Now,
	}
	h.resolution = Resolution{Mode: ModeDark, Source: SourceDefault}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Mount resolves the flag from the persisted preference or, when none
// exists, from the system preference. It runs once; later calls return the
// first Resolution unchanged. Storage read failures leave the flag as it was.
func (h *Holder) Mount() Resolution {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.mounted {
		return h.resolution
	}
	h.mounted = true

	stored, ok, err := h.read()
	switch {
	case err != nil:
		h.fail(OpRead, "", err)
		h.resolution = Resolution{Mode: ModeOf(h.dark), Source: SourceDefault, Err: err}
	case ok && stored != "":
		h.dark = ParseStored(stored).IsDark()
		h.resolution = Resolution{Mode: ModeOf(h.dark), Source: SourceStored}
	default:
		h.dark = h.probe != nil && h.probe.PrefersDark()
		h.resolution = Resolution{Mode: ModeOf(h.dark), Source: SourceSystem}
	}

	h.logger.Debug("theme mounted", "mode", h.resolution.Mode, "source", h.resolution.Source)
	return h.resolution
}

// Mounted reports whether Mount has run.
func (h *Holder) Mounted() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.mounted
}

// Resolution returns the result of Mount, or the construction default if
// Mount has not run yet.
func (h *Holder) Resolution() Resolution {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.resolution
}

// IsDarkMode returns the current flag.
func (h *Holder) IsDarkMode() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dark
}

// Mode returns the current flag as a Mode.
func (h *Holder) Mode() Mode {
	return ModeOf(h.IsDarkMode())
}

// Toggle flips the flag, persists the new value and returns the new flag.
// A failed write is logged and reported but the flag still flips.
func (h *Holder) Toggle() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.dark = !h.dark
	value := ModeOf(h.dark).String()
	if h.store != nil {
		if err := h.store.Set(StorageKey, value); err != nil {
			h.fail(OpWrite, value, err)
		}
	}

	h.logger.Debug("theme toggled", "mode", value)
	return h.dark
}

// ToggleTheme is Toggle without the result, satisfying Provider.
func (h *Holder) ToggleTheme() {
	h.Toggle()
}

// Value returns the (isDarkMode, toggleTheme) pair at this moment.
func (h *Holder) Value() Value {
	return Value{
		IsDarkMode:  h.IsDarkMode(),
		ToggleTheme: h.ToggleTheme,
	}
}

func (h *Holder) read() (string, bool, error) {
	if h.store == nil {
		return "", false, nil
	}
	return h.store.Get(StorageKey)
}

// fail logs and reports a storage failure. Callers hold h.mu.
func (h *Holder) fail(op Op, value string, err error) {
	h.logger.Warn("theme preference storage failed", "op", op, "key", StorageKey, "error", err)
	if h.sink != nil {
		h.sink.Report(Diagnostic{
			Op:    op,
			Key:   StorageKey,
			Value: value,
			Err:   err,
			At:    h.now(),
		})
	}
}

// fallback is the Provider seen by views with no Holder.
type fallback struct{}

func (fallback) IsDarkMode() bool { return true }
func (fallback) ToggleTheme()     {}

// Default returns the Provider used when no Holder is available: dark, with
// a toggle that does nothing.
func Default() Provider {
	return fallback{}
}

// DefaultValue is Default as a Value.
func DefaultValue() Value {
	return Value{IsDarkMode: true, ToggleTheme: func() {}}
}

// Resolve returns p, or Default when p is nil or a nil *Holder.
func Resolve(p Provider) Provider {
	if p == nil {
		return Default()
	}
	if h, ok := p.(*Holder); ok && h == nil {
		return Default()
	}
	return p
}
