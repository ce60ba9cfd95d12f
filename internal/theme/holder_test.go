package theme

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDenied = errors.New("storage denied")

// fakeStore is an in-memory PreferenceStore with switchable failures.
type fakeStore struct {
	values   map[string]string
	readErr  error
	writeErr error
	gets     int
	sets     int
}

func newFakeStore() *fakeStore {
	return &fakeStore{values: make(map[string]string)}
}

func (s *fakeStore) Get(key string) (string, bool, error) {
	s.gets++
	if s.readErr != nil {
		return "", false, s.readErr
	}
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *fakeStore) Set(key, value string) error {
	s.sets++
	if s.writeErr != nil {
		return s.writeErr
	}
	s.values[key] = value
	return nil
}

// fakeProbe answers a fixed value and counts calls.
type fakeProbe struct {
	dark  bool
	calls int
}

func (p *fakeProbe) PrefersDark() bool {
	p.calls++
	return p.dark
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestHolder(store PreferenceStore, probe SystemPreferenceProbe, opts ...Option) *Holder {
	return NewHolder(store, probe, append([]Option{WithLogger(quietLogger())}, opts...)...)
}

func TestHolder_DefaultBeforeMount(t *testing.T) {
	store := newFakeStore()
	store.values[StorageKey] = "light"
	probe := &fakeProbe{dark: false}

	h := newTestHolder(store, probe)

	assert.True(t, h.IsDarkMode())
	assert.Equal(t, ModeDark, h.Mode())
	assert.False(t, h.Mounted())
	assert.Equal(t, SourceDefault, h.Resolution().Source)
	assert.Zero(t, store.gets, "construction must not read storage")
	assert.Zero(t, probe.calls, "construction must not query the system")
}

func TestHolder_Mount(t *testing.T) {
	tests := []struct {
		name       string
		stored     *string
		systemDark bool
		wantDark   bool
		wantSource Source
		wantProbed bool
	}{
		{name: "stored light beats system dark", stored: ptr("light"), systemDark: true, wantDark: false, wantSource: SourceStored},
		{name: "stored dark beats system light", stored: ptr("dark"), systemDark: false, wantDark: true, wantSource: SourceStored},
		{name: "unknown stored value is light", stored: ptr("foo"), systemDark: true, wantDark: false, wantSource: SourceStored},
		{name: "stored value is case sensitive", stored: ptr("Dark"), systemDark: true, wantDark: false, wantSource: SourceStored},
		{name: "absent falls back to system dark", systemDark: true, wantDark: true, wantSource: SourceSystem, wantProbed: true},
		{name: "absent falls back to system light", systemDark: false, wantDark: false, wantSource: SourceSystem, wantProbed: true},
		{name: "empty stored value counts as absent", stored: ptr(""), systemDark: false, wantDark: false, wantSource: SourceSystem, wantProbed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			if tt.stored != nil {
				store.values[StorageKey] = *tt.stored
			}
			probe := &fakeProbe{dark: tt.systemDark}

			h := newTestHolder(store, probe)
			res := h.Mount()

			assert.Equal(t, tt.wantDark, h.IsDarkMode())
			assert.Equal(t, ModeOf(tt.wantDark), res.Mode)
			assert.Equal(t, tt.wantSource, res.Source)
			assert.NoError(t, res.Err)
			assert.Equal(t, tt.wantProbed, probe.calls == 1)
			assert.Zero(t, store.sets, "mount must not write")
		})
	}
}

func TestHolder_MountRunsOnce(t *testing.T) {
	store := newFakeStore()
	probe := &fakeProbe{dark: false}
	h := newTestHolder(store, probe)

	first := h.Mount()
	store.values[StorageKey] = "dark"
	second := h.Mount()

	assert.Equal(t, first, second)
	assert.False(t, h.IsDarkMode())
	assert.Equal(t, 1, store.gets)
	assert.Equal(t, 1, probe.calls)
	assert.True(t, h.Mounted())
}

func TestHolder_MountAfterToggleKeepsToggledValue(t *testing.T) {
	store := newFakeStore()
	h := newTestHolder(store, &fakeProbe{dark: true})

	h.Mount()
	require.False(t, h.Toggle())
	h.Mount()

	assert.False(t, h.IsDarkMode())
}

func TestHolder_ToggleTwiceRestores(t *testing.T) {
	store := newFakeStore()
	store.values[StorageKey] = "dark"
	h := newTestHolder(store, &fakeProbe{})
	h.Mount()

	before := h.IsDarkMode()
	storedBefore := store.values[StorageKey]

	assert.Equal(t, !before, h.Toggle())
	assert.Equal(t, "light", store.values[StorageKey])
	assert.Equal(t, before, h.Toggle())

	assert.Equal(t, before, h.IsDarkMode())
	assert.Equal(t, storedBefore, store.values[StorageKey])
}

func TestHolder_TogglePersistsAcrossReload(t *testing.T) {
	store := newFakeStore()
	probe := &fakeProbe{dark: true}

	h := newTestHolder(store, probe)
	h.Mount()
	require.True(t, h.IsDarkMode())
	require.False(t, h.Toggle())

	reloaded := newTestHolder(store, probe)
	res := reloaded.Mount()

	assert.False(t, reloaded.IsDarkMode())
	assert.Equal(t, SourceStored, res.Source)
	assert.Equal(t, 1, probe.calls, "reload must use the stored value, not the system")
}

func TestHolder_ToggleBeforeMount(t *testing.T) {
	store := newFakeStore()
	h := newTestHolder(store, &fakeProbe{})

	assert.False(t, h.Toggle())
	assert.Equal(t, "light", store.values[StorageKey])
}

func TestHolder_ReadFailure(t *testing.T) {
	store := newFakeStore()
	store.readErr = errDenied
	probe := &fakeProbe{dark: false}
	rec := NewRecorder()

	h := newTestHolder(store, probe, WithDiagnostics(rec))

	var res Resolution
	require.NotPanics(t, func() { res = h.Mount() })

	assert.True(t, h.IsDarkMode(), "flag stays at the default")
	assert.Equal(t, SourceDefault, res.Source)
	assert.ErrorIs(t, res.Err, errDenied)
	assert.Zero(t, probe.calls, "read failure does not fall back to the system")

	reports := rec.Reports()
	require.Len(t, reports, 1)
	assert.Equal(t, OpRead, reports[0].Op)
	assert.Equal(t, StorageKey, reports[0].Key)
	assert.ErrorIs(t, reports[0].Err, errDenied)
	assert.False(t, reports[0].At.IsZero())
}

func TestHolder_WriteFailure(t *testing.T) {
	store := newFakeStore()
	store.writeErr = errDenied
	rec := NewRecorder()

	h := newTestHolder(store, &fakeProbe{dark: true}, WithDiagnostics(rec))
	h.Mount()

	assert.False(t, h.Toggle(), "flag flips even though the write failed")
	assert.False(t, h.IsDarkMode())
	assert.False(t, h.Value().IsDarkMode)

	assert.True(t, h.Toggle())
	assert.Equal(t, 2, rec.Count(OpWrite))
	assert.Zero(t, rec.Count(OpRead))
	assert.Equal(t, "light", rec.Reports()[0].Value)
	assert.Equal(t, "dark", rec.Reports()[1].Value)
	assert.Empty(t, store.values)
}

func TestHolder_SinkFunc(t *testing.T) {
	store := newFakeStore()
	store.writeErr = errDenied

	var got []Op
	h := newTestHolder(store, nil, WithDiagnostics(SinkFunc(func(d Diagnostic) {
		got = append(got, d.Op)
	})))
	h.ToggleTheme()

	assert.Equal(t, []Op{OpWrite}, got)
}

func TestHolder_NilCollaborators(t *testing.T) {
	h := newTestHolder(nil, nil)

	res := h.Mount()
	assert.False(t, h.IsDarkMode())
	assert.Equal(t, SourceSystem, res.Source)

	assert.True(t, h.Toggle())
}

func TestHolder_Value(t *testing.T) {
	store := newFakeStore()
	h := newTestHolder(store, &fakeProbe{dark: true})
	h.Mount()

	v := h.Value()
	assert.True(t, v.IsDarkMode)
	v.ToggleTheme()

	assert.False(t, h.IsDarkMode())
	assert.True(t, v.IsDarkMode, "a Value is a snapshot of the flag")
	assert.False(t, h.Value().IsDarkMode)
}

func TestDefault(t *testing.T) {
	p := Default()
	assert.True(t, p.IsDarkMode())
	assert.NotPanics(t, p.ToggleTheme)
	assert.True(t, p.IsDarkMode())

	v := DefaultValue()
	assert.True(t, v.IsDarkMode)
	assert.NotPanics(t, v.ToggleTheme)
}

func TestResolve(t *testing.T) {
	var nilHolder *Holder
	h := newTestHolder(newFakeStore(), nil)

	tests := []struct {
		name     string
		provider Provider
		wantSame bool
	}{
		{name: "nil interface", provider: nil},
		{name: "nil holder", provider: nilHolder},
		{name: "holder", provider: h, wantSame: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.provider)
			require.NotNil(t, got)
			if tt.wantSame {
				assert.Same(t, h, got)
				return
			}
			assert.Equal(t, Default(), got)
			assert.True(t, got.IsDarkMode())
			assert.NotPanics(t, got.ToggleTheme)
		})
	}
}

func TestSourceString(t *testing.T) {
	tests := []struct {
		source   Source
		expected string
	}{
		{SourceDefault, "default"},
		{SourceStored, "stored"},
		{SourceSystem, "system"},
		{Source(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.source.String())
		})
	}
}

func ptr(s string) *string {
	return &s
}
