package theme

import (
	"sync"
	"time"
)

// Op identifies the storage operation that failed.
type Op string

const (
	// OpRead is the mount-time read of the persisted preference.
	OpRead Op = "read"
	// OpWrite is the write performed by a toggle.
	OpWrite Op = "write"
)

// Diagnostic describes a swallowed storage failure.
type Diagnostic struct {
	Op    Op
	Key   string
	Value string // value being written, empty for reads
	Err   error
	At    time.Time
}

// Sink receives storage failures that the Holder does not return to callers.
type Sink interface {
	Report(d Diagnostic)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(d Diagnostic)

// Report calls f(d).
func (f SinkFunc) Report(d Diagnostic) {
	f(d)
}

// Recorder is a Sink that keeps every report in memory.
type Recorder struct {
	mu      sync.Mutex
	reports []Diagnostic
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Report stores d.
func (r *Recorder) Report(d Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, d)
}

// Reports returns a copy of the recorded diagnostics, oldest first.
func (r *Recorder) Reports() []Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Diagnostic, len(r.reports))
	copy(out, r.reports)
	return out
}

// Count returns how many failures of the given op were recorded.
func (r *Recorder) Count(op Op) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, d := range r.reports {
		if d.Op == op {
			n++
		}
	}
	return n
}
