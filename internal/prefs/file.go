package prefs

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// CurrentSchemaVersion is the current version of the preferences document.
const CurrentSchemaVersion = 1

// Format is the on-disk encoding of a preferences document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatForPath picks a Format from the file extension. Unknown extensions
// are JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// Entry is one stored preference.
type Entry struct {
	Value     string `json:"value" yaml:"value" toml:"value"`
	UpdatedAt int64  `json:"updated_at" yaml:"updated_at" toml:"updated_at"` // Unix seconds
	Revision  string `json:"revision,omitempty" yaml:"revision,omitempty" toml:"revision,omitempty"`
}

// Updated returns UpdatedAt as a time.
func (e Entry) Updated() time.Time {
	return time.Unix(e.UpdatedAt, 0)
}

// document is the persisted form of a File store.
type document struct {
	SchemaVersion int              `json:"schema_version" yaml:"schema_version" toml:"schema_version"`
	Entries       map[string]Entry `json:"entries" yaml:"entries" toml:"entries"`
}

// File is a store persisted as a single document on disk.
type File struct {
	mu     sync.Mutex
	path   string
	format Format
	now    func() time.Time
}

// NewFile creates a File store at path. The format follows the extension.
// Nothing is touched on disk until the first Get or Set.
func NewFile(path string) *File {
	return &File{
		path:   path,
		format: FormatForPath(path),
		now:    time.Now,
	}
}

// Path returns the document path.
func (f *File) Path() string {
	return f.path
}

// Format returns the document encoding.
func (f *File) Format() Format {
	return f.format
}

// Get returns the value stored under key. A missing document is an empty
// store; an unreadable or undecodable one is an error.
func (f *File) Get(key string) (string, bool, error) {
	e, ok, err := f.Entry(key)
	return e.Value, ok, err
}

// Entry returns the full record stored under key.
func (f *File) Entry(key string) (Entry, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return Entry{}, false, err
	}
	e, ok := doc.Entries[key]
	return e, ok, nil
}

// Set stores value under key and writes the document atomically. A corrupt
// document is moved aside to <path>.corrupt and replaced.
func (f *File) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if errors.Is(err, ErrCorrupt) {
		if rerr := os.Rename(f.path, f.path+".corrupt"); rerr != nil {
			return fmt.Errorf("failed to move corrupt document aside: %w", rerr)
		}
		doc, err = newDocument(), nil
	}
	if err != nil {
		return err
	}

	now := f.now()
	rev, err := ulid.New(ulid.Timestamp(now), rand.Reader)
	if err != nil {
		return fmt.Errorf("failed to generate revision: %w", err)
	}

	doc.Entries[key] = Entry{
		Value:     value,
		UpdatedAt: now.Unix(),
		Revision:  rev.String(),
	}
	return f.save(doc)
}

func newDocument() *document {
	return &document{
		SchemaVersion: CurrentSchemaVersion,
		Entries:       make(map[string]Entry),
	}
}

func (f *File) load() (*document, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return newDocument(), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", f.path, err)
	}

	doc := newDocument()
	if err := f.unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, f.path, err)
	}
	if doc.Entries == nil {
		doc.Entries = make(map[string]Entry)
	}
	if doc.SchemaVersion == 0 {
		doc.SchemaVersion = CurrentSchemaVersion
	}
	return doc, nil
}

func (f *File) save(doc *document) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := f.marshal(doc)
	if err != nil {
		return err
	}

	// Write atomically via temp file
	tmpPath := f.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", f.path, err)
	}
	return nil
}

func (f *File) marshal(doc *document) ([]byte, error) {
	switch f.format {
	case FormatYAML:
		return yaml.Marshal(doc)
	case FormatTOML:
		return toml.Marshal(doc)
	default:
		return json.MarshalIndent(doc, "", "  ")
	}
}

func (f *File) unmarshal(data []byte, doc *document) error {
	switch f.format {
	case FormatYAML:
		return yaml.Unmarshal(data, doc)
	case FormatTOML:
		return toml.Unmarshal(data, doc)
	default:
		return json.Unmarshal(data, doc)
	}
}
