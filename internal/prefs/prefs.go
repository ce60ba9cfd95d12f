// Package prefs provides key/value stores for persisted UI preferences.
package prefs

import "errors"

var (
	// ErrUnavailable is returned when preference storage is switched off or denied.
	ErrUnavailable = errors.New("preference storage unavailable")

	// ErrCorrupt is returned when a preferences document cannot be decoded.
	ErrCorrupt = errors.New("preference document corrupt")
)

// Disabled is a store whose every operation fails with ErrUnavailable.
// Preferences still work in memory for the session but are never saved.
type Disabled struct{}

// Get always fails.
func (Disabled) Get(key string) (string, bool, error) {
	return "", false, ErrUnavailable
}

// Set always fails.
func (Disabled) Set(key, value string) error {
	return ErrUnavailable
}
