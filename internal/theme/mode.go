package theme

// StorageKey is the key the theme preference is persisted under.
const StorageKey = "theme"

// Mode is the binary UI appearance.
type Mode bool

const (
	// ModeDark is the dark appearance. It is the default.
	ModeDark Mode = true
	// ModeLight is the light appearance.
	ModeLight Mode = false
)

// String returns the persisted form of the mode, "dark" or "light".
func (m Mode) String() string {
	if m == ModeDark {
		return "dark"
	}
	return "light"
}

// IsDark reports whether m is the dark appearance.
func (m Mode) IsDark() bool {
	return bool(m)
}

// ModeOf converts an isDarkMode flag to a Mode.
func ModeOf(isDark bool) Mode {
	return Mode(isDark)
}

// ParseStored maps a persisted value to a Mode. Only the literal "dark" is
// dark; anything else, including garbage, is light.
func ParseStored(value string) Mode {
	return Mode(value == ModeDark.String())
}
