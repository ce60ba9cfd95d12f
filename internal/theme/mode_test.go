package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModeString(t *testing.T) {
	assert.Equal(t, "dark", ModeDark.String())
	assert.Equal(t, "light", ModeLight.String())
	assert.True(t, ModeDark.IsDark())
	assert.False(t, ModeLight.IsDark())
	assert.Equal(t, ModeDark, ModeOf(true))
	assert.Equal(t, ModeLight, ModeOf(false))
}

func TestParseStored(t *testing.T) {
	tests := []struct {
		value    string
		expected Mode
	}{
		{"dark", ModeDark},
		{"light", ModeLight},
		{"foo", ModeLight},
		{"DARK", ModeLight},
		{" dark", ModeLight},
		{"", ModeLight},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseStored(tt.value))
		})
	}
}
