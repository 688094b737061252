package prefs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore_DefaultsToLight(t *testing.T) {
	s := NewStore()
	assert.Equal(t, ThemeLight, s.Theme())
}

func TestStore_SetThemeNotifies(t *testing.T) {
	s := NewStore()

	var seen []Theme
	s.Subscribe(func(theme Theme) { seen = append(seen, theme) })

	s.SetTheme(ThemeDark)
	s.SetTheme(ThemeDark) // no change, no notification
	s.SetTheme(ThemeLight)

	assert.Equal(t, []Theme{ThemeDark, ThemeLight}, seen)
	assert.Equal(t, ThemeLight, s.Theme())
}

func TestStore_RejectsUnknownTheme(t *testing.T) {
	s := NewStore()
	s.SetTheme(Theme("neon"))
	assert.Equal(t, ThemeLight, s.Theme())
}
