// Package prefs holds process-wide UI preferences. There is exactly one
// subscribe/notify point; components must not watch the preference
// independently.
package prefs

import "sync"

// Theme is the storefront's display theme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Listener is called with the new theme after every change.
type Listener func(Theme)

// Store is the single source of truth for UI preferences.
type Store struct {
	mu        sync.RWMutex
	theme     Theme
	listeners []Listener
}

func NewStore() *Store {
	return &Store{theme: ThemeLight}
}

// Theme returns the current theme.
func (s *Store) Theme() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// SetTheme changes the theme and notifies listeners. Setting the current
// theme again does not notify.
func (s *Store) SetTheme(theme Theme) {
	if theme != ThemeLight && theme != ThemeDark {
		return
	}

	s.mu.Lock()
	if s.theme == theme {
		s.mu.Unlock()
		return
	}
	s.theme = theme
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(theme)
	}
}

// Subscribe registers a listener for theme changes.
func (s *Store) Subscribe(fn Listener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}
