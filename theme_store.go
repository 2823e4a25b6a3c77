package codereel

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ThemeStore resolves theme names against the built-in set plus any themes
// loaded from disk. It replaces ad-hoc global theme state so the rendering
// pipeline only sees an explicitly passed Theme.
type ThemeStore struct {
	themes map[string]Theme
}

// NewThemeStore returns a store seeded with the built-in themes.
func NewThemeStore() *ThemeStore {
	s := &ThemeStore{themes: make(map[string]Theme, len(builtinThemes))}
	for name, t := range builtinThemes {
		s.themes[name] = t
	}
	return s
}

// Get returns a theme by name.
func (s *ThemeStore) Get(name string) (Theme, bool) {
	if name == "" {
		return s.themes["dark"], true
	}
	t, ok := s.themes[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// Names returns the sorted names of all registered themes.
func (s *ThemeStore) Names() []string {
	names := make([]string, 0, len(s.themes))
	for name := range s.themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Add registers a theme, keyed by its lowercased name.
func (s *ThemeStore) Add(t Theme) {
	s.themes[strings.ToLower(strings.TrimSpace(t.Name()))] = t
}

// LoadDir loads every *.json theme file in dir. Malformed files are skipped
// and reported in the returned slice; a missing or unreadable directory is
// a single error. Loaded themes are registered under the file's base name.
func (s *ThemeStore) LoadDir(dir string) []error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return []error{fmt.Errorf("themes dir: %w", err)}
	}
	var errs []error
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		t, err := loadThemeFile(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("theme %s: %w", entry.Name(), err))
			continue
		}
		key := strings.TrimSuffix(strings.ToLower(entry.Name()), ".json")
		s.themes[key] = t
	}
	return errs
}

type themeFile struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Background  []uint8            `json:"background"`
	Cursor      []uint8            `json:"cursor"`
	Colors      map[string][]uint8 `json:"colors"`
}

func loadThemeFile(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tf themeFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return nil, err
	}
	if tf.Name == "" {
		return nil, fmt.Errorf("missing name")
	}
	bg, err := parseRGB(tf.Background)
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	cursor, err := parseRGB(tf.Cursor)
	if err != nil {
		return nil, fmt.Errorf("cursor: %w", err)
	}
	p := DefaultTheme().Palette()
	p.Background = bg
	p.Cursor = cursor
	for key, value := range tf.Colors {
		cat, ok := CategoryByName(key)
		if !ok {
			continue
		}
		c, err := parseRGB(value)
		if err != nil {
			return nil, fmt.Errorf("color %q: %w", key, err)
		}
		setPaletteColor(&p, cat, c)
	}
	return NewTheme(tf.Name, tf.Description, p), nil
}

func parseRGB(v []uint8) (color.RGBA, error) {
	if len(v) != 3 {
		return color.RGBA{}, fmt.Errorf("expected [r, g, b], got %d values", len(v))
	}
	return color.RGBA{R: v[0], G: v[1], B: v[2], A: 0xff}, nil
}

func setPaletteColor(p *Palette, cat Category, c color.RGBA) {
	switch cat {
	case CategoryKeyword:
		p.Keyword = c
	case CategoryString:
		p.String = c
	case CategoryComment:
		p.Comment = c
	case CategoryNumber:
		p.Number = c
	case CategoryFunction:
		p.Function = c
	case CategoryClass:
		p.Class = c
	case CategoryOperator:
		p.Operator = c
	default:
		p.Default = c
	}
}
