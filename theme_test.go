package codereel

import "testing"

func TestThemeByName(t *testing.T) {
	expected := []string{
		"dark",
		"light",
		"gruvbox",
		"dracula",
		"nord",
		"solarized-dark",
		"github-dark",
		"monokai",
	}
	for _, name := range expected {
		if _, ok := ThemeByName(name); !ok {
			t.Fatalf("expected theme %q to be available", name)
		}
	}

	available := AvailableThemes()
	present := make(map[string]struct{}, len(available))
	for _, name := range available {
		present[name] = struct{}{}
	}
	for _, name := range expected {
		if _, ok := present[name]; !ok {
			t.Fatalf("expected theme %q in available list", name)
		}
	}
}

func TestThemeByNameNormalizes(t *testing.T) {
	if _, ok := ThemeByName("  Dark "); !ok {
		t.Fatal("expected case-insensitive, trimmed lookup")
	}
	if _, ok := ThemeByName("no-such-theme"); ok {
		t.Fatal("expected lookup miss for unknown theme")
	}
	theme, ok := ThemeByName("")
	if !ok || theme.Name() != "dark" {
		t.Fatalf("empty name should return the default theme, got %v", theme)
	}
}

func TestPaletteColorByCategory(t *testing.T) {
	p := DefaultTheme().Palette()
	cases := []struct {
		cat  Category
		want [3]uint8
	}{
		{CategoryKeyword, [3]uint8{198, 120, 221}},
		{CategoryString, [3]uint8{152, 195, 121}},
		{CategoryComment, [3]uint8{92, 99, 112}},
		{CategoryDefault, [3]uint8{171, 178, 191}},
	}
	for _, tc := range cases {
		c := p.Color(tc.cat)
		if c.R != tc.want[0] || c.G != tc.want[1] || c.B != tc.want[2] {
			t.Fatalf("color for %v = %v, want %v", tc.cat, c, tc.want)
		}
	}
}

func TestCategoryByName(t *testing.T) {
	if c, ok := CategoryByName("Keyword"); !ok || c != CategoryKeyword {
		t.Fatalf("CategoryByName(Keyword) = %v, %v", c, ok)
	}
	if _, ok := CategoryByName("sparkles"); ok {
		t.Fatal("expected miss for unknown category")
	}
}
