package codereel

import (
	"image/color"
	"sort"
	"strings"
)

// Category classifies highlighted code into the color slots a theme provides.
type Category uint8

const (
	CategoryDefault Category = iota
	CategoryKeyword
	CategoryString
	CategoryComment
	CategoryNumber
	CategoryFunction
	CategoryClass
	CategoryOperator
)

var categoryNames = map[string]Category{
	"default":  CategoryDefault,
	"keyword":  CategoryKeyword,
	"string":   CategoryString,
	"comment":  CategoryComment,
	"number":   CategoryNumber,
	"function": CategoryFunction,
	"class":    CategoryClass,
	"operator": CategoryOperator,
}

func (c Category) String() string {
	for name, cat := range categoryNames {
		if cat == c {
			return name
		}
	}
	return "default"
}

// CategoryByName resolves a theme-file color key to a Category.
func CategoryByName(name string) (Category, bool) {
	c, ok := categoryNames[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

// Palette holds the colors a theme assigns to the frame background, the
// cursor, and each token category.
type Palette struct {
	Background color.RGBA
	Cursor     color.RGBA
	Default    color.RGBA
	Keyword    color.RGBA
	String     color.RGBA
	Comment    color.RGBA
	Number     color.RGBA
	Function   color.RGBA
	Class      color.RGBA
	Operator   color.RGBA
}

// Color returns the palette color for a token category.
func (p Palette) Color(c Category) color.RGBA {
	switch c {
	case CategoryKeyword:
		return p.Keyword
	case CategoryString:
		return p.String
	case CategoryComment:
		return p.Comment
	case CategoryNumber:
		return p.Number
	case CategoryFunction:
		return p.Function
	case CategoryClass:
		return p.Class
	case CategoryOperator:
		return p.Operator
	default:
		return p.Default
	}
}

// Theme provides named colors for rendering code frames.
type Theme interface {
	Name() string
	Description() string
	Palette() Palette
}

type theme struct {
	name        string
	description string
	palette     Palette
}

func (t theme) Name() string        { return t.name }
func (t theme) Description() string { return t.description }
func (t theme) Palette() Palette    { return t.palette }

// NewTheme returns a Theme from a palette definition.
func NewTheme(name, description string, palette Palette) Theme {
	return theme{name: name, description: description, palette: palette}
}

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

var builtinThemes = map[string]Theme{
	"dark": theme{name: "dark", description: "Default dark theme", palette: Palette{
		Background: rgb(40, 44, 52),
		Cursor:     rgb(255, 255, 255),
		Default:    rgb(171, 178, 191),
		Keyword:    rgb(198, 120, 221),
		String:     rgb(152, 195, 121),
		Comment:    rgb(92, 99, 112),
		Number:     rgb(209, 154, 102),
		Function:   rgb(97, 175, 239),
		Class:      rgb(229, 192, 123),
		Operator:   rgb(86, 182, 194),
	}},
	"light": theme{name: "light", description: "Default light theme", palette: Palette{
		Background: rgb(255, 255, 255),
		Cursor:     rgb(0, 0, 0),
		Default:    rgb(0, 0, 0),
		Keyword:    rgb(128, 0, 128),
		String:     rgb(0, 128, 0),
		Comment:    rgb(128, 128, 128),
		Number:     rgb(255, 140, 0),
		Function:   rgb(0, 0, 255),
		Class:      rgb(184, 134, 11),
		Operator:   rgb(0, 139, 139),
	}},
	"gruvbox": theme{name: "gruvbox", description: "Retro groove dark", palette: Palette{
		Background: rgb(40, 40, 40),
		Cursor:     rgb(235, 219, 178),
		Default:    rgb(235, 219, 178),
		Keyword:    rgb(251, 73, 52),
		String:     rgb(184, 187, 38),
		Comment:    rgb(146, 131, 116),
		Number:     rgb(211, 134, 155),
		Function:   rgb(250, 189, 47),
		Class:      rgb(142, 192, 124),
		Operator:   rgb(254, 128, 25),
	}},
	"dracula": theme{name: "dracula", description: "Dracula dark", palette: Palette{
		Background: rgb(40, 42, 54),
		Cursor:     rgb(248, 248, 242),
		Default:    rgb(248, 248, 242),
		Keyword:    rgb(255, 121, 198),
		String:     rgb(241, 250, 140),
		Comment:    rgb(98, 114, 164),
		Number:     rgb(189, 147, 249),
		Function:   rgb(80, 250, 123),
		Class:      rgb(139, 233, 253),
		Operator:   rgb(255, 184, 108),
	}},
	"nord": theme{name: "nord", description: "Arctic north-bluish", palette: Palette{
		Background: rgb(46, 52, 64),
		Cursor:     rgb(216, 222, 233),
		Default:    rgb(216, 222, 233),
		Keyword:    rgb(129, 161, 193),
		String:     rgb(163, 190, 140),
		Comment:    rgb(97, 110, 136),
		Number:     rgb(180, 142, 173),
		Function:   rgb(136, 192, 208),
		Class:      rgb(143, 188, 187),
		Operator:   rgb(129, 161, 193),
	}},
	"solarized-dark": theme{name: "solarized-dark", description: "Solarized dark", palette: Palette{
		Background: rgb(0, 43, 54),
		Cursor:     rgb(238, 232, 213),
		Default:    rgb(131, 148, 150),
		Keyword:    rgb(133, 153, 0),
		String:     rgb(42, 161, 152),
		Comment:    rgb(88, 110, 117),
		Number:     rgb(211, 54, 130),
		Function:   rgb(38, 139, 210),
		Class:      rgb(181, 137, 0),
		Operator:   rgb(147, 161, 161),
	}},
	"github-dark": theme{name: "github-dark", description: "GitHub dark", palette: Palette{
		Background: rgb(13, 17, 23),
		Cursor:     rgb(201, 209, 217),
		Default:    rgb(201, 209, 217),
		Keyword:    rgb(255, 123, 114),
		String:     rgb(165, 214, 255),
		Comment:    rgb(139, 148, 158),
		Number:     rgb(121, 192, 255),
		Function:   rgb(210, 168, 255),
		Class:      rgb(255, 166, 87),
		Operator:   rgb(121, 192, 255),
	}},
	"monokai": theme{name: "monokai", description: "Monokai classic", palette: Palette{
		Background: rgb(39, 40, 34),
		Cursor:     rgb(248, 248, 242),
		Default:    rgb(248, 248, 242),
		Keyword:    rgb(249, 38, 114),
		String:     rgb(230, 219, 116),
		Comment:    rgb(117, 113, 94),
		Number:     rgb(174, 129, 255),
		Function:   rgb(166, 226, 46),
		Class:      rgb(102, 217, 239),
		Operator:   rgb(249, 38, 114),
	}},
}

// AvailableThemes returns the names of built-in themes.
func AvailableThemes() []string {
	names := make([]string, 0, len(builtinThemes))
	for name := range builtinThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemeByName returns a built-in theme by name.
func ThemeByName(name string) (Theme, bool) {
	if name == "" {
		return builtinThemes["dark"], true
	}
	normalized := strings.ToLower(strings.TrimSpace(name))
	theme, ok := builtinThemes[normalized]
	return theme, ok
}

// DefaultTheme returns the default built-in theme.
func DefaultTheme() Theme {
	return builtinThemes["dark"]
}
