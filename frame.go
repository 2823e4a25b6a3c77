package codereel

import (
	"fmt"
	"image"
	"image/draw"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	frameMargin   = 20
	cursorWidth   = 2
	tabCellWidth  = 4
	lineSpacingPx = 4
)

// Renderer draws progressive frames of highlighted code being typed.
type Renderer struct {
	width      int
	height     int
	face       font.Face
	palette    Palette
	ascent     int
	lineHeight int
	cellWidth  int
	background *image.Uniform
}

// NewRenderer prepares a monospace renderer for the given frame geometry and
// theme. fontPath selects a TTF on disk; an empty path uses the embedded
// Go Mono face.
func NewRenderer(width, height, fontSize int, theme Theme, fontPath string) (*Renderer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("frame size must be positive, got %dx%d", width, height)
	}
	if fontSize <= 0 {
		return nil, fmt.Errorf("font size must be positive, got %d", fontSize)
	}
	ttf := gomono.TTF
	if fontPath != "" {
		data, err := os.ReadFile(fontPath)
		if err != nil {
			return nil, fmt.Errorf("font: %w", err)
		}
		ttf = data
	}
	parsed, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    float64(fontSize),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font face: %w", err)
	}
	advance, ok := face.GlyphAdvance('M')
	if !ok {
		advance = fixed.I(fontSize / 2)
	}
	if theme == nil {
		theme = DefaultTheme()
	}
	palette := theme.Palette()
	return &Renderer{
		width:      width,
		height:     height,
		face:       face,
		palette:    palette,
		ascent:     face.Metrics().Ascent.Ceil(),
		lineHeight: fontSize + lineSpacingPx,
		cellWidth:  advance.Ceil(),
		background: image.NewUniform(palette.Background),
	}, nil
}

// Clear returns a background-only frame.
func (r *Renderer) Clear() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	draw.Draw(img, img.Bounds(), r.background, image.Point{}, draw.Src)
	return img
}

// Frame renders the first pos runes of the token stream, with a block
// cursor after the last typed rune while the block is unfinished.
func (r *Renderer) Frame(tokens []HighlightToken, pos int) *image.RGBA {
	img := r.Clear()
	x := frameMargin
	y := frameMargin + r.ascent

	total := 0
	for _, tok := range tokens {
		total += len([]rune(tok.Text))
	}

	typed := 0
	var seg []rune
	var segCat Category

	flush := func() {
		if len(seg) == 0 {
			return
		}
		d := font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(r.palette.Color(segCat)),
			Face: r.face,
			Dot:  fixed.P(x, y),
		}
		d.DrawString(string(seg))
		x = d.Dot.X.Ceil()
		seg = seg[:0]
	}

	for _, tok := range tokens {
		if typed >= pos {
			break
		}
		if len(seg) > 0 && segCat != tok.Category {
			flush()
		}
		segCat = tok.Category
		for _, ch := range tok.Text {
			if typed >= pos {
				break
			}
			typed++
			switch ch {
			case '\n':
				flush()
				x = frameMargin
				y += r.lineHeight
			case '\t':
				flush()
				x += tabCellWidth * r.cellWidth
			default:
				seg = append(seg, ch)
			}
		}
		flush()
	}

	if pos < total {
		r.drawCursor(img, x, y)
	}
	return img
}

func (r *Renderer) drawCursor(img *image.RGBA, x, y int) {
	rect := image.Rect(x, y-r.ascent, x+cursorWidth, y-r.ascent+r.lineHeight-lineSpacingPx)
	draw.Draw(img, rect.Intersect(img.Bounds()), image.NewUniform(r.palette.Cursor), image.Point{}, draw.Src)
}

// Size returns the frame geometry.
func (r *Renderer) Size() (width, height int) {
	return r.width, r.height
}
