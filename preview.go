package codereel

import (
	"fmt"
	"image/color"
	"io"
	"time"

	"github.com/muesli/reflow/ansi"
)

const ansiReset = "\x1b[0m"

// PreviewRequest configures Preview.
type PreviewRequest struct {
	// Reader supplies the markdown document.
	Reader io.Reader
	// Writer receives the ANSI replay, normally a terminal.
	Writer io.Writer
	// Width is the wrap width in cells; <= 0 disables wrapping.
	Width int
	// Theme colors the replay; nil uses the default theme.
	Theme Theme
	// Typing is the timing configuration driving the replay.
	Typing TypingConfig
	// Seed fixes the RNG when non-zero.
	Seed int64
	// Sleep is called with each keystroke delay. Nil uses time.Sleep;
	// tests inject a recorder.
	Sleep func(time.Duration)
}

// Preview replays the typing animation to a terminal instead of encoding
// video. This is intended for tuning timing and theme flags before the
// slower ffmpeg run.
func Preview(req PreviewRequest) error {
	if req.Reader == nil {
		return fmt.Errorf("preview: Reader is nil")
	}
	if req.Writer == nil {
		return fmt.Errorf("preview: Writer is nil")
	}
	sleep := req.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	theme := req.Theme
	if theme == nil {
		theme = DefaultTheme()
	}
	palette := theme.Palette()

	blocks, err := ExtractBlocks(req.Reader)
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	if len(blocks) == 0 {
		return fmt.Errorf("preview: no code blocks found")
	}

	typist := NewTypist(req.Typing, seededRNG(req.Seed))
	for i, block := range blocks {
		if i > 0 {
			if _, err := io.WriteString(req.Writer, "\n"); err != nil {
				return fmt.Errorf("preview: write: %w", err)
			}
		}
		header := fmt.Sprintf("%s── %s ──%s\n", ansiColor(palette.Comment), block.Language, ansiReset)
		if _, err := io.WriteString(req.Writer, header); err != nil {
			return fmt.Errorf("preview: write: %w", err)
		}
		if err := previewBlock(req.Writer, block, palette, typist, req.Width, sleep); err != nil {
			return fmt.Errorf("preview: %w", err)
		}
		sleep(req.Typing.BlockPause)
	}
	return nil
}

func previewBlock(w io.Writer, block CodeBlock, palette Palette, typist *Typist, width int, sleep func(time.Duration)) error {
	tokens := Highlight(block.Code, block.Language)
	colors := runeCategories(tokens)

	events := typist.Events(block.Code)
	lineWidth := 0
	current := Category(255) // force an initial color change
	idx := 0
	for {
		ev, ok := events.Next()
		if !ok {
			break
		}
		sleep(ev.Delay)
		cat := CategoryDefault
		if idx < len(colors) {
			cat = colors[idx]
		}
		idx++
		if ev.Rune == '\n' {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return fmt.Errorf("write: %w", err)
			}
			lineWidth = 0
			continue
		}
		text := string(ev.Rune)
		// Hard-wrap at the terminal edge, counting printable cells only.
		if width > 0 && lineWidth+ansi.PrintableRuneWidth(text) > width {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return fmt.Errorf("write: %w", err)
			}
			lineWidth = 0
		}
		if cat != current {
			if _, err := io.WriteString(w, ansiColor(palette.Color(cat))); err != nil {
				return fmt.Errorf("write: %w", err)
			}
			current = cat
		}
		if _, err := io.WriteString(w, text); err != nil {
			return fmt.Errorf("write: %w", err)
		}
		lineWidth += ansi.PrintableRuneWidth(text)
	}
	if _, err := io.WriteString(w, ansiReset+"\n"); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// runeCategories flattens a token stream into one category per rune.
func runeCategories(tokens []HighlightToken) []Category {
	var out []Category
	for _, tok := range tokens {
		for range tok.Text {
			out = append(out, tok.Category)
		}
	}
	return out
}

func ansiColor(c color.RGBA) string {
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", c.R, c.G, c.B)
}
