package codereel

import (
	"fmt"
	"image"
	"io"
	"math/rand"
	"time"
)

// VideoConfig holds the frame geometry and pacing of a generated video.
type VideoConfig struct {
	Width    int
	Height   int
	FPS      int
	FontSize int
	Typing   TypingConfig
}

// NewVideoConfig validates and returns a VideoConfig.
func NewVideoConfig(width, height, fps, fontSize int, typing TypingConfig) (VideoConfig, error) {
	if width <= 0 || height <= 0 {
		return VideoConfig{}, fmt.Errorf("video size must be positive, got %dx%d", width, height)
	}
	if fps <= 0 {
		return VideoConfig{}, fmt.Errorf("fps must be positive, got %d", fps)
	}
	if fontSize <= 0 {
		return VideoConfig{}, fmt.Errorf("font size must be positive, got %d", fontSize)
	}
	return VideoConfig{Width: width, Height: height, FPS: fps, FontSize: fontSize, Typing: typing}, nil
}

// Option configures generation behavior.
type Option func(*generateConfig)

type generateConfig struct {
	seed     int64
	seeded   bool
	fontPath string
	progress func(BlockProgress)
}

// WithSeed fixes the random seed so timing variation is reproducible.
func WithSeed(seed int64) Option {
	return func(cfg *generateConfig) {
		cfg.seed = seed
		cfg.seeded = true
	}
}

// WithFontPath renders with a TTF font from disk instead of the embedded
// Go Mono face.
func WithFontPath(path string) Option {
	return func(cfg *generateConfig) {
		cfg.fontPath = path
	}
}

// WithProgress registers a callback invoked once per code block before it
// is animated.
func WithProgress(fn func(BlockProgress)) Option {
	return func(cfg *generateConfig) {
		cfg.progress = fn
	}
}

// BlockProgress describes the block about to be animated.
type BlockProgress struct {
	Index    int
	Total    int
	Language string
	Lines    int
	Chars    int
}

// GenerateRequest configures Generate.
type GenerateRequest struct {
	// Reader supplies the markdown document.
	Reader io.Reader
	// Sink receives the rendered frames.
	Sink FrameSink
	// Theme colors the frames; nil uses the default theme.
	Theme Theme
	// Config is the video geometry and typing configuration.
	Config VideoConfig
	// Options adjust seeding, fonts, and progress reporting.
	Options []Option
}

const interBlockClear = 500 * time.Millisecond

// Generate extracts fenced code blocks from a markdown document and writes
// a typing animation of each block to the frame sink. The sink is not
// closed; the caller owns it.
func Generate(req GenerateRequest) error {
	if req.Reader == nil {
		return fmt.Errorf("generate: Reader is nil")
	}
	if req.Sink == nil {
		return fmt.Errorf("generate: Sink is nil")
	}
	cfg := generateConfig{}
	for _, opt := range req.Options {
		if opt != nil {
			opt(&cfg)
		}
	}

	blocks, err := ExtractBlocks(req.Reader)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	if len(blocks) == 0 {
		return fmt.Errorf("generate: no code blocks found")
	}

	theme := req.Theme
	if theme == nil {
		theme = DefaultTheme()
	}
	renderer, err := NewRenderer(req.Config.Width, req.Config.Height, req.Config.FontSize, theme, cfg.fontPath)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	var rng *rand.Rand
	if cfg.seeded {
		rng = rand.New(rand.NewSource(cfg.seed))
	}
	typist := NewTypist(req.Config.Typing, rng)

	for i, block := range blocks {
		if cfg.progress != nil {
			cfg.progress(BlockProgress{
				Index:    i + 1,
				Total:    len(blocks),
				Language: block.Language,
				Lines:    block.Lines(),
				Chars:    len(block.Code),
			})
		}
		tokens := Highlight(block.Code, block.Language)
		if req.Config.Typing.Realism || req.Config.Typing.Randomness > 0 {
			err = writeTimedFrames(req.Sink, renderer, typist, block, tokens, req.Config.FPS)
		} else {
			err = writeUniformFrames(req.Sink, renderer, block, tokens, req.Config)
		}
		if err != nil {
			return fmt.Errorf("generate block %d: %w", i+1, err)
		}

		// Hold the finished block, then clear before the next one.
		final := renderer.Frame(tokens, len([]rune(block.Code)))
		if err := repeatFrame(req.Sink, final, frameCount(req.Config.Typing.BlockPause, req.Config.FPS)); err != nil {
			return fmt.Errorf("generate block %d: %w", i+1, err)
		}
		if i < len(blocks)-1 {
			if err := repeatFrame(req.Sink, renderer.Clear(), frameCount(interBlockClear, req.Config.FPS)); err != nil {
				return fmt.Errorf("generate block %d: %w", i+1, err)
			}
		}
	}
	return nil
}

// writeTimedFrames converts per-keystroke delays into frame counts, writing
// at least one frame per keystroke so fast bursts stay visible.
func writeTimedFrames(sink FrameSink, renderer *Renderer, typist *Typist, block CodeBlock, tokens []HighlightToken, fps int) error {
	frameTime := time.Second / time.Duration(fps)
	events := typist.Events(block.Code)
	pos := 0
	var carry time.Duration
	for {
		ev, ok := events.Next()
		if !ok {
			break
		}
		carry += ev.Delay
		frames := int(carry / frameTime)
		carry -= time.Duration(frames) * frameTime
		if frames < 1 {
			frames = 1
		}
		pos++
		frame := renderer.Frame(tokens, pos)
		if err := repeatFrame(sink, frame, frames); err != nil {
			return err
		}
	}
	return nil
}

// writeUniformFrames types at a constant rate, the classic mode used when
// realism and randomness are both off.
func writeUniformFrames(sink FrameSink, renderer *Renderer, block CodeBlock, tokens []HighlightToken, cfg VideoConfig) error {
	total := len([]rune(block.Code))
	charsPerFrame := cfg.Typing.Rate / float64(cfg.FPS)
	totalFrames := int(float64(total)/charsPerFrame) + 1
	for n := 0; n <= totalFrames; n++ {
		pos := int(float64(n) * charsPerFrame)
		if pos > total {
			pos = total
		}
		if err := sink.WriteFrame(renderer.Frame(tokens, pos)); err != nil {
			return err
		}
	}
	return nil
}

func repeatFrame(sink FrameSink, img *image.RGBA, n int) error {
	for i := 0; i < n; i++ {
		if err := sink.WriteFrame(img); err != nil {
			return err
		}
	}
	return nil
}

func frameCount(d time.Duration, fps int) int {
	return int(d.Seconds() * float64(fps))
}
