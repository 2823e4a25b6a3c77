package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/codereel/codereel"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

const (
	defaultThemeName = "dark"
	defaultWidth     = 1024
	defaultHeight    = 768
	defaultFPS       = 30
	defaultFontSize  = 16
	defaultSpeed     = 15.0
	defaultPause     = 2 * time.Second
)

var version = "devel"

func main() {
	var (
		typingSpeed   float64
		fontSize      int
		width         int
		height        int
		fps           int
		themeName     string
		themesDir     string
		pauseDuration time.Duration
		nonRealistic  bool
		randomness    float64
		seed          int64
		fontPath      string
		listThemes    bool
		preview       bool
		previewWidth  int
	)

	flags := pflag.NewFlagSet("codereel", pflag.ExitOnError)
	flags.Float64Var(&typingSpeed, "typing-speed", defaultSpeed, "Characters typed per second")
	flags.IntVar(&fontSize, "font-size", defaultFontSize, "Font size in pixels")
	flags.IntVar(&width, "width", defaultWidth, "Video width in pixels")
	flags.IntVar(&height, "height", defaultHeight, "Video height in pixels")
	flags.IntVar(&fps, "fps", defaultFPS, "Video frame rate")
	flags.StringVarP(&themeName, "theme", "t", defaultThemeName, "Color theme")
	flags.StringVar(&themesDir, "themes-dir", "", "Directory of JSON theme files to load")
	flags.DurationVar(&pauseDuration, "pause-duration", defaultPause, "Pause on each finished code block")
	flags.BoolVar(&nonRealistic, "non-realistic", false, "Disable keyboard-difficulty and pattern timing")
	flags.Float64Var(&randomness, "randomness", 1.0, "Random timing variation (0=none, 1=normal, 2=high)")
	flags.Int64Var(&seed, "seed", 0, "Random seed for reproducible timing (0 seeds from the clock)")
	flags.StringVar(&fontPath, "font", "", "TTF font path (default: embedded Go Mono)")
	flags.BoolVar(&listThemes, "list-themes", false, "List available themes and exit")
	flags.BoolVar(&preview, "preview", false, "Replay the typing animation in the terminal instead of encoding")
	flags.IntVarP(&previewWidth, "preview-width", "w", 0, "Preview wrap width (0 uses terminal width if available)")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "codereel %s\n", version)
		fmt.Fprintf(os.Stderr, "Usage: codereel [flags] INPUT.md OUTPUT.mp4\n")
		fmt.Fprintln(os.Stderr, "\nWith --preview only INPUT.md is required; OUTPUT may be - for stdout.")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	store := codereel.NewThemeStore()
	if themesDir != "" {
		for _, err := range store.LoadDir(themesDir) {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	}

	if listThemes {
		printThemes(store)
		return
	}

	args := flags.Args()
	wantArgs := 2
	if preview {
		wantArgs = 1
	}
	if len(args) < wantArgs {
		if preview {
			fmt.Fprintln(os.Stderr, "missing INPUT argument")
		} else {
			fmt.Fprintln(os.Stderr, "missing INPUT and OUTPUT arguments")
		}
		flags.Usage()
		os.Exit(2)
	}

	theme, ok := store.Get(themeName)
	if !ok {
		fmt.Fprintf(os.Stderr, "warning: theme %q not found, using %q\n", themeName, defaultThemeName)
		theme, _ = store.Get(defaultThemeName)
	}

	typing, err := codereel.NewTypingConfig(typingSpeed, !nonRealistic, randomness, pauseDuration)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid typing configuration: %v\n", err)
		os.Exit(2)
	}

	input, err := os.Open(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "open input: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = input.Close() }()

	if preview {
		if err := runPreview(input, theme, typing, seed, previewWidth); err != nil {
			fmt.Fprintf(os.Stderr, "preview: %v\n", err)
			os.Exit(1)
		}
		return
	}

	output := args[1]
	if output == "-" && term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "refusing to write MP4 to terminal; redirect stdout or name a file")
		os.Exit(2)
	}

	cfg, err := codereel.NewVideoConfig(width, height, fps, fontSize, typing)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid video configuration: %v\n", err)
		os.Exit(2)
	}

	fmt.Fprintf(os.Stderr, "input: %s\n", args[0])
	fmt.Fprintf(os.Stderr, "output: %s\n", output)
	fmt.Fprintf(os.Stderr, "theme: %s\n", theme.Name())
	fmt.Fprintf(os.Stderr, "typing: %s\n", describeTyping(typing))

	sink, err := codereel.NewMP4Sink(output, width, height, fps)
	if err != nil {
		fmt.Fprintf(os.Stderr, "encoder: %v\n", err)
		os.Exit(1)
	}

	opts := []codereel.Option{
		codereel.WithProgress(func(p codereel.BlockProgress) {
			fmt.Fprintf(os.Stderr, "processing code block %d/%d (%s, %d lines, %d characters)\n",
				p.Index, p.Total, p.Language, p.Lines, p.Chars)
		}),
	}
	if seed != 0 {
		opts = append(opts, codereel.WithSeed(seed))
	}
	if fontPath != "" {
		opts = append(opts, codereel.WithFontPath(fontPath))
	}

	start := time.Now()
	genErr := codereel.Generate(codereel.GenerateRequest{
		Reader:  input,
		Sink:    sink,
		Theme:   theme,
		Config:  cfg,
		Options: opts,
	})
	closeErr := sink.Close()
	if genErr != nil {
		fmt.Fprintf(os.Stderr, "generate: %v\n", genErr)
		os.Exit(1)
	}
	if closeErr != nil {
		fmt.Fprintf(os.Stderr, "encode: %v\n", closeErr)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "wrote %s in %.2fs\n", output, time.Since(start).Seconds())
}

func runPreview(input io.Reader, theme codereel.Theme, typing codereel.TypingConfig, seed int64, width int) error {
	if width <= 0 {
		width = terminalWidth(80)
	}
	return codereel.Preview(codereel.PreviewRequest{
		Reader: input,
		Writer: os.Stdout,
		Width:  width,
		Theme:  theme,
		Typing: typing,
		Seed:   seed,
	})
}

func printThemes(store *codereel.ThemeStore) {
	for _, name := range store.Names() {
		t, _ := store.Get(name)
		fmt.Fprintf(os.Stdout, "%-18s %s\n", name, t.Description())
	}
}

func terminalWidth(fallback int) int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	return fallback
}

func describeTyping(cfg codereel.TypingConfig) string {
	switch {
	case cfg.Realism && cfg.Randomness > 0:
		return fmt.Sprintf("realistic + random (%.1fx variation)", cfg.Randomness)
	case cfg.Realism:
		return "realistic (no randomness)"
	case cfg.Randomness > 0:
		return fmt.Sprintf("uniform + random (%.1fx variation)", cfg.Randomness)
	default:
		return "uniform (classic mode)"
	}
}
