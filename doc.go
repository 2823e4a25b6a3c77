// Package codereel turns fenced code blocks in Markdown documents into MP4
// videos that simulate a human typing the code with syntax highlighting.
//
// The pipeline extracts fenced blocks from an io.Reader, highlights them,
// and renders progressive bitmap frames that are piped into ffmpeg. Pacing
// comes from a keystroke timing model with three independent axes: a base
// characters-per-second rate, a realism toggle applying keyboard-ergonomics
// and muscle-memory pattern adjustments, and a randomness factor widening
// the delay distribution. With randomness zero (or a fixed seed) the output
// is fully deterministic.
//
// Example:
//
//	sink, err := codereel.NewMP4Sink("out.mp4", 1024, 768, 30)
//	if err != nil {
//		log.Fatal(err)
//	}
//	typing, _ := codereel.NewTypingConfig(15, true, 1.0, 2*time.Second)
//	cfg, _ := codereel.NewVideoConfig(1024, 768, 30, 16, typing)
//	err = codereel.Generate(codereel.GenerateRequest{
//		Reader: file,
//		Sink:   sink,
//		Theme:  codereel.DefaultTheme(),
//		Config: cfg,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := sink.Close(); err != nil {
//		log.Fatal(err)
//	}
package codereel
