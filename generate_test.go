package codereel

import (
	"image"
	"strings"
	"testing"
	"time"
)

type memSink struct {
	frames int
	failAt int
}

func (m *memSink) WriteFrame(img *image.RGBA) error {
	m.frames++
	if m.failAt > 0 && m.frames >= m.failAt {
		return errSinkFull
	}
	return nil
}

func (m *memSink) Close() error { return nil }

var errSinkFull = &sinkError{}

type sinkError struct{}

func (*sinkError) Error() string { return "sink full" }

func testVideoConfig(t *testing.T, realism bool, randomness float64, pause time.Duration) VideoConfig {
	t.Helper()
	typing, err := NewTypingConfig(100, realism, randomness, pause)
	if err != nil {
		t.Fatalf("typing config: %v", err)
	}
	cfg, err := NewVideoConfig(160, 120, 10, 12, typing)
	if err != nil {
		t.Fatalf("video config: %v", err)
	}
	return cfg
}

const generateDoc = "# Doc\n\n```go\nx := 1\n```\n\n```py\ny = 2\n```\n"

func TestGenerateWritesFrames(t *testing.T) {
	sink := &memSink{}
	var progress []BlockProgress
	err := Generate(GenerateRequest{
		Reader: strings.NewReader(generateDoc),
		Sink:   sink,
		Config: testVideoConfig(t, true, 1.0, time.Second),
		Options: []Option{
			WithSeed(42),
			WithProgress(func(p BlockProgress) { progress = append(progress, p) }),
		},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	// 6+5 keystrokes at one frame minimum each, plus 10 hold frames per
	// block (1s at 10 fps) and a 5-frame clear between the blocks.
	if sink.frames < 11+20+5 {
		t.Fatalf("too few frames: %d", sink.frames)
	}
	if len(progress) != 2 {
		t.Fatalf("expected 2 progress callbacks, got %d", len(progress))
	}
	if progress[0].Language != "go" || progress[1].Language != "py" {
		t.Fatalf("unexpected progress languages: %+v", progress)
	}
	if progress[0].Index != 1 || progress[0].Total != 2 {
		t.Fatalf("unexpected progress numbering: %+v", progress[0])
	}
}

func TestGenerateUniformFrameCount(t *testing.T) {
	sink := &memSink{}
	// One block, realism and randomness off: 6 runes at 100 cps and
	// 10 fps is 10 chars per frame, so int(6/10)+1 = 1 typing frame plus
	// the n=0 frame, then zero hold frames (no pause) and no clear.
	err := Generate(GenerateRequest{
		Reader: strings.NewReader("```go\nx := 1\n```\n"),
		Sink:   sink,
		Config: testVideoConfig(t, false, 0, 0),
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if sink.frames != 2 {
		t.Fatalf("uniform frame count = %d, want 2", sink.frames)
	}
}

func TestGenerateDeterministicWithSeed(t *testing.T) {
	run := func() int {
		sink := &memSink{}
		err := Generate(GenerateRequest{
			Reader:  strings.NewReader(generateDoc),
			Sink:    sink,
			Config:  testVideoConfig(t, true, 2.0, 0),
			Options: []Option{WithSeed(7)},
		})
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		return sink.frames
	}
	if a, b := run(), run(); a != b {
		t.Fatalf("seeded runs differ: %d vs %d frames", a, b)
	}
}

func TestGenerateErrors(t *testing.T) {
	cfg := testVideoConfig(t, true, 0, 0)
	cases := []struct {
		name string
		req  GenerateRequest
	}{
		{"nil reader", GenerateRequest{Sink: &memSink{}, Config: cfg}},
		{"nil sink", GenerateRequest{Reader: strings.NewReader("x"), Config: cfg}},
		{"no blocks", GenerateRequest{Reader: strings.NewReader("no fences here"), Sink: &memSink{}, Config: cfg}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := Generate(tc.req); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestGeneratePropagatesSinkError(t *testing.T) {
	sink := &memSink{failAt: 3}
	err := Generate(GenerateRequest{
		Reader: strings.NewReader(generateDoc),
		Sink:   sink,
		Config: testVideoConfig(t, true, 0, time.Second),
	})
	if err == nil || !strings.Contains(err.Error(), "sink full") {
		t.Fatalf("expected sink error, got %v", err)
	}
}
