package codereel

import (
	"fmt"
	"image"
	"io"
	"os"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// FrameSink consumes rendered frames. The MP4 encoder implements it; tests
// use in-memory sinks.
type FrameSink interface {
	// WriteFrame appends one frame. The image must match the sink geometry.
	WriteFrame(img *image.RGBA) error
	// Close flushes and finalizes the sink.
	Close() error
}

type mp4Sink struct {
	pw     *io.PipeWriter
	done   chan error
	width  int
	height int
	closed bool
}

// NewMP4Sink starts an ffmpeg process encoding raw RGBA frames into an
// H.264 MP4 at the given frame rate. path "-" streams the container to
// stdout. Close reports any encoder failure.
func NewMP4Sink(path string, width, height, fps int) (FrameSink, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("frame size must be positive, got %dx%d", width, height)
	}
	if fps <= 0 {
		return nil, fmt.Errorf("fps must be positive, got %d", fps)
	}
	pr, pw := io.Pipe()
	s := &mp4Sink{pw: pw, done: make(chan error, 1), width: width, height: height}

	input := ffmpeg.Input("pipe:", ffmpeg.KwArgs{
		"format":    "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", width, height),
		"framerate": fps,
	})
	outArgs := ffmpeg.KwArgs{
		"c:v":      "libx264",
		"pix_fmt":  "yuv420p",
		"r":        fps,
		"movflags": "+faststart",
	}
	var stream *ffmpeg.Stream
	if path == "-" {
		// faststart needs a seekable output; fragment the stream instead.
		outArgs["f"] = "mp4"
		outArgs["movflags"] = "frag_keyframe+empty_moov"
		stream = input.Output("pipe:", outArgs).WithOutput(os.Stdout)
	} else {
		stream = input.Output(path, outArgs).OverWriteOutput()
	}

	go func() {
		err := stream.WithInput(pr).Silent(true).Run()
		if err != nil {
			err = fmt.Errorf("ffmpeg: %w", err)
		}
		// Unblock any writer still feeding frames.
		_ = pr.CloseWithError(err)
		s.done <- err
	}()
	return s, nil
}

func (s *mp4Sink) WriteFrame(img *image.RGBA) error {
	b := img.Bounds()
	if b.Dx() != s.width || b.Dy() != s.height {
		return fmt.Errorf("frame size %dx%d does not match encoder %dx%d", b.Dx(), b.Dy(), s.width, s.height)
	}
	if img.Stride != 4*s.width {
		return fmt.Errorf("unexpected frame stride %d", img.Stride)
	}
	if _, err := s.pw.Write(img.Pix); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

func (s *mp4Sink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	_ = s.pw.Close()
	return <-s.done
}
