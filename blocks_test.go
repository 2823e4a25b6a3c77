package codereel

import (
	"errors"
	"strings"
	"testing"
)

func TestExtractBlocks(t *testing.T) {
	input := `# Demo

Some prose.

` + "```go" + `
package main

func main() {}
` + "```" + `

More prose.

` + "~~~Python\nprint('hi')\n~~~" + `

` + "```\nplain\n```" + `
`
	blocks, err := ExtractBlocks(strings.NewReader(input))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(blocks))
	}
	if blocks[0].Language != "go" {
		t.Fatalf("block 0 language = %q, want go", blocks[0].Language)
	}
	if !strings.Contains(blocks[0].Code, "func main() {}") {
		t.Fatalf("block 0 missing code: %q", blocks[0].Code)
	}
	if blocks[1].Language != "python" {
		t.Fatalf("block 1 language = %q, want python (lowercased)", blocks[1].Language)
	}
	if blocks[2].Language != "text" {
		t.Fatalf("block 2 language = %q, want text", blocks[2].Language)
	}
}

func TestExtractBlocksSkipsEmpty(t *testing.T) {
	input := "```go\n\n```\n\n```py\nx = 1\n```\n"
	blocks, err := ExtractBlocks(strings.NewReader(input))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(blocks) != 1 || blocks[0].Language != "py" {
		t.Fatalf("expected only the py block, got %+v", blocks)
	}
}

func TestExtractBlocksSkipsFrontMatter(t *testing.T) {
	input := "---\ntitle: demo\nfence: \"```\"\n---\n\n```sh\nls\n```\n"
	blocks, err := ExtractBlocks(strings.NewReader(input))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(blocks) != 1 || blocks[0].Code != "ls" {
		t.Fatalf("front matter not skipped, got %+v", blocks)
	}
}

func TestExtractBlocksCRLF(t *testing.T) {
	input := "```go\r\nx := 1\r\n```\r\n"
	blocks, err := ExtractBlocks(strings.NewReader(input))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(blocks) != 1 || blocks[0].Code != "x := 1" {
		t.Fatalf("CRLF input mishandled, got %+v", blocks)
	}
}

func TestExtractBlocksUnterminatedFence(t *testing.T) {
	input := "```go\nx := 1\ny := 2\n"
	blocks, err := ExtractBlocks(strings.NewReader(input))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(blocks) != 1 || !strings.Contains(blocks[0].Code, "y := 2") {
		t.Fatalf("unterminated fence should run to EOF, got %+v", blocks)
	}
}

func TestExtractBlocksLongerCloseFence(t *testing.T) {
	input := "````md\n```\ninner\n```\n````\n"
	blocks, err := ExtractBlocks(strings.NewReader(input))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if !strings.Contains(blocks[0].Code, "inner") {
		t.Fatalf("nested fence content lost: %q", blocks[0].Code)
	}
}

func TestExtractBlocksRejectsBinary(t *testing.T) {
	if _, err := ExtractBlocks(strings.NewReader("abc\x00def")); !errors.Is(err, ErrBinaryInput) {
		t.Fatalf("expected ErrBinaryInput, got %v", err)
	}
	if _, err := ExtractBlocks(strings.NewReader("\xff\xfe\xfd")); !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("expected ErrInvalidUTF8, got %v", err)
	}
}

func TestCodeBlockLines(t *testing.T) {
	b := CodeBlock{Code: "a\nb\nc"}
	if got := b.Lines(); got != 3 {
		t.Fatalf("lines = %d, want 3", got)
	}
	if got := (CodeBlock{}).Lines(); got != 0 {
		t.Fatalf("empty block lines = %d, want 0", got)
	}
}
