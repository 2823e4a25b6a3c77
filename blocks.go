package codereel

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// CodeBlock is one fenced code block extracted from a markdown document.
type CodeBlock struct {
	// Language is the lowercased first word of the fence info string, or
	// "text" when the fence carried none.
	Language string
	// Code is the block body with surrounding whitespace trimmed.
	Code string
}

// Lines returns the number of lines in the block body.
func (b CodeBlock) Lines() int {
	if b.Code == "" {
		return 0
	}
	return strings.Count(b.Code, "\n") + 1
}

// ExtractBlocks reads a markdown document and returns its fenced code blocks
// in document order. Front matter is skipped, empty blocks are dropped, and
// the input is validated as UTF-8 text first.
func ExtractBlocks(r io.Reader) ([]CodeBlock, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if err := ValidateInput(src); err != nil {
		return nil, err
	}
	lines := splitLines(src)
	lines = skipFrontMatter(lines)

	var blocks []CodeBlock
	var body []string
	var fenceChar byte
	var fenceLen int
	var language string
	inFence := false
	for _, line := range lines {
		if !inFence {
			ch, n, info, ok := parseFenceOpen(line)
			if !ok {
				continue
			}
			inFence = true
			fenceChar, fenceLen = ch, n
			language = fenceLanguage(info)
			body = body[:0]
			continue
		}
		if isFenceClose(line, fenceChar, fenceLen) {
			inFence = false
			code := strings.TrimSpace(strings.Join(body, "\n"))
			if code != "" {
				blocks = append(blocks, CodeBlock{Language: language, Code: code})
			}
			continue
		}
		body = append(body, line)
	}
	// An unterminated fence runs to end of document, per CommonMark.
	if inFence {
		code := strings.TrimSpace(strings.Join(body, "\n"))
		if code != "" {
			blocks = append(blocks, CodeBlock{Language: language, Code: code})
		}
	}
	return blocks, nil
}

func splitLines(src []byte) []string {
	raw := bytes.Split(src, []byte("\n"))
	lines := make([]string, len(raw))
	for i, l := range raw {
		l = bytes.TrimSuffix(l, []byte("\r"))
		lines[i] = string(l)
	}
	return lines
}

// skipFrontMatter drops a leading ---/+++ metadata block so fences inside
// front matter are never mistaken for code.
func skipFrontMatter(lines []string) []string {
	if len(lines) == 0 {
		return lines
	}
	delim := strings.TrimSpace(lines[0])
	if delim != "---" && delim != "+++" {
		return lines
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == delim {
			return lines[i+1:]
		}
	}
	return lines
}

// parseFenceOpen matches a ``` or ~~~ fence opener with up to three spaces
// of indentation and returns the fence rune, its length, and the info string.
func parseFenceOpen(line string) (byte, int, string, bool) {
	trimmed, indent := trimIndent(line)
	if indent > 3 || trimmed == "" {
		return 0, 0, "", false
	}
	ch := trimmed[0]
	if ch != '`' && ch != '~' {
		return 0, 0, "", false
	}
	n := 0
	for n < len(trimmed) && trimmed[n] == ch {
		n++
	}
	if n < 3 {
		return 0, 0, "", false
	}
	info := strings.TrimSpace(trimmed[n:])
	// Backtick fences cannot carry backticks in the info string.
	if ch == '`' && strings.ContainsRune(info, '`') {
		return 0, 0, "", false
	}
	return ch, n, info, true
}

func isFenceClose(line string, fenceChar byte, fenceLen int) bool {
	trimmed, indent := trimIndent(line)
	if indent > 3 {
		return false
	}
	n := 0
	for n < len(trimmed) && trimmed[n] == fenceChar {
		n++
	}
	return n >= fenceLen && strings.TrimSpace(trimmed[n:]) == ""
}

func trimIndent(line string) (string, int) {
	indent := 0
	for indent < len(line) && line[indent] == ' ' {
		indent++
	}
	return line[indent:], indent
}

func fenceLanguage(info string) string {
	if info == "" {
		return "text"
	}
	if i := strings.IndexAny(info, " \t"); i >= 0 {
		info = info[:i]
	}
	return strings.ToLower(info)
}
