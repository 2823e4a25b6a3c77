package codereel

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// HighlightToken is a run of code text with a single color category.
type HighlightToken struct {
	Text     string
	Category Category
}

// Highlight tokenizes code for the given language and maps lexer token
// types onto theme color categories. Unknown languages and lexer failures
// degrade to a single default-colored token; the concatenated token text is
// always exactly the input code.
func Highlight(code, language string) []HighlightToken {
	if code == "" {
		return nil
	}
	if language == "" || language == "text" {
		return []HighlightToken{{Text: code, Category: CategoryDefault}}
	}
	lexer := lexers.Get(language)
	if lexer == nil {
		return []HighlightToken{{Text: code, Category: CategoryDefault}}
	}
	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return []HighlightToken{{Text: code, Category: CategoryDefault}}
	}

	var out []HighlightToken
	var total int
	for _, tok := range it.Tokens() {
		if tok.Value == "" {
			continue
		}
		cat := categorize(tok.Type)
		total += len(tok.Value)
		if n := len(out); n > 0 && out[n-1].Category == cat {
			out[n-1].Text += tok.Value
			continue
		}
		out = append(out, HighlightToken{Text: tok.Value, Category: cat})
	}
	// The renderer walks tokens and code in lockstep; if the lexer altered
	// the text, fall back to plain rendering.
	if total != len(code) || joinedTokens(out) != code {
		return []HighlightToken{{Text: code, Category: CategoryDefault}}
	}
	return out
}

func joinedTokens(tokens []HighlightToken) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.Text)
	}
	return b.String()
}

func categorize(t chroma.TokenType) Category {
	switch {
	case t.InCategory(chroma.Keyword):
		return CategoryKeyword
	case t.InSubCategory(chroma.LiteralString):
		return CategoryString
	case t.InSubCategory(chroma.LiteralNumber):
		return CategoryNumber
	case t.InCategory(chroma.Comment):
		return CategoryComment
	case t == chroma.NameFunction || t == chroma.NameFunctionMagic:
		return CategoryFunction
	case t == chroma.NameClass || t == chroma.NameNamespace:
		return CategoryClass
	case t.InCategory(chroma.Operator), t.InCategory(chroma.Punctuation):
		return CategoryOperator
	default:
		return CategoryDefault
	}
}
