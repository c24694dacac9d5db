package diff

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Span is a syntax-colored run of text within one line.
type Span struct {
	Text  string
	Color string // hex color, empty for the terminal default
}

// SpanText joins the text of all spans in a line.
func SpanText(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Highlight tokenizes source lines for the given path and returns one span
// slice per input line. Unknown languages and tokenizer failures degrade to
// uncolored passthrough spans; rendering never fails.
func Highlight(path string, lines []string) [][]Span {
	lexer := lexerFor(path)
	if lexer == nil {
		return passthrough(lines)
	}

	iterator, err := lexer.Tokenise(nil, strings.Join(lines, "\n"))
	if err != nil {
		return passthrough(lines)
	}

	style := styles.Get("dracula")
	if style == nil {
		style = styles.Fallback
	}

	out := make([][]Span, 0, len(lines))
	var current []Span

	for _, tok := range iterator.Tokens() {
		parts := strings.Split(tok.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				out = append(out, current)
				current = nil
			}
			if part == "" {
				continue
			}
			current = append(current, Span{Text: part, Color: styleColor(style, tok.Type)})
		}
	}
	out = append(out, current)

	for len(out) < len(lines) {
		out = append(out, nil)
	}
	return out[:len(lines)]
}

func passthrough(lines []string) [][]Span {
	out := make([][]Span, len(lines))
	for i, line := range lines {
		out[i] = []Span{{Text: line}}
	}
	return out
}

func lexerFor(path string) chroma.Lexer {
	lexer := lexers.Match(path)
	if lexer == nil {
		if ext := filepath.Ext(path); ext != "" {
			lexer = lexers.Match("file" + ext)
		}
	}
	if lexer == nil {
		return nil
	}
	return chroma.Coalesce(lexer)
}

func styleColor(style *chroma.Style, tt chroma.TokenType) string {
	if entry := style.Get(tt); entry.Colour.IsSet() {
		return entry.Colour.String()
	}
	return ""
}
