// Package highlight colours source text for the diff view.
package highlight

import (
	"strings"

	"github.com/abdullathedruid/gitmux/internal/terminal"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultTheme is the chroma style used when none is configured.
const DefaultTheme = "base16-snazzy"

// Span is a run of text with one style.
type Span struct {
	Text  string
	Style terminal.Style
}

// Highlighter maps text to styled spans. It caches lexers per file
// extension and is not safe for concurrent use.
type Highlighter struct {
	style  *chroma.Style
	lexers map[string]chroma.Lexer
}

// New returns a highlighter using the named chroma style.
func New(theme string) *Highlighter {
	style := styles.Get(theme)
	if style == nil {
		style = styles.Fallback
	}
	return &Highlighter{style: style, lexers: make(map[string]chroma.Lexer)}
}

func (h *Highlighter) lexer(hint string) chroma.Lexer {
	key := strings.ToLower(hint)
	if i := strings.LastIndexByte(key, '/'); i >= 0 {
		key = key[i+1:]
	}
	if l, ok := h.lexers[key]; ok {
		return l
	}
	l := lexers.Match(key)
	if l == nil {
		l = lexers.Get(key)
	}
	if l == nil {
		l = lexers.Fallback
	}
	l = chroma.Coalesce(l)
	h.lexers[key] = l
	return l
}

// Lines highlights lines as one text so multi-line tokens keep their
// context, and returns the spans of each input line. hint is a file name
// or language name. A line with no spans is empty.
func (h *Highlighter) Lines(hint string, lines []string) [][]Span {
	out := make([][]Span, len(lines))
	if len(lines) == 0 {
		return out
	}

	it, err := h.lexer(hint).Tokenise(nil, strings.Join(lines, "\n")+"\n")
	if err != nil {
		for i, l := range lines {
			if l != "" {
				out[i] = []Span{{Text: l}}
			}
		}
		return out
	}

	row := 0
	for tok := it(); tok != chroma.EOF; tok = it() {
		st := h.styleOf(tok.Type)
		parts := strings.Split(tok.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				row++
			}
			if row >= len(out) {
				return out
			}
			if part == "" {
				continue
			}
			spans := out[row]
			if n := len(spans); n > 0 && spans[n-1].Style == st {
				spans[n-1].Text += part
			} else {
				spans = append(spans, Span{Text: part, Style: st})
			}
			out[row] = spans
		}
	}
	return out
}

func (h *Highlighter) styleOf(tt chroma.TokenType) terminal.Style {
	entry := h.style.Get(tt)
	var st terminal.Style
	if entry.Colour.IsSet() {
		st.FG = terminal.RGB(entry.Colour.Red(), entry.Colour.Green(), entry.Colour.Blue())
	}
	if entry.Bold == chroma.Yes {
		st.Attrs |= terminal.AttrBold
	}
	if entry.Italic == chroma.Yes {
		st.Attrs |= terminal.AttrItalic
	}
	if entry.Underline == chroma.Yes {
		st.Attrs |= terminal.AttrUnderline
	}
	return st
}
