package tui

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/charmbracelet/lipgloss"
)

// Highlighter colors SQL for terminal output using the chroma PostgreSQL
// lexer and the lipgloss SQL styles.
type Highlighter struct {
	lexer chroma.Lexer
}

// NewHighlighter creates a Highlighter, falling back to the generic SQL
// lexer and then to plain text when a lexer is unavailable.
func NewHighlighter() *Highlighter {
	l := lexers.Get("PostgreSQL")
	if l == nil {
		l = lexers.Get("SQL")
	}
	if l == nil {
		l = lexers.Fallback
	}
	return &Highlighter{lexer: chroma.Coalesce(l)}
}

// Highlight returns sql with every recognized token styled. Newlines are
// emitted unstyled so line structure is unchanged.
func (h *Highlighter) Highlight(sql string) string {
	iter, err := h.lexer.Tokenise(nil, sql)
	if err != nil {
		return sql
	}

	var b strings.Builder
	b.Grow(len(sql) * 2)

	for _, tok := range iter.Tokens() {
		if tok.Value == "" {
			continue
		}
		style, ok := styleFor(tok.Type)
		if !ok {
			b.WriteString(tok.Value)
			continue
		}
		lines := strings.Split(tok.Value, "\n")
		for i, line := range lines {
			if line != "" {
				b.WriteString(style.Render(line))
			}
			if i < len(lines)-1 {
				b.WriteByte('\n')
			}
		}
	}
	return b.String()
}

// styleFor maps a chroma token type to a style; false means unstyled.
func styleFor(tt chroma.TokenType) (lipgloss.Style, bool) {
	switch {
	case tt == chroma.KeywordType:
		return SQLTypeStyle, true
	case tt.InCategory(chroma.Keyword):
		return SQLKeywordStyle, true
	case tt.InSubCategory(chroma.LiteralString):
		return SQLStringStyle, true
	case tt.InSubCategory(chroma.LiteralNumber):
		return SQLNumberStyle, true
	case tt.InCategory(chroma.Comment):
		return SQLCommentStyle, true
	case tt.InCategory(chroma.Operator):
		return SQLOperatorStyle, true
	default:
		return lipgloss.Style{}, false
	}
}
