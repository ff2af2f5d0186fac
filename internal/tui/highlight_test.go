package tui

import (
	"strings"
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lipgloss renders without ANSI codes when there is no TTY, so these tests
// check that content and line structure survive highlighting.

func TestHighlight_PreservesContent(t *testing.T) {
	h := NewHighlighter()
	require.NotNil(t, h.lexer)

	sql := "-- Tables\nCREATE TABLE public.orders (\n    id integer NOT NULL,\n    note text DEFAULT 'x'\n);\n"
	out := h.Highlight(sql)

	for _, want := range []string{"CREATE", "TABLE", "public.orders", "integer", "'x'", "-- Tables"} {
		assert.Contains(t, out, want)
	}
	assert.Equal(t, strings.Count(sql, "\n"), strings.Count(out, "\n"))
}

func TestHighlight_Empty(t *testing.T) {
	assert.Equal(t, "", NewHighlighter().Highlight(""))
}

func TestStyleFor(t *testing.T) {
	tests := []struct {
		tt     chroma.TokenType
		styled bool
	}{
		{chroma.Keyword, true},
		{chroma.KeywordType, true},
		{chroma.LiteralStringSingle, true},
		{chroma.LiteralNumberInteger, true},
		{chroma.CommentSingle, true},
		{chroma.Operator, true},
		{chroma.Name, false},
		{chroma.Text, false},
		{chroma.Punctuation, false},
	}
	for _, tt := range tests {
		_, ok := styleFor(tt.tt)
		assert.Equal(t, tt.styled, ok, "token %s", tt.tt)
	}
}
