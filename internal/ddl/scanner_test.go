package ddl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBoundaryMode(t *testing.T) {
	tests := []struct {
		input   string
		want    BoundaryMode
		wantErr bool
	}{
		{"", BoundaryQuoteAware, false},
		{"quote-aware", BoundaryQuoteAware, false},
		{"  Quote-Aware ", BoundaryQuoteAware, false},
		{"first-semicolon", BoundaryFirstSemicolon, false},
		{"legacy", BoundaryFirstSemicolon, false},
		{"strict", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBoundaryMode(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBoundaryMode_String(t *testing.T) {
	assert.Equal(t, "quote-aware", BoundaryQuoteAware.String())
	assert.Equal(t, "first-semicolon", BoundaryFirstSemicolon.String())
	assert.Equal(t, "BoundaryMode(7)", BoundaryMode(7).String())
}

func TestScanOpaque(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []span
	}{
		{"plain", "SELECT 1;", nil},
		{"line comment", "a -- c\nb", []span{{2, 6}}},
		{"block comment", "a /* c */ b", []span{{2, 9}}},
		{"nested block comment", "/* a /* b */ c */x", []span{{0, 17}}},
		{"single quote with escape", "'it''s' x", []span{{0, 7}}},
		{"quoted identifier", `"a""b" x`, []span{{0, 6}}},
		{"dollar quote", "$$ ; $$ x", []span{{0, 7}}},
		{"tagged dollar quote", "$fn$ $$ $fn$;", []span{{0, 12}}},
		{"positional parameter", "$1 + $2", nil},
		{"unterminated string", "x 'abc", []span{{2, 6}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scanOpaque(tt.text))
		})
	}
}

func TestDocument_LineOf(t *testing.T) {
	doc := newDocument("a\nbb\n\nc", BoundaryQuoteAware)
	assert.Equal(t, 1, doc.lineOf(0))
	assert.Equal(t, 2, doc.lineOf(2))
	assert.Equal(t, 2, doc.lineOf(4))
	assert.Equal(t, 3, doc.lineOf(5))
	assert.Equal(t, 4, doc.lineOf(6))
}

func TestDocument_CloseParen(t *testing.T) {
	t.Run("quote-aware matches depth", func(t *testing.T) {
		doc := newDocument("(a (b) ')' c) d", BoundaryQuoteAware)
		assert.Equal(t, 12, doc.closeParen(0))
	})

	t.Run("quote-aware stops at top-level semicolon", func(t *testing.T) {
		doc := newDocument("(a; b)", BoundaryQuoteAware)
		assert.Equal(t, -1, doc.closeParen(0))
	})

	t.Run("first-semicolon takes the first paren", func(t *testing.T) {
		doc := newDocument("(a (b) c) d", BoundaryFirstSemicolon)
		assert.Equal(t, 5, doc.closeParen(0))
	})
}

func TestDocument_Terminator(t *testing.T) {
	text := "x DEFAULT ';' CHECK (a;b);"

	doc := newDocument(text, BoundaryQuoteAware)
	assert.Equal(t, len(text)-1, doc.terminator(0))

	legacy := newDocument(text, BoundaryFirstSemicolon)
	assert.Equal(t, 11, legacy.terminator(0))
}

func TestSplitTopLevel(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"'a', 'b', 'c'", []string{"'a'", "'b'", "'c'"}},
		{"\n    'a',\n    'b'\n", []string{"'a'", "'b'"}},
		{"'a,b', 'c'", []string{"'a,b'", "'c'"}},
		{"'it''s', 'x'", []string{"'it''s'", "'x'"}},
		{"f(a, b), c", []string{"f(a, b)", "c"}},
		{"a,, b,", []string{"a", "b"}},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, splitTopLevel(tt.input))
		})
	}
}
