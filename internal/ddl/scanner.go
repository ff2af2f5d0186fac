package ddl

import (
	"fmt"
	"sort"
	"strings"
)

// BoundaryMode selects how statement and parenthesis boundaries are found.
type BoundaryMode int

const (
	// BoundaryQuoteAware ends statements at the first ';' outside quoted
	// text, comments and parentheses, and matches parentheses by depth.
	BoundaryQuoteAware BoundaryMode = iota

	// BoundaryFirstSemicolon ends statements at the first ';' after the
	// statement header and closes parenthesized lists at the first ')'.
	// Dollar-quoted function bodies truncate extraction in this mode.
	BoundaryFirstSemicolon
)

// String returns the flag spelling of the mode.
func (m BoundaryMode) String() string {
	switch m {
	case BoundaryQuoteAware:
		return "quote-aware"
	case BoundaryFirstSemicolon:
		return "first-semicolon"
	default:
		return fmt.Sprintf("BoundaryMode(%d)", int(m))
	}
}

// ParseBoundaryMode parses the flag spelling of a BoundaryMode.
// The empty string selects the default quote-aware mode.
func ParseBoundaryMode(s string) (BoundaryMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "quote-aware":
		return BoundaryQuoteAware, nil
	case "first-semicolon", "legacy":
		return BoundaryFirstSemicolon, nil
	default:
		return 0, fmt.Errorf("unknown boundary mode %q (expected quote-aware or first-semicolon)", s)
	}
}

// span is a half-open byte range [start, end).
type span struct {
	start int
	end   int
}

// document is the immutable input buffer every category parser reads.
// In quote-aware mode it also records the opaque spans (string literals,
// quoted identifiers, dollar-quoted bodies and comments) once, up front.
type document struct {
	text       string
	mode       BoundaryMode
	opaque     []span
	lineStarts []int
}

func newDocument(text string, mode BoundaryMode) *document {
	d := &document{text: text, mode: mode, lineStarts: []int{0}}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			d.lineStarts = append(d.lineStarts, i+1)
		}
	}
	if mode == BoundaryQuoteAware {
		d.opaque = scanOpaque(text)
	}
	return d
}

// lineOf returns the 1-based line number of a byte offset.
func (d *document) lineOf(pos int) int {
	return sort.Search(len(d.lineStarts), func(i int) bool { return d.lineStarts[i] > pos })
}

// spanAt returns the index of the opaque span containing pos, or -1.
func (d *document) spanAt(pos int) int {
	i := sort.Search(len(d.opaque), func(i int) bool { return d.opaque[i].end > pos })
	if i < len(d.opaque) && d.opaque[i].start <= pos {
		return i
	}
	return -1
}

// inOpaque reports whether pos lies inside quoted text or a comment.
// Always false in first-semicolon mode.
func (d *document) inOpaque(pos int) bool {
	return d.spanAt(pos) >= 0
}

// walk calls fn for every byte offset from 'from' that is not inside an
// opaque span, stopping when fn returns false.
func (d *document) walk(from int, fn func(i int, c byte) bool) {
	next := sort.Search(len(d.opaque), func(i int) bool { return d.opaque[i].end > from })
	for i := from; i < len(d.text); i++ {
		if next < len(d.opaque) && i >= d.opaque[next].start {
			i = d.opaque[next].end - 1
			next++
			continue
		}
		if !fn(i, d.text[i]) {
			return
		}
	}
}

// closeParen returns the offset of the ')' closing the '(' at open, or -1.
// In quote-aware mode a top-level ';' before the match means the list is
// unterminated.
func (d *document) closeParen(open int) int {
	if d.mode == BoundaryFirstSemicolon {
		return indexFrom(d.text, open+1, ')')
	}
	depth := 0
	result := -1
	d.walk(open, func(i int, c byte) bool {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				result = i
				return false
			}
		case ';':
			return false
		}
		return true
	})
	return result
}

// terminator returns the offset of the ';' ending a statement whose
// remaining text starts at from, or -1.
func (d *document) terminator(from int) int {
	if d.mode == BoundaryFirstSemicolon {
		return indexFrom(d.text, from, ';')
	}
	depth := 0
	result := -1
	d.walk(from, func(i int, c byte) bool {
		switch c {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ';':
			if depth == 0 {
				result = i
				return false
			}
		}
		return true
	})
	return result
}

func indexFrom(s string, from int, c byte) int {
	if from > len(s) {
		return -1
	}
	i := strings.IndexByte(s[from:], c)
	if i < 0 {
		return -1
	}
	return from + i
}

type scanState int

const (
	scanNormal scanState = iota
	scanLineComment
	scanBlockComment
	scanSingleQuote
	scanDoubleQuote
	scanDollarQuote
)

// scanOpaque finds every region in which ';' and parentheses carry no
// structural meaning:
// - Single-line comments: -- to end of line
// - Block comments: /* */ with PostgreSQL nesting support
// - Single-quoted strings: '...' with '' escape
// - Quoted identifiers: "..." with "" escape
// - Dollar-quoted strings: $$...$$ and $tag$...$tag$
//
// An unterminated region extends to the end of the text.
func scanOpaque(text string) []span {
	var spans []span
	state := scanNormal
	start := 0
	blockDepth := 0
	dollarTag := ""

	i := 0
	for i < len(text) {
		c := text[i]
		var next byte
		if i+1 < len(text) {
			next = text[i+1]
		}

		switch state {
		case scanNormal:
			switch {
			case c == '-' && next == '-':
				state, start = scanLineComment, i
				i += 2
			case c == '/' && next == '*':
				state, start = scanBlockComment, i
				blockDepth = 1
				i += 2
			case c == '\'':
				state, start = scanSingleQuote, i
				i++
			case c == '"':
				state, start = scanDoubleQuote, i
				i++
			case c == '$':
				if tag := dollarTagAt(text, i); tag != "" {
					state, start = scanDollarQuote, i
					dollarTag = tag
					i += len(tag)
				} else {
					i++
				}
			default:
				i++
			}

		case scanLineComment:
			if c == '\n' {
				spans = append(spans, span{start, i})
				state = scanNormal
			}
			i++

		case scanBlockComment:
			switch {
			case c == '/' && next == '*':
				blockDepth++
				i += 2
			case c == '*' && next == '/':
				blockDepth--
				i += 2
				if blockDepth == 0 {
					spans = append(spans, span{start, i})
					state = scanNormal
				}
			default:
				i++
			}

		case scanSingleQuote, scanDoubleQuote:
			quote := byte('\'')
			if state == scanDoubleQuote {
				quote = '"'
			}
			if c == quote {
				if next == quote {
					i += 2
					continue
				}
				i++
				spans = append(spans, span{start, i})
				state = scanNormal
				continue
			}
			i++

		case scanDollarQuote:
			if strings.HasPrefix(text[i:], dollarTag) {
				i += len(dollarTag)
				spans = append(spans, span{start, i})
				state = scanNormal
				dollarTag = ""
			} else {
				i++
			}
		}
	}

	if state != scanNormal {
		spans = append(spans, span{start, len(text)})
	}
	return spans
}

// dollarTagAt returns the dollar-quote tag ("$$" or "$tag$") starting at i,
// or "" when the '$' at i does not open one. Positional parameters such as
// $1 never open a tag.
func dollarTagAt(text string, i int) string {
	for j := i + 1; j < len(text); j++ {
		c := text[j]
		if c == '$' {
			return text[i : j+1]
		}
		isLetter := c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
		isDigit := c >= '0' && c <= '9'
		if j == i+1 && !isLetter {
			return ""
		}
		if !isLetter && !isDigit {
			return ""
		}
	}
	return ""
}

// splitTopLevel splits a comma-separated list, ignoring commas inside single
// quotes and parentheses. Tokens are trimmed; blank tokens are dropped.
func splitTopLevel(list string) []string {
	var out []string
	depth := 0
	inQuote := false
	start := 0
	emit := func(end int) {
		if tok := strings.TrimSpace(list[start:end]); tok != "" {
			out = append(out, tok)
		}
	}
	for i := 0; i < len(list); i++ {
		c := list[i]
		switch {
		case inQuote:
			if c == '\'' {
				if i+1 < len(list) && list[i+1] == '\'' {
					i++
				} else {
					inQuote = false
				}
			}
		case c == '\'':
			inQuote = true
		case c == '(':
			depth++
		case c == ')':
			if depth > 0 {
				depth--
			}
		case c == ',' && depth == 0:
			emit(i)
			start = i + 1
		}
	}
	emit(len(list))
	return out
}
