package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Calculator computes content digests for generated migrations.
type Calculator interface {
	// CalculateRaw hashes the exact bytes.
	CalculateRaw(content []byte) string

	// CalculateNormalized hashes the content after comments are removed,
	// letters are lowercased and whitespace runs are collapsed.
	CalculateNormalized(content []byte) string
}

// SHA256 is a zero-size Calculator, safe for concurrent use.
type SHA256 struct{}

// New returns a SHA-256 calculator.
func New() SHA256 {
	return SHA256{}
}

// CalculateRaw computes SHA-256 of raw content.
func (SHA256) CalculateRaw(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// CalculateNormalized computes SHA-256 of normalized content.
func (SHA256) CalculateNormalized(content []byte) string {
	sum := sha256.Sum256([]byte(Normalize(string(content))))
	return hex.EncodeToString(sum[:])
}

// Normalize strips SQL comments outside quoted text, lowercases everything
// else and collapses whitespace to single spaces. Each removed comment
// counts as whitespace.
func Normalize(content string) string {
	var b strings.Builder
	b.Grow(len(content))

	pendingSpace := false
	write := func(s string) {
		if pendingSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		pendingSpace = false
		b.WriteString(s)
	}

	for i := 0; i < len(content); {
		rest := content[i:]
		switch {
		case strings.HasPrefix(rest, "--"):
			end := strings.IndexByte(rest, '\n')
			if end < 0 {
				end = len(rest)
			}
			pendingSpace = true
			i += end

		case strings.HasPrefix(rest, "/*"):
			pendingSpace = true
			i += blockCommentLen(rest)

		case rest[0] == '\'':
			n := quotedLen(rest, '\'')
			write(strings.ToLower(rest[:n]))
			i += n

		case rest[0] == '$':
			if tag := dollarTag(rest); tag != "" {
				end := strings.Index(rest[len(tag):], tag)
				n := len(rest)
				if end >= 0 {
					n = len(tag) + end + len(tag)
				}
				write(strings.ToLower(rest[:n]))
				i += n
				continue
			}
			write("$")
			i++

		default:
			r, size := utf8.DecodeRuneInString(rest)
			if unicode.IsSpace(r) {
				pendingSpace = true
			} else {
				write(string(unicode.ToLower(r)))
			}
			i += size
		}
	}
	return b.String()
}

// blockCommentLen returns the length of the nested block comment opening s,
// or len(s) when it never closes.
func blockCommentLen(s string) int {
	depth := 0
	for i := 0; i+1 < len(s); i++ {
		switch s[i : i+2] {
		case "/*":
			depth++
			i++
		case "*/":
			depth--
			i++
			if depth == 0 {
				return i + 1
			}
		}
	}
	return len(s)
}

// quotedLen returns the length of the quoted literal opening s, honoring
// doubled-quote escapes.
func quotedLen(s string, quote byte) int {
	for i := 1; i < len(s); i++ {
		if s[i] != quote {
			continue
		}
		if i+1 < len(s) && s[i+1] == quote {
			i++
			continue
		}
		return i + 1
	}
	return len(s)
}

// dollarTag returns the "$$" or "$tag$" opening s, or "".
func dollarTag(s string) string {
	for j := 1; j < len(s); j++ {
		c := s[j]
		if c == '$' {
			return s[:j+1]
		}
		letter := c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		if !letter && (j == 1 || c < '0' || c > '9') {
			return ""
		}
	}
	return ""
}
