// Package sqlcheck parses SQL with the PostgreSQL parser to confirm that a
// generated migration is syntactically valid before it is written.
package sqlcheck

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	pg_query "github.com/pganalyze/pg_query_go/v6"
	"github.com/pganalyze/pg_query_go/v6/parser"
)

// Statement kinds reported by Check.
const (
	KindCreateExtension = "CREATE EXTENSION"
	KindCreateType      = "CREATE TYPE"
	KindCreateTable     = "CREATE TABLE"
	KindAlterTable      = "ALTER TABLE"
	KindCreateIndex     = "CREATE INDEX"
	KindCreateTrigger   = "CREATE TRIGGER"
	KindCreateFunction  = "CREATE FUNCTION"
	KindOther           = "OTHER"
)

// Statement is one top-level statement of a parsed script.
type Statement struct {
	Kind string
	Line int
}

// Result lists the top-level statements of a script in source order.
type Result struct {
	Statements []Statement
}

// Kinds counts statements per kind.
func (r *Result) Kinds() map[string]int {
	out := make(map[string]int)
	for _, s := range r.Statements {
		out[s.Kind]++
	}
	return out
}

// ParseError is a syntax error located in the checked script.
type ParseError struct {
	Message  string
	Position int // 1-based character offset, 0 when unknown
	Line     int // 1-based, 0 when unknown
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("syntax error at line %d: %s", e.Line, e.Message)
	}
	return "syntax error: " + e.Message
}

// Check parses sql and lists its statements. A syntax error is returned as
// a *ParseError.
func Check(sql string) (*Result, error) {
	tree, err := pg_query.Parse(sql)
	if err != nil {
		var pgErr *parser.Error
		if errors.As(err, &pgErr) {
			return nil, &ParseError{
				Message:  pgErr.Message,
				Position: pgErr.Cursorpos,
				Line:     LineAt(sql, pgErr.Cursorpos),
			}
		}
		return nil, fmt.Errorf("failed to parse SQL: %w", err)
	}

	result := &Result{Statements: make([]Statement, 0, len(tree.Stmts))}
	for _, raw := range tree.Stmts {
		result.Statements = append(result.Statements, Statement{
			Kind: kindOf(raw.Stmt),
			Line: lineAtByte(sql, int(raw.StmtLocation)),
		})
	}
	return result, nil
}

func kindOf(node *pg_query.Node) string {
	if node == nil {
		return KindOther
	}
	switch node.Node.(type) {
	case *pg_query.Node_CreateExtensionStmt:
		return KindCreateExtension
	case *pg_query.Node_CreateEnumStmt:
		return KindCreateType
	case *pg_query.Node_CreateStmt:
		return KindCreateTable
	case *pg_query.Node_AlterTableStmt:
		return KindAlterTable
	case *pg_query.Node_IndexStmt:
		return KindCreateIndex
	case *pg_query.Node_CreateTrigStmt:
		return KindCreateTrigger
	case *pg_query.Node_CreateFunctionStmt:
		return KindCreateFunction
	default:
		return KindOther
	}
}

// LineAt converts a 1-based character position, as reported by PostgreSQL,
// into a 1-based line number of sql. It returns 0 for positions outside sql.
func LineAt(sql string, position int) int {
	if position <= 0 || position > utf8.RuneCountInString(sql) {
		return 0
	}
	line := 1
	n := 0
	for _, r := range sql {
		n++
		if n == position {
			return line
		}
		if r == '\n' {
			line++
		}
	}
	return 0
}

// lineAtByte returns the 1-based line containing the first non-blank byte
// at or after offset. pg_query reports statement locations from the end of
// the previous statement, so leading whitespace and comments are skipped.
func lineAtByte(sql string, offset int) int {
	if offset < 0 || offset > len(sql) {
		return 0
	}
	rest := sql[offset:]
	for {
		trimmed := strings.TrimLeft(rest, " \t\r\n")
		if strings.HasPrefix(trimmed, "--") {
			if nl := strings.IndexByte(trimmed, '\n'); nl >= 0 {
				rest = trimmed[nl+1:]
				continue
			}
			rest = ""
		} else {
			rest = trimmed
		}
		break
	}
	start := len(sql) - len(rest)
	return strings.Count(sql[:start], "\n") + 1
}
