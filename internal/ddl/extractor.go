package ddl

import (
	"regexp"
	"strings"
)

// Statement headers. Each category parser finds its headers with one of
// these and then bounds the rest of the statement with the document scanner.
var (
	extensionRegex        = regexp.MustCompile(`CREATE EXTENSION IF NOT EXISTS (\w+) WITH SCHEMA public;`)
	enumHeaderRegex       = regexp.MustCompile(`CREATE TYPE public\.(\w+) AS ENUM \(`)
	tableHeaderRegex      = regexp.MustCompile(`CREATE TABLE public\.(\w+) \(`)
	indexHeaderRegex      = regexp.MustCompile(`CREATE INDEX (\w+) ON public\.(\w+) USING (\w+) \(`)
	constraintHeaderRegex = regexp.MustCompile(`ALTER TABLE ONLY public\.(\w+)\s+ADD CONSTRAINT (\w+) `)
	triggerHeaderRegex    = regexp.MustCompile(`CREATE TRIGGER (\w+) `)
	functionHeaderRegex   = regexp.MustCompile(`CREATE OR REPLACE FUNCTION public\.(\w+)\(`)
)

const (
	indexWhere      = " WHERE ("
	functionReturns = " RETURNS "
)

// Extractor splits a schema dump into categorized DDL statements.
type Extractor struct {
	mode             BoundaryMode
	bookkeepingTable string
	onBookkeeping    *regexp.Regexp // matches "ON public.<bookkeepingTable>"
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithBoundaryMode selects how statement boundaries are detected.
func WithBoundaryMode(mode BoundaryMode) Option {
	return func(e *Extractor) {
		e.mode = mode
	}
}

// WithBookkeepingTable sets the migration-history table name to exclude.
// An empty name excludes nothing.
func WithBookkeepingTable(name string) Option {
	return func(e *Extractor) {
		e.bookkeepingTable = name
	}
}

// NewExtractor creates an Extractor. Without options it uses quote-aware
// boundaries and excludes the __diesel_schema_migrations table.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		mode:             BoundaryQuoteAware,
		bookkeepingTable: "__diesel_schema_migrations",
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.bookkeepingTable != "" {
		e.onBookkeeping = onTableRegex(e.bookkeepingTable)
	}
	return e
}

func onTableRegex(table string) *regexp.Regexp {
	return regexp.MustCompile(`\bON public\.` + regexp.QuoteMeta(table) + `\b`)
}

// Mode returns the boundary mode in use.
func (e *Extractor) Mode() BoundaryMode {
	return e.mode
}

// Extract scans text once per category and returns fresh collections.
// Statements whose delimiters never close are left out of their category;
// other categories are unaffected.
func (e *Extractor) Extract(text string) *Statements {
	doc := newDocument(text, e.mode)
	s := &Statements{
		Extensions:  extractExtensions(doc),
		EnumTypes:   extractEnumTypes(doc),
		Tables:      extractTables(doc, e.bookkeepingTable),
		Indexes:     extractIndexes(doc),
		Constraints: extractConstraints(doc),
		Triggers:    extractTriggers(doc),
		Functions:   extractFunctions(doc),
	}
	if e.bookkeepingTable != "" {
		dropAttached(s, e.bookkeepingTable, e.onBookkeeping)
	}
	return s
}

// dropAttached removes indexes, constraints and triggers defined on the
// bookkeeping table, whose own CREATE TABLE is never extracted. onTable
// matches trigger definitions on that table.
func dropAttached(s *Statements, table string, onTable *regexp.Regexp) {

	indexes := s.Indexes[:0]
	for _, idx := range s.Indexes {
		if idx.Table != table {
			indexes = append(indexes, idx)
		}
	}
	s.Indexes = indexes

	constraints := s.Constraints[:0]
	for _, c := range s.Constraints {
		if c.Table != table {
			constraints = append(constraints, c)
		}
	}
	s.Constraints = constraints

	triggers := s.Triggers[:0]
	for _, t := range s.Triggers {
		if !onTable.MatchString(t.Definition) {
			triggers = append(triggers, t)
		}
	}
	s.Triggers = triggers
}

// headers yields non-overlapping header matches of re. parse returns the end
// offset of the statement it accepted, or -1 to reject the header; headers
// starting before the end of the last accepted statement are skipped.
// Headers inside quoted text or comments never reach parse.
func headers(doc *document, re *regexp.Regexp, parse func(m []int) int) {
	next := 0
	for _, m := range re.FindAllStringSubmatchIndex(doc.text, -1) {
		if m[0] < next || doc.inOpaque(m[0]) {
			continue
		}
		if end := parse(m); end >= 0 {
			next = end
		}
	}
}

func group(doc *document, m []int, n int) string {
	return doc.text[m[2*n]:m[2*n+1]]
}

func extractExtensions(doc *document) []Extension {
	var out []Extension
	headers(doc, extensionRegex, func(m []int) int {
		out = append(out, Extension{Name: group(doc, m, 1), Line: doc.lineOf(m[0])})
		return m[1]
	})
	return out
}

func extractEnumTypes(doc *document) []EnumType {
	var out []EnumType
	headers(doc, enumHeaderRegex, func(m []int) int {
		open := m[1] - 1
		closing := doc.closeParen(open)
		if closing < 0 || closing == open+1 || !strings.HasPrefix(doc.text[closing:], ");") {
			return -1
		}
		raw := strings.TrimSpace(doc.text[open+1 : closing])
		out = append(out, EnumType{
			Name:   group(doc, m, 1),
			Values: splitTopLevel(raw),
			Line:   doc.lineOf(m[0]),
		})
		return closing + 2
	})
	return out
}

func extractTables(doc *document, bookkeeping string) []Table {
	var out []Table
	headers(doc, tableHeaderRegex, func(m []int) int {
		open := m[1] - 1
		closing := tableClose(doc, open)
		if closing < 0 || closing == open+1 {
			return -1
		}
		body := strings.TrimSpace(doc.text[open+1 : closing])
		if name := group(doc, m, 1); name != bookkeeping {
			out = append(out, Table{Name: name, Body: body, Line: doc.lineOf(m[0])})
		}
		return closing + 2
	})
	return out
}

// tableClose returns the offset of the ')' that, followed by ';', closes a
// table body. In first-semicolon mode that is the character before the first
// ';' after the header, so nested parentheses never end the body early.
func tableClose(doc *document, open int) int {
	if doc.mode == BoundaryFirstSemicolon {
		semi := indexFrom(doc.text, open+1, ';')
		if semi < 0 || doc.text[semi-1] != ')' || semi-1 <= open {
			return -1
		}
		return semi - 1
	}
	closing := doc.closeParen(open)
	if closing < 0 || !strings.HasPrefix(doc.text[closing:], ");") {
		return -1
	}
	return closing
}

func extractIndexes(doc *document) []Index {
	var out []Index
	headers(doc, indexHeaderRegex, func(m []int) int {
		open := m[1] - 1
		closing := doc.closeParen(open)
		if closing < 0 {
			return -1
		}
		columns := doc.text[open+1 : closing]
		if strings.TrimSpace(columns) == "" {
			return -1
		}

		idx := Index{
			Name:    group(doc, m, 1),
			Table:   group(doc, m, 2),
			Method:  group(doc, m, 3),
			Columns: columns,
			Line:    doc.lineOf(m[0]),
		}

		rest := closing + 1
		if strings.HasPrefix(doc.text[rest:], indexWhere) {
			predOpen := rest + len(indexWhere) - 1
			predClose := doc.closeParen(predOpen)
			if predClose < 0 || predClose == predOpen+1 {
				return -1
			}
			idx.Predicate = doc.text[predOpen : predClose+1]
			rest = predClose + 1
		}
		if !strings.HasPrefix(doc.text[rest:], ";") {
			return -1
		}

		out = append(out, idx)
		return rest + 1
	})
	return out
}

func extractConstraints(doc *document) []Constraint {
	var out []Constraint
	headers(doc, constraintHeaderRegex, func(m []int) int {
		semi := doc.terminator(m[1])
		if semi <= m[1] {
			return -1
		}
		out = append(out, Constraint{
			Table:      group(doc, m, 1),
			Name:       group(doc, m, 2),
			Definition: doc.text[m[1]:semi],
			Line:       doc.lineOf(m[0]),
		})
		return semi + 1
	})
	return out
}

func extractTriggers(doc *document) []Trigger {
	var out []Trigger
	headers(doc, triggerHeaderRegex, func(m []int) int {
		semi := doc.terminator(m[1])
		if semi <= m[1] {
			return -1
		}
		out = append(out, Trigger{
			Name:       group(doc, m, 1),
			Definition: doc.text[m[1]:semi],
			Line:       doc.lineOf(m[0]),
		})
		return semi + 1
	})
	return out
}

func extractFunctions(doc *document) []Function {
	var out []Function
	headers(doc, functionHeaderRegex, func(m []int) int {
		open := m[1] - 1
		closing := doc.closeParen(open)
		if closing < 0 || !strings.HasPrefix(doc.text[closing+1:], functionReturns) {
			return -1
		}
		from := closing + 1 + len(functionReturns)
		semi := doc.terminator(from)
		if semi <= from {
			return -1
		}
		returns := doc.text[from:semi]
		if nl := strings.IndexByte(returns, '\n'); nl >= 0 {
			returns = returns[:nl]
		}
		out = append(out, Function{
			Name:       group(doc, m, 1),
			ReturnType: strings.TrimSpace(returns),
			Line:       doc.lineOf(m[0]),
		})
		return semi + 1
	})
	return out
}
