// Package emit renders extracted DDL as a single consolidated migration.
//
// Sections are written in dependency order for a fresh database:
// extensions, enum types, tables, constraints, indexes, triggers. Functions
// are extracted upstream but never written here, so a schema relying on
// stored functions is not fully recreated by the output.
package emit

import (
	"fmt"
	"strings"

	"github.com/vvka-141/pgconsolidate/internal/ddl"
)

const indent = "    "

// Header opens every consolidated migration.
var Header = []string{
	"-- Consolidated Initial Schema Migration",
	"-- This migration consolidates all previous migrations into a single migration",
	"-- Generated from target schema dump",
}

// Section comments, in emission order.
const (
	SectionExtensions  = "-- Extensions"
	SectionEnumTypes   = "-- Custom Types (ENUMs)"
	SectionTables      = "-- Tables"
	SectionConstraints = "-- Constraints"
	SectionIndexes     = "-- Indexes"
	SectionTriggers    = "-- Triggers"
)

// Emit renders s as consolidated SQL. Output is a pure function of s:
// identical collections always produce byte-identical text.
func Emit(s *ddl.Statements) string {
	lines := append([]string(nil), Header...)
	lines = append(lines, "")

	section := func(title string, n int, render func(i int) []string) {
		if n == 0 {
			return
		}
		lines = append(lines, title)
		for i := 0; i < n; i++ {
			lines = append(lines, render(i)...)
		}
		lines = append(lines, "")
	}

	section(SectionExtensions, len(s.Extensions), func(i int) []string {
		return []string{Extension(s.Extensions[i])}
	})
	section(SectionEnumTypes, len(s.EnumTypes), func(i int) []string {
		return EnumType(s.EnumTypes[i])
	})
	section(SectionTables, len(s.Tables), func(i int) []string {
		return Table(s.Tables[i])
	})
	section(SectionConstraints, len(s.Constraints), func(i int) []string {
		return Constraint(s.Constraints[i])
	})
	section(SectionIndexes, len(s.Indexes), func(i int) []string {
		return []string{Index(s.Indexes[i])}
	})
	section(SectionTriggers, len(s.Triggers), func(i int) []string {
		return []string{Trigger(s.Triggers[i])}
	})

	return strings.Join(lines, "\n")
}

// Extension renders a CREATE EXTENSION line.
func Extension(e ddl.Extension) string {
	return fmt.Sprintf("CREATE EXTENSION IF NOT EXISTS %s WITH SCHEMA public;", e.Name)
}

// EnumType renders one value per line; every value but the last carries a
// trailing comma. An enum without values keeps a single indented blank line.
func EnumType(t ddl.EnumType) []string {
	lines := make([]string, 0, len(t.Values)+2)
	lines = append(lines, fmt.Sprintf("CREATE TYPE public.%s AS ENUM (", t.Name))
	if len(t.Values) == 0 {
		lines = append(lines, indent)
	}
	for i, v := range t.Values {
		if i == len(t.Values)-1 {
			lines = append(lines, indent+v)
		} else {
			lines = append(lines, indent+v+",")
		}
	}
	return append(lines, ");")
}

// Table re-indents every body line to one level inside its own wrapper.
func Table(t ddl.Table) []string {
	body := strings.Split(strings.TrimSpace(t.Body), "\n")
	lines := make([]string, 0, len(body)+2)
	lines = append(lines, fmt.Sprintf("CREATE TABLE public.%s (", t.Name))
	for _, l := range body {
		lines = append(lines, indent+strings.TrimSpace(l))
	}
	return append(lines, ");")
}

// Constraint renders the two-line ALTER TABLE ONLY form.
func Constraint(c ddl.Constraint) []string {
	return []string{
		fmt.Sprintf("ALTER TABLE ONLY public.%s", c.Table),
		fmt.Sprintf("%sADD CONSTRAINT %s %s;", indent, c.Name, c.Definition),
	}
}

// Index renders a single line; the WHERE clause appears only when a
// predicate was captured.
func Index(i ddl.Index) string {
	var where string
	if i.Predicate != "" {
		where = " WHERE " + i.Predicate
	}
	return fmt.Sprintf("CREATE INDEX %s ON public.%s USING %s (%s)%s;", i.Name, i.Table, i.Method, i.Columns, where)
}

// Trigger renders a single CREATE TRIGGER line.
func Trigger(t ddl.Trigger) string {
	return fmt.Sprintf("CREATE TRIGGER %s %s;", t.Name, t.Definition)
}
