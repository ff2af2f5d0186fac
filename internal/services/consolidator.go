package services

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/vvka-141/pgconsolidate/internal/checksum"
	"github.com/vvka-141/pgconsolidate/internal/ddl"
	"github.com/vvka-141/pgconsolidate/internal/emit"
	"github.com/vvka-141/pgconsolidate/internal/files/filesystem"
	"github.com/vvka-141/pgconsolidate/internal/sqlcheck"
	"github.com/vvka-141/pgconsolidate/pkg/pgconsolidate"
)

// ConsolidationResult describes one completed run.
type ConsolidationResult struct {
	Statements         *ddl.Statements
	Counts             ddl.Counts
	SQL                string
	Checksum           string
	NormalizedChecksum string
	OutputPath         string
	Written            bool // the file at OutputPath was (re)written
	Unchanged          bool // check mode found OutputPath up to date
	LintStatements     int  // statements parsed by lint, 0 when lint was off or failed
}

// ConsolidationService turns a schema dump into a consolidated migration.
// It holds no per-run state and may be reused.
type ConsolidationService struct {
	fs     filesystem.FileSystemProvider
	logger pgconsolidate.Logger
	calc   checksum.Calculator
}

// NewConsolidationService creates a ConsolidationService. Nil dependencies
// are programmer errors and panic.
func NewConsolidationService(fsys filesystem.FileSystemProvider, logger pgconsolidate.Logger) *ConsolidationService {
	if fsys == nil {
		panic("filesystem cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &ConsolidationService{fs: fsys, logger: logger, calc: checksum.New()}
}

// Consolidate reads the dump, extracts every category, emits the migration
// and then writes, compares or only returns it. Nothing is written unless
// extraction, emission and strict lint have all succeeded.
func (s *ConsolidationService) Consolidate(config pgconsolidate.ConsolidateConfig) (*ConsolidationResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	mode, err := ddl.ParseBoundaryMode(config.Boundaries)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pgconsolidate.ErrInvalidConfig, err)
	}

	dump, err := s.fs.ReadFile(config.SchemaPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", pgconsolidate.ErrInputNotFound, config.SchemaPath)
		}
		return nil, fmt.Errorf("failed to read schema dump %s: %w", config.SchemaPath, err)
	}

	s.logger.Info("Processing schema file: %s", config.SchemaPath)
	s.logger.Verbose("Boundary mode: %s", mode)

	extractor := ddl.NewExtractor(
		ddl.WithBoundaryMode(mode),
		ddl.WithBookkeepingTable(config.BookkeepingTable),
	)
	statements := extractor.Extract(string(dump))
	s.report(statements)

	sql := emit.Emit(statements)
	result := &ConsolidationResult{
		Statements:         statements,
		Counts:             statements.Counts(),
		SQL:                sql,
		Checksum:           s.calc.CalculateRaw([]byte(sql)),
		NormalizedChecksum: s.calc.CalculateNormalized([]byte(sql)),
		OutputPath:         config.OutputPath,
	}

	if config.Lint {
		if err := s.lint(result, config.StrictLint); err != nil {
			return nil, err
		}
	}

	switch {
	case config.NoWrite:
		return result, nil
	case config.Check:
		if err := s.compare(result); err != nil {
			return nil, err
		}
		result.Unchanged = true
		return result, nil
	}

	if err := s.fs.WriteFile(config.OutputPath, []byte(sql)); err != nil {
		return nil, fmt.Errorf("failed to write consolidated migration %s: %w", config.OutputPath, err)
	}
	result.Written = true
	return result, nil
}

// report logs per-statement diagnostics and the warnings every run must
// surface: duplicate names and functions that will not be emitted.
func (s *ConsolidationService) report(st *ddl.Statements) {
	for _, e := range st.Extensions {
		s.logger.Verbose("extension %s (line %d)", e.Name, e.Line)
	}
	for _, t := range st.EnumTypes {
		s.logger.Verbose("type %s with %d values (line %d)", t.Name, len(t.Values), t.Line)
	}
	for _, t := range st.Tables {
		s.logger.Verbose("table %s (line %d)", t.Name, t.Line)
	}
	for _, i := range st.Indexes {
		s.logger.Verbose("index %s on %s (line %d)", i.Name, i.Table, i.Line)
	}
	for _, c := range st.Constraints {
		s.logger.Verbose("constraint %s on %s (line %d)", c.Name, c.Table, c.Line)
	}
	for _, t := range st.Triggers {
		s.logger.Verbose("trigger %s (line %d)", t.Name, t.Line)
	}
	for _, f := range st.Functions {
		s.logger.Verbose("function %s returns %s (line %d)", f.Name, f.ReturnType, f.Line)
	}

	for _, d := range st.Duplicates() {
		s.logger.Warn("%s %s appears %d times in the dump", d.Category, d.Name, d.Count)
	}
	if n := len(st.Functions); n > 0 {
		s.logger.Warn("%d functions were extracted but are not included in the consolidated migration", n)
	}
}

func (s *ConsolidationService) lint(result *ConsolidationResult, strict bool) error {
	checked, err := sqlcheck.Check(result.SQL)
	if err != nil {
		if strict {
			return fmt.Errorf("%w: %v", pgconsolidate.ErrInvalidOutput, err)
		}
		s.logger.Warn("lint: %v", err)
		return nil
	}

	c := result.Counts
	expected := c.Extensions + c.EnumTypes + c.Tables + c.Constraints + c.Indexes + c.Triggers
	if got := len(checked.Statements); got != expected {
		msg := fmt.Sprintf("lint: parsed %d statements, expected %d", got, expected)
		if strict {
			return fmt.Errorf("%w: %s", pgconsolidate.ErrInvalidOutput, msg)
		}
		s.logger.Warn("%s", msg)
	}
	for kind, n := range checked.Kinds() {
		s.logger.Verbose("lint: %d %s", n, kind)
	}
	result.LintStatements = len(checked.Statements)
	return nil
}

// compare fails with ErrStaleOutput unless OutputPath holds exactly the
// generated SQL.
func (s *ConsolidationService) compare(result *ConsolidationResult) error {
	existing, err := s.fs.ReadFile(result.OutputPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s does not exist", pgconsolidate.ErrStaleOutput, result.OutputPath)
		}
		return fmt.Errorf("failed to read %s: %w", result.OutputPath, err)
	}

	if s.calc.CalculateRaw(existing) == result.Checksum {
		return nil
	}
	if s.calc.CalculateNormalized(existing) == result.NormalizedChecksum {
		return fmt.Errorf("%w: %s differs only in comments or whitespace", pgconsolidate.ErrStaleOutput, result.OutputPath)
	}
	return fmt.Errorf("%w: %s", pgconsolidate.ErrStaleOutput, result.OutputPath)
}
