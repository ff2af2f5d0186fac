package pgconsolidate

import (
	"errors"
	"fmt"
	"time"
)

// ConsolidateConfig contains all parameters for one consolidation run.
type ConsolidateConfig struct {
	// SchemaPath is the schema-only dump to read
	SchemaPath string

	// OutputPath is where the consolidated migration is written or compared
	OutputPath string

	// Boundaries names the statement boundary mode ("quote-aware" or "first-semicolon")
	Boundaries string

	// BookkeepingTable is excluded from the output; empty excludes nothing
	BookkeepingTable string

	// Check compares the generated SQL with OutputPath instead of writing it
	Check bool

	// NoWrite generates the SQL without touching OutputPath
	NoWrite bool

	// Lint parses the generated SQL before it is written
	Lint bool

	// StrictLint turns lint failures into errors
	StrictLint bool
}

// Validate checks if the ConsolidateConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *ConsolidateConfig) Validate() error {
	var errs []error

	if c.SchemaPath == "" {
		errs = append(errs, fmt.Errorf("SchemaPath is required: %w", ErrInvalidConfig))
	}

	if c.OutputPath == "" && !c.NoWrite {
		errs = append(errs, fmt.Errorf("OutputPath is required: %w", ErrInvalidConfig))
	}

	if c.Check && c.NoWrite {
		errs = append(errs, fmt.Errorf("check cannot be combined with stdout output: %w", ErrInvalidConfig))
	}

	if c.StrictLint && !c.Lint {
		errs = append(errs, fmt.Errorf("strict requires lint to be enabled: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// VerifyConfig contains all parameters for applying a script in a rolled
// back transaction.
type VerifyConfig struct {
	// ScriptPath is the SQL file to apply
	ScriptPath string

	// ConnectionString is the PostgreSQL connection string (URI or key=value format)
	ConnectionString string

	// Timeout bounds the whole run, connection included
	Timeout time.Duration
}

// Validate checks if the VerifyConfig has all required fields and valid values.
func (c *VerifyConfig) Validate() error {
	var errs []error

	if c.ScriptPath == "" {
		errs = append(errs, fmt.Errorf("ScriptPath is required: %w", ErrInvalidConfig))
	}

	if c.ConnectionString == "" {
		errs = append(errs, fmt.Errorf("connection string is required (use --connection, DATABASE_URL or the config file): %w", ErrInvalidConfig))
	}

	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}
