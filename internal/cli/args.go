package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/pgconsolidate/pkg/pgconsolidate"
)

// RequireSchemaDump validates that exactly one schema dump argument is provided.
// Returns a helpful error message with usage and examples if missing or too many.
func RequireSchemaDump(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`%w: missing required argument: <schema_dump_path>

Usage: %s

Example:
  %s schema.sql`, pgconsolidate.ErrUsage, cmd.UseLine(), cmd.CommandPath())
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: accepts 1 arg(s), received %d", pgconsolidate.ErrUsage, len(args))
	}
	return nil
}

// RequireScriptPath validates that exactly one SQL script argument is provided.
func RequireScriptPath(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`%w: missing required argument: <sql_file>

Usage: %s

Example:
  %s %s --connection postgresql://localhost/scratch`, pgconsolidate.ErrUsage, cmd.UseLine(), cmd.CommandPath(), pgconsolidate.DefaultOutputPath)
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: accepts 1 arg(s), received %d", pgconsolidate.ErrUsage, len(args))
	}
	return nil
}

// OptionalDir accepts zero or one directory argument.
func OptionalDir(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("%w: accepts at most 1 arg(s), received %d", pgconsolidate.ErrUsage, len(args))
	}
	return nil
}
