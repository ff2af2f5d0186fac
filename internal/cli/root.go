package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pgconsolidate <schema_dump_path>",
	Short: "Consolidate a PostgreSQL schema dump into a single initial migration",
	Long: `pgconsolidate reads a schema-only PostgreSQL dump, extracts extensions,
enum types, tables, constraints, indexes and triggers, and writes them as one
consolidated migration in dependency order:

  extensions -> enum types -> tables -> constraints -> indexes -> triggers

The migration-history table (__diesel_schema_migrations by default) and
everything attached to it are left out. Functions are counted but not written.

Statement boundaries are found with a quote-aware scanner by default, so ';'
inside strings, comments and dollar-quoted bodies never ends a statement.
--boundaries first-semicolon restores the older first-';' heuristic, which
truncates statements on such input.

Configuration is read from pgconsolidate.yaml in the working directory when
present; command-line flags take precedence.

Exit Codes:
  0  - Success
  1  - Any error (usage, missing input, stale output, verification failure)
  3  - Panic or unexpected system error`,
	Example: `  pgconsolidate schema.sql
  pgconsolidate schema.sql -o migrations/00000000000000_initial/up.sql
  pgconsolidate schema.sql --check
  pg_dump --schema-only mydb > schema.sql && pgconsolidate schema.sql --stdout`,
	Args:         RequireSchemaDump,
	RunE:         runConsolidate,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout)
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default: ./pgconsolidate.yaml when present)")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
