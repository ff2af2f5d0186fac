package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vvka-141/pgconsolidate/internal/db"
	"github.com/vvka-141/pgconsolidate/internal/files/filesystem"
	"github.com/vvka-141/pgconsolidate/internal/services"
	"github.com/vvka-141/pgconsolidate/internal/tui"
	"github.com/vvka-141/pgconsolidate/pkg/pgconsolidate"
)

type verifyFlagValues struct {
	connection string
	timeout    time.Duration
}

var verifyFlags verifyFlagValues

var verifyCmd = &cobra.Command{
	Use:   "verify <sql_file>",
	Short: "Apply a migration inside a transaction and roll it back",
	Long: `Runs a SQL script (usually the consolidated migration) against a live
PostgreSQL database inside a single transaction that is always rolled back.
Use it against a scratch database to prove the script applies cleanly.

Connection (first match wins):
  1. --connection
  2. DATABASE_URL (a .env file in the working directory is loaded first)
  3. connection in pgconsolidate.yaml

Transient connection failures are retried with exponential backoff.`,
	Example: `  pgconsolidate verify backend/migrations/2025-02-01-000001_consolidated_initial_schema/up.sql \
      --connection postgresql://postgres@localhost:5432/scratch`,
	Args:         RequireScriptPath,
	RunE:         runVerify,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVar(&verifyFlags.connection, "connection", "", "PostgreSQL connection string (URI or key=value format)")
	verifyCmd.Flags().DurationVar(&verifyFlags.timeout, "timeout", pgconsolidate.DefaultVerifyTimeout, "Timeout for the whole verification")
}

func runVerify(cmd *cobra.Command, args []string) error {
	projectCfg, err := loadProjectConfig(cmd)
	if err != nil {
		return err
	}

	connString, source := db.ResolveConnectionString(verifyFlags.connection, projectCfg.Connection)
	timeout := verifyFlags.timeout
	if !cmd.Flags().Changed("timeout") {
		timeout = projectCfg.Timeout(timeout)
	}

	logger := newLogger(cmd)
	if source != "" {
		logger.Verbose("Connection string from %s", source)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	svc := services.NewVerificationService(filesystem.NewOSFileSystem(), logger)
	result, err := svc.Verify(ctx, pgconsolidate.VerifyConfig{
		ScriptPath:       args[0],
		ConnectionString: connString,
		Timeout:          timeout,
	})
	if err != nil {
		return err
	}

	check := tui.SymbolCheck
	if tui.IsInteractive() {
		check = tui.SuccessStyle.Render(check)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s applied cleanly in %s and was rolled back (%d bytes)\n",
		check, result.ScriptPath, result.Duration.Round(time.Millisecond), result.Size)
	return nil
}
