package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vvka-141/pgconsolidate/internal/files/filesystem"
	"github.com/vvka-141/pgconsolidate/internal/migrations"
	"github.com/vvka-141/pgconsolidate/internal/tui"
	"github.com/vvka-141/pgconsolidate/pkg/pgconsolidate"
)

var checkOrderCmd = &cobra.Command{
	Use:   "check-order [migrations_dir]",
	Short: "Validate that migration directories are in chronological order",
	Long: `Scans a migrations directory (default backend/migrations, or migrations_dir
from pgconsolidate.yaml) and checks that:

  - timestamps strictly increase in directory order
  - no two migrations share a timestamp
  - names are at least 3 characters long

Names outside the lowercase_with_underscores convention and entries that do not
look like migrations produce warnings only.

Accepted entry names:
  YYYY-MM-DD-HHMMSS_name
  YYYY-MM-DD-HHMMSS-NNNN_name
  00000000000000_name        (initial bootstrap migration)`,
	Args:         OptionalDir,
	RunE:         runCheckOrder,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(checkOrderCmd)
}

func runCheckOrder(cmd *cobra.Command, args []string) error {
	projectCfg, err := loadProjectConfig(cmd)
	if err != nil {
		return err
	}

	dir := pgconsolidate.DefaultMigrationsDir
	if projectCfg.MigrationsDir != "" {
		dir = projectCfg.MigrationsDir
	}
	if len(args) == 1 {
		dir = args[0]
	}

	report, err := migrations.NewValidator(filesystem.NewOSFileSystem()).Validate(dir)
	if err != nil {
		return err
	}

	printOrderReport(cmd.OutOrStdout(), report, tui.IsInteractive())
	if !report.Valid() {
		return fmt.Errorf("%w: %d issue(s) in %s", pgconsolidate.ErrMigrationOrder, len(report.Errors), dir)
	}
	return nil
}

func printOrderReport(w io.Writer, report *migrations.Report, styled bool) {
	paint := func(style lipgloss.Style, s string) string {
		if !styled {
			return s
		}
		return style.Render(s)
	}

	if len(report.Migrations) > 0 {
		fmt.Fprintf(w, "Found %d migrations:\n", len(report.Migrations))
		for _, m := range report.Migrations {
			fmt.Fprintf(w, "  %s - %s\n", m.Timestamp.Format("2006-01-02 15:04:05"), m.Name)
		}
		fmt.Fprintln(w)
	}

	for _, warning := range report.Warnings {
		fmt.Fprintf(w, "%s %s\n", paint(tui.WarningStyle, tui.SymbolWarn), warning)
	}
	for _, e := range report.Errors {
		fmt.Fprintf(w, "%s %s\n", paint(tui.ErrorStyle, tui.SymbolCross), e)
	}

	if report.Valid() {
		fmt.Fprintf(w, "%s All migration validation checks passed\n", paint(tui.SuccessStyle, tui.SymbolCheck))
	} else {
		fmt.Fprintf(w, "%s Migration validation failed; fix the issues above before committing\n", paint(tui.ErrorStyle, tui.SymbolCross))
	}
}
