package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vvka-141/pgconsolidate/internal/ddl"
	"github.com/vvka-141/pgconsolidate/internal/files/filesystem"
	"github.com/vvka-141/pgconsolidate/internal/services"
	"github.com/vvka-141/pgconsolidate/internal/tui"
	"github.com/vvka-141/pgconsolidate/pkg/pgconsolidate"
)

type consolidateFlagValues struct {
	output           string
	boundaries       string
	bookkeepingTable string
	check            bool
	stdout           bool
	json             bool
	lint             bool
	strict           bool
}

var consolidateFlags consolidateFlagValues

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&consolidateFlags.output, "output", "o", pgconsolidate.DefaultOutputPath, "Path of the consolidated migration")
	f.StringVar(&consolidateFlags.boundaries, "boundaries", ddl.BoundaryQuoteAware.String(),
		"Statement boundary detection: quote-aware or first-semicolon")
	f.StringVar(&consolidateFlags.bookkeepingTable, "bookkeeping-table", pgconsolidate.DefaultBookkeepingTable,
		"Migration-history table to leave out (empty keeps every table)")
	f.BoolVar(&consolidateFlags.check, "check", false, "Fail if the existing migration differs from what the dump produces; write nothing")
	f.BoolVar(&consolidateFlags.stdout, "stdout", false, "Print the migration to stdout instead of writing it")
	f.BoolVar(&consolidateFlags.json, "json", false, "Print the run summary as JSON")
	f.BoolVar(&consolidateFlags.lint, "lint", false, "Parse the generated SQL with the PostgreSQL parser before writing")
	f.BoolVar(&consolidateFlags.strict, "strict", false, "With --lint, treat parse failures as errors")
}

// consolidateReport is the --json document.
type consolidateReport struct {
	Schema    string     `json:"schema"`
	Output    string     `json:"output,omitempty"`
	Written   bool       `json:"written"`
	Unchanged bool       `json:"unchanged"`
	Size      int        `json:"size"`
	Checksum  string     `json:"checksum"`
	Counts    ddl.Counts `json:"counts"`
}

func runConsolidate(cmd *cobra.Command, args []string) error {
	if consolidateFlags.stdout && consolidateFlags.json {
		return fmt.Errorf("%w: --json cannot be combined with --stdout", pgconsolidate.ErrUsage)
	}

	projectCfg, err := loadProjectConfig(cmd)
	if err != nil {
		return err
	}

	bookkeeping := consolidateFlags.bookkeepingTable
	if !cmd.Flags().Changed("bookkeeping-table") && projectCfg.BookkeepingTable != nil {
		bookkeeping = *projectCfg.BookkeepingTable
	}

	config := pgconsolidate.ConsolidateConfig{
		SchemaPath:       args[0],
		OutputPath:       stringSetting(cmd, "output", projectCfg.Output),
		Boundaries:       stringSetting(cmd, "boundaries", projectCfg.Boundaries),
		BookkeepingTable: bookkeeping,
		Check:            consolidateFlags.check,
		NoWrite:          consolidateFlags.stdout,
		Lint:             consolidateFlags.lint,
		StrictLint:       consolidateFlags.strict,
	}
	if config.NoWrite {
		config.OutputPath = ""
	}

	logger := newLogger(cmd)
	svc := services.NewConsolidationService(filesystem.NewOSFileSystem(), logger)
	result, err := svc.Consolidate(config)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case consolidateFlags.json:
		return writeJSONReport(out, config, result)
	case consolidateFlags.stdout:
		sql := result.SQL
		if tui.IsInteractive() {
			sql = tui.NewHighlighter().Highlight(sql)
		}
		fmt.Fprint(out, sql)
		fmt.Fprint(cmd.ErrOrStderr(), tui.RenderSummary(summaryOf(result), false))
		return nil
	default:
		fmt.Fprint(out, tui.RenderSummary(summaryOf(result), tui.IsInteractive()))
		return nil
	}
}

func summaryOf(result *services.ConsolidationResult) tui.Summary {
	return tui.Summary{
		Counts:    result.Counts,
		Output:    result.OutputPath,
		Size:      len([]rune(result.SQL)),
		Checksum:  result.Checksum,
		Unchanged: result.Unchanged,
	}
}

func writeJSONReport(w io.Writer, config pgconsolidate.ConsolidateConfig, result *services.ConsolidationResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(consolidateReport{
		Schema:    config.SchemaPath,
		Output:    result.OutputPath,
		Written:   result.Written,
		Unchanged: result.Unchanged,
		Size:      len([]rune(result.SQL)),
		Checksum:  result.Checksum,
		Counts:    result.Counts,
	})
}
