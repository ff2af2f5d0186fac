package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vvka-141/pgconsolidate/internal/ddl"
)

// Summary is what a consolidation run reports once the output is settled.
type Summary struct {
	Counts    ddl.Counts
	Output    string // destination path, empty when printed to stdout
	Size      int    // characters in the generated SQL
	Checksum  string
	Unchanged bool // --check found the existing file up to date
}

// RenderSummary formats s as the per-category "Found:" list followed by
// the output location, size and checksum. styled adds color.
func RenderSummary(s Summary, styled bool) string {
	paint := func(style lipgloss.Style, text string) string {
		if !styled {
			return text
		}
		return style.Render(text)
	}

	rows := []struct {
		n     int
		label string
	}{
		{s.Counts.Extensions, "extensions"},
		{s.Counts.EnumTypes, "custom types"},
		{s.Counts.Tables, "tables"},
		{s.Counts.Indexes, "indexes"},
		{s.Counts.Constraints, "constraints"},
		{s.Counts.Triggers, "triggers"},
		{s.Counts.Functions, "functions"},
	}

	var b strings.Builder
	b.WriteString(paint(TitleStyle, "Found:"))
	b.WriteByte('\n')
	for _, r := range rows {
		fmt.Fprintf(&b, "  - %s %s\n", paint(CountStyle, fmt.Sprint(r.n)), paint(LabelStyle, r.label))
	}

	switch {
	case s.Unchanged:
		fmt.Fprintf(&b, "%s %s\n", paint(SuccessStyle, "Consolidated migration is up to date:"), s.Output)
	case s.Output != "":
		fmt.Fprintf(&b, "%s %s\n", paint(SuccessStyle, "Consolidated migration written to:"), s.Output)
	}
	fmt.Fprintf(&b, "Migration size: %d characters\n", s.Size)
	if s.Checksum != "" {
		fmt.Fprintf(&b, "%s\n", paint(MutedStyle, "SHA-256: "+s.Checksum))
	}
	return b.String()
}
