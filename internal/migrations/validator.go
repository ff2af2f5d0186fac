package migrations

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/vvka-141/pgconsolidate/internal/files/filesystem"
)

const timestampLayout = "2006-01-02-150405"

var (
	// YYYY-MM-DD-HHMMSS_name
	plainNameRegex = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}-\d{6})_(.+)$`)

	// YYYY-MM-DD-HHMMSS-NNNN_name
	sequencedNameRegex = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}-\d{6})-(\d{4})_(.+)$`)

	// 00000000000000_name, reserved for the initial bootstrap migration
	bootstrapNameRegex = regexp.MustCompile(`^00000000000000_(.+)$`)

	conventionRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$`)
)

// BootstrapTimestamp orders the bootstrap migration before everything else.
var BootstrapTimestamp = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

// MinNameLength is the shortest migration name accepted.
const MinNameLength = 3

// Migration is one parsed entry of a migrations directory.
type Migration struct {
	Timestamp time.Time
	Name      string
	Dir       string // entry name as found on disk
}

// Report is the outcome of validating a migrations directory.
// Errors fail the check; Warnings are informational.
type Report struct {
	Migrations []Migration
	Errors     []string
	Warnings   []string
}

// Valid reports whether no hard check failed.
func (r *Report) Valid() bool {
	return len(r.Errors) == 0
}

func (r *Report) addError(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Report) addWarning(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// ParseName parses a migration entry name into its timestamp and name.
// It returns false for names matching none of the three grammars, and for
// timestamps that are not real calendar times.
func ParseName(entry string) (time.Time, string, bool) {
	if m := plainNameRegex.FindStringSubmatch(entry); m != nil {
		if ts, err := time.Parse(timestampLayout, m[1]); err == nil {
			return ts, m[2], true
		}
	}
	if m := sequencedNameRegex.FindStringSubmatch(entry); m != nil {
		if ts, err := time.Parse(timestampLayout, m[1]); err == nil {
			return ts, m[3], true
		}
	}
	if m := bootstrapNameRegex.FindStringSubmatch(entry); m != nil {
		return BootstrapTimestamp, m[1], true
	}
	return time.Time{}, "", false
}

// Validator checks a migrations directory for chronological order.
type Validator struct {
	fs filesystem.FileSystemProvider
}

// NewValidator creates a Validator reading through fs.
func NewValidator(fs filesystem.FileSystemProvider) *Validator {
	return &Validator{fs: fs}
}

// Validate scans dir and runs every check. The returned error is non-nil
// only when dir cannot be read; check failures are recorded in the Report.
func (v *Validator) Validate(dir string) (*Report, error) {
	entries, err := v.fs.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory %s: %w", dir, err)
	}

	report := &Report{}
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		ts, name, ok := ParseName(entry.Name())
		if !ok {
			report.addWarning("skipping invalid migration directory: %s", entry.Name())
			continue
		}
		report.Migrations = append(report.Migrations, Migration{Timestamp: ts, Name: name, Dir: entry.Name()})
	}

	sort.SliceStable(report.Migrations, func(i, j int) bool {
		a, b := report.Migrations[i], report.Migrations[j]
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.Before(b.Timestamp)
		}
		return a.Dir < b.Dir
	})

	if len(report.Migrations) == 0 {
		report.addError("no valid migrations found in %s", dir)
		return report, nil
	}

	checkOrder(report)
	checkDuplicates(report)
	checkNames(report)
	return report, nil
}

func formatTimestamp(ts time.Time) string {
	return ts.Format("2006-01-02 15:04:05")
}

// checkOrder requires every timestamp to be strictly after its predecessor.
func checkOrder(r *Report) {
	for i := 1; i < len(r.Migrations); i++ {
		prev, curr := r.Migrations[i-1], r.Migrations[i]
		if !curr.Timestamp.After(prev.Timestamp) {
			r.addError("migration order issue: %s - %s is not after %s - %s",
				formatTimestamp(curr.Timestamp), curr.Name, formatTimestamp(prev.Timestamp), prev.Name)
		}
	}
}

// checkDuplicates reports every timestamp shared by more than one migration.
func checkDuplicates(r *Report) {
	groups := make(map[time.Time][]Migration)
	var order []time.Time
	for _, m := range r.Migrations {
		key := m.Timestamp.UTC()
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], m)
	}
	for _, ts := range order {
		group := groups[ts]
		if len(group) < 2 {
			continue
		}
		names := make([]string, len(group))
		for i, m := range group {
			names[i] = m.Dir
		}
		r.addError("duplicate timestamp %s: %s", formatTimestamp(ts), strings.Join(names, ", "))
	}
}

// checkNames warns on names outside the lowercase_with_underscores
// convention and fails names shorter than MinNameLength.
func checkNames(r *Report) {
	for _, m := range r.Migrations {
		if !conventionRegex.MatchString(m.Name) {
			r.addWarning("migration name doesn't follow convention (lowercase with underscores, no leading/trailing underscores): %s", m.Dir)
		}
		if utf8.RuneCountInString(m.Name) < MinNameLength {
			r.addError("migration name too short: %s", m.Dir)
		}
	}
}
