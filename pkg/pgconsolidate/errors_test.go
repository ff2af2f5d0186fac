package pgconsolidate_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/vvka-141/pgconsolidate/pkg/pgconsolidate"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, pgconsolidate.ExitSuccess},
		{"usage error", fmt.Errorf("%w: accepts 1 arg(s), received 0", pgconsolidate.ErrUsage), pgconsolidate.ExitGeneralError},
		{"unknown flag", errors.New("unknown flag --foo"), pgconsolidate.ExitGeneralError},
		{"missing input", fmt.Errorf("%w: schema.sql", pgconsolidate.ErrInputNotFound), pgconsolidate.ExitGeneralError},
		{"stale output", pgconsolidate.ErrStaleOutput, pgconsolidate.ExitGeneralError},
		{"connection failed", pgconsolidate.ErrConnectionFailed, pgconsolidate.ExitGeneralError},
		{"general error", errors.New("something went wrong"), pgconsolidate.ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pgconsolidate.ExitCodeForError(tt.err); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
