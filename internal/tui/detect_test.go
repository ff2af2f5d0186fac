package tui

import (
	"testing"
)

func clearModeEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PGCONSOLIDATE_NON_INTERACTIVE", "")
	t.Setenv("CI", "")
	t.Setenv("NO_COLOR", "")
}

func TestDetectMode_EnvOverrides(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"explicit opt-out", "PGCONSOLIDATE_NON_INTERACTIVE", "1"},
		{"CI", "CI", "true"},
		{"NO_COLOR", "NO_COLOR", "1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearModeEnv(t)
			t.Setenv(tt.key, tt.value)

			if got := DetectMode(); got != ModeNonInteractive {
				t.Errorf("DetectMode() = %d, want ModeNonInteractive", got)
			}
		})
	}
}

func TestDetectMode_NoTerminal(t *testing.T) {
	// In test context, stdout is not a terminal
	clearModeEnv(t)

	if got := DetectMode(); got != ModeNonInteractive {
		t.Errorf("DetectMode() = %d, want ModeNonInteractive (no terminal in test)", got)
	}
}

func TestIsInteractive_ReturnsFalseInTests(t *testing.T) {
	clearModeEnv(t)

	if IsInteractive() {
		t.Error("IsInteractive() = true in test environment, want false")
	}
}
