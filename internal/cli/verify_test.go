package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/pgconsolidate/pkg/pgconsolidate"
)

func TestVerify_RequiresScriptPath(t *testing.T) {
	inTempDir(t)

	_, _, err := executeCommand(t, "verify")
	require.Error(t, err)
	assert.True(t, errors.Is(err, pgconsolidate.ErrUsage))
}

func TestVerify_RequiresConnection(t *testing.T) {
	inTempDir(t)
	t.Setenv("DATABASE_URL", "")
	writeFile(t, "up.sql", "SELECT 1;\n")

	_, _, err := executeCommand(t, "verify", "up.sql")
	require.Error(t, err)
	assert.True(t, errors.Is(err, pgconsolidate.ErrInvalidConfig))
}

func TestVerify_MissingScript(t *testing.T) {
	inTempDir(t)

	_, _, err := executeCommand(t, "verify", "missing.sql", "--connection", "postgresql://localhost:5432/scratch")
	require.Error(t, err)
	assert.True(t, errors.Is(err, pgconsolidate.ErrInputNotFound))
}

func TestVerify_NegativeTimeout(t *testing.T) {
	inTempDir(t)
	writeFile(t, "up.sql", "SELECT 1;\n")

	_, _, err := executeCommand(t, "verify", "up.sql", "--connection", "postgresql://localhost:5432/scratch", "--timeout", "-1s")
	require.Error(t, err)
	assert.True(t, errors.Is(err, pgconsolidate.ErrInvalidConfig))
}
