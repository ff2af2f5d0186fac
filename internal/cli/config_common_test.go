package cli

import (
	"errors"
	"os"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/pgconsolidate/pkg/pgconsolidate"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "settings"}
	cmd.Flags().String("output", "default.sql", "")
	cmd.Flags().String("config", "", "")
	return cmd
}

func TestStringSetting(t *testing.T) {
	t.Run("configured value beats default", func(t *testing.T) {
		cmd := newSettingsCmd()
		assert.Equal(t, "configured.sql", stringSetting(cmd, "output", "configured.sql"))
	})

	t.Run("explicit flag beats configured value", func(t *testing.T) {
		cmd := newSettingsCmd()
		require.NoError(t, cmd.Flags().Set("output", "flag.sql"))
		assert.Equal(t, "flag.sql", stringSetting(cmd, "output", "configured.sql"))
	})

	t.Run("default when nothing configured", func(t *testing.T) {
		cmd := newSettingsCmd()
		assert.Equal(t, "default.sql", stringSetting(cmd, "output", ""))
	})
}

func TestLoadProjectConfig(t *testing.T) {
	t.Run("missing implicit config is empty", func(t *testing.T) {
		inTempDir(t)
		cfg, err := loadProjectConfig(newSettingsCmd())
		require.NoError(t, err)
		assert.Empty(t, cfg.Output)
		assert.Nil(t, cfg.BookkeepingTable)
	})

	t.Run("implicit config is read", func(t *testing.T) {
		inTempDir(t)
		writeFile(t, "pgconsolidate.yaml", "output: x/up.sql\n")
		cfg, err := loadProjectConfig(newSettingsCmd())
		require.NoError(t, err)
		assert.Equal(t, "x/up.sql", cfg.Output)
	})

	t.Run("explicit config must exist", func(t *testing.T) {
		inTempDir(t)
		cmd := newSettingsCmd()
		require.NoError(t, cmd.Flags().Set("config", "missing.yaml"))
		_, err := loadProjectConfig(cmd)
		require.Error(t, err)
		assert.True(t, errors.Is(err, pgconsolidate.ErrInvalidConfig))
	})

	t.Run("malformed config", func(t *testing.T) {
		inTempDir(t)
		writeFile(t, "pgconsolidate.yaml", "output: [unclosed\n")
		_, err := loadProjectConfig(newSettingsCmd())
		require.Error(t, err)
		assert.True(t, errors.Is(err, pgconsolidate.ErrInvalidConfig))
	})

	t.Run("dotenv is loaded", func(t *testing.T) {
		inTempDir(t)
		t.Setenv("DATABASE_URL", "")
		require.NoError(t, os.Unsetenv("DATABASE_URL"))
		writeFile(t, ".env", "DATABASE_URL=postgresql://from-dotenv/db\n")
		_, err := loadProjectConfig(newSettingsCmd())
		require.NoError(t, err)
		assert.Equal(t, "postgresql://from-dotenv/db", os.Getenv("DATABASE_URL"))
	})
}
