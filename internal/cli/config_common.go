package cli

import (
	"errors"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/pgconsolidate/internal/config"
	"github.com/vvka-141/pgconsolidate/internal/logging"
	"github.com/vvka-141/pgconsolidate/pkg/pgconsolidate"
)

// loadProjectConfig loads .env and the project configuration.
// Without --config a missing pgconsolidate.yaml yields an empty config;
// an explicit --config path must exist.
func loadProjectConfig(cmd *cobra.Command) (*config.ProjectConfig, error) {
	_ = godotenv.Load()

	path, _ := cmd.Flags().GetString("config")
	var (
		cfg *config.ProjectConfig
		err error
	)
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load(".")
	}

	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			if path != "" {
				return nil, fmt.Errorf("%w: config file %s not found", pgconsolidate.ErrInvalidConfig, path)
			}
			return &config.ProjectConfig{}, nil
		}
		return nil, fmt.Errorf("failed to load %s: %w", config.ConfigFileName, err)
	}
	return cfg, nil
}

// newLogger creates the stderr logger for a command.
func newLogger(cmd *cobra.Command) pgconsolidate.Logger {
	return logging.NewConsoleLoggerTo(cmd.ErrOrStderr(), getVerboseFlag(cmd))
}

// stringSetting returns the flag value when it was set explicitly, else the
// configured value when non-empty, else the flag's value.
func stringSetting(cmd *cobra.Command, flag, configured string) string {
	value, _ := cmd.Flags().GetString(flag)
	if cmd.Flags().Changed(flag) || configured == "" {
		return value
	}
	return configured
}
