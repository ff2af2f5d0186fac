package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/pgconsolidate/internal/ddl"
	"github.com/vvka-141/pgconsolidate/pkg/pgconsolidate"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ProjectConfig mirrors pgconsolidate.yaml. Zero values mean "use the
// default"; BookkeepingTable is a pointer so an explicit empty string can
// disable the exclusion.
type ProjectConfig struct {
	Output           string  `yaml:"output"`
	BookkeepingTable *string `yaml:"bookkeeping_table"`
	MigrationsDir    string  `yaml:"migrations_dir"`
	Boundaries       string  `yaml:"boundaries"`
	Connection       string  `yaml:"connection"`
	VerifyTimeout    string  `yaml:"verify_timeout"`
}

const ConfigFileName = "pgconsolidate.yaml"

// Load reads ConfigFileName from dir.
func Load(dir string) (*ProjectConfig, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads and validates the config file at path.
func LoadFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", pgconsolidate.ErrInvalidConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// Validate reports every invalid field at once.
func (c *ProjectConfig) Validate() error {
	var errs []error
	if _, err := ddl.ParseBoundaryMode(c.Boundaries); err != nil {
		errs = append(errs, fmt.Errorf("boundaries: %w", err))
	}
	if c.VerifyTimeout != "" {
		if d, err := time.ParseDuration(c.VerifyTimeout); err != nil {
			errs = append(errs, fmt.Errorf("verify_timeout: %w", err))
		} else if d <= 0 {
			errs = append(errs, fmt.Errorf("verify_timeout: must be positive, got %s", c.VerifyTimeout))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", pgconsolidate.ErrInvalidConfig, errors.Join(errs...))
}

// BoundaryMode returns the configured boundary mode. Call Validate first.
func (c *ProjectConfig) BoundaryMode() ddl.BoundaryMode {
	mode, _ := ddl.ParseBoundaryMode(c.Boundaries)
	return mode
}

// Timeout returns the configured verify timeout, or fallback when unset.
func (c *ProjectConfig) Timeout(fallback time.Duration) time.Duration {
	if c.VerifyTimeout == "" {
		return fallback
	}
	d, err := time.ParseDuration(c.VerifyTimeout)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
