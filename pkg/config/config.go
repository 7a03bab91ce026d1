// pkg/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/David-Botos/report-migrator/pkg/layout"
	"github.com/David-Botos/report-migrator/pkg/model"
)

// Config is the declarative run configuration. Malformed or missing required
// entries fail the run before any network or browser activity begins.
type Config struct {
	// Reports to migrate, by their visible admin-UI name.
	Reports []string `yaml:"reports"`

	// Subtypes restricts which of the four template variants to migrate.
	// Empty means all of them.
	Subtypes []string `yaml:"subtypes"`

	// CreateMissingReports creates a target report when no report with the
	// source's name exists, instead of failing the run.
	CreateMissingReports bool `yaml:"createMissingReports"`

	// Headless toggles browser visibility.
	Headless bool `yaml:"headless"`

	// InterActionDelayMs paces browser steps; the only wait mechanism.
	InterActionDelayMs int `yaml:"interActionDelayMs"`

	// LayoutParam is the form parameter carrying the layout encoding.
	LayoutParam string `yaml:"layoutParam"`

	// APIVersion selects the metadata endpoint version.
	APIVersion string `yaml:"apiVersion"`

	// ArtifactsDir receives per-report blob dumps and the error log.
	// Empty disables blob dumps; the error log falls back to the working
	// directory.
	ArtifactsDir string `yaml:"artifactsDir"`

	// ImagePolicy controls stripping of embedded image markup.
	ImagePolicy layout.ImagePolicy `yaml:"imagePolicy"`
}

// Load reads and validates the run configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills unset optional values.
func (c *Config) applyDefaults() {
	if len(c.Subtypes) == 0 {
		c.Subtypes = append(c.Subtypes, model.ReportSubtypes...)
	}
	if c.InterActionDelayMs <= 0 {
		c.InterActionDelayMs = 1500
	}
	if c.LayoutParam == "" {
		c.LayoutParam = "reportLayout"
	}
	if c.APIVersion == "" {
		c.APIVersion = "59.0"
	}
}

// Validate ensures required entries are present and well-formed.
func (c *Config) Validate() error {
	if len(c.Reports) == 0 {
		return errors.New("at least one report name is required")
	}
	for i, name := range c.Reports {
		if name == "" {
			return fmt.Errorf("report name at index %d is empty", i)
		}
	}
	for _, s := range c.Subtypes {
		if !model.IsReportSubtype(s) {
			return fmt.Errorf("unknown report subtype %q (valid: %v)", s, model.ReportSubtypes)
		}
	}
	return nil
}

// InterActionDelay returns the configured pacing delay.
func (c *Config) InterActionDelay() time.Duration {
	return time.Duration(c.InterActionDelayMs) * time.Millisecond
}
