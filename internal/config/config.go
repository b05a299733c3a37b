package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is where tracestat looks for its config when --config is not given.
const DefaultConfigPath = ".tracestat.yaml"

// Config holds all tracestat configuration.
type Config struct {
	// Report sections and their sizes
	Report ReportConfig `yaml:"report"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// ReportConfig configures the rendered report.
type ReportConfig struct {
	// Number of hottest program counters to show
	TopPCs int `yaml:"top_pcs"`

	// Instructions shown on each side of a hot program counter
	Context int `yaml:"context"`

	// Distribution of exit codes (args of exit steps)
	ExitCodes bool `yaml:"exit_codes"`

	// Full program listing after the hot-spot section
	ShowProgram bool `yaml:"show_program"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Report: ReportConfig{
			TopPCs:  10,
			Context: 3,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return defaults if config file doesn't exist
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
// Unparseable numbers are ignored.
func (c *Config) applyEnvOverrides() {
	if level := os.Getenv("TRACESTAT_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if top := os.Getenv("TRACESTAT_TOP"); top != "" {
		if n, err := strconv.Atoi(top); err == nil {
			c.Report.TopPCs = n
		}
	}
	if ctx := os.Getenv("TRACESTAT_CONTEXT"); ctx != "" {
		if n, err := strconv.Atoi(ctx); err == nil {
			c.Report.Context = n
		}
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Report.TopPCs < 0 {
		return fmt.Errorf("report.top_pcs must be >= 0, got %d", c.Report.TopPCs)
	}
	if c.Report.Context < 0 {
		return fmt.Errorf("report.context must be >= 0, got %d", c.Report.Context)
	}
	return c.Logging.Validate()
}
