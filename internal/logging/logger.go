// Package logging builds the categorized zap loggers used by tracestat.
// Logs always go to a separate writer (stderr in the CLI) so they never mix with the
// report on stdout.
package logging

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"tracestat/internal/config"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot   Category = "boot"   // Config loading, startup
	CategoryParse  Category = "parse"  // Block splitting, section and table extraction
	CategoryReport Category = "report" // Report rendering
)

// Factory hands out per-category loggers derived from one base logger.
type Factory struct {
	base *zap.Logger
	cfg  config.LoggingConfig
}

// New builds a Factory from cfg. verbose forces debug level. A nil w means stderr.
func New(cfg config.LoggingConfig, verbose bool, w io.Writer) (*Factory, error) {
	if w == nil {
		w = os.Stderr
	}

	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	switch cfg.Format {
	case "json":
		enc = zapcore.NewJSONEncoder(encCfg)
	default:
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(w), zap.NewAtomicLevelAt(level))
	return &Factory{base: zap.New(core), cfg: cfg}, nil
}

// NewFactory wraps an existing logger, for callers that already have one.
func NewFactory(base *zap.Logger, cfg config.LoggingConfig) *Factory {
	if base == nil {
		base = zap.NewNop()
	}
	return &Factory{base: base, cfg: cfg}
}

// Get returns the logger for a category, or a no-op logger if the category is disabled.
func (f *Factory) Get(category Category) *zap.Logger {
	if f == nil || !f.cfg.IsCategoryEnabled(string(category)) {
		return zap.NewNop()
	}
	return f.base.Named(string(category))
}

// Sync flushes buffered log entries.
func (f *Factory) Sync() error {
	if f == nil {
		return nil
	}
	return f.base.Sync()
}

func parseLevel(s string) (zapcore.Level, error) {
	switch s {
	case "":
		return zapcore.WarnLevel, nil
	case "warning":
		s = "warn"
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return level, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}
