package config

import (
	"errors"
	"math"
	"strings"

	"github.com/dshills/scenepick/internal/input/key"
	"github.com/dshills/scenepick/internal/input/mouse"
	"github.com/dshills/scenepick/internal/logging"
)

// DefaultFileName is the config file looked up when no path is given.
const DefaultFileName = "scenepick.toml"

// Config holds all settings.
type Config struct {
	Picking PickingConfig `toml:"picking"`
	Logging LoggingConfig `toml:"logging"`
	Metrics MetricsConfig `toml:"metrics"`
}

// PickingConfig tunes the viewport input rules.
type PickingConfig struct {
	// DragThreshold is how far in pixels a press must move to become a
	// rectangle selection.
	DragThreshold float64 `toml:"dragThreshold"`

	// ActionModifier is the modifier that subtracts from the selection:
	// "auto" picks Cmd on macOS and Ctrl elsewhere.
	ActionModifier string `toml:"actionModifier"`
}

// LoggingConfig selects log verbosity and encoding.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// MetricsConfig controls Prometheus instrumentation.
type MetricsConfig struct {
	Enabled bool `toml:"enabled"`
	// Addr is where /metrics is served. Empty disables the endpoint while
	// still collecting.
	Addr string `toml:"addr"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Picking: PickingConfig{
			DragThreshold:  mouse.DefaultDragThreshold,
			ActionModifier: "auto",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: string(logging.FormatText),
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Validate checks every setting and returns all problems joined.
func (c Config) Validate() error {
	var errs []error

	if c.Picking.DragThreshold <= 0 || math.IsNaN(c.Picking.DragThreshold) || math.IsInf(c.Picking.DragThreshold, 0) {
		errs = append(errs, &ValidationError{
			Path:    "picking.dragThreshold",
			Message: "must be a positive number of pixels",
			Value:   c.Picking.DragThreshold,
		})
	}
	if !validActionModifier(c.Picking.ActionModifier) {
		errs = append(errs, &ValidationError{
			Path:    "picking.actionModifier",
			Message: "must be auto, ctrl, meta, alt or shift",
			Value:   c.Picking.ActionModifier,
		})
	}
	if !logging.ValidLevel(c.Logging.Level) {
		errs = append(errs, &ValidationError{
			Path:    "logging.level",
			Message: "must be debug, info, warn or error",
			Value:   c.Logging.Level,
		})
	}
	switch logging.Format(strings.ToLower(c.Logging.Format)) {
	case logging.FormatText, logging.FormatJSON:
	default:
		errs = append(errs, &ValidationError{
			Path:    "logging.format",
			Message: "must be text or json",
			Value:   c.Logging.Format,
		})
	}

	return errors.Join(errs...)
}

// Action returns the resolved action modifier.
func (c Config) Action() key.Modifier {
	return key.ResolveAction(c.Picking.ActionModifier)
}

// LoggingOptions converts the logging section for logging.New.
func (c Config) LoggingOptions() logging.Config {
	lc := logging.DefaultConfig()
	lc.Level = logging.ParseLevel(c.Logging.Level)
	lc.Format = logging.Format(strings.ToLower(c.Logging.Format))
	return lc
}

func validActionModifier(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return true
	}
	return key.ParseModifiers(s) != key.ModNone
}
