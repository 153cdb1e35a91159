package config

import (
	"fmt"
	"strconv"
	"strings"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "SCENEPICK_"

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// envSetter applies one variable to the config.
type envSetter func(cfg *Config, value string) error

// envMapping maps variable names to the setting they override.
var envMapping = map[string]envSetter{
	EnvPrefix + "DRAG_THRESHOLD": func(cfg *Config, v string) error {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return err
		}
		cfg.Picking.DragThreshold = f
		return nil
	},
	EnvPrefix + "ACTION_MODIFIER": func(cfg *Config, v string) error {
		cfg.Picking.ActionModifier = v
		return nil
	},
	EnvPrefix + "LOG_LEVEL": func(cfg *Config, v string) error {
		cfg.Logging.Level = v
		return nil
	},
	EnvPrefix + "LOG_FORMAT": func(cfg *Config, v string) error {
		cfg.Logging.Format = v
		return nil
	},
	EnvPrefix + "METRICS_ENABLED": func(cfg *Config, v string) error {
		b, err := parseBool(v)
		if err != nil {
			return err
		}
		cfg.Metrics.Enabled = b
		return nil
	},
	EnvPrefix + "METRICS_ADDR": func(cfg *Config, v string) error {
		cfg.Metrics.Addr = v
		return nil
	},
}

// EnvVars returns the names of all recognized variables.
func EnvVars() []string {
	names := make([]string, 0, len(envMapping))
	for name := range envMapping {
		names = append(names, name)
	}
	return names
}

// ApplyEnv overrides cfg from variables found through lookup. Empty values
// are treated as set.
func ApplyEnv(cfg *Config, lookup LookupFunc) error {
	for name, set := range envMapping {
		v, ok := lookup(name)
		if !ok {
			continue
		}
		if err := set(cfg, v); err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidEnv, name, v, err)
		}
	}
	return nil
}

// parseBool accepts the spellings people put in shell profiles.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0", "":
		return false, nil
	}
	return false, fmt.Errorf("not a boolean: %q", s)
}
