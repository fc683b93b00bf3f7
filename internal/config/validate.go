package config

import (
	"fmt"
	"strings"

	"github.com/vitaminmoo/penta-wake/internal/ble"
)

// ValidationError accumulates config validation errors.
type ValidationError struct {
	Errors []string
}

func (v *ValidationError) Error() string {
	return "config validation failed:\n  - " + strings.Join(v.Errors, "\n  - ")
}

// HasErrors reports whether any validation errors have been recorded.
func (v *ValidationError) HasErrors() bool {
	return len(v.Errors) > 0
}

// Add records a formatted validation error.
func (v *ValidationError) Add(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}

// Validate checks cfg for structural correctness. It returns a *ValidationError
// when one or more problems are found, allowing callers to inspect all issues.
func Validate(cfg *Config) error {
	ve := &ValidationError{}
	validateBackend(cfg, ve)
	validateTargets(cfg, ve)
	validateLogger(cfg, ve)
	validateTracer(cfg, ve)
	if ve.HasErrors() {
		return ve
	}
	return nil
}

func validateBackend(cfg *Config, ve *ValidationError) {
	switch cfg.Backend {
	case BackendTinyGo, BackendGoBLE:
	default:
		ve.Add("backend must be %q or %q, got %q", BackendTinyGo, BackendGoBLE, cfg.Backend)
	}
}

func validateTargets(cfg *Config, ve *ValidationError) {
	if len(cfg.Targets) == 0 {
		ve.Add("at least one target is required")
		return
	}

	seen := make(map[string]bool)
	for i, t := range cfg.Targets {
		prefix := fmt.Sprintf("targets[%d]", i)
		if t.Name == "" {
			ve.Add("%s.name is required", prefix)
		} else if seen[t.Name] {
			ve.Add("%s.name %q is duplicated", prefix, t.Name)
		}
		seen[t.Name] = true

		// The address is left to the BLE stack; an empty one is reported at wake time.
		if t.Service != "" {
			if _, err := ble.NormalizeUUID(t.Service); err != nil {
				ve.Add("%s.service: %v", prefix, err)
			}
		}
		if _, err := ble.NormalizeUUID(t.Characteristic); err != nil {
			ve.Add("%s.characteristic: %v", prefix, err)
		}
		if t.Timeout <= 0 {
			ve.Add("%s.timeout must be > 0", prefix)
		}
	}

	if !seen[cfg.Default] {
		ve.Add("default target %q is not defined", cfg.Default)
	}
}

func validateLogger(cfg *Config, ve *ValidationError) {
	switch strings.ToLower(cfg.Logger.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		ve.Add("logger.level %q is not one of debug, info, warn, error", cfg.Logger.Level)
	}
	switch strings.ToLower(cfg.Logger.Format) {
	case "", "text", "json":
	default:
		ve.Add("logger.format %q is not one of text, json", cfg.Logger.Format)
	}
}

func validateTracer(cfg *Config, ve *ValidationError) {
	if !cfg.Tracer.Enabled {
		return
	}
	switch cfg.Tracer.Exporter {
	case "stdout", "stderr", "noop", "":
	default:
		ve.Add("tracer.exporter %q is not supported", cfg.Tracer.Exporter)
	}
}

// Validate checks a single target is ready to wake.
func (t Target) Validate() error {
	ve := &ValidationError{}
	if t.Address == "" {
		ve.Add("no peripheral address configured for target %q", t.Name)
	}
	if _, err := ble.NormalizeUUID(t.Characteristic); err != nil {
		ve.Add("characteristic: %v", err)
	}
	if t.Service != "" {
		if _, err := ble.NormalizeUUID(t.Service); err != nil {
			ve.Add("service: %v", err)
		}
	}
	if t.Timeout < 0 {
		ve.Add("timeout must not be negative")
	}
	if ve.HasErrors() {
		return ve
	}
	return nil
}
