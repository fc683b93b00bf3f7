package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vitaminmoo/penta-wake/internal/ble"
)

// Verbose enables debug output when true
var Verbose bool

// Debugf logs BLE debug traces when Verbose is true
func Debugf(format string, args ...any) {
	if Verbose {
		slog.Debug(fmt.Sprintf(format, args...))
	}
}

const (
	BackendTinyGo = "tinygo"
	BackendGoBLE  = "goble"

	DefaultTargetName = "penta"
	DefaultTimeout    = 10 * time.Second

	envPrefix = "PENTA_WAKE_"
)

// Config is the top-level configuration.
type Config struct {
	Backend string       `yaml:"backend"`
	Adapter string       `yaml:"adapter,omitempty"` // adapter id, e.g. hci0 (Linux only)
	Default string       `yaml:"default"`
	Targets []Target     `yaml:"targets"`
	Logger  LoggerConfig `yaml:"logger"`
	Tracer  TracerConfig `yaml:"tracer"`
}

// Target is one wake peripheral: where it is and what to write.
type Target struct {
	Name           string        `yaml:"name"`
	Address        string        `yaml:"address"`
	Service        string        `yaml:"service,omitempty"` // empty searches every service
	Characteristic string        `yaml:"characteristic"`
	Payload        byte          `yaml:"payload"`
	Timeout        time.Duration `yaml:"timeout"`
}

// LoggerConfig holds logging settings.
type LoggerConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// TracerConfig holds tracing settings.
type TracerConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Exporter string `yaml:"exporter"`
}

// DefaultTarget returns the Penta power button with an unset address.
func DefaultTarget() Target {
	return Target{
		Name:           DefaultTargetName,
		Service:        ble.DefaultServiceUUID,
		Characteristic: ble.DefaultCharacteristicUUID,
		Payload:        ble.DefaultPayload,
		Timeout:        DefaultTimeout,
	}
}

// Defaults returns a Config with sensible defaults.
func Defaults() *Config {
	return &Config{
		Backend: BackendTinyGo,
		Default: DefaultTargetName,
		Targets: []Target{DefaultTarget()},
		Logger: LoggerConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
		Tracer: TracerConfig{
			Enabled:  false,
			Exporter: "stderr",
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/penta-wake/config.yaml (or the OS equivalent).
// Falls back to ./penta-wake.yaml if the config dir cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "penta-wake.yaml"
	}
	return filepath.Join(dir, "penta-wake", "config.yaml")
}

// Load reads a YAML config file over the defaults and applies env var overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		// Targets in the file replace the default list rather than merge into it.
		cfg.Targets = nil
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
		if len(cfg.Targets) == 0 {
			cfg.Targets = []Target{DefaultTarget()}
		}
		cfg.fillTargetDefaults()
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := ApplyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// fillTargetDefaults completes targets that leave fields out.
func (c *Config) fillTargetDefaults() {
	for i := range c.Targets {
		t := &c.Targets[i]
		if t.Characteristic == "" {
			t.Characteristic = ble.DefaultCharacteristicUUID
		}
		if t.Payload == 0 {
			t.Payload = ble.DefaultPayload
		}
		if t.Timeout == 0 {
			t.Timeout = DefaultTimeout
		}
	}
	if c.Default == "" && len(c.Targets) > 0 {
		c.Default = c.Targets[0].Name
	}
}

// ApplyEnvOverrides maps PENTA_WAKE_* env vars to config fields. Target
// overrides apply to the default target.
func ApplyEnvOverrides(cfg *Config) error {
	if v := os.Getenv(envPrefix + "BACKEND"); v != "" {
		cfg.Backend = v
	}
	if v := os.Getenv(envPrefix + "ADAPTER"); v != "" {
		cfg.Adapter = v
	}
	if v := os.Getenv(envPrefix + "LOG_LEVEL"); v != "" {
		cfg.Logger.Level = v
	}
	if v := os.Getenv(envPrefix + "LOG_FORMAT"); v != "" {
		cfg.Logger.Format = v
	}
	if v := os.Getenv(envPrefix + "LOG_OUTPUT"); v != "" {
		cfg.Logger.Output = v
	}
	if v := os.Getenv(envPrefix + "TRACER_ENABLED"); v != "" {
		cfg.Tracer.Enabled = v == "true" || v == "1"
	}
	if v := os.Getenv(envPrefix + "TRACER_EXPORTER"); v != "" {
		cfg.Tracer.Exporter = v
	}

	t := cfg.defaultTarget()
	if t == nil {
		return nil
	}
	if v := os.Getenv(envPrefix + "ADDRESS"); v != "" {
		t.Address = v
	}
	if v := os.Getenv(envPrefix + "SERVICE"); v != "" {
		t.Service = v
	}
	if v := os.Getenv(envPrefix + "CHARACTERISTIC"); v != "" {
		t.Characteristic = v
	}
	if v := os.Getenv(envPrefix + "PAYLOAD"); v != "" {
		p, err := ParsePayload(v)
		if err != nil {
			return fmt.Errorf("%sPAYLOAD: %w", envPrefix, err)
		}
		t.Payload = p
	}
	if v := os.Getenv(envPrefix + "TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sTIMEOUT: %w", envPrefix, err)
		}
		t.Timeout = d
	}
	return nil
}

func (c *Config) defaultTarget() *Target {
	for i := range c.Targets {
		if c.Targets[i].Name == c.Default {
			return &c.Targets[i]
		}
	}
	return nil
}

// Target returns the named target, or the default target when name is empty.
func (c *Config) Target(name string) (Target, error) {
	if name == "" {
		name = c.Default
	}
	for _, t := range c.Targets {
		if t.Name == name {
			return t, nil
		}
	}
	return Target{}, fmt.Errorf("unknown target %q", name)
}

// ParsePayload parses a single byte given in decimal, hex (0x01) or octal.
func ParsePayload(s string) (byte, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 0, 8)
	if err != nil {
		return 0, fmt.Errorf("payload must be a single byte (0-255): %q", s)
	}
	return byte(v), nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// Save writes cfg to path, creating parent directories. It refuses to
// overwrite an existing file unless force is set.
func Save(path string, cfg *Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}

	data, err := Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
