package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/vitaminmoo/penta-wake/internal/ble"
	"github.com/vitaminmoo/penta-wake/internal/commands"
	"github.com/vitaminmoo/penta-wake/internal/config"
	"github.com/vitaminmoo/penta-wake/internal/logger"
	"github.com/vitaminmoo/penta-wake/internal/tracer"
	"github.com/vitaminmoo/penta-wake/internal/tui"
	"github.com/vitaminmoo/penta-wake/internal/wake"
)

// Swapped out in tests.
var (
	newAdapter           = openAdapter
	stdout     io.Writer = os.Stdout
	stdin      io.Reader = os.Stdin
)

// CLI is the root command structure for penta-wake.
type CLI struct {
	Verbose    bool   `short:"v" help:"Enable verbose debug output"`
	ConfigPath string `name:"config" type:"path" env:"PENTA_WAKE_CONFIG" help:"Config file (default: ${config_path})"`

	// Default command - wake
	Wake WakeCmd `cmd:"" default:"withargs" help:"Send the wake signal to a target (default)"`

	Explore ExploreCmd `cmd:"" help:"List services and characteristics of a target"`
	Config  ConfigCmd  `cmd:"" help:"Configuration file operations"`
	Tui     TuiCmd     `cmd:"" help:"Pick a target interactively"`
}

// Vars are the kong interpolation variables used in help text.
func Vars() map[string]string {
	return map[string]string{"config_path": config.DefaultPath()}
}

// TargetFlags select a configured target and override its fields.
type TargetFlags struct {
	Target string `arg:"" optional:"" help:"Configured target name (default target when omitted)"`

	Address        string        `short:"a" help:"Peripheral BLE address (MAC, or CoreBluetooth UUID on macOS)"`
	Service        string        `help:"GATT service UUID"`
	AnyService     bool          `help:"Search every service for the characteristic"`
	Characteristic string        `short:"c" help:"GATT characteristic UUID"`
	Payload        string        `short:"p" help:"Byte to write, e.g. 1 or 0x01"`
	Timeout        time.Duration `short:"t" help:"Bound on the whole operation, e.g. 5s"`
	Backend        string        `help:"BLE backend: tinygo or goble"`
	Adapter        string        `help:"Adapter id, e.g. hci0 (Linux only)"`
}

// apply merges the flags into cfg and returns the selected target.
func (f *TargetFlags) apply(cfg *config.Config) (config.Target, error) {
	if f.Backend != "" {
		cfg.Backend = f.Backend
	}
	if f.Adapter != "" {
		cfg.Adapter = f.Adapter
	}
	if err := config.Validate(cfg); err != nil {
		return config.Target{}, err
	}

	t, err := cfg.Target(f.Target)
	if err != nil {
		return t, err
	}
	if f.Address != "" {
		t.Address = f.Address
	}
	if f.Service != "" {
		t.Service = f.Service
	}
	if f.AnyService {
		t.Service = ""
	}
	if f.Characteristic != "" {
		t.Characteristic = f.Characteristic
	}
	if f.Payload != "" {
		p, err := config.ParsePayload(f.Payload)
		if err != nil {
			return t, err
		}
		t.Payload = p
	}
	if f.Timeout > 0 {
		t.Timeout = f.Timeout
	}
	return t, nil
}

// session holds what every device command needs.
type session struct {
	cfg     *config.Config
	logger  *slog.Logger
	closers []func() error
}

func (s *session) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			s.logger.Debug("shutdown", "error", err)
		}
	}
}

// quiet silences terminal logging, including the default logger, while the
// TUI owns the screen. File logging is left alone.
func (s *session) quiet() (*slog.Logger, func()) {
	if !logger.Terminal(s.cfg.Logger) {
		return s.logger, func() {}
	}
	prev := slog.Default()
	discard := logger.Discard()
	slog.SetDefault(discard)
	return discard, func() { slog.SetDefault(prev) }
}

func (c *CLI) path() string {
	if c.ConfigPath != "" {
		return c.ConfigPath
	}
	return config.DefaultPath()
}

// start loads config and installs the logger and tracer.
func (c *CLI) start(ctx context.Context) (*session, error) {
	config.Verbose = c.Verbose

	cfg, err := config.Load(c.path())
	if err != nil {
		return nil, err
	}

	log, closeLog, err := logger.New(cfg.Logger, c.Verbose)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	slog.SetDefault(log)
	s := &session{cfg: cfg, logger: log, closers: []func() error{closeLog}}

	shutdown, err := tracer.Setup(ctx, cfg.Tracer)
	if err != nil {
		s.close()
		return nil, fmt.Errorf("init tracer: %w", err)
	}
	s.closers = append(s.closers, func() error { return shutdown(context.Background()) })
	return s, nil
}

func (s *session) adapter() (ble.Adapter, error) {
	s.logger.Debug("opening adapter", "backend", s.cfg.Backend, "adapter", s.cfg.Adapter)
	return newAdapter(s.cfg)
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// --- Wake Command ---

type WakeCmd struct {
	TargetFlags `embed:""`
}

func (c *WakeCmd) Run(globals *CLI) error {
	ctx, cancel := signalContext()
	defer cancel()

	s, err := globals.start(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	target, err := c.apply(s.cfg)
	if err != nil {
		return err
	}

	adapter, err := s.adapter()
	if err != nil {
		return err
	}
	defer adapter.Close()

	return commands.Wake(ctx, wake.NewSender(adapter, s.logger), target, stdout)
}

// --- Explore Command ---

type ExploreCmd struct {
	TargetFlags `embed:""`

	JSON bool `help:"Print services as JSON"`
}

func (c *ExploreCmd) Run(globals *CLI) error {
	ctx, cancel := signalContext()
	defer cancel()

	s, err := globals.start(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	target, err := c.apply(s.cfg)
	if err != nil {
		return err
	}

	adapter, err := s.adapter()
	if err != nil {
		return err
	}
	defer adapter.Close()

	return commands.Explore(ctx, adapter, target, stdout, c.JSON)
}

// --- Config Commands ---

type ConfigCmd struct {
	Show ConfigShowCmd `cmd:"" help:"Print the effective configuration"`
	Init ConfigInitCmd `cmd:"" help:"Write a default configuration file"`
}

type ConfigShowCmd struct{}

func (c *ConfigShowCmd) Run(globals *CLI) error {
	config.Verbose = globals.Verbose
	cfg, err := config.Load(globals.path())
	if err != nil {
		return err
	}
	return commands.ConfigShow(cfg, stdout)
}

type ConfigInitCmd struct {
	Address string `short:"a" help:"Peripheral BLE address for the default target"`
	Force   bool   `short:"f" help:"Overwrite an existing file without asking"`
}

func (c *ConfigInitCmd) Run(globals *CLI) error {
	return commands.ConfigInit(globals.path(), c.Address, c.Force, stdin, stdout)
}

// --- TUI Command ---

type TuiCmd struct {
	Backend string `help:"BLE backend: tinygo or goble"`
	Adapter string `help:"Adapter id, e.g. hci0 (Linux only)"`
}

func (c *TuiCmd) Run(globals *CLI) error {
	ctx, cancel := signalContext()
	defer cancel()

	s, err := globals.start(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	flags := TargetFlags{Backend: c.Backend, Adapter: c.Adapter}
	if _, err := flags.apply(s.cfg); err != nil {
		return err
	}

	adapter, err := s.adapter()
	if err != nil {
		return err
	}
	defer adapter.Close()

	log, restore := s.quiet()
	defer restore()
	return tui.Run(ctx, s.cfg, wake.NewSender(adapter, log))
}
