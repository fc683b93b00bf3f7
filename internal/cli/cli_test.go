package cli

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitaminmoo/penta-wake/internal/ble"
	"github.com/vitaminmoo/penta-wake/internal/ble/bletest"
	"github.com/vitaminmoo/penta-wake/internal/config"
)

func parse(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()
	var c CLI
	parser, err := kong.New(&c, kong.Name("penta-wake"), kong.Vars(Vars()), kong.Exit(func(int) {}))
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	require.NoError(t, err)
	return &c, kctx
}

func TestParseDefaultsToWake(t *testing.T) {
	c, kctx := parse(t)
	assert.True(t, strings.HasPrefix(kctx.Command(), "wake"))
	assert.Empty(t, c.Wake.Target)

	c, kctx = parse(t, "lab", "--payload", "0x02", "-t", "3s")
	assert.True(t, strings.HasPrefix(kctx.Command(), "wake"))
	assert.Equal(t, "lab", c.Wake.Target)
	assert.Equal(t, "0x02", c.Wake.Payload)
	assert.Equal(t, 3*time.Second, c.Wake.Timeout)
}

func TestParseSubcommands(t *testing.T) {
	c, kctx := parse(t, "-v", "--config", "/tmp/x.yaml", "explore", "--json", "--any-service")
	assert.Equal(t, "explore", kctx.Command())
	assert.True(t, c.Verbose)
	assert.Equal(t, "/tmp/x.yaml", c.ConfigPath)
	assert.True(t, c.Explore.JSON)
	assert.True(t, c.Explore.AnyService)

	c, kctx = parse(t, "config", "init", "-a", "AA:BB:CC:DD:EE:FF", "--force")
	assert.Equal(t, "config init", kctx.Command())
	assert.Equal(t, "AA:BB:CC:DD:EE:FF", c.Config.Init.Address)
	assert.True(t, c.Config.Init.Force)
}

func TestTargetFlagsApply(t *testing.T) {
	cfg := config.Defaults()
	cfg.Targets[0].Address = "11:22:33:44:55:66"

	f := TargetFlags{
		Address:        "AA:BB:CC:DD:EE:FF",
		AnyService:     true,
		Characteristic: "ff02",
		Payload:        "2",
		Timeout:        time.Second,
		Backend:        config.BackendGoBLE,
		Adapter:        "hci1",
	}
	target, err := f.apply(cfg)
	require.NoError(t, err)

	assert.Equal(t, "AA:BB:CC:DD:EE:FF", target.Address)
	assert.Empty(t, target.Service)
	assert.Equal(t, "ff02", target.Characteristic)
	assert.Equal(t, byte(2), target.Payload)
	assert.Equal(t, time.Second, target.Timeout)
	assert.Equal(t, config.BackendGoBLE, cfg.Backend)
	assert.Equal(t, "hci1", cfg.Adapter)
}

func TestTargetFlagsApplyErrors(t *testing.T) {
	_, err := (&TargetFlags{Target: "garage"}).apply(config.Defaults())
	assert.ErrorContains(t, err, `unknown target "garage"`)

	_, err = (&TargetFlags{Payload: "300"}).apply(config.Defaults())
	assert.ErrorContains(t, err, "single byte")

	_, err = (&TargetFlags{Backend: "bluetoothctl"}).apply(config.Defaults())
	var ve *config.ValidationError
	assert.ErrorAs(t, err, &ve)
}

// fakeBackend routes every command to an in-memory adapter.
func fakeBackend(t *testing.T, adapter ble.Adapter) *bytes.Buffer {
	t.Helper()
	var out bytes.Buffer
	prevAdapter, prevOut := newAdapter, stdout
	newAdapter = func(*config.Config) (ble.Adapter, error) { return adapter, nil }
	stdout = &out
	t.Cleanup(func() { newAdapter, stdout = prevAdapter, prevOut })
	return &out
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const testConfig = `
targets:
  - name: penta
    address: "AA:BB:CC:DD:EE:FF"
  - name: lab
    address: "11:22:33:44:55:66"
    payload: 2
logger:
  output: %s
`

func TestRunWake(t *testing.T) {
	p := bletest.NewPeripheral("11:22:33:44:55:66")
	adapter := bletest.NewAdapter(p)
	out := fakeBackend(t, adapter)

	logPath := filepath.Join(t.TempDir(), "wake.log")
	path := writeConfig(t, fmtConfig(logPath))

	c, kctx := parse(t, "--config", path, "lab")
	require.NoError(t, kctx.Run(c))

	assert.Contains(t, out.String(), "Wake signal sent to lab (11:22:33:44:55:66).")
	require.Len(t, p.Writes(), 1)
	assert.Equal(t, []byte{0x02}, p.Writes()[0].Data)
	assert.True(t, adapter.Closed())

	logged, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(logged), "wake signal sent")
}

func TestRunWakeUnreachable(t *testing.T) {
	adapter := bletest.NewAdapter()
	fakeBackend(t, adapter)
	path := writeConfig(t, fmtConfig(filepath.Join(t.TempDir(), "wake.log")))

	c, kctx := parse(t, "--config", path, "wake", "--timeout", "20ms")
	err := kctx.Run(c)
	assert.ErrorIs(t, err, ble.ErrConnection)
	assert.True(t, adapter.Closed())
}

func TestRunExplore(t *testing.T) {
	p := bletest.NewPeripheral("AA:BB:CC:DD:EE:FF")
	out := fakeBackend(t, bletest.NewAdapter(p))
	path := writeConfig(t, fmtConfig(filepath.Join(t.TempDir(), "wake.log")))

	c, kctx := parse(t, "--config", path, "explore")
	require.NoError(t, kctx.Run(c))
	assert.Contains(t, out.String(), "Found 1 services:")
	assert.Empty(t, p.Writes())
}

func TestRunConfigShowAndInit(t *testing.T) {
	out := fakeBackend(t, bletest.NewAdapter())
	path := filepath.Join(t.TempDir(), "config.yaml")

	c, kctx := parse(t, "--config", path, "config", "init", "-a", "AA:BB:CC:DD:EE:FF")
	require.NoError(t, kctx.Run(c))
	assert.FileExists(t, path)

	out.Reset()
	c, kctx = parse(t, "--config", path, "config", "show")
	require.NoError(t, kctx.Run(c))
	assert.Contains(t, out.String(), "AA:BB:CC:DD:EE:FF")
}

func fmtConfig(logPath string) string {
	return fmt.Sprintf(testConfig, logPath)
}

func TestStartVerboseLogsDebugToFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "wake.log")
	path := writeConfig(t, fmtConfig(logPath)+"  level: error\n")
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev); config.Verbose = false })

	c, _ := parse(t, "-v", "--config", path, "config", "show")
	s, err := c.start(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "error", s.cfg.Logger.Level)

	config.Debugf("adapter %s", "hci0")
	s.close()

	logged, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(logged), "adapter hci0")
}

func TestSessionQuietTerminal(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	installed := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(installed)
	t.Cleanup(func() { slog.SetDefault(prev); config.Verbose = false })
	config.Verbose = true

	cfg := config.Defaults()
	cfg.Logger.Output = "stderr"
	s := &session{cfg: cfg, logger: installed}

	log, restore := s.quiet()
	ctx := context.Background()
	assert.False(t, log.Enabled(ctx, slog.LevelError))
	assert.False(t, slog.Default().Enabled(ctx, slog.LevelError))
	config.Debugf("scanning %d", 1)
	assert.Empty(t, buf.String())

	restore()
	assert.Same(t, installed, slog.Default())
	config.Debugf("scanning %d", 2)
	assert.Contains(t, buf.String(), "scanning 2")
}

func TestSessionQuietFileOutput(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	cfg := config.Defaults()
	cfg.Logger.Output = filepath.Join(t.TempDir(), "wake.log")
	installed := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	slog.SetDefault(installed)
	s := &session{cfg: cfg, logger: installed}

	log, restore := s.quiet()
	defer restore()
	assert.Same(t, installed, log)
	assert.Same(t, installed, slog.Default())
}
