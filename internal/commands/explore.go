package commands

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vitaminmoo/penta-wake/internal/ble"
	"github.com/vitaminmoo/penta-wake/internal/config"
	"github.com/vitaminmoo/penta-wake/internal/util"
)

// Explore connects to t and lists its services and characteristics. The
// connection is released before returning.
func Explore(ctx context.Context, adapter ble.Adapter, t config.Target, w io.Writer, asJSON bool) error {
	if t.Address == "" {
		return fmt.Errorf("no peripheral address configured for target %q", t.Name)
	}
	timeout := t.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	device, err := adapter.Connect(ctx, t.Address)
	if err != nil {
		return err
	}
	defer func() {
		if err := device.Disconnect(); err != nil {
			config.Debugf("Disconnect failed: %v", err)
		}
	}()

	if !asJSON {
		fmt.Fprintln(w, mutedStyle.Render("Discovering services..."))
	}
	services, err := device.Services(ctx)
	if err != nil {
		return fmt.Errorf("failed to discover services: %w", err)
	}

	if asJSON {
		return writeServicesJSON(w, services)
	}
	WriteServices(w, services, t.Characteristic)
	return nil
}

// WriteServices renders services as text, marking the characteristic that
// matches wakeChar.
func WriteServices(w io.Writer, services []ble.ServiceInfo, wakeChar string) {
	fmt.Fprintf(w, "\nFound %d services:\n\n", len(services))

	for i, svc := range services {
		fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("Service #%d: %s", i+1, svc.UUID)))

		for j, char := range svc.Characteristics {
			line := fmt.Sprintf("  [%d] %s", j+1, char.UUID)
			if char.Properties != nil {
				line += " (" + strings.Join(char.Properties, ", ") + ")"
			}
			if wakeChar != "" && ble.UUIDEqual(char.UUID, wakeChar) {
				if char.Writable() {
					line += " " + successStyle.Render("<- wake")
				} else {
					line += " " + mutedStyle.Render("<- wake (not writable)")
				}
			}
			fmt.Fprintln(w, line)

			if len(char.Value) == 0 {
				continue
			}
			switch {
			case util.IsTextData(char.Value):
				fmt.Fprintf(w, "      Value: %s\n", string(char.Value))
			case len(char.Value) <= 16:
				fmt.Fprintf(w, "      Value: %X\n", char.Value)
			default:
				fmt.Fprintln(w, "      Value:")
				util.HexDump(w, char.Value, "        ")
			}
		}
		fmt.Fprintln(w)
	}
}

type serviceJSON struct {
	UUID            string               `json:"uuid"`
	Characteristics []characteristicJSON `json:"characteristics"`
}

type characteristicJSON struct {
	UUID       string   `json:"uuid"`
	Properties []string `json:"properties,omitempty"`
	Writable   bool     `json:"writable"`
	Value      string   `json:"value,omitempty"`
}

func writeServicesJSON(w io.Writer, services []ble.ServiceInfo) error {
	out := make([]serviceJSON, 0, len(services))
	for _, svc := range services {
		s := serviceJSON{UUID: svc.UUID, Characteristics: []characteristicJSON{}}
		for _, c := range svc.Characteristics {
			s.Characteristics = append(s.Characteristics, characteristicJSON{
				UUID:       c.UUID,
				Properties: c.Properties,
				Writable:   c.Writable(),
				Value:      hex.EncodeToString(c.Value),
			})
		}
		out = append(out, s)
	}

	data, err := json.Marshal(out)
	if err != nil {
		return err
	}
	PrintJSON(w, data)
	return nil
}
