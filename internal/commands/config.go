package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/vitaminmoo/penta-wake/internal/config"
)

// ConfigShow writes the effective configuration as YAML.
func ConfigShow(cfg *config.Config, w io.Writer) error {
	data, err := config.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// ConfigInit writes a default configuration to path. address, if set, is
// stored on the default target. An existing file is only replaced with force
// or after the user confirms on in; a nil in never confirms.
func ConfigInit(path, address string, force bool, in io.Reader, w io.Writer) error {
	if !force && in != nil {
		if _, err := os.Stat(path); err == nil {
			force = ConfirmAction(in, w, fmt.Sprintf("%s already exists. Type 'yes' to overwrite: ", path))
		}
	}

	cfg := config.Defaults()
	cfg.Targets[0].Address = address

	if err := config.Save(path, cfg, force); err != nil {
		return err
	}
	fmt.Fprintf(w, "Wrote %s\n", path)
	if address == "" {
		fmt.Fprintln(w, mutedStyle.Render("Set targets[0].address to your power button's BLE address."))
	}
	return nil
}
