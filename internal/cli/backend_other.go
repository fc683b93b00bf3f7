//go:build !linux

package cli

import (
	"fmt"

	"github.com/vitaminmoo/penta-wake/internal/ble"
	"github.com/vitaminmoo/penta-wake/internal/ble/tinygo"
	"github.com/vitaminmoo/penta-wake/internal/config"
)

func openAdapter(cfg *config.Config) (ble.Adapter, error) {
	if cfg.Backend == config.BackendGoBLE {
		return nil, ble.AdapterError(fmt.Errorf("the %s backend is only available on Linux", config.BackendGoBLE))
	}
	return tinygo.NewAdapter(cfg.Adapter)
}
