package cli

import (
	"github.com/vitaminmoo/penta-wake/internal/ble"
	"github.com/vitaminmoo/penta-wake/internal/ble/goble"
	"github.com/vitaminmoo/penta-wake/internal/ble/tinygo"
	"github.com/vitaminmoo/penta-wake/internal/config"
)

func openAdapter(cfg *config.Config) (ble.Adapter, error) {
	if cfg.Backend == config.BackendGoBLE {
		return goble.NewAdapter(cfg.Adapter)
	}
	return tinygo.NewAdapter(cfg.Adapter)
}
