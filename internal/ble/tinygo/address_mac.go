//go:build linux || windows

package tinygo

import (
	"fmt"

	"tinygo.org/x/bluetooth"
)

func parseAddress(address string) (bluetooth.Address, error) {
	mac, err := bluetooth.ParseMAC(address)
	if err != nil {
		return bluetooth.Address{}, fmt.Errorf("failed to parse MAC address: %w", err)
	}
	return bluetooth.Address{
		MACAddress: bluetooth.MACAddress{
			MAC: mac,
		},
	}, nil
}
