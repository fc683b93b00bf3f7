package tinygo

import (
	"fmt"

	"tinygo.org/x/bluetooth"
)

func isAdapterError(error) bool { return false }

func newAdapter(id string) (*bluetooth.Adapter, error) {
	if id != "" {
		return nil, ErrAdapterInvalidID
	}
	return bluetooth.DefaultAdapter, nil
}

var deviceCharacteristicWrite = bluetooth.DeviceCharacteristic.Write

func characteristicProperties(bluetooth.DeviceCharacteristic) []string { return nil }

// CoreBluetooth identifies peripherals by UUID, not MAC.
func parseAddress(address string) (bluetooth.Address, error) {
	uuid, err := bluetooth.ParseUUID(address)
	if err != nil {
		return bluetooth.Address{}, fmt.Errorf("failed to parse peripheral UUID: %w", err)
	}
	return bluetooth.Address{UUID: uuid}, nil
}
