package tinygo

import (
	"tinygo.org/x/bluetooth"

	"github.com/vitaminmoo/penta-wake/internal/ble"
)

func isAdapterError(error) bool { return false }

func newAdapter(id string) (*bluetooth.Adapter, error) {
	if id != "" {
		return nil, ErrAdapterInvalidID
	}
	return bluetooth.DefaultAdapter, nil
}

// WinRT refuses a write mode the characteristic does not advertise.
func deviceCharacteristicWrite(c bluetooth.DeviceCharacteristic, p []byte) (int, error) {
	if withResponse(c.Properties()) {
		return c.Write(p)
	}
	return c.WriteWithoutResponse(p)
}

func withResponse(bits uint32) bool {
	return bits&ble.PropWrite != 0 || bits&ble.PropWriteWithoutResponse == 0
}

func characteristicProperties(c bluetooth.DeviceCharacteristic) []string {
	return ble.PropertyNames(c.Properties())
}
