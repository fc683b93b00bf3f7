package tinygo

import (
	"strings"

	"tinygo.org/x/bluetooth"
)

// isAdapterError reports failures of the BlueZ stack rather than the peripheral.
func isAdapterError(err error) bool {
	msg := err.Error()
	// D-Bus not found
	if strings.Contains(msg, "dbus") && strings.HasSuffix(msg, "no such file or directory") {
		return true
	}
	// D-Bus is running but org.bluez is not found
	if strings.Contains(msg, "The name org.bluez was not provided by any .service files") {
		return true
	}
	return strings.Contains(msg, "org.bluez.Error.NotReady")
}

func newAdapter(id string) (*bluetooth.Adapter, error) {
	if id != "" {
		return bluetooth.NewAdapter(id), nil
	}
	return bluetooth.DefaultAdapter, nil
}

// BlueZ only exposes write-without-response through this library.
var deviceCharacteristicWrite = bluetooth.DeviceCharacteristic.WriteWithoutResponse

// BlueZ characteristics do not expose their properties here.
func characteristicProperties(bluetooth.DeviceCharacteristic) []string { return nil }
