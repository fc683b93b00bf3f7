package ble

import (
	"errors"
	"fmt"
)

var (
	// ErrConnection means the peripheral could not be found or connected to
	// before the timeout.
	ErrConnection = errors.New("ble: connection failed")

	// ErrAdapter means the local adapter could not be used at all. It is a
	// connection error: errors.Is(ErrAdapter, ErrConnection) holds.
	ErrAdapter = fmt.Errorf("%w: bluetooth adapter unavailable", ErrConnection)

	// ErrCharacteristicNotFound means no writable characteristic with the
	// requested UUID exists on the peripheral.
	ErrCharacteristicNotFound = errors.New("ble: characteristic not found")

	// ErrWrite means the transport rejected the write.
	ErrWrite = errors.New("ble: write failed")

	errNotWritable = errors.New("characteristic is not writable")
)

// ConnectionError wraps err as an ErrConnection for address.
func ConnectionError(address string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrConnection, address, err)
}

// AdapterError wraps err as an ErrAdapter.
func AdapterError(err error) error {
	return fmt.Errorf("%w: %w", ErrAdapter, err)
}

// CharacteristicNotFoundError reports a missing characteristic. cause may be nil.
func CharacteristicNotFoundError(service, characteristic string, cause error) error {
	where := "any service"
	if service != "" {
		where = "service " + service
	}
	if cause != nil {
		return fmt.Errorf("%w: %s in %s: %w", ErrCharacteristicNotFound, characteristic, where, cause)
	}
	return fmt.Errorf("%w: %s in %s", ErrCharacteristicNotFound, characteristic, where)
}

// WriteError wraps err as an ErrWrite for characteristic.
func WriteError(characteristic string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrWrite, characteristic, err)
}

// AdapterErrorHelpMessage explains how to get a working adapter.
func AdapterErrorHelpMessage(err error) string {
	return "Failed to initialize BLE adapter: \n\t" + err.Error() + "\n" +
		"Make sure bluez and dbus are installed and running and the adapter is powered on.\n" +
		"If running in a container, make sure the container has access to the host's D-Bus socket. (e.g. -v /var/run/dbus:/var/run/dbus)"
}
