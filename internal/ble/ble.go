// Package ble defines the BLE central operations penta-wake needs and the
// errors they fail with. Backends live in the tinygo and goble subpackages.
package ble

import (
	"context"
	"io"
)

// Adapter is a local BLE controller in the central role.
type Adapter interface {
	// Connect opens a connection to the peripheral at address. The context
	// deadline, if any, bounds the connection attempt.
	Connect(ctx context.Context, address string) (Device, error)
	Close() error
}

// Device is a connected peripheral. Disconnect must be called exactly once.
type Device interface {
	// Characteristic looks up a writable characteristic. An empty service
	// searches every service on the peripheral.
	Characteristic(ctx context.Context, service, characteristic string) (Characteristic, error)
	Services(ctx context.Context) ([]ServiceInfo, error)
	Disconnect() error
}

// Characteristic is a GATT characteristic that accepts writes.
type Characteristic interface {
	io.Writer
	UUID() string
}

// ServiceInfo describes one discovered GATT service.
type ServiceInfo struct {
	UUID            string
	Characteristics []CharacteristicInfo
}

// CharacteristicInfo describes one discovered characteristic. Properties is
// nil when the backend cannot report them.
type CharacteristicInfo struct {
	UUID       string
	Properties []string
	Value      []byte
}

// Writable reports whether the characteristic advertises a write property.
// Unknown properties count as writable.
func (c CharacteristicInfo) Writable() bool {
	if c.Properties == nil {
		return true
	}
	for _, p := range c.Properties {
		if p == "write" || p == "write-without-response" {
			return true
		}
	}
	return false
}
