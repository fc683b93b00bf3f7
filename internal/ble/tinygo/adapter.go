// Package tinygo implements the ble interfaces on tinygo.org/x/bluetooth
// (BlueZ on Linux, CoreBluetooth on macOS, WinRT on Windows).
package tinygo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vitaminmoo/penta-wake/internal/ble"
	"github.com/vitaminmoo/penta-wake/internal/config"

	"tinygo.org/x/bluetooth"
)

var ErrAdapterInvalidID = errors.New("the bluetooth adapter ID is invalid on this platform")

// NewAdapter enables the adapter with the given id, or the default adapter
// when id is empty.
func NewAdapter(id string) (ble.Adapter, error) {
	device, err := newAdapter(id)
	if err != nil {
		return nil, ble.AdapterError(err)
	}
	config.Debugf("Enabling Bluetooth adapter %q...", id)
	if err := device.Enable(); err != nil {
		return nil, ble.AdapterError(fmt.Errorf("failed to enable adapter: %w", err))
	}
	return &adapter{device: device}, nil
}

type adapter struct {
	device *bluetooth.Adapter
}

// Connect opens a connection to address. bluetooth.Adapter.Connect does not
// take a context, so it runs under dial; a connection that completes after
// ctx is done is disconnected again.
func (a *adapter) Connect(ctx context.Context, address string) (ble.Device, error) {
	if err := ctx.Err(); err != nil {
		return nil, ble.ConnectionError(address, err)
	}

	addr, err := parseAddress(address)
	if err != nil {
		return nil, ble.ConnectionError(address, err)
	}

	params := bluetooth.ConnectionParams{}
	if deadline, ok := ctx.Deadline(); ok {
		params.ConnectionTimeout = bluetooth.NewDuration(time.Until(deadline))
	}

	config.Debugf("Connecting to %s...", address)
	client, err := dial(ctx,
		func() (bluetooth.Device, error) {
			return a.device.Connect(addr, params)
		},
		func(late bluetooth.Device) {
			if err := late.Disconnect(); err != nil {
				config.Debugf("Failed to drop late connection to %s: %v", address, err)
			}
		},
	)
	if err != nil {
		if ctx.Err() == nil && isAdapterError(err) {
			return nil, ble.AdapterError(err)
		}
		return nil, ble.ConnectionError(address, err)
	}
	config.Debugf("Connected to %s", address)
	return &device{client: client, address: address}, nil
}

func (a *adapter) Close() error {
	a.device = nil
	return nil
}
