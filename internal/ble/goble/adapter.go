//go:build linux

// Package goble implements the ble interfaces on github.com/go-ble/ble,
// talking HCI directly instead of going through BlueZ. Linux only; the
// process needs CAP_NET_ADMIN and the adapter must be down in bluetoothd.
package goble

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	goble "github.com/go-ble/ble"
	"github.com/go-ble/ble/linux"

	"github.com/vitaminmoo/penta-wake/internal/ble"
	"github.com/vitaminmoo/penta-wake/internal/config"
)

const dialTimeout = 20 * time.Second

var ErrAdapterInvalidID = errors.New("the bluetooth adapter ID must look like hci0")

// NewAdapter opens the HCI device named by id (hci0 when empty).
func NewAdapter(id string) (ble.Adapter, error) {
	opts := []goble.Option{goble.OptDialerTimeout(dialTimeout)}
	if id != "" {
		n, err := parseDeviceID(id)
		if err != nil {
			return nil, ble.AdapterError(err)
		}
		opts = append(opts, goble.OptDeviceID(n))
	}

	config.Debugf("Creating HCI device %q...", id)
	device, err := linux.NewDevice(opts...)
	if err != nil {
		return nil, ble.AdapterError(fmt.Errorf("failed to open HCI device: %w", err))
	}
	return &adapter{device: device}, nil
}

func parseDeviceID(id string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(id, "hci"))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrAdapterInvalidID, id)
	}
	return n, nil
}

type adapter struct {
	device goble.Device
}

func (a *adapter) Connect(ctx context.Context, address string) (ble.Device, error) {
	config.Debugf("Dialing %s...", address)
	client, err := a.device.Dial(ctx, goble.NewAddr(address))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = errors.Join(err, ctxErr)
		}
		return nil, ble.ConnectionError(address, err)
	}
	config.Debugf("Connected to %s", client.Addr())
	return &device{client: client, address: address}, nil
}

func (a *adapter) Close() error {
	if a.device == nil {
		return nil
	}
	device := a.device
	a.device = nil
	return device.Stop()
}
