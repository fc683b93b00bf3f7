//go:build linux

package goble

import (
	"context"
	"fmt"

	goble "github.com/go-ble/ble"

	"github.com/vitaminmoo/penta-wake/internal/ble"
	"github.com/vitaminmoo/penta-wake/internal/config"
)

type device struct {
	client  goble.Client
	address string
	profile *goble.Profile
}

func (d *device) discover() (*goble.Profile, error) {
	if d.profile != nil {
		return d.profile, nil
	}
	config.Debugf("Discovering profile of %s...", d.address)
	p, err := d.client.DiscoverProfile(true)
	if err != nil {
		return nil, fmt.Errorf("failed to discover profile: %w", err)
	}
	d.profile = p
	return p, nil
}

func (d *device) Characteristic(ctx context.Context, service, characteristic string) (ble.Characteristic, error) {
	p, err := d.discover()
	if err != nil {
		return nil, ble.CharacteristicNotFoundError(service, characteristic, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, ble.CharacteristicNotFoundError(service, characteristic, err)
	}

	for _, svc := range p.Services {
		if service != "" && !ble.UUIDEqual(svc.UUID.String(), service) {
			continue
		}
		for _, c := range svc.Characteristics {
			if !ble.UUIDEqual(c.UUID.String(), characteristic) {
				continue
			}
			info := ble.CharacteristicInfo{Properties: ble.PropertyNames(uint32(c.Property))}
			if !info.Writable() {
				return nil, ble.NotWritableError(service, characteristic)
			}
			return &writer{
				client:         d.client,
				characteristic: c,
				noRsp:          c.Property&goble.CharWrite == 0,
			}, nil
		}
	}
	return nil, ble.CharacteristicNotFoundError(service, characteristic, nil)
}

func (d *device) Services(ctx context.Context) ([]ble.ServiceInfo, error) {
	p, err := d.discover()
	if err != nil {
		return nil, err
	}

	out := make([]ble.ServiceInfo, 0, len(p.Services))
	for _, svc := range p.Services {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		info := ble.ServiceInfo{UUID: svc.UUID.String()}
		for _, c := range svc.Characteristics {
			ci := ble.CharacteristicInfo{
				UUID:       c.UUID.String(),
				Properties: ble.PropertyNames(uint32(c.Property)),
			}
			if c.Property&goble.CharRead != 0 {
				if v, err := d.client.ReadCharacteristic(c); err == nil {
					ci.Value = v
				} else {
					config.Debugf("Failed to read %s: %v", ci.UUID, err)
				}
			}
			info.Characteristics = append(info.Characteristics, ci)
		}
		out = append(out, info)
	}
	return out, nil
}

func (d *device) Disconnect() error {
	config.Debugf("Disconnecting from %s", d.address)
	return d.client.CancelConnection()
}

type writer struct {
	client         goble.Client
	characteristic *goble.Characteristic
	noRsp          bool
}

func (w *writer) UUID() string { return w.characteristic.UUID.String() }

func (w *writer) Write(p []byte) (int, error) {
	if err := w.client.WriteCharacteristic(w.characteristic, p, w.noRsp); err != nil {
		return 0, err
	}
	return len(p), nil
}
