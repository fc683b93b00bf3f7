package tinygo

import (
	"context"

	"github.com/vitaminmoo/penta-wake/internal/ble"
	"github.com/vitaminmoo/penta-wake/internal/config"

	"tinygo.org/x/bluetooth"
)

type device struct {
	client  bluetooth.Device
	address string
}

// Characteristic discovers every service and characteristic and matches by
// UUID, so short and long UUID forms compare equal.
func (d *device) Characteristic(ctx context.Context, service, characteristic string) (ble.Characteristic, error) {
	config.Debugf("Discovering services on %s...", d.address)

	services, err := d.client.DiscoverServices(nil)
	if err != nil {
		return nil, ble.CharacteristicNotFoundError(service, characteristic, err)
	}

	for i := range services {
		if err := ctx.Err(); err != nil {
			return nil, ble.CharacteristicNotFoundError(service, characteristic, err)
		}

		uuidStr := services[i].UUID().String()
		if service != "" && !ble.UUIDEqual(uuidStr, service) {
			continue
		}
		config.Debugf("Found service: %s", uuidStr)

		chars, err := services[i].DiscoverCharacteristics(nil)
		if err != nil {
			return nil, ble.CharacteristicNotFoundError(service, characteristic, err)
		}
		for j := range chars {
			charStr := chars[j].UUID().String()
			config.Debugf("Found characteristic: %s", charStr)
			if !ble.UUIDEqual(charStr, characteristic) {
				continue
			}
			info := ble.CharacteristicInfo{UUID: charStr, Properties: characteristicProperties(chars[j])}
			if !info.Writable() {
				return nil, ble.NotWritableError(service, characteristic)
			}
			return &writer{characteristic: chars[j], uuid: charStr}, nil
		}
	}

	return nil, ble.CharacteristicNotFoundError(service, characteristic, nil)
}

// Services lists services and characteristics, reading each value where the
// peripheral allows it. Properties are only reported on Windows.
func (d *device) Services(ctx context.Context) ([]ble.ServiceInfo, error) {
	services, err := d.client.DiscoverServices(nil)
	if err != nil {
		return nil, err
	}

	out := make([]ble.ServiceInfo, 0, len(services))
	for _, svc := range services {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		info := ble.ServiceInfo{UUID: svc.UUID().String()}

		chars, err := svc.DiscoverCharacteristics(nil)
		if err != nil {
			config.Debugf("Failed to discover characteristics of %s: %v", info.UUID, err)
			out = append(out, info)
			continue
		}
		for _, char := range chars {
			ci := ble.CharacteristicInfo{
				UUID:       char.UUID().String(),
				Properties: characteristicProperties(char),
			}
			buf := make([]byte, 256)
			if n, err := char.Read(buf); err == nil && n > 0 {
				ci.Value = buf[:n]
			}
			info.Characteristics = append(info.Characteristics, ci)
		}
		out = append(out, info)
	}
	return out, nil
}

func (d *device) Disconnect() error {
	config.Debugf("Disconnecting from %s", d.address)
	return d.client.Disconnect()
}

type writer struct {
	characteristic bluetooth.DeviceCharacteristic
	uuid           string
}

func (w *writer) UUID() string { return w.uuid }

func (w *writer) Write(p []byte) (int, error) {
	return deviceCharacteristicWrite(w.characteristic, p)
}
