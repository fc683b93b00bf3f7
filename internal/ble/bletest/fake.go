// Package bletest provides in-memory BLE peripherals for tests.
package bletest

import (
	"context"
	"errors"
	"sync"

	"github.com/vitaminmoo/penta-wake/internal/ble"
)

// ErrUnreachable is returned by Adapter.Connect for unknown addresses once
// the context expires.
var ErrUnreachable = errors.New("bletest: peripheral not in range")

// Adapter is a fake ble.Adapter. Addresses not present in Peripherals behave
// like a powered-off device: Connect blocks until the context is done.
type Adapter struct {
	Peripherals map[string]*Peripheral
	ConnectErr  error

	mu       sync.Mutex
	connects int
	closed   bool
}

// NewAdapter returns an adapter that knows the given peripherals.
func NewAdapter(peripherals ...*Peripheral) *Adapter {
	a := &Adapter{Peripherals: make(map[string]*Peripheral)}
	for _, p := range peripherals {
		a.Peripherals[p.Address] = p
	}
	return a
}

func (a *Adapter) Connect(ctx context.Context, address string) (ble.Device, error) {
	a.mu.Lock()
	a.connects++
	p, ok := a.Peripherals[address]
	connectErr := a.ConnectErr
	a.mu.Unlock()

	if connectErr != nil {
		return nil, ble.ConnectionError(address, connectErr)
	}
	if !ok {
		<-ctx.Done()
		return nil, ble.ConnectionError(address, errors.Join(ErrUnreachable, ctx.Err()))
	}
	if err := ctx.Err(); err != nil {
		return nil, ble.ConnectionError(address, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.open++
	p.connects++
	return &device{peripheral: p}, nil
}

func (a *Adapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	return nil
}

// Connects reports how many connection attempts were made.
func (a *Adapter) Connects() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.connects
}

// Closed reports whether Close was called.
func (a *Adapter) Closed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.closed
}

// Peripheral is a fake GATT server.
type Peripheral struct {
	Address  string
	Services []Service

	// WriteErr, if set, fails every write.
	WriteErr error
	// ShortWrite makes writes report zero bytes written without an error.
	ShortWrite bool
	// DisconnectErr is returned from Disconnect.
	DisconnectErr error

	mu          sync.Mutex
	open        int
	connects    int
	disconnects int
	writes      []Write
}

// Service is a fake GATT service.
type Service struct {
	UUID            string
	Characteristics []Characteristic
}

// Characteristic is a fake GATT characteristic.
type Characteristic struct {
	UUID       string
	Properties []string
	Value      []byte
}

// Write records one write received by the peripheral.
type Write struct {
	Characteristic string
	Data           []byte
}

// NewPeripheral returns a peripheral with the default wake service.
func NewPeripheral(address string) *Peripheral {
	return &Peripheral{
		Address: address,
		Services: []Service{{
			UUID: ble.DefaultServiceUUID,
			Characteristics: []Characteristic{{
				UUID:       ble.DefaultCharacteristicUUID,
				Properties: []string{"write", "write-without-response"},
			}},
		}},
	}
}

// Writes returns a copy of every write received so far.
func (p *Peripheral) Writes() []Write {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Write, len(p.writes))
	copy(out, p.writes)
	return out
}

// OpenConnections reports connections not yet released.
func (p *Peripheral) OpenConnections() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.open
}

// Connects reports successful connections.
func (p *Peripheral) Connects() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.connects
}

// Disconnects reports Disconnect calls.
func (p *Peripheral) Disconnects() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.disconnects
}

type device struct {
	peripheral *Peripheral
	released   bool
}

func (d *device) Characteristic(_ context.Context, service, characteristic string) (ble.Characteristic, error) {
	p := d.peripheral
	for _, svc := range p.Services {
		if service != "" && !ble.UUIDEqual(svc.UUID, service) {
			continue
		}
		for _, c := range svc.Characteristics {
			if !ble.UUIDEqual(c.UUID, characteristic) {
				continue
			}
			info := ble.CharacteristicInfo{UUID: c.UUID, Properties: c.Properties}
			if !info.Writable() {
				return nil, ble.CharacteristicNotFoundError(service, characteristic, errors.New("characteristic is not writable"))
			}
			return &writer{peripheral: p, uuid: c.UUID}, nil
		}
	}
	return nil, ble.CharacteristicNotFoundError(service, characteristic, nil)
}

func (d *device) Services(_ context.Context) ([]ble.ServiceInfo, error) {
	var out []ble.ServiceInfo
	for _, svc := range d.peripheral.Services {
		info := ble.ServiceInfo{UUID: svc.UUID}
		for _, c := range svc.Characteristics {
			info.Characteristics = append(info.Characteristics, ble.CharacteristicInfo{
				UUID:       c.UUID,
				Properties: c.Properties,
				Value:      c.Value,
			})
		}
		out = append(out, info)
	}
	return out, nil
}

func (d *device) Disconnect() error {
	p := d.peripheral
	p.mu.Lock()
	defer p.mu.Unlock()
	p.disconnects++
	if !d.released {
		d.released = true
		p.open--
	}
	return p.DisconnectErr
}

type writer struct {
	peripheral *Peripheral
	uuid       string
}

func (w *writer) UUID() string { return w.uuid }

func (w *writer) Write(b []byte) (int, error) {
	p := w.peripheral
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.WriteErr != nil {
		return 0, p.WriteErr
	}
	if p.ShortWrite {
		return 0, nil
	}
	data := make([]byte, len(b))
	copy(data, b)
	p.writes = append(p.writes, Write{Characteristic: w.uuid, Data: data})
	return len(b), nil
}
