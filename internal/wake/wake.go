// Package wake sends the one-byte wake signal to a Penta power button.
package wake

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/vitaminmoo/penta-wake/internal/ble"
	"github.com/vitaminmoo/penta-wake/internal/config"
	"github.com/vitaminmoo/penta-wake/internal/tracer"
)

// Sender connects to a target, writes its payload once and disconnects.
// It holds no per-connection state; one Sender may serve any number of
// sequential sends.
type Sender struct {
	Adapter ble.Adapter
	Logger  *slog.Logger

	// FallbackTimeout bounds sends whose target has no timeout. Zero means
	// config.DefaultTimeout; a send is never unbounded.
	FallbackTimeout time.Duration
}

// NewSender returns a Sender on adapter. A nil logger uses slog.Default.
func NewSender(adapter ble.Adapter, logger *slog.Logger) *Sender {
	return &Sender{Adapter: adapter, Logger: logger}
}

func (s *Sender) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func (s *Sender) fallbackTimeout() time.Duration {
	if s.FallbackTimeout > 0 {
		return s.FallbackTimeout
	}
	return config.DefaultTimeout
}

// Send performs one wake operation against t. The connection is released on
// every path. Errors match ble.ErrConnection, ble.ErrCharacteristicNotFound
// or ble.ErrWrite under errors.Is.
func (s *Sender) Send(ctx context.Context, t config.Target) (err error) {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("invalid target: %w", err)
	}

	timeout := t.Timeout
	if timeout <= 0 {
		timeout = s.fallbackTimeout()
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ctx, span := tracer.StartSpan(ctx, "wake.send")
	defer span.End()
	span.SetAttributes(
		tracer.StringAttr("wake.target", t.Name),
		tracer.StringAttr("ble.address", t.Address),
		tracer.StringAttr("ble.characteristic", t.Characteristic),
		tracer.IntAttr("wake.payload", int(t.Payload)),
	)
	defer func() {
		if err != nil {
			tracer.RecordError(span, err)
		} else {
			tracer.SetOK(span)
		}
	}()

	log := s.logger().With("target", t.Name, "address", t.Address)
	log.Debug("connecting", "timeout", timeout)

	device, err := s.Adapter.Connect(ctx, t.Address)
	if err != nil {
		return err
	}
	defer func() {
		if derr := device.Disconnect(); derr != nil {
			log.Warn("disconnect failed", "error", derr)
		}
	}()

	char, err := device.Characteristic(ctx, t.Service, t.Characteristic)
	if err != nil {
		return err
	}

	payload := []byte{t.Payload}
	n, err := char.Write(payload)
	if err != nil {
		return ble.WriteError(char.UUID(), err)
	}
	if n != len(payload) {
		return ble.WriteError(char.UUID(), io.ErrShortWrite)
	}

	log.Info("wake signal sent",
		"characteristic", char.UUID(),
		"payload", fmt.Sprintf("0x%02x", t.Payload))
	return nil
}
