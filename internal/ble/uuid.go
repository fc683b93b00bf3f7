package ble

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// baseUUIDSuffix completes 16- and 32-bit UUIDs against the Bluetooth base UUID.
const baseUUIDSuffix = "-0000-1000-8000-00805f9b34fb"

// NormalizeUUID returns the lowercase 128-bit form of a UUID given as 16-bit
// ("ff01", "0xFF01"), 32-bit ("0000ff01"), undashed or dashed 128-bit.
func NormalizeUUID(s string) (string, error) {
	in := strings.ToLower(strings.TrimSpace(s))
	in = strings.TrimPrefix(in, "0x")

	switch len(in) {
	case 4:
		in = "0000" + in + baseUUIDSuffix
	case 8:
		in += baseUUIDSuffix
	case 32, 36:
	default:
		return "", fmt.Errorf("invalid UUID %q", s)
	}

	u, err := uuid.Parse(in)
	if err != nil {
		return "", fmt.Errorf("invalid UUID %q: %w", s, err)
	}
	return u.String(), nil
}

// UUIDEqual compares two UUIDs in any form accepted by NormalizeUUID.
func UUIDEqual(a, b string) bool {
	na, err := NormalizeUUID(a)
	if err != nil {
		return false
	}
	nb, err := NormalizeUUID(b)
	if err != nil {
		return false
	}
	return na == nb
}
