package ble

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPropertyNames(t *testing.T) {
	assert.Equal(t, []string{}, PropertyNames(0))
	assert.NotNil(t, PropertyNames(0))
	assert.Equal(t, []string{"read", "write-without-response", "write"},
		PropertyNames(PropRead|PropWrite|PropWriteWithoutResponse))
	assert.Equal(t, []string{"notify"}, PropertyNames(PropNotify))
	// Windows reliable-writes and writable-auxiliaries bits.
	assert.Equal(t, []string{"indicate"}, PropertyNames(PropIndicate|0x100|0x200))
	assert.Len(t, PropertyNames(0xff), 8)
}

func TestWritableFromPropertyBits(t *testing.T) {
	tests := []struct {
		bits     uint32
		writable bool
	}{
		{0, false},
		{PropRead | PropNotify, false},
		{PropWrite, true},
		{PropWriteWithoutResponse, true},
		{PropRead | PropWrite | PropNotify, true},
		{PropAuthenticatedSignedWrites, false},
	}
	for _, tt := range tests {
		info := CharacteristicInfo{Properties: PropertyNames(tt.bits)}
		assert.Equal(t, tt.writable, info.Writable(), "bits %#x", tt.bits)
	}

	assert.True(t, CharacteristicInfo{}.Writable())
}

func TestNotWritableError(t *testing.T) {
	err := NotWritableError("", "ff01")
	assert.ErrorIs(t, err, ErrCharacteristicNotFound)
	assert.ErrorIs(t, err, errNotWritable)
	assert.Contains(t, err.Error(), "ff01 in any service")
	assert.Contains(t, err.Error(), "not writable")
}
