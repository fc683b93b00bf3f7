package tinygo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"tinygo.org/x/bluetooth"

	"github.com/vitaminmoo/penta-wake/internal/ble"
)

func TestWithResponse(t *testing.T) {
	assert.True(t, withResponse(ble.PropWrite))
	assert.True(t, withResponse(ble.PropWrite|ble.PropWriteWithoutResponse))
	assert.False(t, withResponse(ble.PropWriteWithoutResponse))
	assert.False(t, withResponse(ble.PropRead|ble.PropWriteWithoutResponse))
}

func TestCharacteristicPropertiesReported(t *testing.T) {
	props := characteristicProperties(bluetooth.DeviceCharacteristic{})
	assert.NotNil(t, props)
	assert.Empty(t, props)
	assert.False(t, ble.CharacteristicInfo{Properties: props}.Writable())
}

func TestNewAdapterRejectsID(t *testing.T) {
	_, err := newAdapter("hci0")
	assert.ErrorIs(t, err, ErrAdapterInvalidID)
}
