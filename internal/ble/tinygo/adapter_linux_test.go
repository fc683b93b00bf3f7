package tinygo

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAdapterError(t *testing.T) {
	assert.True(t, isAdapterError(errors.New("dial unix /var/run/dbus/system_bus_socket: connect: no such file or directory")))
	assert.True(t, isAdapterError(errors.New("The name org.bluez was not provided by any .service files")))
	assert.True(t, isAdapterError(errors.New("org.bluez.Error.NotReady: Resource Not Ready")))
	assert.False(t, isAdapterError(errors.New("le-connection-abort-by-local")))
}

func TestParseAddress(t *testing.T) {
	addr, err := parseAddress("AA:BB:CC:DD:EE:FF")
	require.NoError(t, err)
	assert.Equal(t, "AA:BB:CC:DD:EE:FF", addr.String())

	_, err = parseAddress("not-a-mac")
	assert.Error(t, err)
}
