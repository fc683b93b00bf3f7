package util

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTextData(t *testing.T) {
	assert.True(t, IsTextData([]byte("Penta Power Btn")))
	assert.True(t, IsTextData([]byte("line\r\n\tnext")))
	assert.True(t, IsTextData(nil))
	assert.False(t, IsTextData([]byte{0x01}))
	assert.False(t, IsTextData([]byte{'a', 0x7f}))
}

func TestHexDump(t *testing.T) {
	var buf bytes.Buffer
	HexDump(&buf, []byte("0123456789abcdefXY\x00"), "  ")

	want := "  0000  30 31 32 33 34 35 36 37  38 39 61 62 63 64 65 66  |0123456789abcdef|\n" +
		"  0010  58 59 00                                          |XY.|\n"
	assert.Equal(t, want, buf.String())
}
