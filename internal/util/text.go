package util

import (
	"fmt"
	"io"
)

// IsTextData checks if a byte slice contains only printable ASCII text
func IsTextData(data []byte) bool {
	for _, b := range data {
		if b < 32 && b != 9 && b != 10 && b != 13 || b > 126 {
			return false
		}
	}
	return true
}

// HexDump writes data to w in hex dump format, each line prefixed by indent.
func HexDump(w io.Writer, data []byte, indent string) {
	for i := 0; i < len(data); i += 16 {
		fmt.Fprintf(w, "%s%04x  ", indent, i)

		for j := 0; j < 16; j++ {
			if i+j < len(data) {
				fmt.Fprintf(w, "%02x ", data[i+j])
			} else {
				fmt.Fprint(w, "   ")
			}
			if j == 7 {
				fmt.Fprint(w, " ")
			}
		}

		fmt.Fprint(w, " |")
		for j := 0; j < 16 && i+j < len(data); j++ {
			b := data[i+j]
			if b >= 32 && b < 127 {
				fmt.Fprintf(w, "%c", b)
			} else {
				fmt.Fprint(w, ".")
			}
		}
		fmt.Fprintln(w, "|")
	}
}
