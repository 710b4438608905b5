// Package wire implements the protocol layers of the shared-cable stack:
// text/bit conversion, parity framing, ASK modulation and the frame codec.
// Bits are represented as byte slices holding 0 or 1 per element.
package wire

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	ErrFormat          = errors.New("malformed bit stream")
	ErrParity          = errors.New("parity check failed")
	ErrPayloadTooLarge = errors.New("payload too large")
)

// EncodeText converts a UTF-8 string into its bit sequence, most
// significant bit of each byte first, in byte order.
func EncodeText(s string) []byte {
	data := []byte(s)
	bits := make([]byte, 0, len(data)*8)
	for _, b := range data {
		for i := 7; i >= 0; i-- {
			bits = append(bits, (b>>i)&1)
		}
	}
	return bits
}

// DecodeText regroups bits into bytes and decodes them as UTF-8. Invalid
// sequences decode to replacement runes instead of failing, so corruption
// degrades visibly rather than aborting delivery.
func DecodeText(bits []byte) (string, error) {
	if len(bits)%8 != 0 {
		return "", fmt.Errorf("%w: bit stream length %d is not a multiple of 8", ErrFormat, len(bits))
	}
	buf := make([]byte, 0, len(bits)/8)
	for i := 0; i < len(bits); i += 8 {
		var v byte
		for _, bit := range bits[i : i+8] {
			v = v<<1 | bit
		}
		buf = append(buf, v)
	}
	if utf8.Valid(buf) {
		return string(buf), nil
	}
	var sb strings.Builder
	for len(buf) > 0 {
		r, size := utf8.DecodeRune(buf)
		sb.WriteRune(r)
		buf = buf[size:]
	}
	return sb.String(), nil
}
