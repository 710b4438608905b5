package wire

import "fmt"

const (
	// Broadcast is the reserved destination delivered to every
	// registered host. Host addresses run 0 through MaxHostAddr.
	Broadcast   uint8 = 255
	MaxHostAddr uint8 = 254

	headerBits     = 32
	maxPayloadSize = 1 << 16 // bytes, counted before parity expansion
)

// Frame is one addressed unit on the wire. Payload holds the
// parity-framed payload bits, always a multiple of 9.
type Frame struct {
	Src     uint8
	Dst     uint8
	Payload []byte
}

// BuildFrame encodes and parity-frames a text message into a frame.
func BuildFrame(src, dst uint8, text string) (Frame, error) {
	bits, err := AddParity(EncodeText(text))
	if err != nil {
		return Frame{}, err
	}
	if len(bits)/9 >= maxPayloadSize {
		return Frame{}, fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, len(bits)/9)
	}
	return Frame{Src: src, Dst: dst, Payload: bits}, nil
}

// Bits serializes the frame as dst(8) || src(8) || length(16) || payload,
// integer fields packed most-significant-bit first. length is the payload
// byte count before parity expansion.
func (f Frame) Bits() []byte {
	out := make([]byte, 0, headerBits+len(f.Payload))
	out = appendIntBits(out, uint16(f.Dst), 8)
	out = appendIntBits(out, uint16(f.Src), 8)
	out = appendIntBits(out, uint16(len(f.Payload)/9), 16)
	return append(out, f.Payload...)
}

// ParseFrame reads a frame back from wire bits. A buffer shorter than the
// header, or shorter than the payload the header advertises, is a format
// error rather than a silent short slice.
func ParseFrame(bits []byte) (Frame, error) {
	if len(bits) < headerBits {
		return Frame{}, fmt.Errorf("%w: frame header needs %d bits, got %d", ErrFormat, headerBits, len(bits))
	}
	dst := uint8(bitsToInt(bits[0:8]))
	src := uint8(bitsToInt(bits[8:16]))
	payloadBits := bitsToInt(bits[16:32]) * 9
	if len(bits)-headerBits < payloadBits {
		return Frame{}, fmt.Errorf("%w: frame advertises %d payload bits, got %d",
			ErrFormat, payloadBits, len(bits)-headerBits)
	}
	payload := make([]byte, payloadBits)
	copy(payload, bits[headerBits:headerBits+payloadBits])
	return Frame{Src: src, Dst: dst, Payload: payload}, nil
}

// Text strips parity from the payload and decodes it.
func (f Frame) Text() (string, error) {
	data, err := StripParity(f.Payload)
	if err != nil {
		return "", err
	}
	return DecodeText(data)
}

func appendIntBits(dst []byte, v uint16, width int) []byte {
	for i := width - 1; i >= 0; i-- {
		dst = append(dst, byte((v>>i)&1))
	}
	return dst
}

func bitsToInt(bits []byte) int {
	v := 0
	for _, b := range bits {
		v = v<<1 | int(b)
	}
	return v
}
