package wire

import "fmt"

// AddParity appends one even-parity bit after every 8 data bits, so the
// output is 9/8 the input length. Misaligned input is a format error.
func AddParity(bits []byte) ([]byte, error) {
	if len(bits)%8 != 0 {
		return nil, fmt.Errorf("%w: parity expects whole bytes, got %d bits", ErrFormat, len(bits))
	}
	out := make([]byte, 0, len(bits)/8*9)
	for i := 0; i < len(bits); i += 8 {
		var parity byte
		for _, b := range bits[i : i+8] {
			parity ^= b
		}
		out = append(out, bits[i:i+8]...)
		out = append(out, parity)
	}
	return out, nil
}

// StripParity validates and removes the trailing parity bit of every
// 9-bit group. Any single-bit flip inside a group is detected; an even
// number of flips in the same group is not. Detection only, no
// correction.
func StripParity(bits []byte) ([]byte, error) {
	if len(bits)%9 != 0 {
		return nil, fmt.Errorf("%w: parity validation expects 9-bit groups, got %d bits", ErrFormat, len(bits))
	}
	out := make([]byte, 0, len(bits)/9*8)
	for i := 0; i < len(bits); i += 9 {
		group := bits[i : i+9]
		var parity byte
		for _, b := range group[:8] {
			parity ^= b
		}
		if parity != group[8] {
			return nil, fmt.Errorf("%w: group %d", ErrParity, i/9)
		}
		out = append(out, group[:8]...)
	}
	return out, nil
}
