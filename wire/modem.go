package wire

import "math"

// Fixed protocol parameters. Implementations claiming interoperability
// must use these exact values.
const (
	SamplesPerBit = 20
	AmplitudeHigh = 1.0
	AmplitudeLow  = 0.1
	Threshold     = 0.3
)

// Modem converts between bit sequences and amplitude-shift-keyed sample
// sequences. The zero value is unusable; use DefaultModem.
type Modem struct {
	SamplesPerBit int
	High          float64
	Low           float64
	Threshold     float64
}

func DefaultModem() Modem {
	return Modem{
		SamplesPerBit: SamplesPerBit,
		High:          AmplitudeHigh,
		Low:           AmplitudeLow,
		Threshold:     Threshold,
	}
}

// Modulate emits one full sine cycle per bit, scaled by the high
// amplitude for 1 and the low amplitude for 0. Deterministic.
func (m Modem) Modulate(bits []byte) []float64 {
	signal := make([]float64, len(bits)*m.SamplesPerBit)
	for i, bit := range bits {
		amplitude := m.Low
		if bit == 1 {
			amplitude = m.High
		}
		start := i * m.SamplesPerBit
		for j := 0; j < m.SamplesPerBit; j++ {
			phase := 2 * math.Pi * float64(j) / float64(m.SamplesPerBit)
			signal[start+j] = amplitude * math.Sin(phase)
		}
	}
	return signal
}

// Demodulate slices the signal into per-bit windows and thresholds the
// mean absolute amplitude of each. A trailing partial window is dropped.
// Lossy under noise; the amplitude bands are kept apart with high
// probability, not guaranteed separation.
func (m Modem) Demodulate(signal []float64) []byte {
	bits := make([]byte, len(signal)/m.SamplesPerBit)
	for i := range bits {
		window := signal[i*m.SamplesPerBit : (i+1)*m.SamplesPerBit]
		var sum float64
		for _, s := range window {
			sum += math.Abs(s)
		}
		if sum/float64(m.SamplesPerBit) > m.Threshold {
			bits[i] = 1
		}
	}
	return bits
}
