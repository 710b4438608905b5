package impl

import (
	"sync"
	"time"

	"github.com/guolab/copperline/channel"
	"github.com/guolab/copperline/diag"
	"github.com/guolab/copperline/wire"
)

// Medium couples the modem with the shared cable and guarantees that only
// one hop occupies the cable at a time. The lock covers exactly one
// modulate → transmit → demodulate hop, never a whole multi-hop send.
type Medium struct {
	mu      sync.Mutex
	modem   wire.Modem
	cable   *channel.Channel
	tracker *diag.Tracker
}

// NewMedium wraps a cable. tracker may be nil to disable hop records.
func NewMedium(cable *channel.Channel, tracker *diag.Tracker) *Medium {
	return &Medium{
		modem:   wire.DefaultModem(),
		cable:   cable,
		tracker: tracker,
	}
}

// TransmitFrame carries one frame across one hop and parses whatever
// arrives on the far side. Noise can surface here as a format or parity
// error from the parse.
func (m *Medium) TransmitFrame(f wire.Frame) (wire.Frame, error) {
	bits := f.Bits()
	received := m.transmitBits(bits)
	out, err := wire.ParseFrame(received)
	if err != nil {
		return wire.Frame{}, err
	}
	if m.tracker != nil {
		m.tracker.Observe(diag.HopRecord{
			Src:     f.Src,
			Dst:     f.Dst,
			Bits:    len(bits),
			Samples: len(bits) * m.modem.SamplesPerBit,
			When:    time.Now(),
		})
	}
	return out, nil
}

func (m *Medium) transmitBits(bits []byte) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.modem.Demodulate(m.cable.Transmit(m.modem.Modulate(bits)))
}

// TransmitComposite overlays several frames on the cable in the same
// instant, as unsynchronized senders would: their modulated signals are
// summed sample-wise and the composite crosses the cable once.
func (m *Medium) TransmitComposite(frames []wire.Frame) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	var sum []float64
	for _, f := range frames {
		signal := m.modem.Modulate(f.Bits())
		if len(signal) > len(sum) {
			grown := make([]float64, len(signal))
			copy(grown, sum)
			sum = grown
		}
		for i, s := range signal {
			sum[i] += s
		}
	}
	return m.modem.Demodulate(m.cable.Transmit(sum))
}

// Delay is the one-way propagation delay of the underlying cable.
func (m *Medium) Delay() time.Duration {
	return m.cable.PropagationDelay()
}

func (m *Medium) Cable() *channel.Channel { return m.cable }
