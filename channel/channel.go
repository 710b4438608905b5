// Package channel models the shared analog cable: exponential attenuation
// over its length plus additive white Gaussian noise.
package channel

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/guolab/copperline/diag"
	"github.com/guolab/copperline/state"
)

// Channel is one cable. It keeps no transport state between
// transmissions; the recorder, when attached, only observes. A channel is
// not safe for concurrent use — the medium serializes access to it.
type Channel struct {
	length      float64
	attenuation float64
	noiseLevel  float64
	velocity    float64

	noise distuv.Normal
	rec   *diag.Recorder
}

// New builds a channel from its config. rec may be nil to disable
// waveform diagnostics. A zero NoiseSeed seeds from the clock.
func New(cfg state.ChannelCfg, rec *diag.Recorder) *Channel {
	velocity := cfg.SignalVelocity
	if velocity == 0 {
		velocity = state.DefaultSignalVelocity
	}
	seed := cfg.NoiseSeed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Channel{
		length:      cfg.Length,
		attenuation: cfg.Attenuation,
		noiseLevel:  cfg.NoiseLevel,
		velocity:    velocity,
		noise: distuv.Normal{
			Mu:    0,
			Sigma: cfg.NoiseLevel,
			Src:   rand.NewSource(seed),
		},
		rec: rec,
	}
}

// Transmit pushes a sample sequence through the cable and returns what
// the far end observes: every sample scaled by the attenuation factor,
// then perturbed by zero-mean Gaussian noise when the noise level is
// positive. It never fails; degenerate parameters yield the degenerate
// numeric result.
func (c *Channel) Transmit(signal []float64) []float64 {
	gain := c.Gain()
	out := make([]float64, len(signal))
	for i, s := range signal {
		out[i] = s * gain
		if c.noiseLevel > 0 {
			out[i] += c.noise.Rand()
		}
	}
	if c.rec != nil {
		c.rec.Record(signal, out, gain)
	}
	return out
}

// Gain is the attenuation factor applied to every sample,
// exp(-attenuation * length / 100), distance-normalized per 100
// length-units.
func (c *Channel) Gain() float64 {
	return math.Exp(-c.attenuation * c.length / 100)
}

// PropagationDelay reports how long the wavefront takes to cross the
// cable. Informational only; Transmit never blocks on it. Callers may
// sleep for it to simulate wall-clock realism, outside any channel lock.
func (c *Channel) PropagationDelay() time.Duration {
	return time.Duration(c.length / c.velocity * float64(time.Second))
}

func (c *Channel) Length() float64 { return c.length }

func (c *Channel) String() string {
	return fmt.Sprintf("Channel(length=%v, attenuation=%v, noise=%v)",
		c.length, c.attenuation, c.noiseLevel)
}
