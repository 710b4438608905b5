// Package diag holds the read-only diagnostics the transport exposes to
// instrumentation: a bounded waveform history and a short-lived record of
// recent hops. Nothing here is required for transport correctness.
package diag

import (
	"math"
	"slices"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Waveform is one recorded hop: the signal as modulated and as observed
// after the cable, plus the cable gain in effect.
type Waveform struct {
	Input  []float64
	Output []float64
	Gain   float64
}

// Recorder keeps a bounded history of recent hops. It owns its lock;
// recording is a single append and is never held across a transmission.
type Recorder struct {
	mu      sync.Mutex
	history []Waveform
	size    int
}

func NewRecorder(size int) *Recorder {
	if size <= 0 {
		size = 10
	}
	return &Recorder{size: size}
}

// Record stores copies of one hop's input and output signals, evicting
// the oldest entry once the history is full.
func (r *Recorder) Record(input, output []float64, gain float64) {
	wf := Waveform{
		Input:  slices.Clone(input),
		Output: slices.Clone(output),
		Gain:   gain,
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = append(r.history, wf)
	if len(r.history) > r.size {
		r.history = r.history[1:]
	}
}

// Last returns the most recent hop, or false if nothing was recorded.
func (r *Recorder) Last() (Waveform, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.history) == 0 {
		return Waveform{}, false
	}
	return r.history[len(r.history)-1], true
}

// History returns a copy of the recorded hops, oldest first.
func (r *Recorder) History() []Waveform {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.history)
}

func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.history)
}

// SignalStats summarizes one recorded hop.
type SignalStats struct {
	InputMean  float64
	InputStd   float64
	InputMin   float64
	InputMax   float64
	OutputMean float64
	OutputStd  float64
	OutputMin  float64
	OutputMax  float64
	SNRdB      float64
}

func (w Waveform) Stats() SignalStats {
	if len(w.Input) == 0 || len(w.Output) == 0 {
		return SignalStats{}
	}
	return SignalStats{
		InputMean:  stat.Mean(w.Input, nil),
		InputStd:   stat.StdDev(w.Input, nil),
		InputMin:   floats.Min(w.Input),
		InputMax:   floats.Max(w.Input),
		OutputMean: stat.Mean(w.Output, nil),
		OutputStd:  stat.StdDev(w.Output, nil),
		OutputMin:  floats.Min(w.Output),
		OutputMax:  floats.Max(w.Output),
		SNRdB:      w.SNR(),
	}
}

// SNR compares the observed output against the ideally attenuated input
// and reports the ratio in dB. +Inf when the hop was noiseless.
func (w Waveform) SNR() float64 {
	n := min(len(w.Input), len(w.Output))
	if n == 0 {
		return 0
	}
	var signalPower, noisePower float64
	for i := 0; i < n; i++ {
		expected := w.Input[i] * w.Gain
		diff := w.Output[i] - expected
		signalPower += expected * expected
		noisePower += diff * diff
	}
	if noisePower == 0 {
		return math.Inf(1)
	}
	return 10 * math.Log10(signalPower/noisePower)
}
