// Package perf measures wall-clock latency and throughput of complete
// send transactions. Layered on top of the transport; nothing here is
// part of the protocol.
package perf

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/guolab/copperline/impl"
	"github.com/guolab/copperline/wire"
)

// LatencyStats summarizes wall-clock send durations.
type LatencyStats struct {
	Avg time.Duration
	Min time.Duration
	Max time.Duration
}

// MeasureLatency times complete send transactions from src to dst.
func MeasureLatency(r *impl.Router, src, dst uint8, message string, trials int) (LatencyStats, error) {
	durations := make([]float64, 0, trials)
	var minD, maxD time.Duration
	for i := 0; i < trials; i++ {
		start := time.Now()
		if err := r.Send(src, dst, message); err != nil {
			return LatencyStats{}, err
		}
		d := time.Since(start)
		durations = append(durations, d.Seconds())
		if i == 0 || d < minD {
			minD = d
		}
		if d > maxD {
			maxD = d
		}
	}
	avg := time.Duration(stat.Mean(durations, nil) * float64(time.Second))
	return LatencyStats{Avg: avg, Min: minD, Max: maxD}, nil
}

// ThroughputStats reports effective bit rates over repeated sends.
type ThroughputStats struct {
	Elapsed    time.Duration
	PayloadBps float64
	WireBps    float64
}

// MeasureThroughput sends the same message repeatedly. Payload
// throughput counts the message bits only; wire throughput counts the
// full frame on both hops of each send.
func MeasureThroughput(r *impl.Router, src, dst uint8, message string, iterations int) (ThroughputStats, error) {
	frame, err := wire.BuildFrame(src, dst, message)
	if err != nil {
		return ThroughputStats{}, err
	}
	frameBits := len(frame.Bits())
	payloadBits := len(message) * 8

	start := time.Now()
	for i := 0; i < iterations; i++ {
		if err := r.Send(src, dst, message); err != nil {
			return ThroughputStats{}, err
		}
	}
	elapsed := time.Since(start)

	sec := elapsed.Seconds()
	return ThroughputStats{
		Elapsed:    elapsed,
		PayloadBps: float64(payloadBits*iterations) / sec,
		WireBps:    float64(frameBits*2*iterations) / sec,
	}, nil
}
