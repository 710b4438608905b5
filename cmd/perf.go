package cmd

import (
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/guolab/copperline/core"
	"github.com/guolab/copperline/perf"
	"github.com/guolab/copperline/state"
)

// perfCmd measures latency and throughput over a long cable, where the
// propagation delay is large enough to be observable.
var perfCmd = &cobra.Command{
	Use:   "perf",
	Short: "Measure latency and throughput over a long cable",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := state.NetworkCfg{
			Channel: state.ChannelCfg{
				Length:      500_000,
				Attenuation: 0.02,
				NoiseLevel:  0.01,
				HistorySize: state.DefaultHistorySize,
			},
			Hosts: []state.HostCfg{
				{Name: "alpha", Address: 1},
				{Name: "beta", Address: 2},
			},
		}

		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		log, err := core.NewLogger(level, "", "perf")
		if err != nil {
			panic(err)
		}
		network, err := core.Build(cfg, log)
		if err != nil {
			panic(err)
		}
		defer network.Close()

		// warm up to keep first-call overhead out of the numbers
		if err := network.Router.Send(1, 2, "warmup"); err != nil {
			panic(err)
		}

		latency, err := perf.MeasureLatency(network.Router, 1, 2, "ping", 50)
		if err != nil {
			panic(err)
		}
		log.Info("latency (one-way, wall clock)",
			"avg", latency.Avg, "min", latency.Min, "max", latency.Max)

		message := strings.Repeat("Performance test payload ", 40)
		throughput, err := perf.MeasureThroughput(network.Router, 1, 2, message, 200)
		if err != nil {
			panic(err)
		}
		log.Info("throughput (sequential sends)",
			"elapsed", throughput.Elapsed,
			"payload_mbps", throughput.PayloadBps/1e6,
			"wire_mbps", throughput.WireBps/1e6)
	},
}

func init() {
	rootCmd.AddCommand(perfCmd)
}
