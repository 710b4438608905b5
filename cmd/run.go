package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/guolab/copperline/core"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the demo network from a config file",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := core.ReadNetworkConfig(configPath)
		if err != nil {
			panic(err)
		}

		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		log, err := core.NewLogger(level, cfg.LogPath, "copperline")
		if err != nil {
			panic(err)
		}

		network, err := core.Build(*cfg, log)
		if err != nil {
			panic(err)
		}
		defer network.Close()

		if err := core.RunDemo(network); err != nil {
			panic(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
