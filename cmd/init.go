package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/guolab/copperline/mock"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a starter network config",
	Run: func(cmd *cobra.Command, args []string) {
		out := "network.yaml"
		if len(args) == 1 {
			out = args[0]
		}

		cfg := mock.Network()
		data, err := yaml.Marshal(&cfg)
		if err != nil {
			panic(err)
		}
		err = os.WriteFile(out, data, 0o644)
		if err != nil {
			panic(err)
		}
		fmt.Printf("wrote %s\n", out)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
