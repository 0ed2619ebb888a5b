package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tza-rng/internal/config"
)

var flagConfigDefault bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration after config file, TZARNG_* environment
variables and flags have been applied.

Config file search order:
  --config <path>, ~/.tzarng/config.yaml, ./configs/tzarng.yaml, built-in defaults

Examples:
  tzarng config
  tzarng config --default > ~/.tzarng/config.yaml
  TZARNG_LEVEL=45 tzarng config`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefault, "default", false, "Print the built-in default file instead")
}

func runConfig(cmd *cobra.Command, args []string) {
	out := cmd.OutOrStdout()
	if flagConfigDefault {
		out.Write(config.DefaultYAML())
		return
	}

	data, err := config.Marshal(settings)
	if err != nil {
		fail("%v", err)
	}
	fmt.Fprint(out, string(data))
}
