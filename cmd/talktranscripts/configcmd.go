package main

import (
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the resolved configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the configuration after file, environment and flag overrides",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := cfg.YAML()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
