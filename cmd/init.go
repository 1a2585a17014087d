package cmd

import (
	"github.com/josephlewis42/tinysh/core/config"
	"github.com/spf13/cobra"
)

// initCmd writes a default configuration
var initCmd = &cobra.Command{
	Use:   "init [DIR]",
	Short: "Write a default configuration to DIR, the current directory by default.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}

		return config.Initialize(dir, newDiagnosticLogger(cmd))
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
