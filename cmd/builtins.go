package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/josephlewis42/tinysh/core"
	"github.com/spf13/cobra"
)

var builtinsColor string

// builtinsCmd lists the commands the shell implements itself.
var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "Show the builtin commands of the shell.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		configuration, err := loadConfig()
		if err != nil {
			return err
		}
		printer, err := colorPrinterForFlag(builtinsColor, configuration, cmd.OutOrStdout())
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
		for _, builtin := range core.AllBuiltins() {
			fmt.Fprintf(tw, "%s\t%s\n", printer.Sprint(ColorBoldGreen, builtin.Usage()), builtin.Short())
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
	builtinsCmd.Flags().StringVar(&builtinsColor, "color", "", "colorize the output (always|auto|never)")
}
