package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/josephlewis42/tinysh/core"
	"github.com/josephlewis42/tinysh/core/pathindex"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var indexColor string

// indexCmd prints the executables the shell would find on startup.
var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Show the executables found on the search path.",
	Long: `Show the executables found on the search path and the file each name
resolves to. Earlier directories shadow later ones.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		configuration, err := loadConfig()
		if err != nil {
			return err
		}
		printer, err := colorPrinterForFlag(indexColor, configuration, cmd.OutOrStdout())
		if err != nil {
			return err
		}

		searchPath, ok := os.LookupEnv(configuration.PathEnv)
		if !ok {
			return fmt.Errorf("$%s: %w", configuration.PathEnv, core.ErrSearchPathUnset)
		}

		logger := newDiagnosticLogger(cmd)
		idx := pathindex.Build(afero.NewOsFs(), searchPath, pathindex.WithSkipHandler(func(dir string, err error) {
			logger.Printf("skipping search path directory %q: %v", dir, err)
		}))

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
		for _, name := range idx.Names() {
			path, _ := idx.Lookup(name)
			fmt.Fprintf(tw, "%s\t%s\n", printer.Sprint(ColorBoldGreen, name), printer.Sprint(ColorBoldCyan, path))
		}
		if err := tw.Flush(); err != nil {
			return err
		}

		logger.Printf("%d executables indexed", idx.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.Flags().StringVar(&indexColor, "color", "", "colorize the output (always|auto|never)")
}
