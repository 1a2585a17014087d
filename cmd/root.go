package cmd

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"

	"github.com/josephlewis42/tinysh/core"
	"github.com/josephlewis42/tinysh/core/config"
	"github.com/josephlewis42/tinysh/core/logger"
	"github.com/spf13/cobra"
)

var (
	cfgPath string

	// exitStatus is the status the shell asked to exit with.
	exitStatus int
)

func loadConfig() (*config.Configuration, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}

	configuration, err := config.Load(cfgPath)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("Couldn't load config: did you run init?")
	}

	return configuration, err
}

func newDiagnosticLogger(cmd *cobra.Command) *log.Logger {
	return log.New(cmd.ErrOrStderr(), "[tinysh] ", 0)
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tinysh",
	Short: "A minimal interactive shell.",
	Long: `tinysh reads commands line by line, runs the builtins exit, echo, type,
pwd and cd itself and launches everything else from the search path.`,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		configuration, err := loadConfig()
		if err != nil {
			return err
		}

		status, err := runShell(cmd, configuration)
		if err != nil {
			return err
		}

		exitStatus = status
		return nil
	},
}

func runShell(cmd *cobra.Command, configuration *config.Configuration) (int, error) {
	events := logger.NewNopLogger()
	eventLog, err := configuration.OpenEventLog()
	if err != nil {
		return 0, err
	}
	if eventLog != nil {
		defer eventLog.Close()
		events = logger.NewJsonLinesLogRecorder(eventLog)
	}

	shell, err := core.NewShell(core.Options{
		Config: configuration,
		Stdin:  cmd.InOrStdin(),
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
		Events: events,
		Log:    newDiagnosticLogger(cmd),
	})
	if err != nil {
		return 0, err
	}
	defer shell.Close()

	return shell.Run(cmd.Context()), nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.ExecuteContext(context.Background()))
	os.Exit(exitStatus)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config directory, built-in defaults if unset")
}
