// Command errtrack reports errors and warnings in the errortracker format
// from shell scripts, and runs commands under its watchdog.
package main

import (
	"fmt"

	"github.com/monopole/errortracker"
	"github.com/monopole/errortracker/global"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Version is set at build time using -ldflags.
var Version = "0.0.0-dev"

const defaultConfigPath = "errtrack.yaml"

// rootOptions holds the flags shared by every subcommand.
type rootOptions struct {
	configPath  string
	logFilename string
	quiet       bool
	noExit      bool
	verbose     bool

	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	o := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "errtrack",
		Short: "Report errors, warnings and timeouts",
		Long: `errtrack records errors and warnings the way errortracker does:
a block on standard output, and for errors an appended record in the
error log file and, unless --no-exit, an exit status equal to the code.

Settings come from a YAML file (--config), then from flags.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewProductionConfig()
			config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			if o.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			o.logger, err = config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if o.logger != nil {
				_ = o.logger.Sync()
			}
		},
	}
	f := cmd.PersistentFlags()
	f.StringVar(&o.configPath, "config", defaultConfigPath,
		"YAML file with tracker parameters; missing means defaults")
	f.StringVar(&o.logFilename, "log", errortracker.DefaultLogFilename,
		"error log file")
	f.BoolVarP(&o.quiet, "quiet", "q", false,
		"don't print reports to standard output")
	f.BoolVar(&o.noExit, "no-exit", false,
		"exit 0 after reporting an error")
	f.BoolVarP(&o.verbose, "verbose", "v", false,
		"enable debug logging")

	cmd.AddCommand(
		newReportCmd(o),
		newWarnCmd(o),
		newLogCmd(o),
		newShowCmd(o),
		newWatchCmd(o),
	)
	return cmd
}

// newTracker builds a tracker from the config file, overridden by
// whichever flags were given.
func (o *rootOptions) newTracker(cmd *cobra.Command) (*errortracker.Tracker[any], error) {
	p, err := errortracker.LoadParameters(o.configPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("log") {
		p.LogFilename = o.logFilename
	}
	if flags.Changed("quiet") {
		p.SuppressPrinting = o.quiet
	}
	if flags.Changed("no-exit") {
		p.ExitOnError = !o.noExit
	}
	logger := o.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return errortracker.New[any](p,
		errortracker.WithStdout(cmd.OutOrStdout()),
		errortracker.WithLogger(logger.Named("tracker")))
}

func main() {
	global.Exit(newRootCmd().Execute())
}
