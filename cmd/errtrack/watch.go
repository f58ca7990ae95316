package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/monopole/errortracker/internal/watch"
	"github.com/spf13/cobra"
)

func newWatchCmd(o *rootOptions) *cobra.Command {
	var (
		hours    int
		minutes  int
		seconds  float64
		poll     time.Duration
		asWarn   bool
		code     int
		function string
	)
	cmd := &cobra.Command{
		Use:   "watch [flags] -- command [args...]",
		Short: "Run a command, reporting a timeout if it runs too long",
		Long: `Runs the command, checking the watchdog every --poll.
If the command runs longer than the threshold, the timeout is reported as an
error (the command is killed, and errtrack exits with --code unless --no-exit)
or, with --warn, as a warning (the command keeps running).`,
		Example: `  errtrack watch --minutes 5 --code 124 -- ./nightly-build.sh`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := o.newTracker(cmd)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("hours") || flags.Changed("minutes") ||
				flags.Changed("seconds") {
				tr.SetTimeoutThreshold(hours, minutes, seconds)
			}
			if flags.Changed("warn") {
				tr.SetTimeoutIsError(!asWarn)
			}
			if flags.Changed("code") {
				tr.SetTimeoutCode(code)
			}
			ctx, stop := signal.NotifyContext(
				context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			r := &watch.Runner{
				Tracker:  tr,
				Poll:     poll,
				Function: function,
				Stdout:   cmd.OutOrStdout(),
				Stderr:   cmd.ErrOrStderr(),
				Logger:   o.logger,
			}
			return r.Run(ctx, args[0], args[1:]...)
		},
	}
	f := cmd.Flags()
	f.IntVar(&hours, "hours", 0, "threshold hours")
	f.IntVar(&minutes, "minutes", 0, "threshold minutes")
	f.Float64Var(&seconds, "seconds", 0, "threshold seconds")
	f.DurationVar(&poll, "poll", time.Second, "time between watchdog checks")
	f.BoolVar(&asWarn, "warn", false, "report a timeout as a warning")
	f.IntVar(&code, "code", 0, "flag reported on timeout")
	f.StringVar(&function, "function", "",
		"name to report under; defaults to the command's base name")
	return cmd
}
