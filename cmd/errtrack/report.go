package main

import (
	"github.com/monopole/errortracker/cleanups"
	"github.com/spf13/cobra"
)

// reportFlags describe one error or warning.
type reportFlags struct {
	function string
	message  string
	code     int
}

func (rf *reportFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&rf.function, "function", "f", "",
		"name of the routine reporting the condition")
	cmd.Flags().StringVarP(&rf.message, "message", "m", "",
		"human-readable message")
	cmd.Flags().IntVarP(&rf.code, "code", "c", 1,
		"numeric flag; for errors also the exit status")
	_ = cmd.MarkFlagRequired("message")
}

func newReportCmd(o *rootOptions) *cobra.Command {
	var (
		rf          reportFlags
		cleanupNote string
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Report an error, log it, and exit with its code",
		Example: `  errtrack report -f backup -m "disk full" -c 28
  errtrack report --no-exit -f backup -m "disk full" --context /var/backups`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := o.newTracker(cmd)
			if err != nil {
				return err
			}
			if cleanupNote != "" {
				tr.SetCleanup(cleanups.NewPrinting[any](cmd.ErrOrStderr()))
				return tr.ReportErrorWithContext(
					rf.function, rf.message, rf.code, cleanupNote)
			}
			return tr.ReportError(rf.function, rf.message, rf.code)
		},
	}
	rf.bind(cmd)
	cmd.Flags().StringVar(&cleanupNote, "context", "",
		"if set, print a cleanup note with this context to stderr")
	return cmd
}

func newWarnCmd(o *rootOptions) *cobra.Command {
	var rf reportFlags
	cmd := &cobra.Command{
		Use:   "warn",
		Short: "Report a warning; never logs or exits non-zero",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := o.newTracker(cmd)
			if err != nil {
				return err
			}
			tr.ReportWarning(rf.function, rf.message, rf.code)
			return nil
		},
	}
	rf.bind(cmd)
	return cmd
}

func newLogCmd(o *rootOptions) *cobra.Command {
	var rf reportFlags
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Append an error record to the log file and nothing else",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := o.newTracker(cmd)
			if err != nil {
				return err
			}
			return tr.LogError(rf.function, rf.message, rf.code)
		},
	}
	rf.bind(cmd)
	return cmd
}
