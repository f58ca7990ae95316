package main

import (
	"fmt"
	"os"
	"time"

	"github.com/monopole/errortracker/internal/record"
	"github.com/spf13/cobra"
)

func newShowCmd(o *rootOptions) *cobra.Command {
	var (
		last    int
		summary bool
	)
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print records from the error log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := o.newTracker(cmd)
			if err != nil {
				return err
			}
			f, err := os.Open(tr.LogFilename())
			if err != nil {
				return fmt.Errorf("opening error log: %w", err)
			}
			defer f.Close()
			recs, err := record.Scan(f, time.Local)
			if err != nil {
				return fmt.Errorf("reading %s: %w", tr.LogFilename(), err)
			}
			if last > 0 && last < len(recs) {
				recs = recs[len(recs)-last:]
			}
			out := cmd.OutOrStdout()
			for _, r := range recs {
				if summary {
					fmt.Fprintf(out, "%s  %s\n", r.Time.Format(record.TimeLayout), r)
					continue
				}
				fmt.Fprint(out, r.LogBlock())
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&last, "last", "n", 0,
		"show only the latest n records; 0 means all")
	cmd.Flags().BoolVarP(&summary, "summary", "s", false,
		"one line per record")
	return cmd
}
