package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/f-sartori-v/mobauto2-decomp/core/runlog"
)

var (
	runsSince   time.Duration
	runsShuttle string
	runsStatus  string
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect the run log",
}

var runsLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List recorded runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := runlog.Open(appCfg.RunLog)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		q := runlog.Query{ShuttleID: runsShuttle, Status: runsStatus}
		if runsSince > 0 {
			q.Start = time.Now().Add(-runsSince)
		}
		recs, err := store.Query(cmd.Context(), q)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "RUN\tTIME\tENGINE\tSTATUS\tTRIPS\tPAX\tOBJ\tMS")
		for _, r := range recs {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%g\t%g\t%.1f\n",
				r.RunID, r.Timestamp.Format(time.RFC3339), r.Engine, r.Status, r.Trips, r.Passengers, r.Objective, r.ElapsedMS)
		}
		return tw.Flush()
	},
}

func init() {
	runsLsCmd.Flags().DurationVar(&runsSince, "since", 0, "only runs newer than this duration")
	runsLsCmd.Flags().StringVar(&runsShuttle, "shuttle", "", "only runs involving this shuttle")
	runsLsCmd.Flags().StringVar(&runsStatus, "status", "", "only runs with this status")
	runsCmd.AddCommand(runsLsCmd)
	rootCmd.AddCommand(runsCmd)
}
