package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/7robots/conway-game-of-life/internal/store"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cumulative pattern statistics across saved runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(_ *env, st *store.Store) error {
				stats, err := st.PatternStats(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if jsonOutput(cmd) {
					return writeJSON(out, stats)
				}
				if len(stats) == 0 {
					fmt.Fprintln(out, "No patterns recorded yet.")
					return nil
				}
				tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "PATTERN\tTIMES\tRUNS\tFIRST SEEN\tLAST SEEN")
				for _, s := range stats {
					fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\n", s.Name, s.TimesDiscovered, s.RunsAppearedIn,
						s.FirstSeenAt.Local().Format(time.DateTime), s.LastSeenAt.Local().Format(time.DateTime))
				}
				return tw.Flush()
			})
		},
	}
}
