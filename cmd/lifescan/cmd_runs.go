package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/7robots/conway-game-of-life/internal/scan"
	"github.com/7robots/conway-game-of-life/internal/session"
	"github.com/7robots/conway-game-of-life/internal/sims/life"
	"github.com/7robots/conway-game-of-life/internal/store"
)

func newRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect saved runs",
	}
	cmd.AddCommand(newRunsListCmd(), newRunsShowCmd(), newRunsDeleteCmd(), newRunsReplayCmd())
	return cmd
}

func withStore(cmd *cobra.Command, fn func(e *env, st *store.Store) error) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	st, err := e.openStore()
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(e, st)
}

func parseRunID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid run id %q", arg)
	}
	return id, nil
}

func newRunsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(_ *env, st *store.Store) error {
				runs, err := st.ListRuns(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if jsonOutput(cmd) {
					return writeJSON(out, runs)
				}
				if len(runs) == 0 {
					fmt.Fprintln(out, "No saved runs.")
					return nil
				}
				tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tNAME\tCREATED\tGENERATIONS\tPATTERNS\tSPEED")
				for _, r := range runs {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%dms\n", r.ID, r.Name,
						r.CreatedAt.Local().Format(time.DateTime), r.FinalGeneration, r.PatternCount, r.SpeedMS)
				}
				return tw.Flush()
			})
		},
	}
}

func newRunsShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show a saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRunID(args[0])
			if err != nil {
				return err
			}
			showGrid, _ := cmd.Flags().GetBool("grid")
			return withStore(cmd, func(_ *env, st *store.Store) error {
				run, err := st.LoadRun(cmd.Context(), id)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if jsonOutput(cmd) {
					return writeJSON(out, run)
				}
				fmt.Fprintf(out, "Run %d: %s\n", run.ID, run.Name)
				fmt.Fprintf(out, "  session:     %s\n", run.Session)
				fmt.Fprintf(out, "  created:     %s\n", run.CreatedAt.Local().Format(time.DateTime))
				fmt.Fprintf(out, "  generations: %d\n", run.FinalGeneration)
				fmt.Fprintf(out, "  speed:       %dms\n", run.SpeedMS)
				fmt.Fprintf(out, "  patterns:    %d\n", len(run.Patterns))
				for _, p := range run.Patterns {
					fmt.Fprintf(out, "    gen %5d  %s\n", p.Generation, p.Name)
				}
				if showGrid {
					fmt.Fprintln(out)
					fmt.Fprint(out, renderGrid(run.StartingGrid))
				}
				return nil
			})
		},
	}
	cmd.Flags().Bool("grid", false, "Print the starting grid")
	return cmd
}

func newRunsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRunID(args[0])
			if err != nil {
				return err
			}
			return withStore(cmd, func(_ *env, st *store.Store) error {
				if err := st.DeleteRun(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted run %d\n", id)
				return nil
			})
		},
	}
}

func newRunsReplayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "replay ID",
		Short: "Re-simulate a saved run from its starting grid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRunID(args[0])
			if err != nil {
				return err
			}
			return withStore(cmd, func(e *env, st *store.Store) error {
				ctx := cmd.Context()
				run, err := st.LoadRun(ctx, id)
				if err != nil {
					return err
				}
				cat, err := e.catalog(ctx)
				if err != nil {
					return err
				}
				rows, cols := len(run.StartingGrid), 0
				if rows > 0 {
					cols = len(run.StartingGrid[0])
				}
				board := life.New(life.Config{Rows: rows, Cols: cols, Wrap: run.Wrap})
				ctrl := session.New(board, scan.NewScanner(cat, rows, cols, scan.WithLogger(e.logger)),
					session.WithLogger(e.logger), session.WithSpeed(run.SpeedMS))
				if _, err := ctrl.Restore(run.StartingGrid); err != nil {
					return err
				}
				for ctrl.Generation() < run.FinalGeneration {
					if err := ctx.Err(); err != nil {
						return err
					}
					if _, err := ctrl.Step(); err != nil {
						return err
					}
				}

				out := cmd.OutOrStdout()
				got := ctrl.Scanner().Ordered()
				if jsonOutput(cmd) {
					return writeJSON(out, got)
				}
				fmt.Fprintf(out, "Replayed run %d to generation %d\n", run.ID, ctrl.Generation())
				for _, d := range got {
					fmt.Fprintf(out, "  gen %5d  %s\n", d.Generation, d.Name)
				}
				return nil
			})
		},
	}
}

func renderGrid(grid [][]uint8) string {
	var b strings.Builder
	for _, row := range grid {
		for _, v := range row {
			if v != 0 {
				b.WriteByte('O')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
