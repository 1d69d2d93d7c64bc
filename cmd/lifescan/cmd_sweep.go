package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/7robots/conway-game-of-life/internal/core"
	"github.com/7robots/conway-game-of-life/internal/sims/life"
	"github.com/7robots/conway-game-of-life/internal/soup"
)

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run many random soups and tally the patterns they produce",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			stopMetrics, err := e.serveMetrics(ctx)
			if err != nil {
				return err
			}
			defer stopMetrics()

			cat, err := e.catalog(ctx)
			if err != nil {
				return err
			}

			cfg := soup.Config{
				Soups:       e.cfg.Sweep.Soups,
				Generations: e.cfg.Sweep.Generations,
				Workers:     e.cfg.Sweep.Workers,
				Board: life.Config{
					Rows:    e.cfg.Grid.Rows,
					Cols:    e.cfg.Grid.Cols,
					Wrap:    e.cfg.Grid.Wrap,
					Density: e.cfg.Sim.Density,
				},
				Seed: e.cfg.Sim.Seed,
			}
			if cmd.Flags().Changed("soups") {
				cfg.Soups, _ = cmd.Flags().GetInt("soups")
			}
			if cmd.Flags().Changed("generations") {
				cfg.Generations, _ = cmd.Flags().GetInt("generations")
			}
			if cmd.Flags().Changed("workers") {
				cfg.Workers, _ = cmd.Flags().GetInt("workers")
			}
			if cmd.Flags().Changed("seed") {
				cfg.Seed, _ = cmd.Flags().GetInt64("seed")
			}
			cfg.Seed = core.SeedOrNow(cfg.Seed)

			rep, err := soup.Run(ctx, cat, cfg, soup.WithLogger(e.logger), soup.WithMetrics(e.metrics))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput(cmd) {
				return writeJSON(out, map[string]any{
					"seed":        rep.Config.Seed,
					"soups":       rep.Config.Soups,
					"generations": rep.Config.Generations,
					"tallies":     rep.Tallies,
				})
			}
			fmt.Fprintf(out, "%d soups x %d generations on %dx%d (seed %d) in %s\n\n",
				rep.Config.Soups, rep.Config.Generations, cfg.Board.Rows, cfg.Board.Cols,
				rep.Config.Seed, rep.Elapsed.Round(time.Millisecond))
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "PATTERN\tSOUPS\tEARLIEST GEN\tSOUP")
			for _, t := range rep.Tallies {
				fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", t.Name, t.Soups, t.Earliest, t.EarliestSoup)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().Int("soups", 0, "Number of soups (default from config)")
	cmd.Flags().Int("generations", 0, "Generations per soup (default from config)")
	cmd.Flags().Int("workers", 0, "Worker goroutines (default: number of CPUs)")
	cmd.Flags().Int64("seed", 0, "Master seed (0 = time-based)")
	return cmd
}
