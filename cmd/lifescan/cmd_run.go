package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/7robots/conway-game-of-life/internal/core"
	"github.com/7robots/conway-game-of-life/internal/scan"
	"github.com/7robots/conway-game-of-life/internal/session"
	"github.com/7robots/conway-game-of-life/internal/sims/life"
)

type runResult struct {
	Session     string           `json:"session"`
	Seed        int64            `json:"seed,omitempty"`
	Preset      string           `json:"preset,omitempty"`
	Generations int              `json:"generations"`
	Population  int              `json:"population"`
	Discoveries []scan.Discovery `json:"discoveries"`
	RunID       int64            `json:"run_id,omitempty"`
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate a board headlessly and report pattern discoveries",
		Long: `Start from a preset or a random soup, advance the requested number of
generations and print each pattern the first time it appears.`,
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

			preset, _ := cmd.Flags().GetString("preset")
			gens, _ := cmd.Flags().GetInt("generations")
			seed, _ := cmd.Flags().GetInt64("seed")
			saveName, _ := cmd.Flags().GetString("save")
			boardOpts, _ := cmd.Flags().GetStringToString("board")
			if !cmd.Flags().Changed("seed") {
				seed = e.cfg.Sim.Seed
			}

			out := cmd.OutOrStdout()
			quiet := jsonOutput(cmd)
			bc := life.Config{
				Rows:    e.cfg.Grid.Rows,
				Cols:    e.cfg.Grid.Cols,
				Wrap:    e.cfg.Grid.Wrap,
				Density: e.cfg.Sim.Density,
			}.Apply(boardOpts)
			board := life.New(bc)
			scanner := scan.NewScanner(cat, bc.Rows, bc.Cols,
				scan.WithLogger(e.logger),
				scan.WithMetrics(e.metrics),
				scan.WithHandler(func(d scan.Discovery) {
					if !quiet {
						fmt.Fprintf(out, "gen %5d  found %s\n", d.Generation, d.Name)
					}
				}))
			ctrl := session.New(board, scanner,
				session.WithLogger(e.logger),
				session.WithSpeed(e.cfg.Sim.SpeedMS),
				session.WithDensity(bc.Density))

			res := runResult{Preset: preset}
			if preset != "" {
				if _, err := ctrl.LoadPreset(preset); err != nil {
					return err
				}
			} else {
				seed = core.SeedOrNow(seed)
				res.Seed = seed
				if _, err := ctrl.Randomize(seed); err != nil {
					return err
				}
			}

			for i := 0; i < gens; i++ {
				if err := ctx.Err(); err != nil {
					e.logger.Warn("run interrupted", "generation", ctrl.Generation())
					break
				}
				if _, err := ctrl.Step(); err != nil {
					return err
				}
			}

			res.Session = scanner.Session().String()
			res.Generations = ctrl.Generation()
			res.Population = board.Population()
			res.Discoveries = scanner.Ordered()

			if cmd.Flags().Changed("save") {
				st, err := e.openStore()
				if err != nil {
					return err
				}
				defer st.Close()
				id, err := ctrl.Save(ctx, st, saveName)
				if err != nil {
					return err
				}
				res.RunID = id
			}

			if quiet {
				return writeJSON(out, res)
			}
			fmt.Fprintf(out, "\n%d generations, population %d, %d patterns discovered\n",
				res.Generations, res.Population, len(res.Discoveries))
			if res.Seed != 0 {
				fmt.Fprintf(out, "seed %d\n", res.Seed)
			}
			if res.RunID != 0 {
				fmt.Fprintf(out, "saved as run %d\n", res.RunID)
			}
			return nil
		},
	}
	cmd.Flags().String("preset", "", "Start from a preset (Glider, Blinker, Toad, Beacon, Pulsar, Gosper Gun)")
	cmd.Flags().Int("generations", 200, "Generations to simulate")
	cmd.Flags().Int64("seed", 0, "Random seed for the soup (0 = time-based)")
	cmd.Flags().String("save", "", "Save the run under this name")
	cmd.Flags().StringToString("board", nil, "Board overrides, e.g. rows=80,cols=80,wrap=true,density=0.4")
	return cmd
}
