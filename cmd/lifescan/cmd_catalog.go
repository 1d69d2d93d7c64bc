package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/7robots/conway-game-of-life/internal/pattern"
)

type catalogSummary struct {
	Patterns   []string `json:"patterns"`
	Entries    int      `json:"entries"`
	MaxBBox    int      `json:"max_bbox"`
	Rejected   []string `json:"rejected"`
	Collisions []string `json:"collisions"`
}

type lookupResult struct {
	File    string `json:"file"`
	Name    string `json:"name"`
	Hash    string `json:"hash"`
	Match   string `json:"match,omitempty"`
	Matched bool   `json:"matched"`
}

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Load the pattern corpus and summarise it",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			cat, err := e.catalog(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			files, _ := cmd.Flags().GetStringSlice("lookup")
			if len(files) > 0 {
				var results []lookupResult
				for _, file := range files {
					res, err := lookupFile(cat, file)
					if err != nil {
						return err
					}
					results = append(results, res)
				}
				if jsonOutput(cmd) {
					return writeJSON(out, results)
				}
				for _, r := range results {
					if r.Matched {
						fmt.Fprintf(out, "%s: %s (%s)\n", r.File, r.Match, r.Hash[:16])
					} else {
						fmt.Fprintf(out, "%s: no match (%s)\n", r.File, r.Hash[:16])
					}
				}
				return nil
			}

			sum := catalogSummary{
				Patterns: cat.Names(),
				Entries:  cat.Entries(),
				MaxBBox:  cat.MaxBBox(),
				Rejected: cat.Rejected(),
			}
			for _, c := range cat.Collisions() {
				sum.Collisions = append(sum.Collisions, fmt.Sprintf("%s kept over %s (%s)", c.Kept, c.Dropped, c.Hash.Short()))
			}
			if jsonOutput(cmd) {
				return writeJSON(out, sum)
			}
			fmt.Fprintf(out, "%d patterns, %d orientation entries, max bounding box %d\n",
				len(sum.Patterns), sum.Entries, sum.MaxBBox)
			fmt.Fprintf(out, "patterns: %s\n", strings.Join(sum.Patterns, ", "))
			if len(sum.Rejected) > 0 {
				fmt.Fprintf(out, "rejected (too large): %s\n", strings.Join(sum.Rejected, ", "))
			}
			for _, c := range sum.Collisions {
				fmt.Fprintf(out, "collision: %s\n", c)
			}
			return nil
		},
	}
	cmd.Flags().StringSlice("lookup", nil, "Identify the pattern in one or more .cells files")
	return cmd
}

func lookupFile(cat *pattern.Catalog, path string) (lookupResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return lookupResult{}, err
	}
	defer f.Close()
	def, err := pattern.ParsePlaintext(f, pattern.NameFromFile(path))
	if err != nil {
		return lookupResult{}, fmt.Errorf("%s: %w", path, err)
	}
	match, ok := cat.Lookup(def.Shape)
	return lookupResult{
		File:    path,
		Name:    def.Name,
		Hash:    def.Shape.Hash().String(),
		Match:   match,
		Matched: ok,
	}, nil
}
