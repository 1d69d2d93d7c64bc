package ui

import "fmt"

// StatsBarHeight is the pixel height of the bar above the grid.
const StatsBarHeight = 36

// Stats is what the stats bar reports.
type Stats struct {
	Generation int
	Population int
	Running    bool
	SpeedMS    int
	Loading    bool
}

// Fields renders the stats as left-to-right labels.
func (s Stats) Fields() []string {
	state := "Paused"
	if s.Running {
		state = "Running"
	}
	out := []string{
		fmt.Sprintf("Gen: %d", s.Generation),
		fmt.Sprintf("Pop: %d", s.Population),
		state,
		fmt.Sprintf("%dms", s.SpeedMS),
	}
	if s.Loading {
		out = append(out, "loading patterns...")
	}
	return out
}
