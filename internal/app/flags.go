package app

import (
	"github.com/spf13/pflag"
)

// Flags are the GUI's command-line parameters. Zero values defer to the
// loaded configuration.
type Flags struct {
	Config   string
	LogLevel string
	Patterns string
	DB       string
	Preset   string
	Scale    int
	TPS      int
	Seed     int64
	Run      bool
}

// NewFlags returns Flags populated with the GUI defaults.
func NewFlags() *Flags {
	return &Flags{Scale: 12, TPS: 60}
}

// Bind attaches the flags to fs.
func (f *Flags) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&f.Config, "config", f.Config, "config file (default $XDG_CONFIG_HOME/conway-game-of-life/config.yaml)")
	fs.StringVar(&f.LogLevel, "log-level", f.LogLevel, "log level: debug, info, warn, error")
	fs.StringVar(&f.Patterns, "patterns-dir", f.Patterns, "directory of .cells patterns (default bundled corpus)")
	fs.StringVar(&f.DB, "db", f.DB, "run database path")
	fs.StringVar(&f.Preset, "preset", f.Preset, "preset to load at start instead of a random fill")
	fs.IntVarP(&f.Scale, "scale", "s", f.Scale, "pixels per cell")
	fs.IntVar(&f.TPS, "tps", f.TPS, "ticks per second")
	fs.Int64Var(&f.Seed, "seed", f.Seed, "seed for the initial random fill (0 = time-based)")
	fs.BoolVar(&f.Run, "run", f.Run, "start running immediately")
}
