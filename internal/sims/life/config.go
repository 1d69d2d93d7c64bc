package life

import "strconv"

// Config controls the Life simulation.
type Config struct {
	Rows    int
	Cols    int
	Wrap    bool
	Density float64
}

// DefaultConfig returns a bounded 50x50 board with 30% random fill.
func DefaultConfig() Config {
	return Config{Rows: 50, Cols: 50, Density: 0.3}
}

// Apply overrides fields from flag-style key/value pairs: rows, cols, wrap
// and density. Unknown keys and unparsable or out-of-range values are
// ignored.
func (c Config) Apply(cfg map[string]string) Config {
	if v, ok := cfg["rows"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Rows = parsed
		}
	}
	if v, ok := cfg["cols"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Cols = parsed
		}
	}
	if v, ok := cfg["wrap"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Wrap = parsed
		}
	}
	if v, ok := cfg["density"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Density = parsed
		}
	}
	return c
}
