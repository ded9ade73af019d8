// Package config loads the sysq CLI configuration file. Only presentation
// concerns live here (refresh cadence, sort order, visible columns); the
// introspection core takes no configuration.
package config

import (
	"fmt"
	"time"
)

// Columns that the listing commands know how to render.
var knownColumns = map[string]struct{}{
	"pid":     {},
	"ppid":    {},
	"name":    {},
	"user":    {},
	"status":  {},
	"rss":     {},
	"vsz":     {},
	"threads": {},
	"started": {},
	"time":    {},
	"command": {},
}

// Sort keys accepted by the listing commands and the top view.
var knownSortKeys = map[string]struct{}{
	"pid":  {},
	"name": {},
	"rss":  {},
	"time": {},
	"cpu":  {},
}

// Duration wraps time.Duration for YAML unmarshalling.
type Duration struct {
	time.Duration
}

// UnmarshalText parses a textual duration, accepting empty strings.
func (d *Duration) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		d.Duration = 0
		return nil
	}
	dur, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = dur
	return nil
}

// MarshalText renders the duration using time.Duration formatting.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config controls how the CLI presents process data.
type Config struct {
	// Refresh is the top view's sampling interval. Very short intervals
	// amplify rounding noise in the CPU-percent column.
	Refresh Duration `yaml:"refresh"`

	// Sort selects the default ordering of listings.
	Sort string `yaml:"sort"`

	// Columns selects which columns ps renders, in order.
	Columns []string `yaml:"columns"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Refresh: Duration{Duration: 2 * time.Second},
		Sort:    "pid",
		Columns: []string{"pid", "name", "user", "status", "rss", "threads", "started", "time"},
	}
}

func (c Config) validate() error {
	if c.Refresh.Duration < 100*time.Millisecond {
		return fmt.Errorf("refresh: %s is below the 100ms floor", c.Refresh)
	}
	if _, ok := knownSortKeys[c.Sort]; !ok {
		return fmt.Errorf("sort: unknown key %q", c.Sort)
	}
	if len(c.Columns) == 0 {
		return fmt.Errorf("columns: at least one column is required")
	}
	for _, col := range c.Columns {
		if _, ok := knownColumns[col]; !ok {
			return fmt.Errorf("columns: unknown column %q", col)
		}
	}
	return nil
}
