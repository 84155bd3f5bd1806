package main

import (
	stdslog "log/slog"
	"time"

	"github.com/fwojciec/modelcat"
)

// CLI defines the command line flags.
type CLI struct {
	Config     string        `help:"Path to a sources YAML file. Built-in sources are used when omitted." type:"path"`
	Out        string        `help:"Directory for catalog JSON files." default:"." type:"path"`
	DB         string        `help:"Optional SQLite database recording extraction runs." type:"path"`
	Source     []string      `help:"Process only the named sources."`
	Timeout    time.Duration `help:"Per-page fetch timeout." default:"30s"`
	ControlURL string        `help:"Attach to a running browser over this DevTools URL instead of launching one." env:"MODELFETCH_CONTROL_URL"`
	RPS        float64       `help:"Fetch rate limit in requests per second." default:"1"`
	Verbose    bool          `help:"Enable debug logging." short:"v"`
}

// Dependencies holds the services one run needs. Tests swap in mocks.
type Dependencies struct {
	Logger  *stdslog.Logger
	Writer  modelcat.CatalogWriter
	Records modelcat.RecordService

	// Deduper spans all sources of the run, so a model listed by two
	// providers is kept only once.
	Deduper *modelcat.Deduper

	RPS float64
}
