package main

import (
	"context"
	"fmt"
	"io"
	stdslog "log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/modelcat"
	"github.com/fwojciec/modelcat/fs"
	modelhttp "github.com/fwojciec/modelcat/http"
	"github.com/fwojciec/modelcat/rod"
	modelslog "github.com/fwojciec/modelcat/slog"
	"github.com/fwojciec/modelcat/sqlite"
	"github.com/fwojciec/modelcat/yaml"
)

func main() {
	ctx := context.Background()

	m := NewMain()
	defer m.Close()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database, open only when run recording is requested.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("modelfetch"),
		kong.Description("Extract model catalogs from provider listing pages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 1 && (args[0] == "help" || args[0] == "--help" || args[0] == "-h") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}
	if _, err := parser.Parse(args); err != nil {
		return err
	}

	level := stdslog.LevelInfo
	if cli.Verbose {
		level = stdslog.LevelDebug
	}
	logger := stdslog.New(stdslog.NewTextHandler(stderr, &stdslog.HandlerOptions{Level: level}))

	sources, err := m.loadSources(cli)
	if err != nil {
		return err
	}

	deps := &Dependencies{
		Logger:  logger,
		Writer:  fs.NewWriter(cli.Out),
		Deduper: modelcat.NewDeduper(),
		RPS:     cli.RPS,
	}

	if cli.DB != "" {
		m.DB = sqlite.NewDB(cli.DB)
		if err := m.DB.Open(); err != nil {
			return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
		}
		deps.Records = sqlite.NewRecordService(m.DB)
	}

	for i := range sources {
		src := &sources[i]
		if err := m.runSource(ctx, cli, deps, src); err != nil {
			// One broken source must not lose the others' catalogs.
			logger.Error("source failed", "source", src.Name, "error", modelcat.ErrorMessage(err))
		}
	}
	return nil
}

// loadSources resolves the source list: a YAML config when given, built-in
// sources otherwise, optionally narrowed by --source.
func (m *Main) loadSources(cli *CLI) ([]modelcat.Source, error) {
	var cfg *modelcat.Config
	if cli.Config != "" {
		loaded, err := yaml.LoadConfig(cli.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = &modelcat.Config{Sources: DefaultSources()}
	}

	if len(cli.Source) == 0 {
		return cfg.Sources, nil
	}

	wanted := make(map[string]struct{}, len(cli.Source))
	for _, name := range cli.Source {
		wanted[name] = struct{}{}
	}
	var sources []modelcat.Source
	for _, src := range cfg.Sources {
		if _, ok := wanted[src.Name]; ok {
			sources = append(sources, src)
			delete(wanted, src.Name)
		}
	}
	for name := range wanted {
		return nil, modelcat.Errorf(modelcat.ENOTFOUND, "unknown source %q", name)
	}
	return sources, nil
}

// runSource builds the fetcher and extractor for one source and processes
// it end to end.
func (m *Main) runSource(ctx context.Context, cli *CLI, deps *Dependencies, src *modelcat.Source) error {
	fetcher, err := m.newFetcher(cli, src)
	if err != nil {
		return err
	}
	defer fetcher.Close()

	extractor, err := buildExtractor(src, deps.Logger)
	if err != nil {
		return err
	}

	return fetchSource(ctx, deps, src,
		modelslog.NewFetcher(fetcher, deps.Logger),
		modelslog.NewCatalogExtractor(extractor, src.Name, deps.Logger))
}

func (m *Main) newFetcher(cli *CLI, src *modelcat.Source) (modelcat.Fetcher, error) {
	if !src.Browser {
		return modelhttp.NewFetcher(nil), nil
	}
	opts := []rod.Option{rod.WithFetchTimeout(cli.Timeout)}
	if cli.ControlURL != "" {
		opts = append(opts, rod.WithControlURL(cli.ControlURL))
	}
	if src.WaitSelector != "" {
		opts = append(opts, rod.WithWaitSelector(src.WaitSelector))
	}
	return rod.NewFetcher(opts...)
}
