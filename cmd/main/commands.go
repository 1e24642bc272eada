package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	datasource "market-simulator/src/data_source"
	"market-simulator/src/models"
	"market-simulator/src/render"
	"market-simulator/src/server"
	"market-simulator/src/simulation"
	"market-simulator/src/utils"
	"market-simulator/src/watchlist"

	"github.com/google/subcommands"
)

var commands = []subcommands.Command{
	&serveCmd{},
	&searchCmd{},
	&snapshotCmd{},
	&historyCmd{},
	&assetsCmd{},
}

// -----------------------------------------------------------------------------
// serve
// -----------------------------------------------------------------------------

type serveCmd struct {
	configFlag
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "run the simulated market with its HTTP, WebSocket and gRPC APIs" }
func (*serveCmd) Usage() string {
	return `serve [-config <file>]

  Ticks the watchlist every update interval and pushes dashboard state to
  websocket clients. Serves the REST API and the gRPC service until interrupted.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	conf, err := c.load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return subcommands.ExitUsageError
	}
	a := newApp(conf)

	// Seed the chart before the first tick
	if _, err := a.processor.Select(a.watchlist.Selected()); err != nil {
		a.log.Warning("Initial chart seed failed: %v", err)
	}

	srv := server.NewAPIServer(conf.MConfig, a.service, a.processor, a.log.Named("APIServer"))
	grpcServer := startServers(a, srv)

	source := datasource.NewSimulatedSource(
		a.service,
		a.watchlist.Tracked,
		time.Duration(conf.Dashboard.UpdateIntervalSeconds)*time.Second,
		a.log.Named("SimulatedSource"),
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	updatesChan := make(chan []models.MMarketSnapshot, 16)

	if err := source.Start(ctx, updatesChan, &wg); err != nil {
		a.log.Error("Failed to start data source: %v", err)
		return subcommands.ExitFailure
	}

	defer func() {
		a.log.Info("Waiting for source to stop...")
		cancel()
		wg.Wait()
		srv.Stop()
		grpcServer.Stop()
		a.log.Info("Shutdown complete.")
	}()

	runDataLoop(updatesChan, a.processor, srv, a.log)
	return subcommands.ExitSuccess
}

// -----------------------------------------------------------------------------
// search
// -----------------------------------------------------------------------------

type searchCmd struct {
	configFlag
}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "search the asset catalog" }
func (*searchCmd) Usage() string {
	return `search <query>

  Matches symbol, name and sector, case-insensitively. At most 10 results.
`
}

func (c *searchCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }

func (c *searchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: missing query")
		return subcommands.ExitUsageError
	}
	conf, err := c.load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return subcommands.ExitUsageError
	}
	a := newApp(conf)

	query := strings.Join(f.Args(), " ")
	results, err := a.service.Search(ctx, query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	render.Print(os.Stdout, render.Assets(fmt.Sprintf("Results for %q", query), results))
	return subcommands.ExitSuccess
}

// -----------------------------------------------------------------------------
// snapshot
// -----------------------------------------------------------------------------

type snapshotCmd struct {
	configFlag
	ticks int
}

func (*snapshotCmd) Name() string     { return "snapshot" }
func (*snapshotCmd) Synopsis() string { return "print simulated quotes" }
func (*snapshotCmd) Usage() string {
	return `snapshot [-n <ticks>] [symbols...]

  Walks each symbol one step per tick and prints the quotes. Without symbols
  the configured watchlist is used and its portfolio value is printed.
`
}

func (c *snapshotCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.IntVar(&c.ticks, "n", 1, "number of ticks")
}

func (c *snapshotCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticks <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -n must be positive")
		return subcommands.ExitUsageError
	}
	conf, err := c.load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return subcommands.ExitUsageError
	}
	a := newApp(conf)

	symbols := f.Args()
	useWatchlist := len(symbols) == 0
	if useWatchlist {
		symbols = a.watchlist.Tracked()
	}

	interval := time.Duration(conf.Dashboard.UpdateIntervalSeconds) * time.Second
	var snaps []models.MMarketSnapshot
	for i := 1; i <= c.ticks; i++ {
		if i > 1 {
			select {
			case <-ctx.Done():
				return subcommands.ExitFailure
			case <-time.After(interval):
			}
		}
		snaps = a.service.Snapshot(symbols)
		render.Print(os.Stdout, render.Snapshots(fmt.Sprintf("Tick %d/%d", i, c.ticks), snaps))
	}

	if useWatchlist {
		value := watchlist.Valuate(a.watchlist.Entries(), snaps, conf.Dashboard.Currency)
		render.Print(os.Stdout, render.Portfolio(value))
	}
	return subcommands.ExitSuccess
}

// -----------------------------------------------------------------------------
// history
// -----------------------------------------------------------------------------

type historyCmd struct {
	configFlag
	points int
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "print a synthesized one-minute price history" }
func (*historyCmd) Usage() string {
	return `history [-points <n>] <symbol>

  Prints n one-minute samples ending one minute ago, oldest first.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.IntVar(&c.points, "points", simulation.DefaultHistoryPoints, "number of points")
}

func (c *historyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one symbol")
		return subcommands.ExitUsageError
	}
	conf, err := c.load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return subcommands.ExitUsageError
	}
	a := newApp(conf)

	symbol := f.Arg(0)
	points, err := a.service.History(symbol, c.points)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	summary := utils.ComputeSeriesSummary(points)
	render.Print(os.Stdout, render.History(symbol, points, summary))
	return subcommands.ExitSuccess
}

// -----------------------------------------------------------------------------
// assets
// -----------------------------------------------------------------------------

type assetsCmd struct {
	configFlag
	watchlist bool
}

func (*assetsCmd) Name() string     { return "assets" }
func (*assetsCmd) Synopsis() string { return "list the asset catalog or the watchlist" }
func (*assetsCmd) Usage() string {
	return `assets [-watchlist]
`
}

func (c *assetsCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.BoolVar(&c.watchlist, "watchlist", false, "list the configured watchlist with holdings")
}

func (c *assetsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	conf, err := c.load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return subcommands.ExitUsageError
	}
	a := newApp(conf)

	if c.watchlist {
		render.Print(os.Stdout, render.Assets("Watchlist", a.watchlist.Assets()))
		return subcommands.ExitSuccess
	}
	render.Print(os.Stdout, render.Assets("Catalog", a.service.Assets()))
	return subcommands.ExitSuccess
}
