package main

import (
	"errors"
	"flag"
	"io/fs"
	"math/rand"
	"os"
	"time"

	"market-simulator/src/alerts"
	"market-simulator/src/catalog"
	"market-simulator/src/config"
	"market-simulator/src/dashboard"
	"market-simulator/src/logger"
	"market-simulator/src/simulation"
	"market-simulator/src/utils"
	"market-simulator/src/watchlist"
)

const defaultConfigPath = "config/default.yaml"

// configFlag is the -config flag shared by every subcommand.
type configFlag struct {
	path string
}

func (c *configFlag) setFlags(f *flag.FlagSet) {
	f.StringVar(&c.path, "config", defaultConfigPath, "path to config file")
}

// load reads the config; a missing default file means built-in defaults.
func (c *configFlag) load() (*config.Config, error) {
	path := c.path
	if path == defaultConfigPath {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			path = ""
		}
	}
	return config.NewConfig(path)
}

// -----------------------------------------------------------------------------

// app wires the simulation components shared by every subcommand.
type app struct {
	conf      *config.Config
	log       *logger.Logger
	service   *simulation.Service
	watchlist *watchlist.Watchlist
	alerts    *alerts.Book
	scheduler *utils.MarketScheduler
	processor *dashboard.Processor
}

// -----------------------------------------------------------------------------

func newApp(conf *config.Config) *app {
	appLogger := logger.NewLogger(conf, conf.Name)

	seed := conf.Simulation.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	service := simulation.NewService(simulation.Options{
		Cache:       simulation.NewPriceCache(catalog.SeedPrices()),
		Assets:      catalog.Assets(),
		Rand:        rand.New(rand.NewSource(seed)),
		SearchDelay: time.Duration(conf.Simulation.SearchDelayMs) * time.Millisecond,
		Logger:      logger.NewLogger(conf, "Simulation"),
	})

	wl := watchlist.FromConfig(conf.Dashboard.Watchlist, conf.Dashboard.SelectedAsset)
	book := alerts.NewBook(catalog.InitialAlerts(), nil)
	scheduler := utils.NewMarketScheduler(logger.NewLogger(conf, "MarketScheduler"))

	processor := dashboard.NewProcessor(
		service, wl, book, scheduler,
		conf.Dashboard.Currency,
		conf.Dashboard.ChartPoints,
		nil,
		logger.NewLogger(conf, "Dashboard"),
	)

	return &app{
		conf:      conf,
		log:       appLogger,
		service:   service,
		watchlist: wl,
		alerts:    book,
		scheduler: scheduler,
		processor: processor,
	}
}
