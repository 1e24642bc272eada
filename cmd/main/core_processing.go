package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"market-simulator/src/dashboard"
	"market-simulator/src/interfaces"
	"market-simulator/src/logger"
	"market-simulator/src/models"
)

// -----------------------------------------------------------------------------

// runDataLoop turns each snapshot batch into dashboard state and pushes it
// to clients until interrupted or the source closes its channel.
func runDataLoop(
	updatesChan <-chan []models.MMarketSnapshot,
	proc *dashboard.Processor,
	srv interfaces.IDataExchanger,
	appLogger *logger.Logger,
) {

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	appLogger.Info("Starting data loop (Push Model)...")

	for {
		select {
		case batch, ok := <-updatesChan:
			if !ok {
				appLogger.Info("Data source closed channel.")
				return
			}

			start := time.Now()
			state := proc.Process(batch)

			srv.UpdateState(state)
			srv.Broadcast(state)

			appLogger.Debug("Tick: %d symbols, %d alerts, processed in %s",
				len(batch), len(state.Triggered), time.Since(start))

		case <-quit:
			appLogger.Info("Shutting down...")
			return
		}
	}
}
