package server

import (
	"net/http"
	"strings"
	"time"

	"market-simulator/src/models"
	"market-simulator/src/simulation"
	"market-simulator/src/utils"
	"market-simulator/src/watchlist"

	"github.com/gin-gonic/gin"
)

type watchlistRequest struct {
	Symbol   string  `json:"symbol"`
	Holdings float64 `json:"holdings"`
}

type alertRequest struct {
	Symbol    string                 `json:"symbol"`
	Condition models.MAlertCondition `json:"condition"`
	Price     float64                `json:"price"`
}

// -----------------------------------------------------------------------------
// Market data
// -----------------------------------------------------------------------------

func (s *APIServer) getSearch(c *gin.Context) {
	query := c.Query("q")
	results, err := s.Service.Search(c.Request.Context(), query)
	if err != nil {
		s.fail(c, err, "search")
		return
	}
	c.JSON(http.StatusOK, gin.H{"query": query, "results": results})
}

// -----------------------------------------------------------------------------

func (s *APIServer) getSnapshot(c *gin.Context) {
	symbols := splitSymbols(c.Query("symbols"))
	if len(symbols) == 0 {
		symbols = s.Processor.Watchlist.Tracked()
	}
	c.JSON(http.StatusOK, s.Service.Snapshot(symbols))
}

// -----------------------------------------------------------------------------

func (s *APIServer) getHistory(c *gin.Context) {
	// wildcard keeps the slash in pairs like BTC/USD
	symbol := strings.TrimPrefix(c.Param("symbol"), "/")

	points, err := intQuery(c, "points", simulation.DefaultHistoryPoints)
	if err != nil {
		s.fail(c, err, "history")
		return
	}

	history, err := s.Service.History(symbol, points)
	if err != nil {
		s.fail(c, err, "history")
		return
	}
	c.JSON(http.StatusOK, models.MHistoryResult{Type: models.StateHistory, Symbol: symbol, Points: history})
}

// -----------------------------------------------------------------------------
// Watchlist & portfolio
// -----------------------------------------------------------------------------

func (s *APIServer) getWatchlist(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"selected": s.Processor.Watchlist.Selected(),
		"assets":   s.Processor.Watchlist.Assets(),
	})
}

func (s *APIServer) postWatchlist(c *gin.Context) {
	var req watchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	if err := s.Processor.Watchlist.Add(req.Symbol, req.Holdings); err != nil {
		s.fail(c, err, "watchlist add")
		return
	}
	c.JSON(http.StatusCreated, s.Processor.Watchlist.Entries())
}

func (s *APIServer) deleteWatchlist(c *gin.Context) {
	if err := s.Processor.Watchlist.Remove(c.Query("symbol")); err != nil {
		s.fail(c, err, "watchlist remove")
		return
	}
	c.JSON(http.StatusOK, s.Processor.Watchlist.Entries())
}

func (s *APIServer) postSelect(c *gin.Context) {
	var req watchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	chart, err := s.Processor.Select(req.Symbol)
	if err != nil {
		s.fail(c, err, "select")
		return
	}
	c.JSON(http.StatusOK, gin.H{"selected": req.Symbol, "chart": chart})
}

// -----------------------------------------------------------------------------

func (s *APIServer) getPortfolio(c *gin.Context) {
	if state := s.Processor.State(); state != nil {
		c.JSON(http.StatusOK, state.Portfolio)
		return
	}
	c.JSON(http.StatusOK, watchlist.Valuate(s.Processor.Watchlist.Entries(), nil, s.Processor.Currency))
}

// -----------------------------------------------------------------------------
// Alerts
// -----------------------------------------------------------------------------

func (s *APIServer) getAlerts(c *gin.Context) {
	c.JSON(http.StatusOK, s.Processor.Alerts.List())
}

func (s *APIServer) postAlert(c *gin.Context) {
	var req alertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	alert, err := s.Processor.Alerts.Create(req.Symbol, models.MAlertCondition(strings.ToUpper(string(req.Condition))), req.Price)
	if err != nil {
		s.fail(c, err, "alert create")
		return
	}
	c.JSON(http.StatusCreated, alert)
}

func (s *APIServer) deleteAlert(c *gin.Context) {
	if err := s.Processor.Alerts.Remove(c.Param("id")); err != nil {
		s.fail(c, err, "alert remove")
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *APIServer) postRearm(c *gin.Context) {
	alert, err := s.Processor.Alerts.Rearm(c.Param("id"))
	if err != nil {
		s.fail(c, err, "alert rearm")
		return
	}
	c.JSON(http.StatusOK, alert)
}

// -----------------------------------------------------------------------------
// Dashboard
// -----------------------------------------------------------------------------

func (s *APIServer) getChart(c *gin.Context) {
	selected := s.Processor.Watchlist.Selected()
	summary, _ := s.Processor.Charts.Summary(selected)
	series := s.Processor.Charts.Series(selected)
	if series == nil {
		series = []models.MHistoricalPoint{}
	}
	c.JSON(http.StatusOK, gin.H{
		"symbol":  selected,
		"points":  series,
		"summary": summary,
	})
}

func (s *APIServer) getMarkets(c *gin.Context) {
	symbols := splitSymbols(c.Query("symbols"))
	if len(symbols) == 0 {
		symbols = s.Processor.Watchlist.Tracked()
	}
	scheduler := s.Processor.Scheduler
	if scheduler == nil {
		scheduler = utils.NewMarketScheduler(s.Logger)
	}
	c.JSON(http.StatusOK, scheduler.Statuses(symbols, time.Now()))
}

// -----------------------------------------------------------------------------

func (s *APIServer) getConfig(c *gin.Context) {
	d := s.Config.Dashboard
	c.JSON(http.StatusOK, gin.H{
		"name":                    s.Config.Name,
		"currency":                d.Currency,
		"chart_points":            d.ChartPoints,
		"update_interval_seconds": d.UpdateIntervalSeconds,
		"search_debounce_ms":      d.SearchDebounceMs,
		"search_min_length":       d.SearchMinLength,
		"search_limit":            simulation.SearchLimit,
	})
}

// -----------------------------------------------------------------------------

func (s *APIServer) getHealth(c *gin.Context) {
	s.stateMutex.RLock()
	timestamp := s.latestState.Timestamp
	s.stateMutex.RUnlock()

	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"connections":   s.connections.Load(),
		"latest_update": timestamp,
		"errors":        s.Errors.ErrorCount(),
	})
}
