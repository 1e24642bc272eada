package alerts

import (
	"sync"
	"time"

	"market-simulator/src/helpers"
	"market-simulator/src/models"

	"github.com/google/uuid"
)

// -----------------------------------------------------------------------------
// Book holds price alerts. An alert fires once, then stays inactive until
// rearmed.
// -----------------------------------------------------------------------------

type Book struct {
	alerts []models.MAlert
	now    func() time.Time
	mu     sync.Mutex
}

// -----------------------------------------------------------------------------

// NewBook loads initial alerts, assigning ids to those without one.
func NewBook(initial []models.MAlert, clock func() time.Time) *Book {
	if clock == nil {
		clock = time.Now
	}
	b := &Book{now: clock}
	for _, a := range initial {
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		b.alerts = append(b.alerts, a)
	}
	return b
}

// -----------------------------------------------------------------------------

// Create validates and stores a new active alert.
func (b *Book) Create(symbol string, condition models.MAlertCondition, price float64) (models.MAlert, error) {
	if symbol == "" {
		return models.MAlert{}, helpers.NewInvalidArgument("symbol is required")
	}
	if condition != models.AlertAbove && condition != models.AlertBelow {
		return models.MAlert{}, helpers.NewInvalidArgument("condition must be ABOVE or BELOW, got %q", condition)
	}
	if price <= 0 {
		return models.MAlert{}, helpers.NewInvalidArgument("alert price must be positive, got %v", price)
	}

	a := models.MAlert{
		ID:        uuid.NewString(),
		Symbol:    symbol,
		Condition: condition,
		Price:     price,
		Active:    true,
	}

	b.mu.Lock()
	b.alerts = append(b.alerts, a)
	b.mu.Unlock()
	return a, nil
}

// -----------------------------------------------------------------------------

// List returns all alerts in creation order.
func (b *Book) List() []models.MAlert {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.MAlert, len(b.alerts))
	copy(out, b.alerts)
	return out
}

// -----------------------------------------------------------------------------

func (b *Book) indexLocked(id string) int {
	for i, a := range b.alerts {
		if a.ID == id {
			return i
		}
	}
	return -1
}

// Remove deletes an alert by id.
func (b *Book) Remove(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.indexLocked(id)
	if i < 0 {
		return helpers.NewNotFound("alert %s not found", id)
	}
	b.alerts = append(b.alerts[:i], b.alerts[i+1:]...)
	return nil
}

// Rearm reactivates a fired alert.
func (b *Book) Rearm(id string) (models.MAlert, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.indexLocked(id)
	if i < 0 {
		return models.MAlert{}, helpers.NewNotFound("alert %s not found", id)
	}
	b.alerts[i].Active = true
	return b.alerts[i], nil
}

// -----------------------------------------------------------------------------

// Evaluate fires every active alert whose condition holds at the snapshot
// price and deactivates it. When a symbol appears more than once the last
// quote wins.
func (b *Book) Evaluate(snaps []models.MMarketSnapshot) []models.MAlertEvent {
	prices := make(map[string]float64, len(snaps))
	for _, s := range snaps {
		prices[s.Symbol] = s.Price
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	var events []models.MAlertEvent
	ts := b.now().UnixMilli()
	for i := range b.alerts {
		a := &b.alerts[i]
		if !a.Active {
			continue
		}
		price, ok := prices[a.Symbol]
		if !ok || !Triggered(a.Condition, a.Price, price) {
			continue
		}
		a.Active = false
		events = append(events, models.MAlertEvent{
			Alert:       *a,
			MarketPrice: price,
			TriggeredAt: ts,
		})
	}
	return events
}

// Triggered reports whether market crosses target in the alert's direction.
func Triggered(condition models.MAlertCondition, target, market float64) bool {
	switch condition {
	case models.AlertAbove:
		return market >= target
	case models.AlertBelow:
		return market <= target
	}
	return false
}
