package utils

import (
	"log"
	"strings"
	"time"

	"github.com/scmhub/calendar"
)

// TradingCalendar answers open/closed questions for one exchange via scmhub/calendar.
type TradingCalendar struct {
	MIC      string
	Calendar *calendar.Calendar
	Fallback bool
	Timezone *time.Location
}

// Listing suffix to ISO 10383 MIC. Bare tickers trade on NYSE.
var suffixMIC = []struct {
	suffix string
	mic    string
}{
	{".L", "xlon"},
	{".PA", "xpar"},
	{".DE", "xfra"},
	{".AS", "xams"},
	{".SW", "xswx"},
	{".TO", "xtse"},
	{".T", "xtks"},
	{".HK", "xhkg"},
	{".AX", "xasx"},
}

// -----------------------------------------------------------------------------

// MICForSymbol maps a stock symbol to the exchange it lists on.
func MICForSymbol(symbol string) string {
	for _, s := range suffixMIC {
		if strings.HasSuffix(symbol, s.suffix) {
			return s.mic
		}
	}
	return "xnys"
}

// -----------------------------------------------------------------------------

// GetCalendar loads the calendar for mic, falling back to NYSE and then to a
// plain Mon-Fri 09:30-16:00 New York schedule.
func GetCalendar(mic string) *TradingCalendar {
	cal := calendar.GetCalendar(mic)
	if cal == nil {
		mic = "xnys"
		cal = calendar.GetCalendar(mic)
	}

	if cal == nil {
		log.Printf("WARNING: Failed to load calendar for MIC '%s'. Using simple fallback (Mon-Fri 09:30-16:00 New York).", mic)
		return NewFallbackCalendar()
	}

	return &TradingCalendar{MIC: mic, Calendar: cal, Timezone: cal.Loc}
}

// NewFallbackCalendar is a holiday-free NYSE-hours schedule.
func NewFallbackCalendar() *TradingCalendar {
	nyLoc, err := time.LoadLocation("America/New_York")
	if err != nil {
		nyLoc = time.UTC
	}
	return &TradingCalendar{MIC: "fallback", Fallback: true, Timezone: nyLoc}
}

// -----------------------------------------------------------------------------

func (tc *TradingCalendar) IsTradingDay(date time.Time) bool {
	if tc.Timezone != nil {
		date = date.In(tc.Timezone)
	}

	if tc.Fallback {
		weekday := date.Weekday()
		return weekday != time.Saturday && weekday != time.Sunday
	}
	return tc.Calendar.IsBusinessDay(date)
}

// -----------------------------------------------------------------------------

// IsOpenOnMinute checks if the market is open at a specific minute.
func (tc *TradingCalendar) IsOpenOnMinute(t time.Time) bool {
	if tc.Timezone != nil {
		t = t.In(tc.Timezone)
	}

	if tc.Fallback {
		if !tc.IsTradingDay(t) {
			return false
		}

		hour := t.Hour()
		minute := t.Minute()

		// 9:30 - 16:00 local
		return (hour > 9 || (hour == 9 && minute >= 30)) && hour < 16
	}

	return tc.Calendar.IsOpen(t)
}
