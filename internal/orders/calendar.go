package orders

import (
	"context"
	"sync"
)

// MonthFetcher loads a month's per-day revenue map (keyed yyyy-MM-dd) and the
// monthly total from the backend. The month argument is yyyy-MM.
type MonthFetcher func(ctx context.Context, month string) (map[string]float64, float64, error)

// SalesCalendar tracks the revenue figures for the month currently visible on
// the sales calendar. Navigating to a different month refetches that month's
// figures; selecting a day is an independent trigger handled by the order
// board, not here.
//
// A failed month fetch resets the day map and the total to zero rather than
// surfacing an error: absent sales data reads as "nothing sold".
//
// Month loads are sequenced the same way board fetches are: each load takes
// a sequence number and only the latest one installs, so a slow response
// from an earlier navigation never overwrites a fresher month's figures.
type SalesCalendar struct {
	mu    sync.Mutex
	fetch MonthFetcher
	seq   uint64
	month string
	daily map[string]float64
	total float64
}

// NewSalesCalendar creates a calendar backed by the given fetcher.
func NewSalesCalendar(fetch MonthFetcher) *SalesCalendar {
	return &SalesCalendar{fetch: fetch, daily: map[string]float64{}}
}

// ShowMonth makes the given month (yyyy-MM) the visible one, refetching its
// figures when it differs from the current month. Showing the already-visible
// month is a no-op; use Refresh to force a reload.
func (c *SalesCalendar) ShowMonth(ctx context.Context, month string) {
	c.mu.Lock()
	if month == c.month {
		c.mu.Unlock()
		return
	}
	c.seq++
	seq := c.seq
	c.mu.Unlock()

	c.load(ctx, month, seq)
}

// Refresh reloads the currently visible month.
func (c *SalesCalendar) Refresh(ctx context.Context) {
	c.mu.Lock()
	month := c.month
	if month == "" {
		c.mu.Unlock()
		return
	}
	c.seq++
	seq := c.seq
	c.mu.Unlock()

	c.load(ctx, month, seq)
}

func (c *SalesCalendar) load(ctx context.Context, month string, seq uint64) {
	daily, total, err := c.fetch(ctx, month)
	if err != nil || daily == nil {
		daily = map[string]float64{}
		total = 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq {
		return
	}
	c.month = month
	c.daily = daily
	c.total = total
}

// Month returns the visible month, empty before the first navigation.
func (c *SalesCalendar) Month() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.month
}

// MonthlyTotal returns the visible month's revenue total.
func (c *SalesCalendar) MonthlyTotal() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// DailySales returns a copy of the visible month's per-day revenue map.
func (c *SalesCalendar) DailySales() map[string]float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[string]float64, len(c.daily))
	for date, amount := range c.daily {
		out[date] = amount
	}
	return out
}

// AmountOn returns the revenue recorded for one calendar date (yyyy-MM-dd).
func (c *SalesCalendar) AmountOn(date string) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.daily[date]
}
