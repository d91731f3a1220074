package weather

import (
	"sync"
	"time"

	"github.com/yourusername/turf-advisor/internal/metrics"
)

// CallBudget tracks external weather calls made during the current
// calendar day. The counter resets to zero the first time the budget is
// consulted on a new day, compared at day granularity in the operator
// timezone.
type CallBudget struct {
	mu        sync.Mutex
	ceiling   int
	used      int
	lastReset time.Time
	loc       *time.Location
	now       func() time.Time
}

// NewCallBudget creates a budget with the given daily ceiling,
// evaluated in the given timezone.
func NewCallBudget(ceiling int, loc *time.Location) *CallBudget {
	if loc == nil {
		loc = time.UTC
	}
	b := &CallBudget{
		ceiling: ceiling,
		loc:     loc,
		now:     time.Now,
	}
	b.lastReset = b.now().In(loc)
	return b
}

// TryAcquire reserves one external call. It returns false when the
// ceiling for the current day is already spent. Callers that fail the
// reserved call should Release the slot.
func (b *CallBudget) TryAcquire() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.resetIfNewDay()

	if b.used >= b.ceiling {
		return false
	}
	b.used++
	metrics.WeatherBudgetRemaining.Set(float64(b.ceiling - b.used))
	return true
}

// Release returns a previously acquired slot, typically after the
// external call failed before consuming quota upstream.
func (b *CallBudget) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.used > 0 {
		b.used--
	}
	metrics.WeatherBudgetRemaining.Set(float64(b.ceiling - b.used))
}

// Remaining reports how many calls are left for the current day.
func (b *CallBudget) Remaining() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.resetIfNewDay()
	return b.ceiling - b.used
}

// Used reports how many calls were consumed during the current day.
func (b *CallBudget) Used() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.resetIfNewDay()
	return b.used
}

// resetIfNewDay zeroes the counter when the calendar day has rolled
// over since the last reset. Caller must hold the mutex.
func (b *CallBudget) resetIfNewDay() {
	now := b.now().In(b.loc)
	if sameDay(now, b.lastReset.In(b.loc)) {
		return
	}
	b.used = 0
	b.lastReset = now
	metrics.WeatherBudgetRemaining.Set(float64(b.ceiling))
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
