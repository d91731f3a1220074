package weather

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCallBudgetCeiling(t *testing.T) {
	budget := NewCallBudget(3, time.UTC)

	assert.True(t, budget.TryAcquire())
	assert.True(t, budget.TryAcquire())
	assert.True(t, budget.TryAcquire())
	assert.False(t, budget.TryAcquire())

	assert.Equal(t, 0, budget.Remaining())
	assert.Equal(t, 3, budget.Used())
}

func TestCallBudgetRelease(t *testing.T) {
	budget := NewCallBudget(1, time.UTC)

	assert.True(t, budget.TryAcquire())
	assert.False(t, budget.TryAcquire())

	budget.Release()
	assert.True(t, budget.TryAcquire())
}

func TestCallBudgetReleaseNeverGoesNegative(t *testing.T) {
	budget := NewCallBudget(2, time.UTC)

	budget.Release()
	assert.Equal(t, 0, budget.Used())
	assert.Equal(t, 2, budget.Remaining())
}

func TestCallBudgetResetsOnNewDay(t *testing.T) {
	budget := NewCallBudget(2, time.UTC)

	current := time.Date(2026, 3, 14, 23, 50, 0, 0, time.UTC)
	budget.now = func() time.Time { return current }
	budget.lastReset = current

	assert.True(t, budget.TryAcquire())
	assert.True(t, budget.TryAcquire())
	assert.False(t, budget.TryAcquire())

	// Ten minutes later it is the next calendar day.
	current = current.Add(10 * time.Minute)
	assert.Equal(t, 2, budget.Remaining())
	assert.True(t, budget.TryAcquire())
}

func TestCallBudgetDayBoundaryInOperatorTimezone(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Skip("tzdata unavailable")
	}

	budget := NewCallBudget(1, paris)

	// 23:30 UTC is already the next day in Paris during winter time.
	current := time.Date(2026, 1, 10, 22, 30, 0, 0, time.UTC)
	budget.now = func() time.Time { return current }
	budget.lastReset = current

	assert.True(t, budget.TryAcquire())
	assert.False(t, budget.TryAcquire())

	current = time.Date(2026, 1, 10, 23, 30, 0, 0, time.UTC)
	assert.True(t, budget.TryAcquire())
}

func TestCallBudgetConcurrentAcquire(t *testing.T) {
	const ceiling = 50
	budget := NewCallBudget(ceiling, time.UTC)

	var wg sync.WaitGroup
	var mu sync.Mutex
	granted := 0

	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if budget.TryAcquire() {
				mu.Lock()
				granted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, ceiling, granted)
	assert.Equal(t, 0, budget.Remaining())
}
