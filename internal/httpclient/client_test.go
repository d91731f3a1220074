package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig() Config {
	return Config{
		Timeout:           2 * time.Second,
		MaxRetries:        0,
		RetryWaitMin:      time.Millisecond,
		RetryWaitMax:      time.Millisecond,
		RateLimit:         1000,
		CircuitBreakerMax: 3,
	}
}

func TestDoSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := New(fastConfig(), nil)
	defer c.Close()

	resp, err := c.Get(context.Background(), server.URL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, c.IsOpen())
}

func TestCircuitBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	// Close immediately so every call fails at the transport.
	server.Close()

	c := New(fastConfig(), nil)
	defer c.Close()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := c.Get(ctx, server.URL)
		require.Error(t, err)
	}
	assert.True(t, c.IsOpen())

	// Once open, requests are rejected before hitting the transport.
	_, err := c.Get(ctx, server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker open")
}

func TestCircuitBreakerClosesOnSuccess(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	failing.Close()

	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer healthy.Close()

	cfg := fastConfig()
	cfg.CircuitBreakerMax = 5
	c := New(cfg, nil)
	defer c.Close()
	ctx := context.Background()

	// Two failures, below the threshold.
	for i := 0; i < 2; i++ {
		_, err := c.Get(ctx, failing.URL)
		require.Error(t, err)
	}
	assert.False(t, c.IsOpen())

	// A success resets the failure streak.
	resp, err := c.Get(ctx, healthy.URL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.False(t, c.IsOpen())
}

func TestDoConcurrentUse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := New(fastConfig(), nil)
	defer c.Close()

	// One shared client across many goroutines, as the weather fan-out
	// does. Run with -race to verify the breaker state is guarded.
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := c.Get(context.Background(), server.URL)
			if err == nil {
				resp.Body.Close()
			}
			c.IsOpen()
		}()
	}
	wg.Wait()

	assert.False(t, c.IsOpen())
}
