package geo

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xandnet/peerwatch/internal/cache"
)

func newLookupServer(t *testing.T, body string) (*httptest.Server, *int64) {
	t.Helper()
	var calls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func TestLookupSuccess(t *testing.T) {
	server, _ := newLookupServer(t, `{"status":"success","country":"France","city":"Paris","lat":48.85,"lon":2.35,"isp":"Example ISP"}`)
	resolver := NewResolver(server.URL, time.Hour, 0, cache.NewMemoryCache())

	loc, err := resolver.Lookup(context.Background(), "198.51.100.4")
	require.NoError(t, err)
	assert.Equal(t, "198.51.100.4", loc.IP)
	assert.Equal(t, "France", loc.Country)
	assert.Equal(t, "Paris", loc.City)
	assert.InDelta(t, 48.85, loc.Lat, 0.001)
	assert.InDelta(t, 2.35, loc.Lon, 0.001)
	assert.Equal(t, "Example ISP", loc.ISP)
}

func TestLookupServedFromCache(t *testing.T) {
	server, calls := newLookupServer(t, `{"status":"success","country":"France","city":"Paris","lat":48.85,"lon":2.35,"isp":"Example ISP"}`)
	resolver := NewResolver(server.URL, time.Hour, 0, cache.NewMemoryCache())

	for i := 0; i < 3; i++ {
		_, err := resolver.Lookup(context.Background(), "198.51.100.4")
		require.NoError(t, err)
	}

	assert.Equal(t, int64(1), atomic.LoadInt64(calls))
}

func TestLookupDistinctIPsAreNotShared(t *testing.T) {
	server, calls := newLookupServer(t, `{"status":"success","country":"France","city":"Paris","lat":48.85,"lon":2.35,"isp":"Example ISP"}`)
	resolver := NewResolver(server.URL, time.Hour, 0, cache.NewMemoryCache())

	_, err := resolver.Lookup(context.Background(), "198.51.100.4")
	require.NoError(t, err)
	_, err = resolver.Lookup(context.Background(), "198.51.100.5")
	require.NoError(t, err)

	assert.Equal(t, int64(2), atomic.LoadInt64(calls))
}

func TestLookupUpstreamFailure(t *testing.T) {
	server, _ := newLookupServer(t, `{"status":"fail","message":"private range"}`)
	resolver := NewResolver(server.URL, time.Hour, 0, cache.NewMemoryCache())

	_, err := resolver.Lookup(context.Background(), "10.0.0.1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "private range")
}

func TestLookupBadStatusCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()
	resolver := NewResolver(server.URL, time.Hour, 0, cache.NewMemoryCache())

	_, err := resolver.Lookup(context.Background(), "198.51.100.4")
	assert.Error(t, err)
}

func TestThrottleSpacesUpstreamCalls(t *testing.T) {
	server, _ := newLookupServer(t, `{"status":"success","country":"France","city":"Paris","lat":48.85,"lon":2.35,"isp":"Example ISP"}`)
	resolver := NewResolver(server.URL, time.Hour, 50*time.Millisecond, cache.NewMemoryCache())

	start := time.Now()
	_, err := resolver.Lookup(context.Background(), "198.51.100.4")
	require.NoError(t, err)
	_, err = resolver.Lookup(context.Background(), "198.51.100.5")
	require.NoError(t, err)

	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}
