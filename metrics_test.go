package restchain

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsRecordRequest(t *testing.T) {
	registry := prometheus.NewRegistry()
	collector := NewMetricsCollectorWithRegistry(registry)

	collector.RecordRequest("GET", "api.example.com/users", 200, 50*time.Millisecond)
	collector.RecordRequest("GET", "api.example.com/users", 200, 70*time.Millisecond)

	count := testutil.ToFloat64(collector.requestsTotal.WithLabelValues("GET", "200", "api.example.com/users"))
	if count != 2 {
		t.Errorf("Expected 2 requests recorded, got %v", count)
	}
}

func TestMetricsInFlight(t *testing.T) {
	registry := prometheus.NewRegistry()
	collector := NewMetricsCollectorWithRegistry(registry)

	collector.RecordRequestStart("GET", "api.example.com/")
	if got := testutil.ToFloat64(collector.requestsInFlight.WithLabelValues("GET", "api.example.com/")); got != 1 {
		t.Errorf("Expected 1 in flight, got %v", got)
	}
	collector.RecordRequestEnd("GET", "api.example.com/")
	if got := testutil.ToFloat64(collector.requestsInFlight.WithLabelValues("GET", "api.example.com/")); got != 0 {
		t.Errorf("Expected 0 in flight, got %v", got)
	}
}

func TestMetricsCacheCounters(t *testing.T) {
	registry := prometheus.NewRegistry()
	collector := NewMetricsCollectorWithRegistry(registry)
	server := newCountingServer(t, map[string]bool{"ok": true})
	defer server.Close()

	client := NewClient(WithMetricsCollector(collector))
	node := client.Wrap(server.URL).Child("users")

	if _, err := node.Get(context.Background(), CacheFor(time.Minute)); err != nil {
		t.Fatalf("Get() returned error: %v", err)
	}
	if _, err := node.Get(context.Background(), CacheFor(time.Minute)); err != nil {
		t.Fatalf("Get() returned error: %v", err)
	}

	endpoint := endpointFromURL(server.URL + "/users")
	hits := testutil.ToFloat64(collector.cacheHits.WithLabelValues("GET", endpoint))
	misses := testutil.ToFloat64(collector.cacheMisses.WithLabelValues("GET", endpoint))
	if hits != 1 {
		t.Errorf("Expected 1 cache hit, got %v", hits)
	}
	if misses != 1 {
		t.Errorf("Expected 1 cache miss, got %v", misses)
	}

	size := testutil.ToFloat64(collector.cacheSize.WithLabelValues("default"))
	if size != 1 {
		t.Errorf("Expected cache size 1, got %v", size)
	}
}

func TestMetricsErrorCounter(t *testing.T) {
	registry := prometheus.NewRegistry()
	collector := NewMetricsCollectorWithRegistry(registry)

	collector.RecordError(ErrorTypeParse, "GET", "api.example.com/broken")

	count := testutil.ToFloat64(collector.errorsTotal.WithLabelValues(ErrorTypeParse, "GET", "api.example.com/broken"))
	if count != 1 {
		t.Errorf("Expected 1 error recorded, got %v", count)
	}
}
