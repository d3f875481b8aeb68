package restchain

import (
	"net/http"
	"time"
)

// Middleware wraps the outgoing request, e.g. for auth headers or tracing.
type Middleware func(req *http.Request, next RoundTripper) (*http.Response, error)

// RoundTripper represents the HTTP transport interface
type RoundTripper interface {
	RoundTrip(*http.Request) (*http.Response, error)
}

// RoundTripperFunc is a helper type for middleware
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// CacheEntry holds a JSON-parsed response body and its expiry.
type CacheEntry struct {
	Value     Value
	ExpiresAt time.Time
}

// Cache interface for response caching
type Cache interface {
	Get(key string) (*CacheEntry, bool)
	Set(key string, entry *CacheEntry, ttl time.Duration)
	Delete(key string)
	Clear()
}

// Sweeper is implemented by caches that can proactively drop expired
// entries. The default InMemoryCache implements it; a CacheJanitor can
// drive it on a schedule.
type Sweeper interface {
	SweepExpired() int
}

// Option represents a Client configuration option
type Option func(*Client)

// ChildOption configures a chain node at creation time. Options passed
// for an already existing child are ignored: the first creation wins.
type ChildOption func(*Node)
