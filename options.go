package restchain

import (
	"fmt"
	"net/http"
)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithDefaultHeaders sets headers sent with every request. Node-level
// and per-call headers override them on conflict.
func WithDefaultHeaders(headers map[string]string) Option {
	return func(c *Client) {
		for k, v := range headers {
			c.headers[k] = v
		}
	}
}

// WithDebug enables debug tracing for every request unless overridden
// per node or per call.
func WithDebug() Option {
	return func(c *Client) {
		c.debug = true
		if c.logger == nil {
			c.logger = NewSimpleLogger()
		}
	}
}

// WithLogger sets a custom logger for debug output
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithSimpleLogger enables debug tracing with a simple console logger
func WithSimpleLogger() Option {
	return func(c *Client) {
		c.debug = true
		c.logger = NewSimpleLogger()
	}
}

// WithCustomCache sets a custom cache implementation. Pass nil to
// disable response caching entirely.
func WithCustomCache(cache Cache) Option {
	return func(c *Client) {
		c.cache = cache
	}
}

// WithCacheJanitor schedules a background sweep of expired cache entries
// using a cron specification such as "@every 1m". Without a janitor,
// expired entries are only dropped lazily on lookup.
func WithCacheJanitor(cronSpec string) Option {
	return func(c *Client) {
		c.janitorSpec = cronSpec
	}
}

// WithMiddleware adds middleware to the client
func WithMiddleware(middleware ...Middleware) Option {
	return func(c *Client) {
		c.middleware = append(c.middleware, middleware...)
	}
}

// WithMetrics enables Prometheus metrics collection
func WithMetrics() Option {
	return func(c *Client) {
		c.metrics = NewMetricsCollector()
	}
}

// WithMetricsCollector sets a custom metrics collector
func WithMetricsCollector(collector *MetricsCollector) Option {
	return func(c *Client) {
		c.metrics = collector
	}
}

// WithRequestIDGenerator sets a custom function for generating the
// request IDs attached to debug traces.
func WithRequestIDGenerator(gen func() string) Option {
	return func(c *Client) {
		c.requestIDGen = gen
	}
}

// ValidateConfiguration validates the client configuration and returns an error if invalid
func (c *Client) ValidateConfiguration() error {
	var errors []string

	errors = append(errors, c.validateHTTPClientConfig()...)
	errors = append(errors, c.validateDebugConfig()...)
	errors = append(errors, c.validateMiddlewareConfig()...)

	if len(errors) > 0 {
		return &ClientError{
			Type:    ErrorTypeValidation,
			Message: "configuration validation failed",
			Cause:   fmt.Errorf("validation errors: %v", errors),
		}
	}

	return nil
}

func (c *Client) validateHTTPClientConfig() []string {
	var errors []string

	if c.httpClient == nil {
		errors = append(errors, "HTTP client cannot be nil")
	}

	return errors
}

func (c *Client) validateDebugConfig() []string {
	var errors []string

	if c.debug && c.logger == nil {
		errors = append(errors, "logger must be set when debug is enabled")
	}

	return errors
}

func (c *Client) validateMiddlewareConfig() []string {
	var errors []string

	for i, middleware := range c.middleware {
		if middleware == nil {
			errors = append(errors, fmt.Sprintf("middleware[%d] cannot be nil", i))
		}
	}

	return errors
}
