package restchain

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Debug trace names emitted through the Logger collaborator.
const (
	traceRequest         = "request"
	traceSuccessResponse = "success_response"
	traceFailureResponse = "failure_response"
	traceCachedResponse  = "cached_response"
)

// Client performs the HTTP calls terminating a chain. It owns the
// default headers, the debug flag and the response cache, and is safe
// for concurrent use.
type Client struct {
	httpClient      *http.Client
	headers         map[string]string
	headersMu       sync.RWMutex
	debug           bool
	cache           Cache
	middleware      []Middleware
	logger          Logger
	metrics         *MetricsCollector
	requestIDGen    func() string
	janitorSpec     string
	janitor         *CacheJanitor
	validationError error
}

// NewClient constructs a Client using the provided functional options. A
// best effort validation is performed; call IsValid / ValidationError
// for errors.
func NewClient(options ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		headers:      make(map[string]string),
		cache:        NewInMemoryCache(),
		requestIDGen: uuid.NewString,
	}

	for _, option := range options {
		option(c)
	}

	if err := c.ValidateConfiguration(); err != nil {
		c.validationError = err
	} else if c.janitorSpec != "" {
		if err := c.startJanitor(); err != nil {
			c.validationError = err
		}
	}

	return c
}

func (c *Client) startJanitor() error {
	sweeper, ok := c.cache.(Sweeper)
	if !ok {
		return &ClientError{
			Type:    ErrorTypeValidation,
			Message: "cache janitor requires a cache implementing Sweeper",
		}
	}
	janitor, err := NewCacheJanitor(sweeper, c.janitorSpec)
	if err != nil {
		return err
	}
	c.janitor = janitor
	c.janitor.Start()
	return nil
}

// IsValid reports whether configuration validation passed at construction.
func (c *Client) IsValid() bool {
	return c.validationError == nil
}

// ValidationError returns the configuration validation error, if any.
func (c *Client) ValidationError() error {
	return c.validationError
}

// Close releases background resources (the cache janitor, if running).
// The Client remains usable for requests afterwards.
func (c *Client) Close() {
	if c.janitor != nil {
		c.janitor.Stop()
	}
}

// SetDefaultHeader sets a header sent with every request. Per-call and
// node-level headers override it on conflict.
func (c *Client) SetDefaultHeader(key, value string) {
	c.headersMu.Lock()
	defer c.headersMu.Unlock()
	c.headers[key] = value
}

// DefaultHeaders returns a copy of the client's default headers.
func (c *Client) DefaultHeaders() map[string]string {
	c.headersMu.RLock()
	defer c.headersMu.RUnlock()
	headers := make(map[string]string, len(c.headers))
	for k, v := range c.headers {
		headers[k] = v
	}
	return headers
}

// Cache returns the client's response cache.
func (c *Client) Cache() Cache {
	return c.cache
}

// Request performs a single HTTP call and returns the JSON-parsed body.
// Non-2xx responses are not errors: the parsed body is returned and the
// status is only visible in the debug trace. Transport failures and
// bodies that are not valid JSON return a ClientError.
func (c *Client) Request(ctx context.Context, method, url string, options ...CallOption) (Value, error) {
	o := evalCallOptions(options)
	if o.url == "" {
		o.url = url
	}
	return c.request(ctx, method, &o)
}

func (c *Client) request(ctx context.Context, method string, o *callOptions) (Value, error) {
	if c.validationError != nil {
		return Value{}, c.validationError
	}

	finalURL := o.url + strings.Join(o.subpath, "/")
	method = strings.ToUpper(method)

	debug := c.debug
	if o.debug != nil {
		debug = *o.debug
	}

	var requestID string
	if debug && c.requestIDGen != nil {
		requestID = c.requestIDGen()
	}

	merged := c.DefaultHeaders()
	for k, v := range o.headers {
		merged[k] = v
	}

	c.trace(debug, traceRequest,
		"requestID", requestID,
		"method", method,
		"url", finalURL,
		"headers", merged,
		"params", o.params,
		"data", o.body,
	)

	endpoint := endpointFromURL(finalURL)

	// The key is built from the headers argument as passed for this
	// call, before merging with defaults.
	key := cacheKey(finalURL, o.params, o.headers)
	if c.cache != nil {
		if entry, found := c.cache.Get(key); found {
			c.trace(debug, traceCachedResponse,
				"requestID", requestID,
				"text", entry.Value,
			)
			if c.metrics != nil {
				c.metrics.RecordCacheHit(method, endpoint)
			}
			return entry.Value, nil
		}
		if c.metrics != nil {
			c.metrics.RecordCacheMiss(method, endpoint)
		}
	}

	req, err := c.buildRequest(ctx, method, finalURL, merged, o)
	if err != nil {
		if c.metrics != nil {
			c.metrics.RecordError(ErrorTypeValidation, method, endpoint)
		}
		return Value{}, err
	}

	if c.metrics != nil {
		c.metrics.RecordRequestStart(method, endpoint)
	}
	start := time.Now()

	resp, err := c.send(req)

	duration := time.Since(start)
	if c.metrics != nil {
		c.metrics.RecordRequestEnd(method, endpoint)
	}

	if err != nil {
		if c.metrics != nil {
			c.metrics.RecordError(ErrorTypeTransport, method, endpoint)
		}
		return Value{}, &ClientError{
			Type:      ErrorTypeTransport,
			Message:   "request failed",
			Cause:     err,
			Method:    method,
			URL:       finalURL,
			RequestID: requestID,
			Timestamp: time.Now(),
			Duration:  duration,
		}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if c.metrics != nil {
			c.metrics.RecordError(ErrorTypeTransport, method, endpoint)
		}
		return Value{}, &ClientError{
			Type:       ErrorTypeTransport,
			Message:    "reading response body failed",
			Cause:      err,
			Method:     method,
			URL:        finalURL,
			StatusCode: resp.StatusCode,
			RequestID:  requestID,
			Timestamp:  time.Now(),
			Duration:   duration,
		}
	}

	value, err := ParseValue(raw)
	if err != nil {
		if c.metrics != nil {
			c.metrics.RecordError(ErrorTypeParse, method, endpoint)
		}
		return Value{}, &ClientError{
			Type:       ErrorTypeParse,
			Message:    "response body is not valid JSON",
			Cause:      err,
			Method:     method,
			URL:        finalURL,
			StatusCode: resp.StatusCode,
			RequestID:  requestID,
			Timestamp:  time.Now(),
			Duration:   duration,
		}
	}

	if c.cache != nil && method == http.MethodGet && o.cacheFor != nil && *o.cacheFor > 0 {
		c.cache.Set(key, &CacheEntry{Value: value}, *o.cacheFor)
		if c.metrics != nil {
			if sized, ok := c.cache.(interface{ Len() int }); ok {
				c.metrics.RecordCacheSize("default", sized.Len())
			}
		}
	}

	// Success classification is an exact match on 200; other 2xx codes
	// trace as failures. This only affects the trace name, never the
	// returned value.
	traceName := traceFailureResponse
	if resp.StatusCode == http.StatusOK {
		traceName = traceSuccessResponse
	}
	c.trace(debug, traceName,
		"requestID", requestID,
		"status_code", resp.StatusCode,
		"reason", reasonPhrase(resp),
		"text", value,
	)

	if c.metrics != nil {
		c.metrics.RecordRequest(method, endpoint, resp.StatusCode, duration)
	}

	return value, nil
}

func (c *Client) buildRequest(ctx context.Context, method, url string, headers map[string]string, o *callOptions) (*http.Request, error) {
	var body io.Reader
	jsonBody := false
	if o.hasBody && o.body != nil {
		switch b := o.body.(type) {
		case []byte:
			body = bytes.NewReader(b)
		case string:
			body = strings.NewReader(b)
		case json.RawMessage:
			body = bytes.NewReader(b)
		default:
			raw, err := json.Marshal(o.body)
			if err != nil {
				return nil, &ClientError{
					Type:    ErrorTypeValidation,
					Message: "request body is not JSON-encodable",
					Cause:   err,
					Method:  method,
					URL:     url,
				}
			}
			body = bytes.NewReader(raw)
			jsonBody = true
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, &ClientError{
			Type:    ErrorTypeValidation,
			Message: "building request failed",
			Cause:   err,
			Method:  method,
			URL:     url,
		}
	}

	if len(o.params) > 0 {
		query := req.URL.Query()
		for k, v := range o.params {
			query.Set(k, v)
		}
		req.URL.RawQuery = query.Encode()
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if jsonBody && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	for _, edit := range o.edits {
		edit(req)
	}

	return req, nil
}

func (c *Client) send(req *http.Request) (*http.Response, error) {
	if len(c.middleware) == 0 {
		return c.httpClient.Do(req)
	}

	current := RoundTripperFunc(c.httpClient.Do)

	for i := len(c.middleware) - 1; i >= 0; i-- {
		middleware := c.middleware[i]
		next := current
		current = RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			return middleware(r, next)
		})
	}

	return current.RoundTrip(req)
}

func (c *Client) trace(enabled bool, name string, keysAndValues ...interface{}) {
	if !enabled || c.logger == nil {
		return
	}
	c.logger.Debug(name, keysAndValues...)
}

func reasonPhrase(resp *http.Response) string {
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	return resp.Status
}

func endpointFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}

	var builder strings.Builder
	builder.WriteString(u.Host)

	if u.Path != "" && u.Path != "/" {
		builder.WriteString(u.Path)
	} else {
		builder.WriteByte('/')
	}

	return builder.String()
}
