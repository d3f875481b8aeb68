package restchain

import (
	"fmt"
	"net/http"
	"time"
)

// CallOption configures a single request.
type CallOption func(*callOptions)

type callOptions struct {
	url      string
	pk       string
	subpath  []string
	params   map[string]string
	headers  map[string]string
	body     interface{}
	hasBody  bool
	debug    *bool
	cacheFor *time.Duration
	edits    []func(*http.Request)
}

func evalCallOptions(options []CallOption) callOptions {
	var o callOptions
	for _, opt := range options {
		opt(&o)
	}
	return o
}

// PK appends a primary key to the resolved path, stringified with fmt.
// A key with an empty string form is ignored.
func PK(pk interface{}) CallOption {
	return func(o *callOptions) {
		o.pk = fmt.Sprint(pk)
	}
}

// Subpath appends extra path segments to the resolved URL, joined by
// forward slashes with no leading separator.
func Subpath(segments ...string) CallOption {
	return func(o *callOptions) {
		o.subpath = append(o.subpath, segments...)
	}
}

// Query sets URL query parameters, merging over any set previously.
func Query(params map[string]string) CallOption {
	return func(o *callOptions) {
		if o.params == nil {
			o.params = make(map[string]string, len(params))
		}
		for k, v := range params {
			o.params[k] = v
		}
	}
}

// QueryParam sets a single URL query parameter.
func QueryParam(key, value string) CallOption {
	return func(o *callOptions) {
		if o.params == nil {
			o.params = make(map[string]string, 1)
		}
		o.params[key] = value
	}
}

// Headers sets request headers for this call only, merged on top of the
// node's and client's stored headers. The stored headers are not
// mutated.
func Headers(headers map[string]string) CallOption {
	return func(o *callOptions) {
		if o.headers == nil {
			o.headers = make(map[string]string, len(headers))
		}
		for k, v := range headers {
			o.headers[k] = v
		}
	}
}

// Header sets a single request header for this call only.
func Header(key, value string) CallOption {
	return func(o *callOptions) {
		if o.headers == nil {
			o.headers = make(map[string]string, 1)
		}
		o.headers[key] = value
	}
}

// Body sets the request body. []byte and string are sent as-is; any
// other value is JSON-encoded and Content-Type is set to
// application/json unless already present.
func Body(body interface{}) CallOption {
	return func(o *callOptions) {
		o.body = body
		o.hasBody = true
	}
}

// Debug overrides the effective debug flag for this call only. It wins
// over both node-level and client-level settings.
func Debug(enabled bool) CallOption {
	return func(o *callOptions) {
		o.debug = &enabled
	}
}

// CacheFor caches a GET response for the given lifetime. Zero or
// negative lifetimes disable caching for the call.
func CacheFor(lifetime time.Duration) CallOption {
	return func(o *callOptions) {
		o.cacheFor = &lifetime
	}
}

// URL replaces the resolved chain URL for this call.
func URL(raw string) CallOption {
	return func(o *callOptions) {
		o.url = raw
	}
}

// EditRequest registers a hook that may mutate the outgoing
// *http.Request before it is sent, e.g. to set auth or a deadline. Hooks
// run in registration order after headers and query parameters are
// applied.
func EditRequest(fn func(*http.Request)) CallOption {
	return func(o *callOptions) {
		o.edits = append(o.edits, fn)
	}
}
