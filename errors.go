package restchain

import (
	"errors"
	"fmt"
	"time"
)

// Error type constants used in ClientError.Type.
const (
	ErrorTypeTransport  = "Transport"
	ErrorTypeParse      = "Parse"
	ErrorTypeSegment    = "Segment"
	ErrorTypeValidation = "Validation"
)

// Sentinel errors for common failure scenarios
var (
	// ErrInvalidSegment is returned when a chain node is created with an
	// empty path segment.
	ErrInvalidSegment = errors.New("restchain: invalid segment")
)

// ClientError represents a failure raised by the client. HTTP responses
// with non-2xx status codes are not errors at this layer; only transport
// failures, undecodable bodies and misconfiguration produce a ClientError.
type ClientError struct {
	Type       string
	Message    string
	Cause      error
	Method     string
	URL        string
	StatusCode int
	RequestID  string
	Timestamp  time.Time
	Duration   time.Duration
}

// Error implements error interface.
func (e *ClientError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := fmt.Sprintf("%s: %s", e.Type, e.Message)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (%v)", msg, e.Cause)
	}
	if e.RequestID != "" {
		msg = fmt.Sprintf("[%s] %s", e.RequestID, msg)
	}
	if e.Method != "" && e.URL != "" {
		msg = fmt.Sprintf("%s: %s %s", msg, e.Method, e.URL)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *ClientError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is compares error types for errors.Is. A ClientError with
// ErrorTypeSegment also matches the ErrInvalidSegment sentinel.
func (e *ClientError) Is(target error) bool {
	if e == nil {
		return false
	}
	if target == ErrInvalidSegment {
		return e.Type == ErrorTypeSegment
	}
	if targetErr, ok := target.(*ClientError); ok {
		return e.Type == targetErr.Type
	}
	return false
}

// IsTransportError reports whether err is a network-level failure
// (connection refused, DNS failure, timeout).
func IsTransportError(err error) bool {
	var clientErr *ClientError
	return errors.As(err, &clientErr) && clientErr.Type == ErrorTypeTransport
}

// IsParseError reports whether err was caused by a response body that is
// not valid JSON.
func IsParseError(err error) bool {
	var clientErr *ClientError
	return errors.As(err, &clientErr) && clientErr.Type == ErrorTypeParse
}

// IsInvalidSegment reports whether err was caused by an empty chain
// segment name.
func IsInvalidSegment(err error) bool {
	var clientErr *ClientError
	return errors.As(err, &clientErr) && clientErr.Type == ErrorTypeSegment
}

// DebugInfo renders a multi-line string with diagnostic context.
func (e *ClientError) DebugInfo() string {
	if e == nil {
		return "Error: <nil>"
	}
	info := fmt.Sprintf("Error Type: %s\n", e.Type)
	info += fmt.Sprintf("Message: %s\n", e.Message)
	if e.RequestID != "" {
		info += fmt.Sprintf("Request ID: %s\n", e.RequestID)
	}
	if e.Method != "" {
		info += fmt.Sprintf("Method: %s\n", e.Method)
	}
	if e.URL != "" {
		info += fmt.Sprintf("URL: %s\n", e.URL)
	}
	if e.StatusCode > 0 {
		info += fmt.Sprintf("Status Code: %d\n", e.StatusCode)
	}
	if !e.Timestamp.IsZero() {
		info += fmt.Sprintf("Timestamp: %s\n", e.Timestamp.Format(time.RFC3339))
	}
	if e.Duration > 0 {
		info += fmt.Sprintf("Duration: %v\n", e.Duration)
	}
	if e.Cause != nil {
		info += fmt.Sprintf("Cause: %v\n", e.Cause)
	}
	return info
}
