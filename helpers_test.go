package restchain

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// recordingLogger captures log messages for assertions.
type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

type logEntry struct {
	level  string
	msg    string
	fields []interface{}
}

func newRecordingLogger() *recordingLogger {
	return &recordingLogger{}
}

func (l *recordingLogger) record(level, msg string, keysAndValues ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level: level, msg: msg, fields: keysAndValues})
}

func (l *recordingLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.record("DEBUG", msg, keysAndValues...)
}

func (l *recordingLogger) Info(msg string, keysAndValues ...interface{}) {
	l.record("INFO", msg, keysAndValues...)
}

func (l *recordingLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.record("WARN", msg, keysAndValues...)
}

func (l *recordingLogger) Error(msg string, keysAndValues ...interface{}) {
	l.record("ERROR", msg, keysAndValues...)
}

func (l *recordingLogger) count(msg string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, e := range l.entries {
		if e.msg == msg {
			n++
		}
	}
	return n
}

// newJSONServer serves the given document for every request.
func newJSONServer(t *testing.T, doc interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(doc); err != nil {
			t.Fatalf("Failed to encode response: %v", err)
		}
	}))
}

// countingServer serves a JSON document and counts the requests that
// actually reach the transport.
type countingServer struct {
	*httptest.Server
	mu    sync.Mutex
	hits  int
	paths []string
}

func newCountingServer(t *testing.T, doc interface{}) *countingServer {
	t.Helper()
	cs := &countingServer{}
	cs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cs.mu.Lock()
		cs.hits++
		cs.paths = append(cs.paths, r.URL.Path)
		cs.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(doc); err != nil {
			t.Fatalf("Failed to encode response: %v", err)
		}
	}))
	return cs
}

func (s *countingServer) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits
}
