package observability

import (
	"sync"
	"time"
)

type requestKey struct {
	Path   string
	Method string
	Status int
}

type errorKey struct {
	Path   string
	Method string
	Code   string
}

// Metrics provides basic in-memory counters.
type Metrics struct {
	mu            sync.Mutex
	requestCount  map[requestKey]int64
	errorCount    map[errorKey]int64
	totalDuration map[requestKey]time.Duration
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount:  make(map[requestKey]int64),
		errorCount:    make(map[errorKey]int64),
		totalDuration: make(map[requestKey]time.Duration),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := requestKey{Path: path, Method: method, Status: status}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
	m.totalDuration[key] += duration
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := errorKey{Path: path, Method: method, Code: code}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// Requests returns the total request count across all paths.
func (m *Metrics) Requests() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	var total int64
	for _, n := range m.requestCount {
		total += n
	}
	return total
}

// Errors returns the total error count across all paths.
func (m *Metrics) Errors() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	var total int64
	for _, n := range m.errorCount {
		total += n
	}
	return total
}
