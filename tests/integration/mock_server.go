package integration

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
)

const (
	notFoundMarker = "The specified profile could not be found"
	profileMarker  = "<steamID64>"
)

// MockLookupServer simulates the profile lookup endpoint. Identifiers listed
// in taken get a profile payload, everything else gets the not-found payload.
type MockLookupServer struct {
	server *httptest.Server

	mu    sync.Mutex
	taken map[string]bool

	requestCount int64

	// rateLimitFirst makes the server answer 429 for the first N requests
	rateLimitFirst int64
}

// NewMockLookupServer creates a mock lookup endpoint where the given
// identifiers are taken
func NewMockLookupServer(taken ...string) *MockLookupServer {
	m := &MockLookupServer{taken: make(map[string]bool)}
	for _, id := range taken {
		m.taken[id] = true
	}
	m.server = httptest.NewServer(http.HandlerFunc(m.handle))
	return m
}

// URL returns the base URL to point the lookup client at
func (m *MockLookupServer) URL() string {
	return m.server.URL + "/id"
}

// RequestCount returns how many lookup requests the server has seen
func (m *MockLookupServer) RequestCount() int64 {
	return atomic.LoadInt64(&m.requestCount)
}

// RateLimitFirst makes the server reject the first n requests with 429
func (m *MockLookupServer) RateLimitFirst(n int64) {
	atomic.StoreInt64(&m.rateLimitFirst, n)
}

// Close shuts the mock server down
func (m *MockLookupServer) Close() {
	m.server.Close()
}

// newFailingServer returns a server that answers 502 to everything
func newFailingServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
}

func (m *MockLookupServer) handle(w http.ResponseWriter, r *http.Request) {
	count := atomic.AddInt64(&m.requestCount, 1)

	if count <= atomic.LoadInt64(&m.rateLimitFirst) {
		w.WriteHeader(http.StatusTooManyRequests)
		return
	}

	// Path shape: /id/<identifier>
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 2 || parts[0] != "id" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	identifier := parts[1]

	m.mu.Lock()
	isTaken := m.taken[identifier]
	m.mu.Unlock()

	w.Header().Set("Content-Type", "text/xml")
	if isTaken {
		fmt.Fprintf(w, "<profile>%s76561198000000001</steamID64><customURL>%s</customURL></profile>", profileMarker, identifier)
		return
	}
	fmt.Fprintf(w, "<response><error>%s</error></response>", notFoundMarker)
}
