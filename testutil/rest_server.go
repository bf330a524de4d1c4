// Package testutil provides a fake backend for client and handler tests.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// RESTMock wraps httptest.Server with route registration. Like the real
// backend, reads are public and every other method needs Basic auth.
type RESTMock struct {
	Server   *httptest.Server
	mu       sync.Mutex
	routes   map[string]http.HandlerFunc
	requests []*http.Request
	Username string
	Password string
}

// NewRESTMock creates a mock backend that accepts the given credentials.
// All routes return 404 by default. Use Handle/HandleJSON to register routes.
func NewRESTMock(t *testing.T, username, password string) *RESTMock {
	t.Helper()

	m := &RESTMock{
		routes:   make(map[string]http.HandlerFunc),
		Username: username,
		Password: password,
	}

	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.mu.Lock()
		m.requests = append(m.requests, r.Clone(r.Context()))
		m.mu.Unlock()

		if r.Method != http.MethodGet && !strings.HasSuffix(r.URL.Path, "/login/token") {
			user, pass, ok := r.BasicAuth()
			if !ok || user != m.Username || pass != m.Password {
				w.Header().Set("WWW-Authenticate", "Basic")
				writeJSON(w, http.StatusUnauthorized, map[string]string{
					"detail": "Incorrect email or password",
				})
				return
			}
		}

		key := r.Method + " " + r.URL.Path
		m.mu.Lock()
		handler, ok := m.routes[key]
		m.mu.Unlock()

		if ok {
			handler(w, r)
			return
		}

		// Try prefix match for dynamic paths
		m.mu.Lock()
		for routeKey, h := range m.routes {
			if strings.HasSuffix(routeKey, "/*") {
				prefix := strings.TrimSuffix(routeKey, "*")
				if strings.HasPrefix(key, prefix) {
					m.mu.Unlock()
					h(w, r)
					return
				}
			}
		}
		m.mu.Unlock()

		writeJSON(w, http.StatusNotFound, map[string]string{
			"detail": "Not Found",
		})
	}))

	t.Cleanup(func() {
		m.Server.Close()
	})

	return m
}

// URL returns the base URL of the mock server.
func (m *RESTMock) URL() string {
	return m.Server.URL
}

// Handle registers a handler for a specific method and path.
// A path ending in "/*" matches any path with that prefix.
func (m *RESTMock) Handle(method, path string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes[method+" "+path] = handler
}

// HandleJSON registers a handler that returns a canned JSON response.
func (m *RESTMock) HandleJSON(method, path string, statusCode int, data interface{}) {
	m.Handle(method, path, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, statusCode, data)
	})
}

// Requests returns the requests received so far.
func (m *RESTMock) Requests() []*http.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*http.Request, len(m.requests))
	copy(out, m.requests)
	return out
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
