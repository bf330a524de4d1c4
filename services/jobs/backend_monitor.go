package jobs

import (
	"context"
	"log"
	"sync"
	"time"

	"portfolio_site_go/services/api"
)

// Pinger checks whether the backend answers.
type Pinger interface {
	Ping(ctx context.Context) (*api.APIStatus, error)
}

// BackendMonitor records backend reachability and logs when it changes.
type BackendMonitor struct {
	pinger  Pinger
	timeout time.Duration
	now     func() time.Time

	mu        sync.RWMutex
	checked   bool
	reachable bool
	lastCheck time.Time
}

func NewBackendMonitor(pinger Pinger, timeout time.Duration) *BackendMonitor {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &BackendMonitor{pinger: pinger, timeout: timeout, now: time.Now}
}

// Check pings the backend once and reports whether it answered.
func (m *BackendMonitor) Check(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	_, err := m.pinger.Ping(ctx)
	reachable := err == nil

	m.mu.Lock()
	changed := !m.checked || m.reachable != reachable
	m.checked = true
	m.reachable = reachable
	m.lastCheck = m.now()
	m.mu.Unlock()

	if changed {
		if reachable {
			log.Printf("[INFO] Backend reachable")
		} else {
			log.Printf("[WARNING] Backend not reachable: %v", err)
		}
	}
	return reachable
}

// Status returns the last result. checkedAt is zero before the first Check.
func (m *BackendMonitor) Status() (reachable bool, checkedAt time.Time) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reachable, m.lastCheck
}

// Job wraps Check for the scheduler.
func (m *BackendMonitor) Job(spec string) Job {
	return Job{
		Name: "backend-ping",
		Spec: spec,
		Run: func(ctx context.Context) {
			m.Check(ctx)
		},
	}
}
