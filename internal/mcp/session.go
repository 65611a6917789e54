package mcp

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SessionHeader carries the session id on HTTP requests and responses.
const SessionHeader = "Mcp-Session-Id"

// Session table defaults, used when NewSessions gets a non-positive value.
const (
	DefaultSessionIdleTimeout = 30 * time.Minute
	DefaultMaxSessions        = 10000
)

var activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "codemash",
	Subsystem: "mcp",
	Name:      "sessions",
	Help:      "Live HTTP protocol sessions.",
})

// Sessions tracks HTTP protocol sessions issued by initialize. Sessions
// idle for longer than the idle timeout are swept in the background, and
// at the limit the least recently used session is evicted to make room.
// Call Close to stop the sweeper.
type Sessions struct {
	mu       sync.Mutex
	sessions map[string]time.Time // id -> last use
	idle     time.Duration
	limit    int
	now      func() time.Time

	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewSessions returns an empty session table and starts its sweeper.
func NewSessions(idle time.Duration, limit int) *Sessions {
	if idle <= 0 {
		idle = DefaultSessionIdleTimeout
	}
	if limit <= 0 {
		limit = DefaultMaxSessions
	}

	s := &Sessions{
		sessions: make(map[string]time.Time),
		idle:     idle,
		limit:    limit,
		now:      time.Now,
		done:     make(chan struct{}),
	}
	s.wg.Add(1)
	go s.sweepLoop()
	return s
}

func (s *Sessions) sweepLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.idle / 2)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				slog.Debug("expired idle sessions", "count", n)
			}
		}
	}
}

// Close stops the sweeper and waits for it. Safe to call twice.
func (s *Sessions) Close() {
	s.stopOnce.Do(func() { close(s.done) })
	s.wg.Wait()
}

// Create issues a new session id.
func (s *Sessions) Create() string {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if len(s.sessions) >= s.limit {
		s.expireLocked(now)
	}
	if len(s.sessions) >= s.limit {
		s.evictOldestLocked()
	}
	s.sessions[id] = now
	s.updateGaugeLocked()

	return id
}

// Valid reports whether id was issued, has not ended and has not gone
// idle. A valid session's idle clock is reset.
func (s *Sessions) Valid(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	last, ok := s.sessions[id]
	if !ok {
		return false
	}
	now := s.now()
	if now.Sub(last) > s.idle {
		delete(s.sessions, id)
		s.updateGaugeLocked()
		return false
	}
	s.sessions[id] = now
	return true
}

// End removes a session. Returns false if it did not exist.
func (s *Sessions) End(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	s.updateGaugeLocked()
	return true
}

// Sweep removes idle sessions and returns how many it removed.
func (s *Sessions) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.expireLocked(s.now())
	if n > 0 {
		s.updateGaugeLocked()
	}
	return n
}

// Count returns the number of live sessions.
func (s *Sessions) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Sessions) expireLocked(now time.Time) int {
	n := 0
	for id, last := range s.sessions {
		if now.Sub(last) > s.idle {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

func (s *Sessions) evictOldestLocked() {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, last := range s.sessions {
		if oldestID == "" || last.Before(oldest) {
			oldestID, oldest = id, last
		}
	}
	if oldestID != "" {
		delete(s.sessions, oldestID)
	}
}

func (s *Sessions) updateGaugeLocked() {
	activeSessions.Set(float64(len(s.sessions)))
}
