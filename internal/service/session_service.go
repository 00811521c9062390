package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Session holds the state of one booking flow: its notification queue, slot board and
// submission coordinator.
type Session struct {
	ID            string
	Notifications *NotificationQueue
	Slots         *SlotBoard
	Coordinator   *SubmissionCoordinator

	lastSeen time.Time
}

// SessionStore keeps booking sessions in memory and expires idle ones.
type SessionStore struct {
	slots      *SlotService
	submission SubmissionDeps
	metrics    *MetricsService
	ttl        time.Duration
	logger     *zap.Logger
	now        func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessionStore constructs a session store.
func NewSessionStore(slots *SlotService, submission SubmissionDeps, metrics *MetricsService, ttl time.Duration, logger *zap.Logger) *SessionStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionStore{
		slots:      slots,
		submission: submission,
		metrics:    metrics,
		ttl:        ttl,
		logger:     logger,
		now:        time.Now,
		sessions:   make(map[string]*Session),
	}
}

// Acquire returns the session for id, creating it when id is empty, malformed, or
// unknown. The returned flag is true when a new session was created.
func (s *SessionStore) Acquire(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if _, err := uuid.Parse(id); err == nil {
		if session, ok := s.sessions[id]; ok && now.Sub(session.lastSeen) < s.ttl {
			session.lastSeen = now
			return session, false
		}
	} else {
		id = uuid.NewString()
	}

	queue := NewNotificationQueue()
	session := &Session{
		ID:            id,
		Notifications: queue,
		Slots:         NewSlotBoard(s.slots, queue),
		Coordinator:   NewSubmissionCoordinator(s.submission, queue),
		lastSeen:      now,
	}
	s.sessions[id] = session
	s.metrics.SetActiveSessions(len(s.sessions))
	return session, true
}

// Len reports the number of sessions held.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops sessions idle for longer than the TTL, skipping sessions with a
// submission in flight. It returns how many were removed.
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, session := range s.sessions {
		if now.Sub(session.lastSeen) < s.ttl || session.Coordinator.Submitting() {
			continue
		}
		delete(s.sessions, id)
		removed++
	}
	s.metrics.SetActiveSessions(len(s.sessions))
	return removed
}

// StartJanitor sweeps expired sessions every interval until ctx is cancelled.
func (s *SessionStore) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.Sweep(); removed > 0 {
				s.logger.Debug("expired booking sessions removed", zap.Int("count", removed))
			}
		}
	}
}
