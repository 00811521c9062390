package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/noah-isme/booking-api/internal/models"
	"github.com/noah-isme/booking-api/pkg/backend"
	appErrors "github.com/noah-isme/booking-api/pkg/errors"
)

type memoryCacheRepo struct {
	mu      sync.Mutex
	entries map[string][]models.TimeSlot
	deleted []string
}

func newMemoryCacheRepo() *memoryCacheRepo {
	return &memoryCacheRepo{entries: make(map[string][]models.TimeSlot)}
}

func (m *memoryCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	slots, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	*(dest.(*[]models.TimeSlot)) = append([]models.TimeSlot(nil), slots...)
	return nil
}

func (m *memoryCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value.([]models.TimeSlot)
	return nil
}

func (m *memoryCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range m.entries {
		if strings.HasPrefix(key, prefix) {
			delete(m.entries, key)
		}
	}
	return nil
}

type slotFetcherStub struct {
	mu      sync.Mutex
	calls   int
	payload backend.SlotPayload
	err     error
	// gate, when set, maps a date to a channel the fetch waits on.
	gate map[string]chan struct{}
	// byDate overrides payload per date.
	byDate map[string]backend.SlotPayload
}

func (s *slotFetcherStub) AvailableSlots(ctx context.Context, date time.Time, userID string) (backend.SlotPayload, error) {
	day := date.Format("2006-01-02")
	s.mu.Lock()
	s.calls++
	gate := s.gate[day]
	payload, ok := s.byDate[day]
	if !ok {
		payload = s.payload
	}
	err := s.err
	s.mu.Unlock()

	if gate != nil {
		<-gate
	}
	return payload, err
}

func (s *slotFetcherStub) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type snapshotStub struct {
	snapshot *models.CalendarSnapshot
	err      error
}

func (s snapshotStub) Snapshot(ctx context.Context, userID string) (*models.CalendarSnapshot, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.snapshot, nil
}

func weekdaySnapshot(specials ...models.SpecialDate) *models.CalendarSnapshot {
	return &models.CalendarSnapshot{
		Config: models.CalendarConfig{
			UserID:       "provider-1",
			StartTime:    "09:00",
			EndTime:      "18:00",
			BusinessDays: []int{1, 2, 3, 4, 5},
			SlotDuration: 60,
		},
		SpecialDates: specials,
	}
}
