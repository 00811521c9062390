package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/booking-api/internal/models"
	"github.com/noah-isme/booking-api/pkg/backend"
	"github.com/noah-isme/booking-api/pkg/datetime"
)

// MsgSlotsUnavailable is shown when the slot list could not be loaded.
const MsgSlotsUnavailable = "Could not load available times"

type slotFetcher interface {
	AvailableSlots(ctx context.Context, date time.Time, userID string) (backend.SlotPayload, error)
}

// SlotService fetches and normalizes the slots offered by the booking backend.
type SlotService struct {
	fetcher slotFetcher
	cache   *CacheService
	metrics *MetricsService
	ttl     time.Duration
	logger  *zap.Logger
}

// NewSlotService constructs a slot service.
func NewSlotService(fetcher slotFetcher, cache *CacheService, metrics *MetricsService, ttl time.Duration, logger *zap.Logger) *SlotService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SlotService{fetcher: fetcher, cache: cache, metrics: metrics, ttl: ttl, logger: logger}
}

// SlotCacheKey builds the cache key of the slot list for a date and optional provider.
// Provider ids are prefixed so none can collide with the unscoped entry.
func SlotCacheKey(date time.Time, userID string) string {
	if userID == "" {
		return fmt.Sprintf("slots:%s:all", datetime.FormatDate(date))
	}
	return fmt.Sprintf("slots:%s:u:%s", datetime.FormatDate(date), userID)
}

// Fetch returns the slots for date. Errors cover transport failures and unrecognised
// response layouts.
func (s *SlotService) Fetch(ctx context.Context, date time.Time, userID string) ([]models.TimeSlot, error) {
	key := SlotCacheKey(date, userID)
	var cached []models.TimeSlot
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, nil
	}

	payload, err := s.fetcher.AvailableSlots(ctx, date, userID)
	if err != nil {
		if errors.Is(err, backend.ErrUnrecognizedSlotShape) {
			s.metrics.RecordSlotShape(payload.Shape.String())
			s.logger.Warn("unrecognized slot response", zap.String("date", datetime.FormatDate(date)), zap.String("user_id", userID), zap.Error(err))
		} else {
			s.logger.Error("failed to load slots", zap.String("date", datetime.FormatDate(date)), zap.String("user_id", userID), zap.Error(err))
		}
		return nil, err
	}
	s.metrics.RecordSlotShape(payload.Shape.String())

	slots := payload.Slots
	if slots == nil {
		slots = []models.TimeSlot{}
	}
	_ = s.cache.Set(ctx, key, slots, s.ttl)
	return slots, nil
}

// InvalidateDate drops every cached slot list for date.
func (s *SlotService) InvalidateDate(ctx context.Context, date time.Time) {
	_ = s.cache.Invalidate(ctx, fmt.Sprintf("slots:%s:*", datetime.FormatDate(date)))
}

// SlotBoard is the per-session view of the slot picker. Loads may overlap; only the
// most recently issued one is applied.
type SlotBoard struct {
	source   *SlotService
	notifier Notifier

	mu       sync.Mutex
	issued   uint64
	inFlight int
	slots    []models.TimeSlot
}

// NewSlotBoard constructs a board bound to a notifier.
func NewSlotBoard(source *SlotService, notifier Notifier) *SlotBoard {
	return &SlotBoard{source: source, notifier: notifier, slots: []models.TimeSlot{}}
}

// LoadAvailableSlots loads the slots for date and returns them. Failures leave an empty
// list and queue one error notification. A load superseded by a newer one still returns
// its own date's result but neither writes the board nor notifies.
func (b *SlotBoard) LoadAvailableSlots(ctx context.Context, date time.Time, userID string) []models.TimeSlot {
	b.mu.Lock()
	b.issued++
	seq := b.issued
	b.inFlight++
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		b.inFlight--
		b.mu.Unlock()
	}()

	slots, err := b.source.Fetch(ctx, date, userID)

	b.mu.Lock()
	defer b.mu.Unlock()
	if seq != b.issued {
		if err != nil {
			return []models.TimeSlot{}
		}
		return cloneSlots(slots)
	}
	if err != nil {
		b.slots = []models.TimeSlot{}
		if b.notifier != nil {
			b.notifier.Notify(errorNotification(MsgSlotsUnavailable))
		}
		return []models.TimeSlot{}
	}
	b.slots = slots
	return cloneSlots(slots)
}

// Loading reports whether a load is in progress.
func (b *SlotBoard) Loading() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.inFlight > 0
}

// Slots returns the list currently applied to the board.
func (b *SlotBoard) Slots() []models.TimeSlot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return cloneSlots(b.slots)
}

func cloneSlots(slots []models.TimeSlot) []models.TimeSlot {
	out := make([]models.TimeSlot, len(slots))
	copy(out, slots)
	return out
}
