package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/booking-api/internal/models"
	"github.com/noah-isme/booking-api/internal/scheduling"
	"github.com/noah-isme/booking-api/pkg/backend"
	appErrors "github.com/noah-isme/booking-api/pkg/errors"
)

type appointmentStoreStub struct {
	mu       sync.Mutex
	payloads []backend.AppointmentPayload
	err      error
	started  chan struct{}
	release  chan struct{}
}

func (s *appointmentStoreStub) StoreAppointment(ctx context.Context, payload backend.AppointmentPayload) error {
	s.mu.Lock()
	s.payloads = append(s.payloads, payload)
	s.mu.Unlock()
	if s.started != nil {
		s.started <- struct{}{}
	}
	if s.release != nil {
		<-s.release
	}
	return s.err
}

func (s *appointmentStoreStub) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.payloads)
}

type invalidatorStub struct {
	dates []time.Time
}

func (i *invalidatorStub) InvalidateDate(ctx context.Context, date time.Time) {
	i.dates = append(i.dates, date)
}

func tuesdayAppointment() models.Appointment {
	loc := time.Local
	return models.Appointment{
		Title:  "Consultation",
		Start:  time.Date(2024, time.June, 11, 10, 0, 0, 0, loc),
		End:    time.Date(2024, time.June, 11, 10, 30, 0, 0, loc),
		Status: models.AppointmentStatusPending,
	}
}

func TestHandleSaveAppointmentSuccess(t *testing.T) {
	store := &appointmentStoreStub{}
	invalidator := &invalidatorStub{}
	queue := NewNotificationQueue()
	coordinator := NewSubmissionCoordinator(SubmissionDeps{
		Store:     store,
		Calendars: snapshotStub{snapshot: weekdaySnapshot()},
		Slots:     invalidator,
	}, queue)

	outcome := coordinator.HandleSaveAppointment(context.Background(), tuesdayAppointment(), "provider-1")
	assert.Equal(t, models.SubmissionSubmitted, outcome.Status)
	require.Len(t, store.payloads, 1)
	assert.Equal(t, "2024-06-11T10:00:00", store.payloads[0].Start)
	assert.Equal(t, "2024-06-11T10:30:00", store.payloads[0].End)
	assert.Equal(t, "provider-1", store.payloads[0].UserID)
	assert.Len(t, invalidator.dates, 1)

	notes := queue.Drain()
	require.Len(t, notes, 1)
	assert.Equal(t, models.NotificationSuccess, notes[0].Level)
	assert.Contains(t, notes[0].Message, "Consultation")
	assert.Contains(t, notes[0].Message, "Tuesday, 11 Jun 2024 10:00")
	assert.False(t, coordinator.Submitting())
}

func TestHandleSaveAppointmentFieldErrorsKeepServerOrder(t *testing.T) {
	store := &appointmentStoreStub{err: backend.FieldErrors{
		{Field: "start", Message: "Slot already taken"},
		{Field: "title", Message: "Title too long"},
	}}
	queue := NewNotificationQueue()
	coordinator := NewSubmissionCoordinator(SubmissionDeps{Store: store}, queue)

	outcome := coordinator.HandleSaveAppointment(context.Background(), tuesdayAppointment(), "provider-1")
	assert.Equal(t, models.SubmissionRejected, outcome.Status)

	notes := queue.Drain()
	require.Len(t, notes, 2)
	assert.Equal(t, "start", notes[0].Field)
	assert.Equal(t, "Slot already taken", notes[0].Message)
	assert.Equal(t, "title", notes[1].Field)
	assert.False(t, coordinator.Submitting())
}

func TestHandleSaveAppointmentTransportFailure(t *testing.T) {
	store := &appointmentStoreStub{err: errors.New("dial tcp: connection refused")}
	queue := NewNotificationQueue()
	coordinator := NewSubmissionCoordinator(SubmissionDeps{Store: store}, queue)

	outcome := coordinator.HandleSaveAppointment(context.Background(), tuesdayAppointment(), "")
	assert.Equal(t, models.SubmissionFailed, outcome.Status)
	notes := queue.Drain()
	require.Len(t, notes, 1)
	assert.Equal(t, MsgSubmissionFailed, notes[0].Message)
	assert.False(t, coordinator.Submitting())
}

func TestHandleSaveAppointmentIgnoresConcurrentSubmission(t *testing.T) {
	store := &appointmentStoreStub{started: make(chan struct{}), release: make(chan struct{})}
	coordinator := NewSubmissionCoordinator(SubmissionDeps{Store: store}, NewNotificationQueue())
	appt := tuesdayAppointment()

	done := make(chan models.SubmissionOutcome)
	go func() {
		done <- coordinator.HandleSaveAppointment(context.Background(), appt, "provider-1")
	}()
	<-store.started
	assert.True(t, coordinator.Submitting())

	skipped := coordinator.HandleSaveAppointment(context.Background(), appt, "provider-1")
	assert.Equal(t, models.SubmissionSkipped, skipped.Status)

	close(store.release)
	first := <-done
	assert.Equal(t, models.SubmissionSubmitted, first.Status)
	assert.Equal(t, 1, store.calls())
	assert.False(t, coordinator.Submitting())
}

func TestHandleSaveAppointmentStructValidation(t *testing.T) {
	store := &appointmentStoreStub{}
	queue := NewNotificationQueue()
	coordinator := NewSubmissionCoordinator(SubmissionDeps{Store: store}, queue)

	appt := tuesdayAppointment()
	appt.Title = ""
	appt.End = appt.Start.Add(-time.Minute)
	bad := "not-an-email"
	appt.ClientEmail = &bad

	outcome := coordinator.HandleSaveAppointment(context.Background(), appt, "provider-1")
	assert.Equal(t, models.SubmissionInvalid, outcome.Status)
	assert.Zero(t, store.calls())

	fields := map[string]string{}
	for _, n := range queue.Drain() {
		fields[n.Field] = n.Message
	}
	assert.Equal(t, "title is required", fields["title"])
	assert.Equal(t, scheduling.MsgEndBeforeStart, fields["end"])
	assert.Contains(t, fields["client_email"], "valid email")
}

func TestHandleSaveAppointmentCalendarRules(t *testing.T) {
	store := &appointmentStoreStub{}
	queue := NewNotificationQueue()
	blocked := models.SpecialDate{Date: "2024-06-11", IsAvailable: false}
	coordinator := NewSubmissionCoordinator(SubmissionDeps{
		Store:     store,
		Calendars: snapshotStub{snapshot: weekdaySnapshot(blocked)},
	}, queue)

	outcome := coordinator.HandleSaveAppointment(context.Background(), tuesdayAppointment(), "provider-1")
	assert.Equal(t, models.SubmissionInvalid, outcome.Status)
	assert.Zero(t, store.calls())
	notes := queue.Drain()
	require.Len(t, notes, 1)
	assert.Equal(t, scheduling.MsgDateBlocked, notes[0].Message)
}

func TestHandleSaveAppointmentWithoutCalendarDefersToBackend(t *testing.T) {
	store := &appointmentStoreStub{}
	coordinator := NewSubmissionCoordinator(SubmissionDeps{
		Store:     store,
		Calendars: snapshotStub{err: appErrors.Clone(appErrors.ErrNotFound, "calendar configuration not found")},
	}, NewNotificationQueue())

	outcome := coordinator.HandleSaveAppointment(context.Background(), tuesdayAppointment(), "provider-1")
	assert.Equal(t, models.SubmissionSubmitted, outcome.Status)
	assert.Equal(t, 1, store.calls())
}

func TestHandleCancel(t *testing.T) {
	coordinator := NewSubmissionCoordinator(SubmissionDeps{CancelRedirect: "/book"}, nil)
	assert.Equal(t, "/book", coordinator.HandleCancel())
	assert.Equal(t, "/", NewSubmissionCoordinator(SubmissionDeps{}, nil).HandleCancel())
}
