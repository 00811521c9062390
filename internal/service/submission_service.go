package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/booking-api/internal/models"
	"github.com/noah-isme/booking-api/internal/scheduling"
	"github.com/noah-isme/booking-api/pkg/backend"
	"github.com/noah-isme/booking-api/pkg/datetime"
	appErrors "github.com/noah-isme/booking-api/pkg/errors"
)

// MsgSubmissionFailed is shown when the backend could not be reached or failed
// without field details.
const MsgSubmissionFailed = "Could not save the appointment, please try again"

type appointmentStore interface {
	StoreAppointment(ctx context.Context, payload backend.AppointmentPayload) error
}

type calendarSnapshotter interface {
	Snapshot(ctx context.Context, userID string) (*models.CalendarSnapshot, error)
}

type slotInvalidator interface {
	InvalidateDate(ctx context.Context, date time.Time)
}

// SubmissionDeps groups the shared collaborators of every session's coordinator.
type SubmissionDeps struct {
	Store          appointmentStore
	Calendars      calendarSnapshotter
	Slots          slotInvalidator
	Validator      *validator.Validate
	Metrics        *MetricsService
	Logger         *zap.Logger
	CancelRedirect string
}

// SubmissionCoordinator submits candidate appointments for one booking session. At
// most one submission is in flight; repeated calls while busy are dropped.
type SubmissionCoordinator struct {
	deps     SubmissionDeps
	notifier Notifier
	inFlight atomic.Bool
}

// NewSubmissionCoordinator constructs a coordinator bound to a notifier.
func NewSubmissionCoordinator(deps SubmissionDeps, notifier Notifier) *SubmissionCoordinator {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Validator == nil {
		deps.Validator = NewAppointmentValidator()
	}
	if deps.CancelRedirect == "" {
		deps.CancelRedirect = "/"
	}
	return &SubmissionCoordinator{deps: deps, notifier: notifier}
}

// NewAppointmentValidator returns a validator reporting JSON field names.
func NewAppointmentValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return validate
}

// Submitting reports whether a submission is in flight.
func (c *SubmissionCoordinator) Submitting() bool {
	return c.inFlight.Load()
}

// HandleSaveAppointment validates and submits appt on behalf of provider userID. Every
// outcome is reported through notifications; the returned status says which path ran.
func (c *SubmissionCoordinator) HandleSaveAppointment(ctx context.Context, appt models.Appointment, userID string) models.SubmissionOutcome {
	if !c.inFlight.CompareAndSwap(false, true) {
		c.deps.Metrics.RecordSubmission(models.SubmissionSkipped)
		return models.SubmissionOutcome{Status: models.SubmissionSkipped, Notifications: []models.Notification{}}
	}
	defer c.inFlight.Store(false)

	outcome := c.submit(ctx, appt, userID)
	for _, n := range outcome.Notifications {
		c.notify(n)
	}
	c.deps.Metrics.RecordSubmission(outcome.Status)
	return outcome
}

// HandleCancel returns where the booking page should navigate when the form is
// abandoned.
func (c *SubmissionCoordinator) HandleCancel() string {
	return c.deps.CancelRedirect
}

func (c *SubmissionCoordinator) submit(ctx context.Context, appt models.Appointment, userID string) models.SubmissionOutcome {
	if problems := c.precheck(ctx, appt, userID); len(problems) > 0 {
		return models.SubmissionOutcome{Status: models.SubmissionInvalid, Notifications: problems}
	}

	payload := backend.NewAppointmentPayload(appt, userID)
	err := c.deps.Store.StoreAppointment(ctx, payload)
	if err == nil {
		if c.deps.Slots != nil {
			c.deps.Slots.InvalidateDate(ctx, appt.Start)
		}
		c.deps.Logger.Info("appointment submitted", zap.String("user_id", userID), zap.String("start", payload.Start))
		message := fmt.Sprintf("Appointment \"%s\" scheduled for %s", appt.Title, datetime.FormatDisplay(appt.Start))
		return models.SubmissionOutcome{Status: models.SubmissionSubmitted, Notifications: []models.Notification{successNotification(message)}}
	}

	var fields backend.FieldErrors
	if errors.As(err, &fields) {
		c.deps.Logger.Info("appointment rejected", zap.String("user_id", userID), zap.Int("fields", len(fields)))
		notes := make([]models.Notification, 0, len(fields))
		for _, fe := range fields {
			notes = append(notes, models.Notification{Level: models.NotificationError, Field: fe.Field, Message: fe.Message})
		}
		return models.SubmissionOutcome{Status: models.SubmissionRejected, Notifications: notes}
	}

	c.deps.Logger.Error("appointment submission failed", zap.String("user_id", userID), zap.Error(err))
	return models.SubmissionOutcome{Status: models.SubmissionFailed, Notifications: []models.Notification{errorNotification(MsgSubmissionFailed)}}
}

// precheck runs the struct rules and then the provider calendar rules. A provider
// without a stored calendar is left to the backend to judge.
func (c *SubmissionCoordinator) precheck(ctx context.Context, appt models.Appointment, userID string) []models.Notification {
	if err := c.deps.Validator.Struct(appt); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			notes := make([]models.Notification, 0, len(verrs))
			for _, fe := range verrs {
				notes = append(notes, models.Notification{Level: models.NotificationError, Field: fe.Field(), Message: validationMessage(fe)})
			}
			return notes
		}
		return []models.Notification{errorNotification(err.Error())}
	}

	if c.deps.Calendars == nil || userID == "" {
		return nil
	}
	snapshot, err := c.deps.Calendars.Snapshot(ctx, userID)
	if err != nil {
		if !errors.Is(err, appErrors.ErrNotFound) {
			c.deps.Logger.Warn("calendar snapshot unavailable, skipping calendar checks", zap.String("user_id", userID), zap.Error(err))
		}
		return nil
	}
	return scheduling.ValidateAppointment(appt, snapshot.Config, snapshot.SpecialDates)
}

func (c *SubmissionCoordinator) notify(n models.Notification) {
	if c.notifier != nil {
		c.notifier.Notify(n)
	}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "gtfield":
		return scheduling.MsgEndBeforeStart
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
