package service

import (
	"context"
	"strings"

	"github.com/noah-isme/booking-api/internal/dto"
	"github.com/noah-isme/booking-api/internal/scheduling"
	"github.com/noah-isme/booking-api/pkg/datetime"
	appErrors "github.com/noah-isme/booking-api/pkg/errors"
)

// AvailabilityService answers ad hoc availability questions against a provider calendar.
type AvailabilityService struct {
	calendars calendarSnapshotter
}

// NewAvailabilityService constructs the service.
func NewAvailabilityService(calendars calendarSnapshotter) *AvailabilityService {
	return &AvailabilityService{calendars: calendars}
}

// Check evaluates the date, and the time of day when given, against the calendar of
// userID. Rule failures are reported in the response; errors only cover bad input and
// missing calendars.
func (s *AvailabilityService) Check(ctx context.Context, rawDate, clock, userID string) (*dto.AvailabilityCheckResponse, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "user_id is required")
	}
	date, err := datetime.ParseDate(rawDate)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "date must use YYYY-MM-DD")
	}

	snapshot, err := s.calendars.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	dateResult := scheduling.IsDateAvailable(date, snapshot.Config, snapshot.SpecialDates)
	resp := &dto.AvailabilityCheckResponse{
		Date:      datetime.FormatDate(date),
		Time:      clock,
		UserID:    userID,
		DateCheck: dto.DateCheckResult{IsAvailable: dateResult.IsAvailable, ErrorMessage: dateResult.ErrorMessage},
	}
	if clock != "" {
		hours := scheduling.IsTimeWithinBusinessHours(clock, snapshot.Config)
		resp.BusinessHours = &dto.BusinessHoursValue{IsWithin: hours.IsWithin, ErrorMessage: hours.ErrorMessage}
	}
	return resp, nil
}
