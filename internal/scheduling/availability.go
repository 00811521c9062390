// Package scheduling holds the booking rules applied to provider calendars.
// Every function is pure: calendar data is read, never cached or mutated.
package scheduling

import (
	"fmt"
	"time"

	"github.com/noah-isme/booking-api/internal/models"
	"github.com/noah-isme/booking-api/pkg/datetime"
)

const (
	MsgNonBusinessDay = "The selected date is a non-business day"
	MsgDateBlocked    = "The selected date is marked unavailable"
	MsgInvalidTime    = "The selected time is not a valid HH:MM value"
	MsgEndBeforeStart = "The appointment must end after it starts"
)

// IsDateAvailable checks a calendar date against the business days and the special
// dates of a provider. Special dates are scanned in the given order; the first blocked
// entry for the date wins.
func IsDateAvailable(date time.Time, cfg models.CalendarConfig, specialDates []models.SpecialDate) models.DateAvailability {
	if !cfg.HasBusinessDay(date.Weekday()) {
		return models.DateAvailability{IsAvailable: false, ErrorMessage: MsgNonBusinessDay}
	}

	day := datetime.FormatDate(date)
	for _, special := range specialDates {
		if datetime.DatePrefix(special.Date) == day && !special.IsAvailable {
			return models.DateAvailability{IsAvailable: false, ErrorMessage: MsgDateBlocked}
		}
	}

	return models.DateAvailability{IsAvailable: true}
}

// IsTimeWithinBusinessHours compares an HH:MM clock with the configured window. Both
// bounds are inclusive. The comparison is lexicographic on zero padded values, so the
// input is normalised first and rejected when it cannot be.
func IsTimeWithinBusinessHours(clock string, cfg models.CalendarConfig) models.BusinessHoursCheck {
	normalized, err := datetime.NormalizeClock(clock)
	if err != nil {
		return models.BusinessHoursCheck{IsWithin: false, ErrorMessage: MsgInvalidTime}
	}
	if normalized < cfg.StartTime || normalized > cfg.EndTime {
		return models.BusinessHoursCheck{
			IsWithin:     false,
			ErrorMessage: fmt.Sprintf("The selected time must be between %s and %s", cfg.StartTime, cfg.EndTime),
		}
	}
	return models.BusinessHoursCheck{IsWithin: true}
}

// ValidateAppointment runs the calendar checks against a candidate appointment and
// returns one inline message per failed check.
func ValidateAppointment(appt models.Appointment, cfg models.CalendarConfig, specialDates []models.SpecialDate) []models.Notification {
	var problems []models.Notification

	if !appt.End.After(appt.Start) {
		problems = append(problems, fieldError("end", MsgEndBeforeStart))
	}

	if result := IsDateAvailable(appt.Start, cfg, specialDates); !result.IsAvailable {
		problems = append(problems, fieldError("start", result.ErrorMessage))
	}
	if result := IsTimeWithinBusinessHours(datetime.FormatClock(appt.Start), cfg); !result.IsWithin {
		problems = append(problems, fieldError("start", result.ErrorMessage))
	}
	if result := IsTimeWithinBusinessHours(datetime.FormatClock(appt.End), cfg); !result.IsWithin {
		problems = append(problems, fieldError("end", result.ErrorMessage))
	}

	return problems
}

func fieldError(field, message string) models.Notification {
	return models.Notification{Level: models.NotificationError, Field: field, Message: message}
}
