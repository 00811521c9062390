package models

import "time"

// CalendarConfig holds the business hours and booking rules of one provider.
type CalendarConfig struct {
	UserID          string    `json:"user_id" validate:"required"`
	ShowWeekend     bool      `json:"show_weekend"`
	StartTime       string    `json:"start_time" validate:"required,clock"`
	EndTime         string    `json:"end_time" validate:"required,clock"`
	MaxAppointments int       `json:"max_appointments" validate:"gte=0"`
	BusinessDays    []int     `json:"business_days" validate:"dive,weekday"`
	SlotMinTime     string    `json:"slot_min_time" validate:"omitempty,clock"`
	SlotMaxTime     string    `json:"slot_max_time" validate:"omitempty,clock"`
	SlotDuration    int       `json:"slot_duration" validate:"gte=0"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// HasBusinessDay reports whether the weekday (0=Sunday) is a business day.
func (c CalendarConfig) HasBusinessDay(day time.Weekday) bool {
	for _, d := range c.BusinessDays {
		if d == int(day) {
			return true
		}
	}
	return false
}

// SpecialDate is a full-day override of the business-day rule.
type SpecialDate struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	Date        string    `db:"date" json:"date"`
	Title       string    `db:"title" json:"title"`
	Description *string   `db:"description" json:"description,omitempty"`
	Color       *string   `db:"color" json:"color,omitempty"`
	IsAvailable bool      `db:"is_available" json:"is_available"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// CalendarSnapshot is the immutable view of a provider calendar used for one validation.
type CalendarSnapshot struct {
	Config       CalendarConfig
	SpecialDates []SpecialDate
}

// DateAvailability is the result of checking a calendar date.
type DateAvailability struct {
	IsAvailable  bool   `json:"is_available"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// BusinessHoursCheck is the result of checking a time of day.
type BusinessHoursCheck struct {
	IsWithin     bool   `json:"is_within"`
	ErrorMessage string `json:"error_message,omitempty"`
}
