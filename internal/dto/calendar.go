package dto

// CalendarConfigRequest is the payload accepted when saving a provider calendar.
type CalendarConfigRequest struct {
	ShowWeekend     bool   `json:"show_weekend"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	MaxAppointments int    `json:"max_appointments"`
	BusinessDays    []int  `json:"business_days"`
	SlotMinTime     string `json:"slot_min_time"`
	SlotMaxTime     string `json:"slot_max_time"`
	SlotDuration    int    `json:"slot_duration"`
}

// SpecialDateRequest registers a blackout or override date.
type SpecialDateRequest struct {
	UserID      string  `json:"user_id"`
	Date        string  `json:"date" validate:"required,calendar_date"`
	Title       string  `json:"title" validate:"required,max=120"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Color       *string `json:"color" validate:"omitempty,hex_color"`
	IsAvailable bool    `json:"is_available"`
}

// AvailabilityCheckResponse reports both calendar checks for a date and time.
type AvailabilityCheckResponse struct {
	Date          string              `json:"date"`
	Time          string              `json:"time,omitempty"`
	UserID        string              `json:"user_id"`
	DateCheck     DateCheckResult     `json:"date_check"`
	BusinessHours *BusinessHoursValue `json:"business_hours,omitempty"`
}

// DateCheckResult mirrors the date availability result.
type DateCheckResult struct {
	IsAvailable  bool   `json:"is_available"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// BusinessHoursValue mirrors the business hours result.
type BusinessHoursValue struct {
	IsWithin     bool   `json:"is_within"`
	ErrorMessage string `json:"error_message,omitempty"`
}
