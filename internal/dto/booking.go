package dto

import "github.com/noah-isme/booking-api/internal/models"

// SlotsResponse is the slot picker state returned to the booking page.
type SlotsResponse struct {
	Date          string                `json:"date"`
	UserID        string                `json:"user_id,omitempty"`
	Slots         []models.TimeSlot     `json:"slots"`
	Loading       bool                  `json:"loading"`
	Notifications []models.Notification `json:"notifications"`
}

// AppointmentRequest is the booking form submitted by a client. Start and end are
// naive local date-times.
type AppointmentRequest struct {
	UserID      string  `json:"user_id"`
	Title       string  `json:"title"`
	Start       string  `json:"start" binding:"required"`
	End         string  `json:"end" binding:"required"`
	ClientID    *string `json:"client_id"`
	ClientName  *string `json:"client_name"`
	ClientPhone *string `json:"client_phone"`
	ClientEmail *string `json:"client_email"`
	ServiceID   *string `json:"service_id"`
	Status      string  `json:"status"`
	PaymentType string  `json:"payment_type"`
	Description *string `json:"description"`
}

// AppointmentResponse reports how a submission ended.
type AppointmentResponse struct {
	Status        models.SubmissionStatus `json:"status"`
	Notifications []models.Notification   `json:"notifications"`
}
