package models

import "time"

// AppointmentStatus mirrors the status values accepted by the booking backend.
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Appointment is a candidate booking built from form input.
type Appointment struct {
	ID          string            `json:"id,omitempty"`
	Title       string            `json:"title" validate:"required"`
	Start       time.Time         `json:"start" validate:"required"`
	End         time.Time         `json:"end" validate:"required,gtfield=Start"`
	ClientID    *string           `json:"client_id,omitempty"`
	ClientName  *string           `json:"client_name,omitempty"`
	ClientPhone *string           `json:"client_phone,omitempty"`
	ClientEmail *string           `json:"client_email,omitempty" validate:"omitempty,email"`
	ServiceID   *string           `json:"service_id,omitempty"`
	Status      AppointmentStatus `json:"status"`
	PaymentType string            `json:"payment_type"`
	Description *string           `json:"description,omitempty"`
}

// SubmissionStatus describes how a save attempt ended.
type SubmissionStatus string

const (
	SubmissionSubmitted SubmissionStatus = "submitted"
	SubmissionRejected  SubmissionStatus = "rejected"
	SubmissionInvalid   SubmissionStatus = "invalid"
	SubmissionFailed    SubmissionStatus = "failed"
	SubmissionSkipped   SubmissionStatus = "skipped"
)

// SubmissionOutcome is returned by the submission coordinator.
type SubmissionOutcome struct {
	Status        SubmissionStatus `json:"status"`
	Notifications []Notification   `json:"notifications,omitempty"`
}
