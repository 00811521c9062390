package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/noah-isme/booking-api/internal/models"
	"github.com/noah-isme/booking-api/pkg/datetime"
)

// AppointmentsPath is the booking-creation route of the backend.
const AppointmentsPath = "/appointments/public"

// AppointmentPayload is the wire form of a candidate appointment.
type AppointmentPayload struct {
	Title       string  `json:"title"`
	Start       string  `json:"start"`
	End         string  `json:"end"`
	UserID      string  `json:"user_id"`
	ClientID    *string `json:"client_id,omitempty"`
	ClientName  *string `json:"client_name,omitempty"`
	ClientPhone *string `json:"client_phone,omitempty"`
	ClientEmail *string `json:"client_email,omitempty"`
	ServiceID   *string `json:"service_id,omitempty"`
	Status      string  `json:"status,omitempty"`
	PaymentType string  `json:"payment_type,omitempty"`
	Description *string `json:"description,omitempty"`
}

// NewAppointmentPayload formats start and end as naive local date-times and attaches
// the provider the appointment is booked with.
func NewAppointmentPayload(appt models.Appointment, userID string) AppointmentPayload {
	return AppointmentPayload{
		Title:       appt.Title,
		Start:       datetime.FormatWireDateTime(appt.Start),
		End:         datetime.FormatWireDateTime(appt.End),
		UserID:      userID,
		ClientID:    appt.ClientID,
		ClientName:  appt.ClientName,
		ClientPhone: appt.ClientPhone,
		ClientEmail: appt.ClientEmail,
		ServiceID:   appt.ServiceID,
		Status:      string(appt.Status),
		PaymentType: appt.PaymentType,
		Description: appt.Description,
	}
}

// FieldError is one rejected field reported by the backend.
type FieldError struct {
	Field   string
	Message string
}

// FieldErrors lists rejected fields in the order the backend sent them.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fmt.Sprintf("%s: %s", fe.Field, fe.Message)
	}
	return "appointment rejected: " + strings.Join(parts, "; ")
}

// StoreAppointment submits the appointment. A 4xx answer carrying a field map is
// returned as FieldErrors; other failures as *StatusError or a transport error.
func (c *Client) StoreAppointment(ctx context.Context, payload AppointmentPayload) error {
	raw, err := c.do(ctx, "store_appointment", http.MethodPost, AppointmentsPath, payload)
	if err == nil {
		return nil
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode >= 400 && statusErr.StatusCode < 500 {
		if fields, decodeErr := DecodeFieldErrors(raw); decodeErr == nil && len(fields) > 0 {
			return fields
		}
	}
	return err
}

// DecodeFieldErrors reads a {"field": "message"} object, or the same object nested
// under "errors", keeping the key order of the body. Array values are joined.
func DecodeFieldErrors(raw []byte) (FieldErrors, error) {
	entries, err := orderedObject(raw)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if entry.key == "errors" {
			if nested, err := orderedObject(entry.value); err == nil {
				entries = nested
				break
			}
		}
	}

	fields := make(FieldErrors, 0, len(entries))
	for _, entry := range entries {
		if message, ok := fieldMessage(entry.value); ok {
			fields = append(fields, FieldError{Field: entry.key, Message: message})
		}
	}
	return fields, nil
}

type objectEntry struct {
	key   string
	value json.RawMessage
}

func orderedObject(raw []byte) ([]objectEntry, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected JSON object")
	}

	var entries []objectEntry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key")
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		entries = append(entries, objectEntry{key: key, value: value})
	}
	if _, err := dec.Token(); err != nil && err != io.EOF {
		return nil, err
	}
	return entries, nil
}

func fieldMessage(raw json.RawMessage) (string, bool) {
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single, single != ""
	}
	var many []string
	if err := json.Unmarshal(raw, &many); err == nil && len(many) > 0 {
		return strings.Join(many, " "), true
	}
	return "", false
}
