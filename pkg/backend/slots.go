package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/noah-isme/booking-api/internal/models"
	"github.com/noah-isme/booking-api/pkg/datetime"
)

// SlotShape identifies which of the accepted response layouts carried the slots.
type SlotShape int

const (
	SlotShapeUnrecognized SlotShape = iota
	SlotShapeArray
	SlotShapeSlots
	SlotShapeAvailableSlots
)

func (s SlotShape) String() string {
	switch s {
	case SlotShapeArray:
		return "array"
	case SlotShapeSlots:
		return "slots"
	case SlotShapeAvailableSlots:
		return "availableSlots"
	default:
		return "unrecognized"
	}
}

// ErrUnrecognizedSlotShape is returned when none of the accepted layouts match.
var ErrUnrecognizedSlotShape = errors.New("unrecognized slot response shape")

// SlotPayload is the decoded slot response tagged with its layout.
type SlotPayload struct {
	Shape SlotShape
	Slots []models.TimeSlot
}

// SlotsPath returns the backend route serving slots for date, scoped to userID when set.
func SlotsPath(date time.Time, userID string) string {
	day := datetime.FormatDate(date)
	if userID != "" {
		return fmt.Sprintf("/book/appointments/slots/%s/%s", day, url.PathEscape(userID))
	}
	return fmt.Sprintf("/available/slots/%s", day)
}

// AvailableSlots fetches the slots offered for date. An unrecognised body yields a
// payload tagged SlotShapeUnrecognized together with ErrUnrecognizedSlotShape.
func (c *Client) AvailableSlots(ctx context.Context, date time.Time, userID string) (SlotPayload, error) {
	raw, err := c.do(ctx, "available_slots", http.MethodGet, SlotsPath(date, userID), nil)
	if err != nil {
		return SlotPayload{}, err
	}
	return DecodeSlots(raw)
}

// DecodeSlots tries the accepted layouts in order: a bare array, an object with a
// "slots" array, an object with an "availableSlots" array.
func DecodeSlots(raw []byte) (SlotPayload, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return SlotPayload{Shape: SlotShapeUnrecognized}, ErrUnrecognizedSlotShape
	}

	switch trimmed[0] {
	case '[':
		slots, err := decodeSlotArray(trimmed)
		if err != nil {
			return SlotPayload{Shape: SlotShapeUnrecognized}, fmt.Errorf("%w: %v", ErrUnrecognizedSlotShape, err)
		}
		return SlotPayload{Shape: SlotShapeArray, Slots: slots}, nil
	case '{':
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return SlotPayload{Shape: SlotShapeUnrecognized}, fmt.Errorf("%w: %v", ErrUnrecognizedSlotShape, err)
		}
		if field, ok := presentField(envelope, "slots"); ok {
			slots, err := decodeSlotArray(field)
			if err != nil {
				return SlotPayload{Shape: SlotShapeUnrecognized}, fmt.Errorf("%w: slots: %v", ErrUnrecognizedSlotShape, err)
			}
			return SlotPayload{Shape: SlotShapeSlots, Slots: slots}, nil
		}
		if field, ok := presentField(envelope, "availableSlots"); ok {
			slots, err := decodeSlotArray(field)
			if err != nil {
				return SlotPayload{Shape: SlotShapeUnrecognized}, fmt.Errorf("%w: availableSlots: %v", ErrUnrecognizedSlotShape, err)
			}
			return SlotPayload{Shape: SlotShapeAvailableSlots, Slots: slots}, nil
		}
	}

	return SlotPayload{Shape: SlotShapeUnrecognized}, ErrUnrecognizedSlotShape
}

func presentField(envelope map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	field, ok := envelope[key]
	if !ok {
		return nil, false
	}
	field = bytes.TrimSpace(field)
	if len(field) == 0 || bytes.Equal(field, []byte("null")) {
		return nil, false
	}
	return field, true
}

func decodeSlotArray(raw []byte) ([]models.TimeSlot, error) {
	slots := []models.TimeSlot{}
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}
