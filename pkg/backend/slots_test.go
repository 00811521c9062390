package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/booking-api/internal/models"
	"github.com/noah-isme/booking-api/pkg/config"
)

func TestDecodeSlotsShapes(t *testing.T) {
	slot := models.TimeSlot{Start: "09:00", End: "09:30", Available: true}
	tests := []struct {
		name  string
		body  string
		shape SlotShape
		slots []models.TimeSlot
		err   bool
	}{
		{name: "bare array", body: `[{"start":"09:00","end":"09:30","available":true}]`, shape: SlotShapeArray, slots: []models.TimeSlot{slot}},
		{name: "slots field", body: `{"slots":[{"start":"09:00","end":"09:30","available":true}]}`, shape: SlotShapeSlots, slots: []models.TimeSlot{slot}},
		{name: "availableSlots field", body: `{"availableSlots":[{"start":"09:00","end":"09:30","available":true}]}`, shape: SlotShapeAvailableSlots, slots: []models.TimeSlot{slot}},
		{name: "slots wins over availableSlots", body: `{"availableSlots":[],"slots":[{"start":"09:00","end":"09:30","available":true}]}`, shape: SlotShapeSlots, slots: []models.TimeSlot{slot}},
		{name: "null slots falls through", body: `{"slots":null,"availableSlots":[]}`, shape: SlotShapeAvailableSlots, slots: []models.TimeSlot{}},
		{name: "empty array", body: `[]`, shape: SlotShapeArray, slots: []models.TimeSlot{}},
		{name: "unrecognized object", body: `{}`, shape: SlotShapeUnrecognized, err: true},
		{name: "scalar", body: `"nope"`, shape: SlotShapeUnrecognized, err: true},
		{name: "empty body", body: ``, shape: SlotShapeUnrecognized, err: true},
		{name: "slots not an array", body: `{"slots":{"start":"09:00"}}`, shape: SlotShapeUnrecognized, err: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := DecodeSlots([]byte(tt.body))
			assert.Equal(t, tt.shape, payload.Shape)
			if tt.err {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnrecognizedSlotShape))
				assert.Empty(t, payload.Slots)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.slots, payload.Slots)
		})
	}
}

func TestSlotsPath(t *testing.T) {
	date := time.Date(2024, 6, 11, 12, 0, 0, 0, time.Local)
	assert.Equal(t, "/available/slots/2024-06-11", SlotsPath(date, ""))
	assert.Equal(t, "/book/appointments/slots/2024-06-11/42", SlotsPath(date, "42"))
}

type observerStub struct {
	operations []string
	statuses   []int
}

func (o *observerStub) ObserveUpstream(operation string, status int, duration time.Duration) {
	o.operations = append(o.operations, operation)
	o.statuses = append(o.statuses, status)
}

func TestAvailableSlotsSelectsEndpoint(t *testing.T) {
	var (
		mu    sync.Mutex
		paths []string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"availableSlots":[{"start":"09:00","end":"09:30","available":true}]}`))
	}))
	t.Cleanup(server.Close)

	observer := &observerStub{}
	client := NewClient(config.BackendConfig{BaseURL: server.URL, Timeout: time.Second}, nil, observer)
	date := time.Date(2024, 6, 11, 12, 0, 0, 0, time.Local)

	payload, err := client.AvailableSlots(context.Background(), date, "")
	require.NoError(t, err)
	assert.Equal(t, SlotShapeAvailableSlots, payload.Shape)
	require.Len(t, payload.Slots, 1)

	_, err = client.AvailableSlots(context.Background(), date, "7")
	require.NoError(t, err)

	mu.Lock()
	assert.Equal(t, []string{"/available/slots/2024-06-11", "/book/appointments/slots/2024-06-11/7"}, paths)
	mu.Unlock()
	assert.Equal(t, []string{"available_slots", "available_slots"}, observer.operations)
	assert.Equal(t, []int{http.StatusOK, http.StatusOK}, observer.statuses)
}

func TestAvailableSlotsNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	client := NewClient(config.BackendConfig{BaseURL: server.URL}, nil, nil)
	_, err := client.AvailableSlots(context.Background(), time.Now(), "")
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
}

func TestAvailableSlotsTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	observer := &observerStub{}
	client := NewClient(config.BackendConfig{BaseURL: url, Timeout: time.Second}, nil, observer)
	_, err := client.AvailableSlots(context.Background(), time.Now(), "")
	require.Error(t, err)
	assert.Equal(t, []int{http.StatusServiceUnavailable}, observer.statuses)
}
