package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/booking-api/internal/models"
)

func TestGenerateDaySlots(t *testing.T) {
	cfg := weekdayConfig()
	cfg.StartTime = "09:00"
	cfg.EndTime = "11:00"

	slots := GenerateDaySlots(mustDate(t, "2024-06-11"), cfg, nil, nil)
	require.Len(t, slots, 4)
	assert.Equal(t, models.TimeSlot{Start: "09:00", End: "09:30", Available: true}, slots[0])
	assert.Equal(t, models.TimeSlot{Start: "10:30", End: "11:00", Available: true}, slots[3])
}

func TestGenerateDaySlotsMarksOfferedSlots(t *testing.T) {
	cfg := weekdayConfig()
	cfg.EndTime = "10:00"
	offered := []models.TimeSlot{
		{Start: "9:30", End: "10:00", Available: true},
		{Start: "09:00", End: "09:30", Available: false},
	}

	slots := GenerateDaySlots(mustDate(t, "2024-06-11"), cfg, nil, offered)
	require.Len(t, slots, 2)
	assert.False(t, slots[0].Available)
	assert.True(t, slots[1].Available)
}

func TestGenerateDaySlotsClosedDay(t *testing.T) {
	cfg := weekdayConfig()
	cfg.EndTime = "10:00"

	slots := GenerateDaySlots(mustDate(t, "2024-06-15"), cfg, nil, nil)
	require.Len(t, slots, 2)
	for _, slot := range slots {
		assert.False(t, slot.Available)
	}
}

func TestGenerateDaySlotsInvalidWindow(t *testing.T) {
	cfg := weekdayConfig()
	cfg.StartTime = "18:00"
	cfg.EndTime = "09:00"
	assert.Nil(t, GenerateDaySlots(mustDate(t, "2024-06-11"), cfg, nil, nil))
}
