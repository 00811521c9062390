package scheduling

import (
	"time"

	"github.com/noah-isme/booking-api/internal/models"
	"github.com/noah-isme/booking-api/pkg/datetime"
)

// DefaultSlotDuration is used when a calendar does not configure one.
const DefaultSlotDuration = 30 * time.Minute

// GenerateDaySlots lays out the configured business window of a date as consecutive
// slots. A slot is available when the date itself is bookable and, when offered is not
// nil, the backend offered a free slot starting at the same time.
func GenerateDaySlots(date time.Time, cfg models.CalendarConfig, specialDates []models.SpecialDate, offered []models.TimeSlot) []models.TimeSlot {
	start, err := datetime.ClockMinutes(cfg.StartTime)
	if err != nil {
		return nil
	}
	end, err := datetime.ClockMinutes(cfg.EndTime)
	if err != nil || end <= start {
		return nil
	}
	step := cfg.SlotDuration
	if step <= 0 {
		step = int(DefaultSlotDuration / time.Minute)
	}

	dayOpen := IsDateAvailable(date, cfg, specialDates).IsAvailable

	var free map[string]bool
	if offered != nil {
		free = make(map[string]bool, len(offered))
		for _, slot := range offered {
			if !slot.Available {
				continue
			}
			if clock, err := datetime.NormalizeClock(slot.Start); err == nil {
				free[clock] = true
			}
		}
	}

	slots := make([]models.TimeSlot, 0, (end-start)/step)
	for t := start; t+step <= end; t += step {
		slot := models.TimeSlot{
			Start:     datetime.MinutesClock(t),
			End:       datetime.MinutesClock(t + step),
			Available: dayOpen,
		}
		if dayOpen && free != nil {
			slot.Available = free[slot.Start]
		}
		slots = append(slots, slot)
	}
	return slots
}
