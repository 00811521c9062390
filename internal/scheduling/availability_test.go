package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/booking-api/internal/models"
	"github.com/noah-isme/booking-api/pkg/datetime"
)

func weekdayConfig() models.CalendarConfig {
	return models.CalendarConfig{
		UserID:       "provider-1",
		StartTime:    "09:00",
		EndTime:      "18:00",
		BusinessDays: []int{1, 2, 3, 4, 5},
		SlotDuration: 30,
	}
}

func mustDate(t *testing.T, raw string) time.Time {
	t.Helper()
	d, err := datetime.ParseDateIn(raw, time.UTC)
	require.NoError(t, err)
	return d
}

func TestIsDateAvailableRejectsNonBusinessDays(t *testing.T) {
	cfg := weekdayConfig()
	start := mustDate(t, "2024-06-09") // Sunday

	for i := 0; i < 14; i++ {
		d := start.AddDate(0, 0, i)
		result := IsDateAvailable(d, cfg, nil)
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			assert.False(t, result.IsAvailable, d.String())
			assert.Equal(t, MsgNonBusinessDay, result.ErrorMessage)
		} else {
			assert.True(t, result.IsAvailable, d.String())
			assert.Empty(t, result.ErrorMessage)
		}
	}
}

func TestIsDateAvailableSaturdayScenario(t *testing.T) {
	result := IsDateAvailable(mustDate(t, "2024-06-15"), weekdayConfig(), []models.SpecialDate{})
	assert.False(t, result.IsAvailable)
	assert.Contains(t, result.ErrorMessage, "non-business day")
}

func TestIsDateAvailableBlockedSpecialDate(t *testing.T) {
	specials := []models.SpecialDate{{ID: "sd-1", Date: "2024-06-11", Title: "Holiday", IsAvailable: false}}

	result := IsDateAvailable(mustDate(t, "2024-06-11"), weekdayConfig(), specials)
	assert.False(t, result.IsAvailable)
	assert.Contains(t, result.ErrorMessage, "marked unavailable")

	result = IsDateAvailable(mustDate(t, "2024-06-12"), weekdayConfig(), specials)
	assert.True(t, result.IsAvailable)
}

func TestIsDateAvailableMatchesOnDatePrefix(t *testing.T) {
	specials := []models.SpecialDate{{Date: "2024-06-11T00:00:00.000000Z", IsAvailable: false}}
	result := IsDateAvailable(mustDate(t, "2024-06-11"), weekdayConfig(), specials)
	assert.False(t, result.IsAvailable)
}

func TestIsDateAvailableIgnoresAvailableOverrides(t *testing.T) {
	specials := []models.SpecialDate{
		{Date: "2024-06-11", Title: "Open day", IsAvailable: true},
		{Date: "2024-06-15", Title: "Saturday opening", IsAvailable: true},
	}
	assert.True(t, IsDateAvailable(mustDate(t, "2024-06-11"), weekdayConfig(), specials).IsAvailable)
	// An available override does not turn a weekend into a business day.
	assert.False(t, IsDateAvailable(mustDate(t, "2024-06-15"), weekdayConfig(), specials).IsAvailable)
}

func TestIsDateAvailableWithoutBusinessDays(t *testing.T) {
	cfg := weekdayConfig()
	cfg.BusinessDays = nil
	assert.False(t, IsDateAvailable(mustDate(t, "2024-06-11"), cfg, nil).IsAvailable)
}

func TestIsTimeWithinBusinessHours(t *testing.T) {
	cfg := weekdayConfig()
	cases := []struct {
		clock  string
		within bool
	}{
		{"08:59", false},
		{"09:00", true},
		{"9:00", true},
		{"12:30", true},
		{"18:00", true},
		{"18:01", false},
		{"23:59", false},
	}
	for _, tc := range cases {
		result := IsTimeWithinBusinessHours(tc.clock, cfg)
		assert.Equal(t, tc.within, result.IsWithin, tc.clock)
		if tc.within {
			assert.Empty(t, result.ErrorMessage)
		} else {
			assert.Contains(t, result.ErrorMessage, "09:00")
			assert.Contains(t, result.ErrorMessage, "18:00")
		}
	}
}

func TestIsTimeWithinBusinessHoursRejectsMalformedInput(t *testing.T) {
	result := IsTimeWithinBusinessHours("noon", weekdayConfig())
	assert.False(t, result.IsWithin)
	assert.Equal(t, MsgInvalidTime, result.ErrorMessage)
}

func TestValidateAppointment(t *testing.T) {
	cfg := weekdayConfig()
	tuesday := time.Date(2024, 6, 11, 10, 0, 0, 0, time.UTC)

	ok := models.Appointment{Title: "Haircut", Start: tuesday, End: tuesday.Add(30 * time.Minute)}
	assert.Empty(t, ValidateAppointment(ok, cfg, nil))

	late := models.Appointment{Title: "Late", Start: tuesday.Add(8 * time.Hour), End: tuesday.Add(9 * time.Hour)}
	problems := ValidateAppointment(late, cfg, nil)
	require.Len(t, problems, 1)
	assert.Equal(t, "end", problems[0].Field)

	blocked := []models.SpecialDate{{Date: "2024-06-11", IsAvailable: false}}
	problems = ValidateAppointment(ok, cfg, blocked)
	require.Len(t, problems, 1)
	assert.Equal(t, "start", problems[0].Field)
	assert.Equal(t, MsgDateBlocked, problems[0].Message)

	backwards := models.Appointment{Title: "Backwards", Start: tuesday, End: tuesday.Add(-time.Hour)}
	problems = ValidateAppointment(backwards, cfg, nil)
	require.NotEmpty(t, problems)
	assert.Equal(t, MsgEndBeforeStart, problems[0].Message)
}
