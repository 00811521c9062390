package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/booking-api/internal/models"
	"github.com/noah-isme/booking-api/internal/scheduling"
	appErrors "github.com/noah-isme/booking-api/pkg/errors"
)

func TestAvailabilityServiceCheck(t *testing.T) {
	blocked := models.SpecialDate{Date: "2024-06-11", IsAvailable: false}
	svc := NewAvailabilityService(snapshotStub{snapshot: weekdaySnapshot(blocked)})

	saturday, err := svc.Check(context.Background(), "2024-06-15", "", "provider-1")
	require.NoError(t, err)
	assert.False(t, saturday.DateCheck.IsAvailable)
	assert.Equal(t, scheduling.MsgNonBusinessDay, saturday.DateCheck.ErrorMessage)
	assert.Nil(t, saturday.BusinessHours)

	tuesday, err := svc.Check(context.Background(), "2024-06-11", "10:00", "provider-1")
	require.NoError(t, err)
	assert.False(t, tuesday.DateCheck.IsAvailable)
	assert.Equal(t, scheduling.MsgDateBlocked, tuesday.DateCheck.ErrorMessage)
	require.NotNil(t, tuesday.BusinessHours)
	assert.True(t, tuesday.BusinessHours.IsWithin)

	late, err := svc.Check(context.Background(), "2024-06-12", "18:01", "provider-1")
	require.NoError(t, err)
	assert.True(t, late.DateCheck.IsAvailable)
	assert.False(t, late.BusinessHours.IsWithin)
	assert.Contains(t, late.BusinessHours.ErrorMessage, "09:00")
}

func TestAvailabilityServiceCheckRejectsBadInput(t *testing.T) {
	svc := NewAvailabilityService(snapshotStub{snapshot: weekdaySnapshot()})

	_, err := svc.Check(context.Background(), "11/06/2024", "", "provider-1")
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	_, err = svc.Check(context.Background(), "2024-06-11", "", "")
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	missing := NewAvailabilityService(snapshotStub{err: appErrors.ErrNotFound})
	_, err = missing.Check(context.Background(), "2024-06-11", "", "provider-1")
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}
