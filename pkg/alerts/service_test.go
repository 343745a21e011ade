package alerts

import (
	"testing"
	"time"

	"price-radar/pkg/catalog"
	"price-radar/pkg/clock"
	"price-radar/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestService_Create(t *testing.T) {
	store := catalog.NewSeededStore(now)
	svc := NewService(store, clock.NewFake(now))

	alert, err := svc.Create("3", 18000, "u1")
	require.NoError(t, err)

	assert.NotEmpty(t, alert.ID)
	assert.Equal(t, "Sony WH-1000XM4 Wireless Noise Canceling Headphones", alert.ProductName)
	assert.Equal(t, int64(19990), alert.CurrentPrice)
	assert.Equal(t, models.Amazon, alert.Platform)
	assert.True(t, alert.IsActive)
	assert.False(t, alert.NotificationSent)
	assert.Equal(t, now, alert.CreatedAt)

	stored, ok := store.Alert(alert.ID)
	require.True(t, ok)
	assert.Equal(t, alert.ID, stored.ID)
}

func TestService_CreateErrors(t *testing.T) {
	svc := NewService(catalog.NewSeededStore(now), clock.NewFake(now))

	_, err := svc.Create("999", 100, "u1")
	assert.ErrorIs(t, err, models.ErrProductNotFound)

	_, err = svc.Create("1", 0, "u1")
	assert.ErrorIs(t, err, models.ErrInvalidTargetPrice)

	_, err = svc.Create("1", 100, " ")
	assert.ErrorIs(t, err, models.ErrMissingUser)
}

func TestService_ListDeleteDeactivate(t *testing.T) {
	svc := NewService(catalog.NewSeededStore(now), clock.NewFake(now))

	a1, err := svc.Create("1", 120000, "u1")
	require.NoError(t, err)
	_, err = svc.Create("2", 110000, "u2")
	require.NoError(t, err)

	assert.Len(t, svc.List(""), 2)
	assert.Len(t, svc.List("u1"), 1)
	assert.Empty(t, svc.List("nobody"))

	deactivated, err := svc.Deactivate(a1.ID)
	require.NoError(t, err)
	assert.False(t, deactivated.IsActive)

	require.NoError(t, svc.Delete(a1.ID))
	assert.ErrorIs(t, svc.Delete(a1.ID), models.ErrAlertNotFound)

	_, err = svc.Deactivate(a1.ID)
	assert.ErrorIs(t, err, models.ErrAlertNotFound)
}
