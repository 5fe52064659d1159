package booking

import (
	"testing"

	"nekokin/models"

	"github.com/stretchr/testify/assert"
)

func TestValidateTransition(t *testing.T) {
	allowed := []struct{ from, to models.BookingStatus }{
		{models.StatusPending, models.StatusConfirmed},
		{models.StatusPending, models.StatusCanceled},
		{models.StatusConfirmed, models.StatusActive},
		{models.StatusConfirmed, models.StatusCanceled},
		{models.StatusActive, models.StatusCompleted},
	}
	for _, tc := range allowed {
		assert.NoError(t, ValidateTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}

	denied := []struct{ from, to models.BookingStatus }{
		{models.StatusPending, models.StatusActive},
		{models.StatusPending, models.StatusCompleted},
		{models.StatusConfirmed, models.StatusCompleted},
		{models.StatusActive, models.StatusConfirmed},
		{models.StatusCompleted, models.StatusActive},
		{models.StatusCompleted, models.StatusCanceled},
		{models.StatusCanceled, models.StatusPending},
		{models.StatusCanceled, models.StatusConfirmed},
	}
	for _, tc := range denied {
		err := ValidateTransition(tc.from, tc.to)
		assert.Error(t, err, "%s -> %s", tc.from, tc.to)
		assert.Equal(t, CodeValidation, CodeOf(err))
	}
}

func TestValidateTransitionSameStateIsNoOp(t *testing.T) {
	for _, s := range []models.BookingStatus{
		models.StatusPending, models.StatusConfirmed, models.StatusActive,
		models.StatusCompleted, models.StatusCanceled,
	} {
		assert.NoError(t, ValidateTransition(s, s))
	}
}

func TestValidateTransitionUnknownTarget(t *testing.T) {
	err := ValidateTransition(models.StatusPending, models.BookingStatus("archived"))
	assert.Error(t, err)
	assert.Equal(t, CodeValidation, CodeOf(err))
}

func TestCancelable(t *testing.T) {
	assert.True(t, Cancelable(models.StatusPending))
	assert.True(t, Cancelable(models.StatusConfirmed))
	assert.True(t, Cancelable(models.StatusActive))
	assert.False(t, Cancelable(models.StatusCompleted))
	assert.False(t, Cancelable(models.StatusCanceled))
}
