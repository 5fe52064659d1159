package booking

import (
	"testing"
	"time"

	"nekokin/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int, hour int) time.Time {
	return time.Date(2026, 3, d, hour, 0, 0, 0, time.UTC)
}

func TestBilledNights(t *testing.T) {
	cases := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     int64
	}{
		{"three full days", day(10, 12), day(13, 12), 3},
		{"partial day rounds up", day(10, 12), day(12, 18), 3},
		{"same day bills one night", day(10, 9), day(10, 17), 1},
		{"just over one day", day(10, 12), day(11, 13), 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, BilledNights(tc.checkIn, tc.checkOut))
		})
	}
}

func TestComputeTotalHotel(t *testing.T) {
	hotel := &models.Service{ID: "h", Category: models.CategoryHotel, Price: 200_000}
	checkIn := day(10, 12)
	checkOut := day(13, 12)

	total, err := ComputeTotal(hotel, &checkIn, &checkOut, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(600_000), total)

	subs := []models.Service{
		{ID: "g", Category: models.CategoryAddOn, Price: 50_000},
		{ID: "b", Category: models.CategoryAddOn, Price: 30_000},
	}
	total, err = ComputeTotal(hotel, &checkIn, &checkOut, subs)
	require.NoError(t, err)
	assert.Equal(t, int64(680_000), total)
}

func TestComputeTotalHotelRejectsBadInterval(t *testing.T) {
	hotel := &models.Service{ID: "h", Category: models.CategoryHotel, Price: 200_000}
	checkIn := day(13, 12)
	checkOut := day(10, 12)

	_, err := ComputeTotal(hotel, &checkIn, &checkOut, nil)
	require.Error(t, err)
	assert.Equal(t, CodeValidation, CodeOf(err))

	_, err = ComputeTotal(hotel, nil, nil, nil)
	require.Error(t, err)
	assert.Equal(t, CodeValidation, CodeOf(err))
}

func TestComputeTotalHotelRejectsNonAddOn(t *testing.T) {
	hotel := &models.Service{ID: "h", Category: models.CategoryHotel, Price: 200_000}
	checkIn := day(10, 12)
	checkOut := day(11, 12)
	subs := []models.Service{{ID: "m", Category: models.CategoryMedical, Price: 150_000}}

	_, err := ComputeTotal(hotel, &checkIn, &checkOut, subs)
	require.Error(t, err)
	assert.Equal(t, CodeValidation, CodeOf(err))
}

func TestComputeTotalNonHotelIgnoresDuration(t *testing.T) {
	exam := &models.Service{ID: "e", Category: models.CategoryMedical, Price: 150_000}
	checkIn := day(10, 12)
	checkOut := day(13, 12)

	total, err := ComputeTotal(exam, &checkIn, &checkOut, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(150_000), total)
}

func TestComputeShipmentAmount(t *testing.T) {
	ship := &models.Service{ID: "s", Category: models.CategoryShipment, PricePerKm: 15_000}

	// 12.345 km at 15000/km is 185175, no intermediate rounding.
	amount, err := ComputeShipmentAmount(ship, 12.345)
	require.NoError(t, err)
	assert.Equal(t, int64(185_175), amount)

	// Rounds to the nearest unit only once, at the end.
	amount, err = ComputeShipmentAmount(ship, 0.0001)
	require.NoError(t, err)
	assert.Equal(t, int64(2), amount)

	_, err = ComputeShipmentAmount(ship, 0)
	require.Error(t, err)
	assert.Equal(t, CodeValidation, CodeOf(err))

	_, err = ComputeShipmentAmount(&models.Service{Category: models.CategoryHotel}, 5)
	require.Error(t, err)
	assert.Equal(t, CodeValidation, CodeOf(err))
}

func TestComputeShipmentAmountFallsBackToPrice(t *testing.T) {
	ship := &models.Service{ID: "s", Category: models.CategoryShipment, Price: 10_000}

	amount, err := ComputeShipmentAmount(ship, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(30_000), amount)
}
