package booking

import (
	"math"
	"time"

	"nekokin/models"
)

// BilledNights converts a stay interval into billable nights: the ceiling of
// the day difference, floored at one so a same-day stay still bills a night.
func BilledNights(checkIn, checkOut time.Time) int64 {
	days := checkOut.Sub(checkIn).Hours() / 24
	nights := int64(math.Ceil(days))
	if nights < 1 {
		nights = 1
	}
	return nights
}

// ComputeTotal returns the amount owed for a booking. Non-hotel services
// bill one unit of the service regardless of duration. Hotel services bill
// per night plus the selected add-on services, each of which must be an
// add-on (category 2) entry.
//
// All amounts are integer base-currency units; nothing here accumulates
// floating point.
func ComputeTotal(service *models.Service, checkIn, checkOut *time.Time, subServices []models.Service) (int64, error) {
	if service == nil {
		return 0, NewValidationError("service is required")
	}

	if service.Category != models.CategoryHotel {
		return service.Price, nil
	}

	if checkIn == nil || checkOut == nil {
		return 0, NewValidationError("check-in and check-out are required for hotel services")
	}
	if !checkOut.After(*checkIn) {
		return 0, NewValidationError("check-out must be after check-in")
	}

	total := service.Price * BilledNights(*checkIn, *checkOut)
	for _, sub := range subServices {
		if sub.Category != models.CategoryAddOn {
			return 0, NewValidationError("sub-service %s is not an add-on service", sub.ID)
		}
		total += sub.Price
	}
	return total, nil
}

// ComputeShipmentAmount prices a shipment service over a travelled distance.
// The result is rounded once, at the end, to the nearest currency unit.
func ComputeShipmentAmount(service *models.Service, distanceKm float64) (int64, error) {
	if service == nil || service.Category != models.CategoryShipment {
		return 0, NewValidationError("service is not a shipment service")
	}
	if distanceKm <= 0 {
		return 0, NewValidationError("distance must be positive")
	}
	perKm := service.PricePerKm
	if perKm == 0 {
		perKm = service.Price
	}
	return int64(math.Round(float64(perKm) * distanceKm)), nil
}
