package booking

import (
	"time"

	bookingRepo "nekokin/database/repository/booking"
	"nekokin/models"
)

// appointmentSlots is the fixed half-hour slot grid offered for appointment
// services.
var appointmentSlots = []string{
	"08:00", "08:30", "09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
	"12:00", "12:30", "13:00", "13:30", "14:00", "14:30", "15:00",
}

// slotOf is the slot identity of an instant: its wall-clock time of day.
// Slots are fixed half-hour stations, so exact time-of-day equality is the
// conflict test; the calendar date is NOT part of the identity.
func slotOf(t time.Time) string {
	return t.Format("15:04")
}

// dayWindow returns the inclusive bounds of the calendar day containing t.
func dayWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end := start.Add(24*time.Hour - time.Millisecond)
	return start, end
}

// AvailabilityChecker answers slot and room availability questions against
// the booking store.
type AvailabilityChecker struct {
	Bookings bookingRepo.BookingRepository
}

// normalizeDoctor applies the doctor-matching rule: only medical services
// distinguish doctors; every other category compares null against null.
func normalizeDoctor(service *models.Service, doctorID *string) *string {
	if service.Category == models.CategoryMedical {
		return doctorID
	}
	return nil
}

// AppointmentSlotFree reports whether the time-of-day slot of instant is
// still free for the given service and doctor.
func (a *AvailabilityChecker) AppointmentSlotFree(service *models.Service, doctorID *string, instant time.Time) (bool, error) {
	dayStart, dayEnd := dayWindow(instant)
	existing, err := a.Bookings.FindSameDayAppointments(service.ID, normalizeDoctor(service, doctorID), dayStart, dayEnd)
	if err != nil {
		return false, err
	}

	want := slotOf(instant)
	for _, b := range existing {
		if slotOf(b.BookingDate) == want {
			return false, nil
		}
	}
	return true, nil
}

// AvailableTimes returns the slots of the fixed grid not yet taken on the
// given date for the service/doctor pair.
func (a *AvailabilityChecker) AvailableTimes(service *models.Service, date time.Time, doctorID *string) ([]string, error) {
	dayStart, dayEnd := dayWindow(date)
	existing, err := a.Bookings.FindSameDayAppointments(service.ID, normalizeDoctor(service, doctorID), dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	taken := make(map[string]bool, len(existing))
	for _, b := range existing {
		taken[slotOf(b.BookingDate)] = true
	}

	free := make([]string, 0, len(appointmentSlots))
	for _, slot := range appointmentSlots {
		if !taken[slot] {
			free = append(free, slot)
		}
	}
	return free, nil
}

// HotelAvailability counts rooms still free for a requested stay. The
// overlap test uses inclusive bounds: back-to-back stays (one checking out
// exactly when another checks in) count as overlapping. excludeBookingID
// omits a booking under update from the count.
func (a *AvailabilityChecker) HotelAvailability(service *models.Service, checkIn, checkOut time.Time, excludeBookingID string) (*models.RoomAvailability, error) {
	if service.Category != models.CategoryHotel {
		return nil, NewValidationError("service %s is not a hotel service", service.ID)
	}
	if !checkOut.After(checkIn) {
		return nil, NewValidationError("check-out must be after check-in")
	}

	booked, err := a.Bookings.CountOverlappingStays(service.ID, checkIn, checkOut, excludeBookingID)
	if err != nil {
		return nil, err
	}

	return &models.RoomAvailability{
		AvailableRooms: service.TotalRooms - int(booked),
		TotalRooms:     service.TotalRooms,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
	}, nil
}
