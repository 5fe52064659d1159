package booking

import (
	"context"
	"time"

	"nekokin/models"
)

// Actor is the verified identity attached to a request by the auth
// middleware.
type Actor struct {
	CustomerID string
	Role       string
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// CreateBookingRequest carries everything needed to create a booking.
type CreateBookingRequest struct {
	CustomerID    string
	PetID         string
	ServiceID     string
	DoctorID      *string
	BookingDate   time.Time
	CheckIn       *time.Time
	CheckOut      *time.Time
	SubServiceIDs []string
	Notes         string
	PaymentMethod models.PaymentMethod
	ClientIP      string
}

// UpdateBookingRequest is a partial patch; nil fields are left untouched.
// DoctorID distinguishes "not provided" (nil) from "clear the doctor"
// (pointer to empty string or "null").
type UpdateBookingRequest struct {
	ServiceID      *string
	PetID          *string
	DoctorID       *string
	BookingDate    *time.Time
	CheckIn        *time.Time
	CheckOut       *time.Time
	SubServiceIDs  *[]string
	Notes          *string
	Status         *models.BookingStatus
	PaymentStatus  *models.PaymentStatus
	PaymentMethod  *models.PaymentMethod
	PaymentDetails map[string]interface{}
}

// GatewayResolver hands out a payment redirect URL for a freshly created
// booking. Implemented by the payment service; COD bookings never reach it.
type GatewayResolver interface {
	RedirectURL(ctx context.Context, method models.PaymentMethod, booking *models.Booking, clientIP string) (string, error)
}

// ReminderScheduler queues an appointment reminder. Failures are logged, not
// surfaced: a missed reminder never fails a booking.
type ReminderScheduler interface {
	ScheduleAppointmentReminder(booking *models.Booking) error
}

// BookingService is the booking lifecycle manager.
type BookingService interface {
	Create(ctx context.Context, req CreateBookingRequest) (*models.Booking, string, error)
	List(actor Actor) ([]models.Booking, error)
	Get(id string, actor Actor) (*models.Booking, error)
	Update(ctx context.Context, id string, patch UpdateBookingRequest, actor Actor) (*models.Booking, error)
	Cancel(id string, actor Actor) (*models.Booking, error)
	Delete(id string, actor Actor) error
	CheckHotelAvailability(serviceID string, checkIn, checkOut time.Time) (*models.RoomAvailability, error)
	AvailableTimes(serviceID string, date time.Time, doctorID *string) ([]string, error)
}
