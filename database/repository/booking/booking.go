package bookingRepo

import (
	"time"

	"nekokin/models"
)

// RevenueItem is one completed service occurrence contributing to revenue.
type RevenueItem struct {
	Name  string `bson:"name" json:"name"`
	Price int64  `bson:"price" json:"price"`
}

// RevenueSummary aggregates completed-booking revenue for the dashboard.
type RevenueSummary struct {
	Total int64         `bson:"total" json:"total"`
	Items []RevenueItem `bson:"services" json:"services"`
}

// BookingRepository defines the data access methods used by the booking
// service, the availability checker and the payment callback handlers.
type BookingRepository interface {
	// Create persists a new booking record.
	Create(booking *models.Booking) error
	// GetByID retrieves a booking by its unique ID.
	GetByID(id string) (*models.Booking, error)
	// Update replaces an existing booking record.
	Update(booking *models.Booking) error
	// Delete removes a booking record by its ID.
	Delete(id string) error
	// ListAll retrieves every booking (admin listing).
	ListAll() ([]models.Booking, error)
	// ListByCustomer retrieves all bookings owned by a customer.
	ListByCustomer(customerID string) ([]models.Booking, error)

	// FindSameDayAppointments returns capacity-occupying bookings for a
	// service whose bookingDate falls inside [dayStart, dayEnd], filtered by
	// doctor (nil matches bookings without a doctor).
	FindSameDayAppointments(serviceID string, doctorID *string, dayStart, dayEnd time.Time) ([]models.Booking, error)
	// CountOverlappingStays counts capacity-occupying hotel bookings whose
	// stay interval overlaps [checkIn, checkOut] with inclusive bounds.
	// excludeID omits the booking under update from the count.
	CountOverlappingStays(serviceID string, checkIn, checkOut time.Time, excludeID string) (int64, error)

	// SetPaymentOutcome updates the payment fields of a booking in place.
	SetPaymentOutcome(id string, status models.PaymentStatus, method models.PaymentMethod, details map[string]interface{}) error

	// Count returns the total number of bookings.
	Count() (int64, error)
	// CompletedRevenue sums service prices over completed bookings,
	// optionally restricted to a bookingDate range.
	CompletedRevenue(start, end *time.Time) (*RevenueSummary, error)
}
