package models

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusActive    BookingStatus = "active"
	StatusCompleted BookingStatus = "completed"
	StatusCanceled  BookingStatus = "canceled"
)

// PaymentStatus tracks the outcome of the payment flow for a booking.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentSuccess PaymentStatus = "success"
	PaymentFailed  PaymentStatus = "failed"
)

// PaymentMethod identifies the gateway a booking is paid through.
type PaymentMethod string

const (
	MethodMoMo   PaymentMethod = "momo"
	MethodVNPay  PaymentMethod = "vnpay"
	MethodPayPal PaymentMethod = "paypal"
	MethodCOD    PaymentMethod = "cod"
)

// Booking represents one customer's request for one service occurrence.
// BookingDate is always set: for appointments it is the appointment instant,
// for hotel stays it mirrors CheckIn. DoctorID is only meaningful for
// medical services, SubServiceIDs only for hotel stays.
type Booking struct {
	ID             string                 `bson:"id" json:"id"`
	CustomerID     string                 `bson:"customer_id" json:"customerId"`
	PetID          string                 `bson:"pet_id" json:"petId"`
	ServiceID      string                 `bson:"service_id" json:"serviceId"`
	DoctorID       *string                `bson:"doctor_id" json:"doctorId"`
	SubServiceIDs  []string               `bson:"sub_services,omitempty" json:"subServiceIds,omitempty"`
	BookingDate    time.Time              `bson:"booking_date" json:"bookingDate"`
	CheckIn        *time.Time             `bson:"check_in,omitempty" json:"checkIn,omitempty"`
	CheckOut       *time.Time             `bson:"check_out,omitempty" json:"checkOut,omitempty"`
	Notes          string                 `bson:"notes" json:"notes"`
	Status         BookingStatus          `bson:"status" json:"status"`
	TotalAmount    int64                  `bson:"total_amount" json:"totalAmount"`
	PaymentStatus  PaymentStatus          `bson:"payment_status" json:"paymentStatus"`
	PaymentMethod  PaymentMethod          `bson:"payment_method" json:"paymentMethod"`
	PaymentDetails map[string]interface{} `bson:"payment_details,omitempty" json:"paymentDetails,omitempty"`
	CreatedAt      time.Time              `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time              `bson:"updated_at" json:"updatedAt"`
}

// ActiveStatuses are the states that occupy capacity: a booking in any of
// these counts against room capacity and appointment slots.
var ActiveStatuses = []BookingStatus{StatusPending, StatusActive, StatusCompleted}

// RoomAvailability is the result of a hotel availability probe.
type RoomAvailability struct {
	AvailableRooms int       `json:"availableRooms"`
	TotalRooms     int       `json:"totalRooms"`
	CheckIn        time.Time `json:"checkIn"`
	CheckOut       time.Time `json:"checkOut"`
}
