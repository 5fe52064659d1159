package handlers

import (
	"net/http"
	"time"

	"nekokin/middleware"
	"nekokin/models"
	"nekokin/services/booking"

	"github.com/gin-gonic/gin"
)

type createBookingInput struct {
	PetID         string     `json:"petId"`
	ServiceID     string     `json:"serviceId"`
	DoctorID      *string    `json:"doctorId"`
	BookingDate   time.Time  `json:"bookingDate"`
	CheckIn       *time.Time `json:"checkIn"`
	CheckOut      *time.Time `json:"checkOut"`
	SubServiceIDs []string   `json:"subServiceIds"`
	Notes         string     `json:"notes"`
	PaymentMethod string     `json:"paymentMethod"`
}

// CreateBooking books a service for one of the caller's pets. The response
// carries the saved booking and, for gateway payments, a redirect URL.
func CreateBooking(c *gin.Context) {
	var input createBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	req := booking.CreateBookingRequest{
		CustomerID:    c.GetString(middleware.ContextCustomerID),
		PetID:         input.PetID,
		ServiceID:     input.ServiceID,
		DoctorID:      input.DoctorID,
		BookingDate:   input.BookingDate,
		CheckIn:       input.CheckIn,
		CheckOut:      input.CheckOut,
		SubServiceIDs: input.SubServiceIDs,
		Notes:         input.Notes,
		PaymentMethod: models.PaymentMethod(input.PaymentMethod),
		ClientIP:      middleware.GetClientIP(c),
	}

	b, payURL, err := BookingSvc.Create(c.Request.Context(), req)
	if err != nil {
		// The booking may have been saved even though the gateway call
		// failed; surface both so the client can retry the payment.
		if b != nil && booking.CodeOf(err) == booking.CodeExternal {
			c.JSON(http.StatusBadGateway, gin.H{"booking": b, "error": err.Error()})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": b, "payUrl": payURL})
}

// ListBookings returns the caller's bookings, or every booking for admins.
func ListBookings(c *gin.Context) {
	items, err := BookingSvc.List(actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetBooking returns one booking, owner or admin only.
func GetBooking(c *gin.Context) {
	b, err := BookingSvc.Get(c.Param("id"), actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

type updateBookingInput struct {
	ServiceID      *string                `json:"serviceId"`
	PetID          *string                `json:"petId"`
	DoctorID       *string                `json:"doctorId"`
	BookingDate    *time.Time             `json:"bookingDate"`
	CheckIn        *time.Time             `json:"checkIn"`
	CheckOut       *time.Time             `json:"checkOut"`
	SubServiceIDs  *[]string              `json:"subServiceIds"`
	Notes          *string                `json:"notes"`
	Status         *string                `json:"status"`
	PaymentStatus  *string                `json:"paymentStatus"`
	PaymentMethod  *string                `json:"paymentMethod"`
	PaymentDetails map[string]interface{} `json:"paymentDetails"`
}

// UpdateBooking applies a partial patch to a booking.
func UpdateBooking(c *gin.Context) {
	var input updateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	patch := booking.UpdateBookingRequest{
		ServiceID:      input.ServiceID,
		PetID:          input.PetID,
		DoctorID:       input.DoctorID,
		BookingDate:    input.BookingDate,
		CheckIn:        input.CheckIn,
		CheckOut:       input.CheckOut,
		SubServiceIDs:  input.SubServiceIDs,
		Notes:          input.Notes,
		PaymentDetails: input.PaymentDetails,
	}
	if input.Status != nil {
		st := models.BookingStatus(*input.Status)
		patch.Status = &st
	}
	if input.PaymentStatus != nil {
		ps := models.PaymentStatus(*input.PaymentStatus)
		patch.PaymentStatus = &ps
	}
	if input.PaymentMethod != nil {
		pm := models.PaymentMethod(*input.PaymentMethod)
		patch.PaymentMethod = &pm
	}

	b, err := BookingSvc.Update(c.Request.Context(), c.Param("id"), patch, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CancelBooking cancels a booking that has not completed yet.
func CancelBooking(c *gin.Context) {
	b, err := BookingSvc.Cancel(c.Param("id"), actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// DeleteBooking removes a booking record entirely.
func DeleteBooking(c *gin.Context) {
	if err := BookingSvc.Delete(c.Param("id"), actorFrom(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking deleted"})
}

type checkAvailabilityInput struct {
	CheckIn  time.Time `json:"checkIn" binding:"required"`
	CheckOut time.Time `json:"checkOut" binding:"required"`
}

// CheckHotelAvailability reports free rooms for a stay interval.
func CheckHotelAvailability(c *gin.Context) {
	var input checkAvailabilityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	avail, err := BookingSvc.CheckHotelAvailability(c.Param("serviceId"), input.CheckIn, input.CheckOut)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, avail)
}

// AvailableTimes lists the free appointment slots for a service on a day.
func AvailableTimes(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		date, err = time.Parse(time.RFC3339, dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD or RFC 3339"})
			return
		}
	}

	var doctorID *string
	if d := c.Query("doctorId"); d != "" {
		doctorID = &d
	}

	slots, err := BookingSvc.AvailableTimes(c.Param("serviceId"), date, doctorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"availableTimes": slots})
}
