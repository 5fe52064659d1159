package handlers

import (
	"net/http"

	"nekokin/middleware"
	"nekokin/services/booking"
	"nekokin/services/catalog"
	"nekokin/services/customer"
	"nekokin/services/dashboard"
	"nekokin/services/payment"
	"nekokin/services/shipping"

	"github.com/gin-gonic/gin"
)

// Package-level services, wired by routes.SetupRouter at startup.
var (
	BookingSvc   booking.BookingService
	PaymentSvc   *payment.Service
	PayPal       *payment.PayPalGateway
	ShippingSvc  *shipping.Service
	CustomerSvc  *customer.Service
	CatalogSvc   *catalog.Service
	DashboardSvc *dashboard.Service
)

// actorFrom reads the identity the auth middleware stored on the context.
func actorFrom(c *gin.Context) booking.Actor {
	return booking.Actor{
		CustomerID: c.GetString(middleware.ContextCustomerID),
		Role:       c.GetString(middleware.ContextRole),
	}
}

// respondError maps service error codes onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch booking.CodeOf(err) {
	case booking.CodeValidation:
		status = http.StatusBadRequest
	case booking.CodeNotFound:
		status = http.StatusNotFound
	case booking.CodeConflict:
		status = http.StatusConflict
	case booking.CodeForbidden:
		status = http.StatusForbidden
	case booking.CodeExternal:
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
