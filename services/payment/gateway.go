package payment

import (
	"context"

	bookingRepo "nekokin/database/repository/booking"
	"nekokin/models"
	"nekokin/services/booking"

	"go.uber.org/zap"
)

// Gateway is the single capability every payment provider implements:
// produce a redirect/approval URL for a booking, and verify an inbound
// return/notify payload into a normalized callback.
type Gateway interface {
	Name() models.PaymentMethod
	CreateRedirect(ctx context.Context, b *models.Booking, clientIP string) (string, error)
	VerifyCallback(params map[string]string) (*models.GatewayCallback, error)
}

// Service routes bookings to their gateway and applies verified callbacks to
// the booking store.
type Service struct {
	Bookings bookingRepo.BookingRepository
	Gateways map[models.PaymentMethod]Gateway
	Logger   *zap.Logger
}

// NewService assembles a payment service over the given gateways.
func NewService(bookings bookingRepo.BookingRepository, logger *zap.Logger, gateways ...Gateway) *Service {
	m := make(map[models.PaymentMethod]Gateway, len(gateways))
	for _, g := range gateways {
		m[g.Name()] = g
	}
	return &Service{Bookings: bookings, Gateways: m, Logger: logger}
}

func (s *Service) gateway(method models.PaymentMethod) (Gateway, error) {
	g, ok := s.Gateways[method]
	if !ok {
		return nil, booking.NewValidationError("no gateway configured for method %q", method)
	}
	return g, nil
}

// RedirectURL implements the booking service's GatewayResolver.
func (s *Service) RedirectURL(ctx context.Context, method models.PaymentMethod, b *models.Booking, clientIP string) (string, error) {
	g, err := s.gateway(method)
	if err != nil {
		return "", err
	}
	return g.CreateRedirect(ctx, b, clientIP)
}

// HandleReturn verifies a browser-redirect payload and records the outcome.
// The return leg always writes: the user is watching and the storefront
// reflects whatever the gateway just said.
func (s *Service) HandleReturn(method models.PaymentMethod, params map[string]string) (*models.GatewayCallback, error) {
	g, err := s.gateway(method)
	if err != nil {
		return nil, err
	}
	cb, err := g.VerifyCallback(params)
	if err != nil {
		return nil, err
	}
	if err := s.apply(cb, method); err != nil {
		return nil, err
	}
	return cb, nil
}

// HandleNotify verifies a server-to-server (IPN) payload and records the
// outcome idempotently: once paymentStatus has left pending, retried or
// duplicated notifies are acknowledged without touching the booking.
func (s *Service) HandleNotify(method models.PaymentMethod, params map[string]string) (*models.GatewayCallback, bool, error) {
	g, err := s.gateway(method)
	if err != nil {
		return nil, false, err
	}
	cb, err := g.VerifyCallback(params)
	if err != nil {
		return nil, false, err
	}

	b, err := s.Bookings.GetByID(cb.BookingID)
	if err != nil {
		return nil, false, err
	}
	if b == nil {
		return nil, false, booking.NewNotFoundError("booking %s does not exist", cb.BookingID)
	}
	if b.PaymentStatus != models.PaymentPending {
		s.Logger.Info("duplicate payment notify ignored",
			zap.String("bookingID", cb.BookingID),
			zap.String("method", string(method)))
		return cb, false, nil
	}

	if err := s.apply(cb, method); err != nil {
		return nil, false, err
	}
	return cb, true, nil
}

func (s *Service) apply(cb *models.GatewayCallback, method models.PaymentMethod) error {
	status := models.PaymentFailed
	if cb.Success {
		status = models.PaymentSuccess
	}
	if err := s.Bookings.SetPaymentOutcome(cb.BookingID, status, method, cb.Details); err != nil {
		return err
	}
	s.Logger.Info("payment outcome recorded",
		zap.String("bookingID", cb.BookingID),
		zap.String("method", string(method)),
		zap.Bool("success", cb.Success))
	return nil
}

// detailsOf widens a string parameter map into the opaque payload stored on
// the booking.
func detailsOf(params map[string]string) map[string]interface{} {
	details := make(map[string]interface{}, len(params))
	for k, v := range params {
		details[k] = v
	}
	return details
}
