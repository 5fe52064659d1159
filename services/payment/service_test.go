package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	bookingRepo "nekokin/database/repository/booking"
	"nekokin/models"
	"nekokin/services/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeBookingStore struct {
	bookings map[string]*models.Booking
	outcomes int
}

func newFakeBookingStore(bs ...*models.Booking) *fakeBookingStore {
	store := &fakeBookingStore{bookings: make(map[string]*models.Booking)}
	for _, b := range bs {
		store.bookings[b.ID] = b
	}
	return store
}

func (s *fakeBookingStore) Create(b *models.Booking) error { s.bookings[b.ID] = b; return nil }

func (s *fakeBookingStore) GetByID(id string) (*models.Booking, error) {
	b, ok := s.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (s *fakeBookingStore) Update(b *models.Booking) error { s.bookings[b.ID] = b; return nil }
func (s *fakeBookingStore) Delete(id string) error         { delete(s.bookings, id); return nil }
func (s *fakeBookingStore) ListAll() ([]models.Booking, error) {
	return nil, nil
}
func (s *fakeBookingStore) ListByCustomer(string) ([]models.Booking, error) { return nil, nil }
func (s *fakeBookingStore) FindSameDayAppointments(string, *string, time.Time, time.Time) ([]models.Booking, error) {
	return nil, nil
}
func (s *fakeBookingStore) CountOverlappingStays(string, time.Time, time.Time, string) (int64, error) {
	return 0, nil
}

func (s *fakeBookingStore) SetPaymentOutcome(id string, status models.PaymentStatus, method models.PaymentMethod, details map[string]interface{}) error {
	b, ok := s.bookings[id]
	if !ok {
		return errors.New("booking not found")
	}
	s.outcomes++
	b.PaymentStatus = status
	b.PaymentMethod = method
	b.PaymentDetails = details
	return nil
}

func (s *fakeBookingStore) Count() (int64, error) { return int64(len(s.bookings)), nil }
func (s *fakeBookingStore) CompletedRevenue(*time.Time, *time.Time) (*bookingRepo.RevenueSummary, error) {
	return nil, errors.New("not implemented")
}

// stubGateway verifies nothing; it replays a canned callback.
type stubGateway struct {
	method models.PaymentMethod
	cb     *models.GatewayCallback
}

func (g *stubGateway) Name() models.PaymentMethod { return g.method }
func (g *stubGateway) CreateRedirect(context.Context, *models.Booking, string) (string, error) {
	return "https://pay.example/checkout", nil
}
func (g *stubGateway) VerifyCallback(map[string]string) (*models.GatewayCallback, error) {
	return g.cb, nil
}

func TestHandleNotifyAppliesOnce(t *testing.T) {
	store := newFakeBookingStore(&models.Booking{
		ID: "bk-1", PaymentStatus: models.PaymentPending, TotalAmount: 600_000,
	})
	gw := &stubGateway{method: models.MethodMoMo, cb: &models.GatewayCallback{
		BookingID: "bk-1", Success: true, Details: map[string]interface{}{"transId": "123"},
	}}
	svc := NewService(store, zap.NewNop(), gw)

	cb, applied, err := svc.HandleNotify(models.MethodMoMo, nil)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, "bk-1", cb.BookingID)

	b, _ := store.GetByID("bk-1")
	assert.Equal(t, models.PaymentSuccess, b.PaymentStatus)
	assert.Equal(t, models.MethodMoMo, b.PaymentMethod)

	// A retried notify acknowledges without touching the booking.
	_, applied, err = svc.HandleNotify(models.MethodMoMo, nil)
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, 1, store.outcomes)
}

func TestHandleNotifyRecordsFailure(t *testing.T) {
	store := newFakeBookingStore(&models.Booking{
		ID: "bk-1", PaymentStatus: models.PaymentPending,
	})
	gw := &stubGateway{method: models.MethodVNPay, cb: &models.GatewayCallback{
		BookingID: "bk-1", Success: false,
	}}
	svc := NewService(store, zap.NewNop(), gw)

	_, applied, err := svc.HandleNotify(models.MethodVNPay, nil)
	require.NoError(t, err)
	assert.True(t, applied)

	b, _ := store.GetByID("bk-1")
	assert.Equal(t, models.PaymentFailed, b.PaymentStatus)
}

func TestHandleNotifyUnknownBooking(t *testing.T) {
	store := newFakeBookingStore()
	gw := &stubGateway{method: models.MethodMoMo, cb: &models.GatewayCallback{BookingID: "ghost"}}
	svc := NewService(store, zap.NewNop(), gw)

	_, _, err := svc.HandleNotify(models.MethodMoMo, nil)
	require.Error(t, err)
	assert.Equal(t, booking.CodeNotFound, booking.CodeOf(err))
}

func TestHandleNotifyUnknownMethod(t *testing.T) {
	svc := NewService(newFakeBookingStore(), zap.NewNop())

	_, _, err := svc.HandleNotify(models.MethodPayPal, nil)
	require.Error(t, err)
	assert.Equal(t, booking.CodeValidation, booking.CodeOf(err))
}

func TestApplyCaptureIsIdempotent(t *testing.T) {
	store := newFakeBookingStore(&models.Booking{
		ID: "bk-1", PaymentStatus: models.PaymentPending,
	})
	svc := NewService(store, zap.NewNop())

	cb := &models.GatewayCallback{BookingID: "bk-1", Success: true}
	applied, err := svc.ApplyCapture(cb)
	require.NoError(t, err)
	assert.True(t, applied)

	applied, err = svc.ApplyCapture(cb)
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, 1, store.outcomes)
}

func TestPayPalUSDAmount(t *testing.T) {
	g := NewPayPalGateway("id", "secret", "https://api-m.sandbox.paypal.com", 0.00004)

	assert.Equal(t, "24.00", g.USDAmount(600_000))
	// Tiny totals clamp to PayPal's one-cent minimum.
	assert.Equal(t, "0.01", g.USDAmount(100))

	// Unset rate falls back to the default conversion.
	g = NewPayPalGateway("id", "secret", "https://api-m.sandbox.paypal.com", 0)
	assert.Equal(t, "24.00", g.USDAmount(600_000))
}
