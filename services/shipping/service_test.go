package shipping

import (
	"context"
	"errors"
	"testing"

	"nekokin/models"
	"nekokin/services/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeServiceRepo struct {
	services map[string]*models.Service
}

func (r *fakeServiceRepo) GetByID(id string) (*models.Service, error) {
	s, ok := r.services[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeServiceRepo) GetAll() ([]models.Service, error) { return nil, nil }
func (r *fakeServiceRepo) FindByIDsAndCategory([]string, models.ServiceCategory) ([]models.Service, error) {
	return nil, nil
}
func (r *fakeServiceRepo) Create(*models.Service) error { return nil }
func (r *fakeServiceRepo) Update(*models.Service) error { return nil }
func (r *fakeServiceRepo) Delete(string) error          { return nil }
func (r *fakeServiceRepo) Count() (int64, error)        { return 0, nil }

type fakeProvider struct {
	name  string
	est   *models.DistanceEstimate
	err   error
	calls int
}

func (p *fakeProvider) Name() string { return p.name }
func (p *fakeProvider) Distance(context.Context, string, string) (*models.DistanceEstimate, error) {
	p.calls++
	return p.est, p.err
}

func testRepo() *fakeServiceRepo {
	return &fakeServiceRepo{services: map[string]*models.Service{
		"ship-1": {ID: "ship-1", Category: models.CategoryShipment, PricePerKm: 15_000},
		"exam-1": {ID: "exam-1", Category: models.CategoryMedical, Price: 150_000},
	}}
}

func TestQuotePricesDistance(t *testing.T) {
	primary := &fakeProvider{name: "goong", est: &models.DistanceEstimate{
		DistanceText: "12.3 km", DistanceValue: 12_345,
		DurationText: "25 mins", DurationValue: 1_500,
	}}
	svc := NewService(testRepo(), nil, zap.NewNop(), primary)

	quote, err := svc.Quote(context.Background(), "ship-1", "1 Nguyen Hue, HCMC", "100 Le Loi, HCMC")
	require.NoError(t, err)
	// 12.345 km at 15000/km, rounded once.
	assert.Equal(t, int64(185_175), quote.Amount)
	assert.Equal(t, "goong", quote.Provider)
	assert.Equal(t, int64(12_345), quote.DistanceValue)
}

func TestQuoteFallsBackToSecondProvider(t *testing.T) {
	primary := &fakeProvider{name: "goong", err: booking.NewExternalError("goong down")}
	fallback := &fakeProvider{name: "google", est: &models.DistanceEstimate{DistanceValue: 5_000}}
	svc := NewService(testRepo(), nil, zap.NewNop(), primary, fallback)

	quote, err := svc.Quote(context.Background(), "ship-1", "a", "b")
	require.NoError(t, err)
	assert.Equal(t, "google", quote.Provider)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)
}

func TestQuoteDoesNotFallBackOnBadAddress(t *testing.T) {
	primary := &fakeProvider{name: "goong", err: booking.NewValidationError("address could not be located")}
	fallback := &fakeProvider{name: "google", est: &models.DistanceEstimate{DistanceValue: 5_000}}
	svc := NewService(testRepo(), nil, zap.NewNop(), primary, fallback)

	_, err := svc.Quote(context.Background(), "ship-1", "???", "b")
	require.Error(t, err)
	assert.Equal(t, booking.CodeValidation, booking.CodeOf(err))
	assert.Equal(t, 0, fallback.calls)
}

func TestQuoteSurfacesLastProviderError(t *testing.T) {
	p1 := &fakeProvider{name: "goong", err: booking.NewExternalError("goong down")}
	p2 := &fakeProvider{name: "google", err: errors.New("google down")}
	svc := NewService(testRepo(), nil, zap.NewNop(), p1, p2)

	_, err := svc.Quote(context.Background(), "ship-1", "a", "b")
	require.Error(t, err)
}

func TestQuoteValidatesService(t *testing.T) {
	svc := NewService(testRepo(), nil, zap.NewNop(), &fakeProvider{name: "goong"})

	_, err := svc.Quote(context.Background(), "exam-1", "a", "b")
	require.Error(t, err)
	assert.Equal(t, booking.CodeValidation, booking.CodeOf(err))

	_, err = svc.Quote(context.Background(), "ghost", "a", "b")
	require.Error(t, err)
	assert.Equal(t, booking.CodeNotFound, booking.CodeOf(err))

	_, err = svc.Quote(context.Background(), "ship-1", " ", "b")
	require.Error(t, err)
	assert.Equal(t, booking.CodeValidation, booking.CodeOf(err))
}
