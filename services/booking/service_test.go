package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	bookingRepo "nekokin/database/repository/booking"
	"nekokin/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBookingRepo is an in-memory BookingRepository mirroring the store's
// filtering rules: only capacity-occupying statuses count, and stay overlap
// uses inclusive bounds.
type fakeBookingRepo struct {
	bookings map[string]*models.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (r *fakeBookingRepo) Create(b *models.Booking) error {
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) GetByID(id string) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepo) Update(b *models.Booking) error {
	if _, ok := r.bookings[b.ID]; !ok {
		return errors.New("booking not found")
	}
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) Delete(id string) error {
	delete(r.bookings, id)
	return nil
}

func (r *fakeBookingRepo) ListAll() ([]models.Booking, error) {
	out := make([]models.Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		out = append(out, *b)
	}
	return out, nil
}

func (r *fakeBookingRepo) ListByCustomer(customerID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.CustomerID == customerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func occupiesCapacity(status models.BookingStatus) bool {
	for _, s := range models.ActiveStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func (r *fakeBookingRepo) FindSameDayAppointments(serviceID string, doctorID *string, dayStart, dayEnd time.Time) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.ServiceID != serviceID || !occupiesCapacity(b.Status) {
			continue
		}
		if b.BookingDate.Before(dayStart) || b.BookingDate.After(dayEnd) {
			continue
		}
		switch {
		case doctorID == nil && b.DoctorID != nil:
			continue
		case doctorID != nil && (b.DoctorID == nil || *b.DoctorID != *doctorID):
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (r *fakeBookingRepo) CountOverlappingStays(serviceID string, checkIn, checkOut time.Time, excludeID string) (int64, error) {
	var n int64
	for _, b := range r.bookings {
		if b.ServiceID != serviceID || !occupiesCapacity(b.Status) {
			continue
		}
		if b.ID == excludeID || b.CheckIn == nil || b.CheckOut == nil {
			continue
		}
		// Inclusive bounds on both ends.
		if !b.CheckIn.After(checkOut) && !b.CheckOut.Before(checkIn) {
			n++
		}
	}
	return n, nil
}

func (r *fakeBookingRepo) SetPaymentOutcome(id string, status models.PaymentStatus, method models.PaymentMethod, details map[string]interface{}) error {
	b, ok := r.bookings[id]
	if !ok {
		return errors.New("booking not found")
	}
	b.PaymentStatus = status
	b.PaymentMethod = method
	b.PaymentDetails = details
	return nil
}

func (r *fakeBookingRepo) Count() (int64, error) {
	return int64(len(r.bookings)), nil
}

func (r *fakeBookingRepo) CompletedRevenue(start, end *time.Time) (*bookingRepo.RevenueSummary, error) {
	return nil, errors.New("not implemented")
}

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

func (r *fakeServiceRepo) GetAll() ([]models.Service, error) {
	out := make([]models.Service, 0, len(r.services))
	for _, s := range r.services {
		out = append(out, *s)
	}
	return out, nil
}

func (r *fakeServiceRepo) FindByIDsAndCategory(ids []string, category models.ServiceCategory) ([]models.Service, error) {
	var out []models.Service
	for _, id := range ids {
		if s, ok := r.services[id]; ok && s.Category == category {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeServiceRepo) Create(s *models.Service) error { r.services[s.ID] = s; return nil }
func (r *fakeServiceRepo) Update(s *models.Service) error { r.services[s.ID] = s; return nil }
func (r *fakeServiceRepo) Delete(id string) error         { delete(r.services, id); return nil }
func (r *fakeServiceRepo) Count() (int64, error)          { return int64(len(r.services)), nil }

type fakePetRepo struct {
	pets map[string]*models.Pet
}

func (r *fakePetRepo) GetByID(id string) (*models.Pet, error) {
	p, ok := r.pets[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakePetRepo) ListByCustomer(customerID string) ([]models.Pet, error) {
	var out []models.Pet
	for _, p := range r.pets {
		if p.CustomerID == customerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePetRepo) Create(p *models.Pet) error { r.pets[p.ID] = p; return nil }
func (r *fakePetRepo) Update(p *models.Pet) error { r.pets[p.ID] = p; return nil }
func (r *fakePetRepo) Delete(id string) error     { delete(r.pets, id); return nil }

type fakeDoctorRepo struct {
	doctors map[string]*models.Doctor
}

func (r *fakeDoctorRepo) GetByID(id string) (*models.Doctor, error) {
	d, ok := r.doctors[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *fakeDoctorRepo) GetAll() ([]models.Doctor, error) { return nil, nil }
func (r *fakeDoctorRepo) Create(d *models.Doctor) error    { r.doctors[d.ID] = d; return nil }
func (r *fakeDoctorRepo) Update(d *models.Doctor) error    { r.doctors[d.ID] = d; return nil }
func (r *fakeDoctorRepo) Delete(id string) error           { delete(r.doctors, id); return nil }
func (r *fakeDoctorRepo) AddReview(doctorID string, review models.DoctorReview) error {
	return nil
}

type fakeGateway struct {
	url string
	err error
}

func (g *fakeGateway) RedirectURL(_ context.Context, _ models.PaymentMethod, _ *models.Booking, _ string) (string, error) {
	return g.url, g.err
}

type fakeReminders struct {
	scheduled []string
}

func (f *fakeReminders) ScheduleAppointmentReminder(b *models.Booking) error {
	f.scheduled = append(f.scheduled, b.ID)
	return nil
}

func newTestService(gw GatewayResolver) (*DefaultBookingService, *fakeBookingRepo) {
	hotel := &models.Service{ID: "hotel-1", Name: "Pet Hotel", Category: models.CategoryHotel, Price: 200_000, TotalRooms: 2}
	grooming := &models.Service{ID: "groom-1", Name: "Grooming", Category: models.CategoryAddOn, Price: 50_000}
	bath := &models.Service{ID: "bath-1", Name: "Bath", Category: models.CategoryAddOn, Price: 30_000}
	exam := &models.Service{ID: "exam-1", Name: "Checkup", Category: models.CategoryMedical, Price: 150_000}
	vaccine := &models.Service{ID: "vacc-1", Name: "Vaccination", Category: models.CategoryMedical, Price: 200_000}

	repo := newFakeBookingRepo()
	svc := &DefaultBookingService{
		Bookings: repo,
		Services: &fakeServiceRepo{services: map[string]*models.Service{
			hotel.ID: hotel, grooming.ID: grooming, bath.ID: bath, exam.ID: exam, vaccine.ID: vaccine,
		}},
		Pets: &fakePetRepo{pets: map[string]*models.Pet{
			"pet-1": {ID: "pet-1", CustomerID: "cust-1", Name: "Miu", Species: "cat"},
			"pet-2": {ID: "pet-2", CustomerID: "cust-2", Name: "Bo", Species: "dog"},
		}},
		Doctors: &fakeDoctorRepo{doctors: map[string]*models.Doctor{
			"doc-1": {ID: "doc-1", Name: "Dr. Lan"},
		}},
		Gateways: gw,
	}
	return svc, repo
}

func hotelCreateRequest() CreateBookingRequest {
	checkIn := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 3, 13, 12, 0, 0, 0, time.UTC)
	return CreateBookingRequest{
		CustomerID:    "cust-1",
		PetID:         "pet-1",
		ServiceID:     "hotel-1",
		CheckIn:       &checkIn,
		CheckOut:      &checkOut,
		PaymentMethod: models.MethodCOD,
	}
}

func TestCreateHotelBookingComputesTotal(t *testing.T) {
	svc, _ := newTestService(&fakeGateway{})

	req := hotelCreateRequest()
	req.SubServiceIDs = []string{"groom-1", "bath-1"}

	b, payURL, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, payURL)

	// 3 nights at 200k plus the two add-ons.
	assert.Equal(t, int64(3*200_000+50_000+30_000), b.TotalAmount)
	assert.Equal(t, models.StatusPending, b.Status)
	assert.Equal(t, models.PaymentPending, b.PaymentStatus)
	assert.Equal(t, *req.CheckIn, b.BookingDate)
}

func TestCreateRejectsForeignPet(t *testing.T) {
	svc, _ := newTestService(&fakeGateway{})

	req := hotelCreateRequest()
	req.PetID = "pet-2"

	_, _, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, CodeForbidden, CodeOf(err))
}

func TestCreateRejectsNonAddOnSubService(t *testing.T) {
	svc, _ := newTestService(&fakeGateway{})

	req := hotelCreateRequest()
	req.SubServiceIDs = []string{"exam-1"}

	_, _, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, CodeValidation, CodeOf(err))
}

func TestCreateKeepsBookingWhenGatewayFails(t *testing.T) {
	svc, repo := newTestService(&fakeGateway{err: NewExternalError("gateway down")})

	req := hotelCreateRequest()
	req.PaymentMethod = models.MethodVNPay

	b, payURL, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, CodeExternal, CodeOf(err))
	assert.Empty(t, payURL)
	require.NotNil(t, b)

	// The record survived the gateway failure and stays payable.
	saved, getErr := repo.GetByID(b.ID)
	require.NoError(t, getErr)
	require.NotNil(t, saved)
	assert.Equal(t, models.PaymentPending, saved.PaymentStatus)
}

func TestCreateRejectsFullHotel(t *testing.T) {
	svc, repo := newTestService(&fakeGateway{})

	checkIn := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 3, 12, 12, 0, 0, 0, time.UTC)
	for _, id := range []string{"b1", "b2"} {
		require.NoError(t, repo.Create(&models.Booking{
			ID: id, ServiceID: "hotel-1", CustomerID: "other",
			Status: models.StatusPending, CheckIn: &checkIn, CheckOut: &checkOut,
		}))
	}

	_, _, err := svc.Create(context.Background(), hotelCreateRequest())
	require.Error(t, err)
	assert.Equal(t, CodeConflict, CodeOf(err))
}

func TestCreateIgnoresCanceledBookingsForCapacity(t *testing.T) {
	svc, repo := newTestService(&fakeGateway{})

	checkIn := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 3, 12, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(&models.Booking{
		ID: "b1", ServiceID: "hotel-1", CustomerID: "other",
		Status: models.StatusCanceled, CheckIn: &checkIn, CheckOut: &checkOut,
	}))
	require.NoError(t, repo.Create(&models.Booking{
		ID: "b2", ServiceID: "hotel-1", CustomerID: "other",
		Status: models.StatusConfirmed, CheckIn: &checkIn, CheckOut: &checkOut,
	}))

	_, _, err := svc.Create(context.Background(), hotelCreateRequest())
	assert.NoError(t, err)
}

func TestCreateAppointmentConflictSameSlot(t *testing.T) {
	svc, _ := newTestService(&fakeGateway{})

	first := CreateBookingRequest{
		CustomerID:    "cust-1",
		PetID:         "pet-1",
		ServiceID:     "exam-1",
		BookingDate:   time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC),
		PaymentMethod: models.MethodCOD,
	}
	_, _, err := svc.Create(context.Background(), first)
	require.NoError(t, err)

	// Same day, same time, same (absent) doctor.
	_, _, err = svc.Create(context.Background(), first)
	require.Error(t, err)
	assert.Equal(t, CodeConflict, CodeOf(err))

	// A different doctor does not collide with the doctorless booking.
	doc := "doc-1"
	second := first
	second.DoctorID = &doc
	_, _, err = svc.Create(context.Background(), second)
	assert.NoError(t, err)
}

func TestCreateSchedulesReminderForAppointments(t *testing.T) {
	reminders := &fakeReminders{}
	svc, _ := newTestService(&fakeGateway{})
	svc.Reminders = reminders

	_, _, err := svc.Create(context.Background(), CreateBookingRequest{
		CustomerID:    "cust-1",
		PetID:         "pet-1",
		ServiceID:     "exam-1",
		BookingDate:   time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		PaymentMethod: models.MethodCOD,
	})
	require.NoError(t, err)
	assert.Len(t, reminders.scheduled, 1)

	// Hotel stays never get appointment reminders.
	_, _, err = svc.Create(context.Background(), hotelCreateRequest())
	require.NoError(t, err)
	assert.Len(t, reminders.scheduled, 1)
}

func TestCancelStates(t *testing.T) {
	svc, repo := newTestService(&fakeGateway{})
	actor := Actor{CustomerID: "cust-1"}

	seed := func(id string, status models.BookingStatus) {
		require.NoError(t, repo.Create(&models.Booking{ID: id, CustomerID: "cust-1", ServiceID: "exam-1", Status: status}))
	}
	seed("active-1", models.StatusActive)
	seed("done-1", models.StatusCompleted)
	seed("gone-1", models.StatusCanceled)

	b, err := svc.Cancel("active-1", actor)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCanceled, b.Status)

	_, err = svc.Cancel("done-1", actor)
	require.Error(t, err)
	assert.Equal(t, CodeValidation, CodeOf(err))

	// Canceling twice is a no-op.
	b, err = svc.Cancel("gone-1", actor)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCanceled, b.Status)
}

func TestGetEnforcesOwnership(t *testing.T) {
	svc, repo := newTestService(&fakeGateway{})
	require.NoError(t, repo.Create(&models.Booking{ID: "b1", CustomerID: "cust-1", ServiceID: "exam-1", Status: models.StatusPending}))

	_, err := svc.Get("b1", Actor{CustomerID: "cust-2"})
	require.Error(t, err)
	assert.Equal(t, CodeForbidden, CodeOf(err))

	b, err := svc.Get("b1", Actor{CustomerID: "cust-2", Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, "b1", b.ID)
}

func TestUpdateRecheckExcludesOwnBooking(t *testing.T) {
	svc, _ := newTestService(&fakeGateway{})

	b, _, err := svc.Create(context.Background(), hotelCreateRequest())
	require.NoError(t, err)

	// Re-saving the same interval must not collide with itself.
	notes := "late arrival"
	updated, err := svc.Update(context.Background(), b.ID, UpdateBookingRequest{Notes: &notes}, Actor{CustomerID: "cust-1"})
	require.NoError(t, err)
	assert.Equal(t, "late arrival", updated.Notes)
	assert.Equal(t, b.TotalAmount, updated.TotalAmount)
}

func TestUpdateServiceChangeRepricesAppointment(t *testing.T) {
	svc, _ := newTestService(&fakeGateway{})
	actor := Actor{CustomerID: "cust-1"}

	b, _, err := svc.Create(context.Background(), CreateBookingRequest{
		CustomerID:    "cust-1",
		PetID:         "pet-1",
		ServiceID:     "exam-1",
		BookingDate:   time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		PaymentMethod: models.MethodCOD,
	})
	require.NoError(t, err)
	require.Equal(t, int64(150_000), b.TotalAmount)

	// Switching to a pricier service carries the new price.
	newService := "vacc-1"
	updated, err := svc.Update(context.Background(), b.ID, UpdateBookingRequest{ServiceID: &newService}, actor)
	require.NoError(t, err)
	assert.Equal(t, "vacc-1", updated.ServiceID)
	assert.Equal(t, int64(200_000), updated.TotalAmount)

	// A patch that leaves the service alone keeps the stored total.
	notes := "bring vaccination record"
	updated, err = svc.Update(context.Background(), b.ID, UpdateBookingRequest{Notes: &notes}, actor)
	require.NoError(t, err)
	assert.Equal(t, int64(200_000), updated.TotalAmount)
}

func TestUpdateStatusFollowsGraph(t *testing.T) {
	svc, repo := newTestService(&fakeGateway{})
	require.NoError(t, repo.Create(&models.Booking{ID: "b1", CustomerID: "cust-1", ServiceID: "exam-1", Status: models.StatusPending, TotalAmount: 150_000}))
	actor := Actor{CustomerID: "cust-1"}

	set := func(status models.BookingStatus) error {
		_, err := svc.Update(context.Background(), "b1", UpdateBookingRequest{Status: &status}, actor)
		return err
	}

	require.Error(t, set(models.StatusActive)) // pending cannot skip confirmed
	require.NoError(t, set(models.StatusConfirmed))
	require.NoError(t, set(models.StatusActive))
	require.NoError(t, set(models.StatusCompleted))
	err := set(models.StatusActive) // completed is terminal
	require.Error(t, err)
	assert.Equal(t, CodeValidation, CodeOf(err))
}
