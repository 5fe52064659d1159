package booking

import (
	"context"
	"time"

	bookingRepo "nekokin/database/repository/booking"
	doctorRepo "nekokin/database/repository/doctor"
	petRepo "nekokin/database/repository/pet"
	serviceRepo "nekokin/database/repository/service"
	"nekokin/models"
	"nekokin/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Bookings  bookingRepo.BookingRepository
	Services  serviceRepo.ServiceRepository
	Pets      petRepo.PetRepository
	Doctors   doctorRepo.DoctorRepository
	Gateways  GatewayResolver
	Reminders ReminderScheduler
}

func (s *DefaultBookingService) checker() *AvailabilityChecker {
	return &AvailabilityChecker{Bookings: s.Bookings}
}

// Create validates availability, computes the total, persists the booking in
// pending/pending, and only then asks the gateway for a redirect URL. The
// record is committed before the external call so a failed gateway does not
// lose the booking; it stays pending for a manual payment retry.
func (s *DefaultBookingService) Create(ctx context.Context, req CreateBookingRequest) (*models.Booking, string, error) {
	logger := utils.GetLogger()

	if req.CustomerID == "" || req.PetID == "" || req.ServiceID == "" {
		return nil, "", NewValidationError("customerId, petId and serviceId are required")
	}

	svc, err := s.Services.GetByID(req.ServiceID)
	if err != nil {
		return nil, "", err
	}
	if svc == nil {
		return nil, "", NewNotFoundError("service %s does not exist", req.ServiceID)
	}

	pet, err := s.Pets.GetByID(req.PetID)
	if err != nil {
		return nil, "", err
	}
	if pet == nil {
		return nil, "", NewNotFoundError("pet %s does not exist", req.PetID)
	}
	if pet.CustomerID != req.CustomerID {
		return nil, "", NewForbiddenError("pet %s does not belong to this customer", req.PetID)
	}

	// Only medical services carry a doctor; anything else forces null.
	var doctorID *string
	if svc.Category == models.CategoryMedical && req.DoctorID != nil && *req.DoctorID != "" {
		doctor, err := s.Doctors.GetByID(*req.DoctorID)
		if err != nil {
			return nil, "", err
		}
		if doctor == nil {
			return nil, "", NewNotFoundError("doctor %s does not exist", *req.DoctorID)
		}
		doctorID = req.DoctorID
	}

	method := req.PaymentMethod
	if method == "" {
		method = models.MethodCOD
	}
	if !validPaymentMethod(method) {
		return nil, "", NewValidationError("unsupported payment method %q", method)
	}

	now := time.Now()
	b := &models.Booking{
		ID:            uuid.New().String(),
		CustomerID:    req.CustomerID,
		PetID:         req.PetID,
		ServiceID:     svc.ID,
		DoctorID:      doctorID,
		Notes:         req.Notes,
		Status:        models.StatusPending,
		PaymentStatus: models.PaymentPending,
		PaymentMethod: method,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if svc.Category == models.CategoryHotel {
		if req.CheckIn == nil || req.CheckOut == nil {
			return nil, "", NewValidationError("check-in and check-out are required for hotel services")
		}
		avail, err := s.checker().HotelAvailability(svc, *req.CheckIn, *req.CheckOut, "")
		if err != nil {
			return nil, "", err
		}
		if avail.AvailableRooms <= 0 {
			return nil, "", NewConflictError("no rooms available for the selected interval")
		}

		subs, err := s.subServices(req.SubServiceIDs)
		if err != nil {
			return nil, "", err
		}
		total, err := ComputeTotal(svc, req.CheckIn, req.CheckOut, subs)
		if err != nil {
			return nil, "", err
		}

		b.CheckIn = req.CheckIn
		b.CheckOut = req.CheckOut
		b.SubServiceIDs = req.SubServiceIDs
		b.BookingDate = *req.CheckIn
		b.TotalAmount = total
	} else {
		if req.BookingDate.IsZero() {
			return nil, "", NewValidationError("bookingDate is required")
		}
		free, err := s.checker().AppointmentSlotFree(svc, doctorID, req.BookingDate)
		if err != nil {
			return nil, "", err
		}
		if !free {
			return nil, "", NewConflictError("time slot %s is already booked", slotOf(req.BookingDate))
		}
		b.BookingDate = req.BookingDate
		b.TotalAmount = svc.Price
	}

	if err := s.Bookings.Create(b); err != nil {
		return nil, "", err
	}
	logger.Info("booking created",
		zap.String("bookingID", b.ID),
		zap.String("serviceID", b.ServiceID),
		zap.Int64("totalAmount", b.TotalAmount))

	if s.Reminders != nil && svc.Category != models.CategoryHotel {
		if err := s.Reminders.ScheduleAppointmentReminder(b); err != nil {
			logger.Warn("failed to schedule appointment reminder",
				zap.String("bookingID", b.ID), zap.Error(err))
		}
	}

	if b.PaymentMethod == models.MethodCOD {
		return b, "", nil
	}

	url, err := s.Gateways.RedirectURL(ctx, b.PaymentMethod, b, req.ClientIP)
	if err != nil {
		logger.Error("payment redirect failed after booking commit",
			zap.String("bookingID", b.ID), zap.Error(err))
		return b, "", NewExternalError("booking %s saved but payment link generation failed", b.ID)
	}
	return b, url, nil
}

// List returns every booking for admins, the caller's bookings otherwise.
func (s *DefaultBookingService) List(actor Actor) ([]models.Booking, error) {
	if actor.IsAdmin() {
		return s.Bookings.ListAll()
	}
	return s.Bookings.ListByCustomer(actor.CustomerID)
}

// Get fetches one booking, enforcing ownership for non-admins.
func (s *DefaultBookingService) Get(id string, actor Actor) (*models.Booking, error) {
	b, err := s.Bookings.GetByID(id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, NewNotFoundError("booking %s does not exist", id)
	}
	if !actor.IsAdmin() && b.CustomerID != actor.CustomerID {
		return nil, NewForbiddenError("you do not own booking %s", id)
	}
	return b, nil
}

// Update applies a partial patch, re-validating every mutated field and
// recomputing the total whenever duration, sub-services or service change.
func (s *DefaultBookingService) Update(ctx context.Context, id string, patch UpdateBookingRequest, actor Actor) (*models.Booking, error) {
	b, err := s.Bookings.GetByID(id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, NewNotFoundError("booking %s does not exist", id)
	}
	if !actor.IsAdmin() && b.CustomerID != actor.CustomerID {
		return nil, NewForbiddenError("you do not own booking %s", id)
	}

	origServiceID := b.ServiceID

	if patch.BookingDate != nil {
		b.BookingDate = *patch.BookingDate
	}
	if patch.ServiceID != nil {
		svc, err := s.Services.GetByID(*patch.ServiceID)
		if err != nil {
			return nil, err
		}
		if svc == nil {
			return nil, NewNotFoundError("service %s does not exist", *patch.ServiceID)
		}
		b.ServiceID = *patch.ServiceID
	}
	if patch.PetID != nil {
		pet, err := s.Pets.GetByID(*patch.PetID)
		if err != nil {
			return nil, err
		}
		if pet == nil {
			return nil, NewNotFoundError("pet %s does not exist", *patch.PetID)
		}
		if !actor.IsAdmin() && pet.CustomerID != actor.CustomerID {
			return nil, NewForbiddenError("you do not own pet %s", *patch.PetID)
		}
		b.PetID = *patch.PetID
	}
	if patch.Notes != nil {
		b.Notes = *patch.Notes
	}
	if patch.SubServiceIDs != nil {
		b.SubServiceIDs = *patch.SubServiceIDs
	}
	if patch.Status != nil {
		if err := ValidateTransition(b.Status, *patch.Status); err != nil {
			return nil, err
		}
		b.Status = *patch.Status
	}
	if patch.PaymentStatus != nil {
		switch *patch.PaymentStatus {
		case models.PaymentPending, models.PaymentSuccess, models.PaymentFailed:
			b.PaymentStatus = *patch.PaymentStatus
		default:
			return nil, NewValidationError("invalid payment status %q", *patch.PaymentStatus)
		}
	}
	if patch.PaymentMethod != nil {
		if !validPaymentMethod(*patch.PaymentMethod) {
			return nil, NewValidationError("unsupported payment method %q", *patch.PaymentMethod)
		}
		b.PaymentMethod = *patch.PaymentMethod
	}
	if patch.PaymentDetails != nil {
		b.PaymentDetails = patch.PaymentDetails
	}

	svc, err := s.Services.GetByID(b.ServiceID)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, NewNotFoundError("service %s does not exist", b.ServiceID)
	}

	if svc.Category == models.CategoryMedical {
		if patch.DoctorID != nil {
			if *patch.DoctorID == "" || *patch.DoctorID == "null" {
				b.DoctorID = nil
			} else {
				doctor, err := s.Doctors.GetByID(*patch.DoctorID)
				if err != nil {
					return nil, err
				}
				if doctor == nil {
					return nil, NewNotFoundError("doctor %s does not exist", *patch.DoctorID)
				}
				b.DoctorID = patch.DoctorID
			}
		}
	} else {
		b.DoctorID = nil
	}

	if svc.Category == models.CategoryHotel {
		newCheckIn := b.CheckIn
		newCheckOut := b.CheckOut
		if patch.CheckIn != nil {
			newCheckIn = patch.CheckIn
		}
		if patch.CheckOut != nil {
			newCheckOut = patch.CheckOut
		}
		if newCheckIn == nil || newCheckOut == nil || !newCheckOut.After(*newCheckIn) {
			return nil, NewValidationError("valid check-in and check-out are required for hotel services")
		}

		avail, err := s.checker().HotelAvailability(svc, *newCheckIn, *newCheckOut, b.ID)
		if err != nil {
			return nil, err
		}
		if avail.AvailableRooms <= 0 {
			return nil, NewConflictError("no rooms available for the selected interval")
		}

		b.CheckIn = newCheckIn
		b.CheckOut = newCheckOut
		if patch.BookingDate == nil {
			b.BookingDate = *newCheckIn
		}

		subs, err := s.subServices(b.SubServiceIDs)
		if err != nil {
			return nil, err
		}
		total, err := ComputeTotal(svc, newCheckIn, newCheckOut, subs)
		if err != nil {
			return nil, err
		}
		b.TotalAmount = total
	} else {
		b.CheckIn = nil
		b.CheckOut = nil
		b.SubServiceIDs = nil
		if b.ServiceID != origServiceID || b.TotalAmount <= 0 {
			b.TotalAmount = svc.Price
		}
	}

	if err := s.Bookings.Update(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Cancel moves a booking to canceled. Allowed from any non-terminal state;
// canceling an already-canceled booking is a no-op.
func (s *DefaultBookingService) Cancel(id string, actor Actor) (*models.Booking, error) {
	b, err := s.Bookings.GetByID(id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, NewNotFoundError("booking %s does not exist", id)
	}
	if !actor.IsAdmin() && b.CustomerID != actor.CustomerID {
		return nil, NewForbiddenError("you do not own booking %s", id)
	}

	if b.Status == models.StatusCanceled {
		return b, nil
	}
	if !Cancelable(b.Status) {
		return nil, NewValidationError("cannot transition booking from %s to %s", b.Status, models.StatusCanceled)
	}

	b.Status = models.StatusCanceled
	if err := s.Bookings.Update(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Delete removes a booking unconditionally after the ownership check.
func (s *DefaultBookingService) Delete(id string, actor Actor) error {
	b, err := s.Bookings.GetByID(id)
	if err != nil {
		return err
	}
	if b == nil {
		return NewNotFoundError("booking %s does not exist", id)
	}
	if !actor.IsAdmin() && b.CustomerID != actor.CustomerID {
		return NewForbiddenError("you do not own booking %s", id)
	}
	return s.Bookings.Delete(id)
}

// CheckHotelAvailability is the hotel probe: it rejects when no rooms remain
// so the storefront can distinguish a full house from an input problem.
func (s *DefaultBookingService) CheckHotelAvailability(serviceID string, checkIn, checkOut time.Time) (*models.RoomAvailability, error) {
	svc, err := s.Services.GetByID(serviceID)
	if err != nil {
		return nil, err
	}
	if svc == nil || svc.Category != models.CategoryHotel {
		return nil, NewValidationError("service %s is not a hotel service", serviceID)
	}

	avail, err := s.checker().HotelAvailability(svc, checkIn, checkOut, "")
	if err != nil {
		return nil, err
	}
	if avail.AvailableRooms <= 0 {
		return nil, NewConflictError("no rooms available for the selected interval")
	}
	return avail, nil
}

// AvailableTimes is the appointment probe.
func (s *DefaultBookingService) AvailableTimes(serviceID string, date time.Time, doctorID *string) ([]string, error) {
	svc, err := s.Services.GetByID(serviceID)
	if err != nil {
		return nil, err
	}
	if svc == nil || svc.Category == models.CategoryHotel {
		return nil, NewValidationError("service %s is not an appointment service", serviceID)
	}

	if svc.Category == models.CategoryMedical && doctorID != nil && *doctorID != "" {
		doctor, err := s.Doctors.GetByID(*doctorID)
		if err != nil {
			return nil, err
		}
		if doctor == nil {
			return nil, NewNotFoundError("doctor %s does not exist", *doctorID)
		}
	} else {
		doctorID = nil
	}

	return s.checker().AvailableTimes(svc, date, doctorID)
}

func (s *DefaultBookingService) subServices(ids []string) ([]models.Service, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	subs, err := s.Services.FindByIDsAndCategory(ids, models.CategoryAddOn)
	if err != nil {
		return nil, err
	}
	if len(subs) != len(ids) {
		return nil, NewValidationError("one or more sub-services are invalid")
	}
	return subs, nil
}

func validPaymentMethod(m models.PaymentMethod) bool {
	switch m {
	case models.MethodMoMo, models.MethodVNPay, models.MethodPayPal, models.MethodCOD:
		return true
	default:
		return false
	}
}
