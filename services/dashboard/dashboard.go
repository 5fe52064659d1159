package dashboard

import (
	"time"

	bookingRepo "nekokin/database/repository/booking"
	customerRepo "nekokin/database/repository/customer"
	newsRepo "nekokin/database/repository/news"
	serviceRepo "nekokin/database/repository/service"
	"nekokin/services/booking"
)

// Stats is the admin dashboard snapshot.
type Stats struct {
	Bookings  int64                    `json:"bookings"`
	Customers int64                    `json:"customers"`
	Services  int64                    `json:"services"`
	Articles  int64                    `json:"articles"`
	Revenue   *bookingRepo.RevenueSummary `json:"revenue"`
}

// Service aggregates counts and completed-booking revenue for administrators.
type Service struct {
	Bookings  bookingRepo.BookingRepository
	Customers customerRepo.CustomerRepository
	Services  serviceRepo.ServiceRepository
	News      newsRepo.NewsRepository
}

func NewService(bookings bookingRepo.BookingRepository, customers customerRepo.CustomerRepository, services serviceRepo.ServiceRepository, news newsRepo.NewsRepository) *Service {
	return &Service{Bookings: bookings, Customers: customers, Services: services, News: news}
}

// Snapshot gathers the dashboard numbers. Revenue only counts bookings whose
// status reached completed, optionally restricted to a bookingDate range.
func (s *Service) Snapshot(actor booking.Actor, start, end *time.Time) (*Stats, error) {
	if !actor.IsAdmin() {
		return nil, booking.NewForbiddenError("only administrators may view dashboard statistics")
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, booking.NewValidationError("end date precedes start date")
	}

	bookings, err := s.Bookings.Count()
	if err != nil {
		return nil, err
	}
	customers, err := s.Customers.Count()
	if err != nil {
		return nil, err
	}
	services, err := s.Services.Count()
	if err != nil {
		return nil, err
	}
	articles, err := s.News.Count()
	if err != nil {
		return nil, err
	}
	revenue, err := s.Bookings.CompletedRevenue(start, end)
	if err != nil {
		return nil, err
	}

	return &Stats{
		Bookings:  bookings,
		Customers: customers,
		Services:  services,
		Articles:  articles,
		Revenue:   revenue,
	}, nil
}
