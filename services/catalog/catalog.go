package catalog

import (
	"strings"
	"time"

	doctorRepo "nekokin/database/repository/doctor"
	newsRepo "nekokin/database/repository/news"
	serviceRepo "nekokin/database/repository/service"
	"nekokin/models"
	"nekokin/services/booking"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service manages the public catalog: offered services, doctors and news.
// Reads are open; writes are admin only.
type Service struct {
	Services serviceRepo.ServiceRepository
	Doctors  doctorRepo.DoctorRepository
	News     newsRepo.NewsRepository
	Logger   *zap.Logger
}

func NewService(services serviceRepo.ServiceRepository, doctors doctorRepo.DoctorRepository, news newsRepo.NewsRepository, logger *zap.Logger) *Service {
	return &Service{Services: services, Doctors: doctors, News: news, Logger: logger}
}

func requireAdmin(actor booking.Actor) error {
	if !actor.IsAdmin() {
		return booking.NewForbiddenError("only administrators may modify the catalog")
	}
	return nil
}

// ServiceInput carries the writable fields of a catalog service.
type ServiceInput struct {
	Name        string                 `json:"name"`
	Category    models.ServiceCategory `json:"category"`
	Price       int64                  `json:"price"`
	PricePerKm  int64                  `json:"pricePerKm"`
	TotalRooms  int                    `json:"totalRooms"`
	Image       string                 `json:"image"`
	Description string                 `json:"description"`
}

func (in ServiceInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return booking.NewValidationError("service name is required")
	}
	if !in.Category.Valid() {
		return booking.NewValidationError("unknown service category %d", in.Category)
	}
	if in.Price < 0 || in.PricePerKm < 0 {
		return booking.NewValidationError("prices cannot be negative")
	}
	if in.Category == models.CategoryHotel && in.TotalRooms <= 0 {
		return booking.NewValidationError("hotel services must declare totalRooms")
	}
	return nil
}

// ListServices returns the whole catalog, optionally filtered by category.
func (s *Service) ListServices(category *models.ServiceCategory) ([]models.Service, error) {
	all, err := s.Services.GetAll()
	if err != nil {
		return nil, err
	}
	if category == nil {
		return all, nil
	}
	if !category.Valid() {
		return nil, booking.NewValidationError("unknown service category %d", *category)
	}
	filtered := make([]models.Service, 0, len(all))
	for _, svc := range all {
		if svc.Category == *category {
			filtered = append(filtered, svc)
		}
	}
	return filtered, nil
}

// GetService returns one catalog entry.
func (s *Service) GetService(id string) (*models.Service, error) {
	svc, err := s.Services.GetByID(id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, booking.NewNotFoundError("service %s does not exist", id)
	}
	return svc, nil
}

// CreateService adds a catalog entry.
func (s *Service) CreateService(actor booking.Actor, in ServiceInput) (*models.Service, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	now := time.Now()
	svc := &models.Service{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		Category:    in.Category,
		Price:       in.Price,
		PricePerKm:  in.PricePerKm,
		TotalRooms:  in.TotalRooms,
		Image:       in.Image,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Services.Create(svc); err != nil {
		return nil, err
	}
	s.Logger.Info("catalog service created", zap.String("serviceID", svc.ID), zap.String("name", svc.Name))
	return svc, nil
}

// UpdateService replaces the writable fields of a catalog entry.
func (s *Service) UpdateService(actor booking.Actor, id string, in ServiceInput) (*models.Service, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	svc, err := s.GetService(id)
	if err != nil {
		return nil, err
	}
	svc.Name = strings.TrimSpace(in.Name)
	svc.Category = in.Category
	svc.Price = in.Price
	svc.PricePerKm = in.PricePerKm
	svc.TotalRooms = in.TotalRooms
	svc.Image = in.Image
	svc.Description = in.Description
	svc.UpdatedAt = time.Now()
	if err := s.Services.Update(svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// DeleteService removes a catalog entry.
func (s *Service) DeleteService(actor booking.Actor, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if _, err := s.GetService(id); err != nil {
		return err
	}
	return s.Services.Delete(id)
}
