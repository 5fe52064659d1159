package serviceRepo

import "nekokin/models"

// ServiceRepository defines data access methods for the service catalog.
type ServiceRepository interface {
	// GetByID retrieves a service by its unique ID.
	GetByID(id string) (*models.Service, error)
	// GetAll retrieves the whole catalog.
	GetAll() ([]models.Service, error)
	// FindByIDsAndCategory retrieves the services among ids that carry the
	// given category; callers compare lengths to detect invalid references.
	FindByIDsAndCategory(ids []string, category models.ServiceCategory) ([]models.Service, error)
	// Create inserts a new catalog entry.
	Create(service *models.Service) error
	// Update modifies an existing catalog entry.
	Update(service *models.Service) error
	// Delete removes a catalog entry by its ID.
	Delete(id string) error
	// Count returns the catalog size.
	Count() (int64, error)
}
