package petRepo

import "nekokin/models"

// PetRepository defines data access methods for pets.
type PetRepository interface {
	// GetByID retrieves a pet by its unique ID.
	GetByID(id string) (*models.Pet, error)
	// ListByCustomer retrieves all pets owned by a customer.
	ListByCustomer(customerID string) ([]models.Pet, error)
	// Create inserts a new pet record.
	Create(pet *models.Pet) error
	// Update modifies an existing pet record.
	Update(pet *models.Pet) error
	// Delete removes a pet record by its ID.
	Delete(id string) error
}
