package customerRepo

import "nekokin/models"

// CustomerRepository defines data access methods for customer accounts.
type CustomerRepository interface {
	// GetByID retrieves a customer by its unique ID.
	GetByID(id string) (*models.Customer, error)
	// GetByEmail retrieves a customer by email; returns nil when absent.
	GetByEmail(email string) (*models.Customer, error)
	// GetAll retrieves all customers.
	GetAll() ([]models.Customer, error)
	// Create inserts a new customer record.
	Create(customer *models.Customer) error
	// Update modifies an existing customer record.
	Update(customer *models.Customer) error
	// Delete removes a customer record by its ID.
	Delete(id string) error
	// Count returns the number of customers.
	Count() (int64, error)
}
