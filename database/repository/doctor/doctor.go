package doctorRepo

import "nekokin/models"

// DoctorRepository defines data access methods for doctors.
type DoctorRepository interface {
	// GetByID retrieves a doctor by its unique ID.
	GetByID(id string) (*models.Doctor, error)
	// GetAll retrieves all doctors.
	GetAll() ([]models.Doctor, error)
	// Create inserts a new doctor record.
	Create(doctor *models.Doctor) error
	// Update modifies an existing doctor record.
	Update(doctor *models.Doctor) error
	// Delete removes a doctor record by its ID.
	Delete(id string) error
	// AddReview appends a review and refreshes the aggregate rating.
	AddReview(doctorID string, review models.DoctorReview) error
}
