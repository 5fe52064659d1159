package catalog

import (
	"strings"
	"time"

	"nekokin/models"
	"nekokin/services/booking"

	"github.com/google/uuid"
)

// DoctorInput carries the writable fields of a doctor profile.
type DoctorInput struct {
	Name            string   `json:"name"`
	Specialty       string   `json:"specialty"`
	ExperienceYears int      `json:"experienceYears"`
	Image           string   `json:"image"`
	Description     string   `json:"description"`
	FullDescription string   `json:"fullDescription"`
	ServiceIDs      []string `json:"serviceIds"`
}

func (in DoctorInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return booking.NewValidationError("doctor name is required")
	}
	if in.ExperienceYears < 0 {
		return booking.NewValidationError("experience years cannot be negative")
	}
	return nil
}

// ListDoctors returns all doctor profiles.
func (s *Service) ListDoctors() ([]models.Doctor, error) {
	return s.Doctors.GetAll()
}

// GetDoctor returns one doctor profile.
func (s *Service) GetDoctor(id string) (*models.Doctor, error) {
	d, err := s.Doctors.GetByID(id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, booking.NewNotFoundError("doctor %s does not exist", id)
	}
	return d, nil
}

// CreateDoctor adds a doctor profile.
func (s *Service) CreateDoctor(actor booking.Actor, in DoctorInput) (*models.Doctor, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	now := time.Now()
	d := &models.Doctor{
		ID:              uuid.NewString(),
		Name:            strings.TrimSpace(in.Name),
		Specialty:       strings.TrimSpace(in.Specialty),
		ExperienceYears: in.ExperienceYears,
		Image:           in.Image,
		Description:     in.Description,
		FullDescription: in.FullDescription,
		ServiceIDs:      in.ServiceIDs,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.Doctors.Create(d); err != nil {
		return nil, err
	}
	return d, nil
}

// UpdateDoctor replaces the writable fields of a doctor profile.
func (s *Service) UpdateDoctor(actor booking.Actor, id string, in DoctorInput) (*models.Doctor, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	d, err := s.GetDoctor(id)
	if err != nil {
		return nil, err
	}
	d.Name = strings.TrimSpace(in.Name)
	d.Specialty = strings.TrimSpace(in.Specialty)
	d.ExperienceYears = in.ExperienceYears
	d.Image = in.Image
	d.Description = in.Description
	d.FullDescription = in.FullDescription
	d.ServiceIDs = in.ServiceIDs
	d.UpdatedAt = time.Now()
	if err := s.Doctors.Update(d); err != nil {
		return nil, err
	}
	return d, nil
}

// DeleteDoctor removes a doctor profile.
func (s *Service) DeleteDoctor(actor booking.Actor, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if _, err := s.GetDoctor(id); err != nil {
		return err
	}
	return s.Doctors.Delete(id)
}

// ReviewDoctor appends a customer review and refreshes the aggregate rating.
func (s *Service) ReviewDoctor(actor booking.Actor, doctorID string, rating int, comment string) (*models.Doctor, error) {
	if actor.CustomerID == "" {
		return nil, booking.NewForbiddenError("sign in to review a doctor")
	}
	if rating < 1 || rating > 5 {
		return nil, booking.NewValidationError("rating must be between 1 and 5")
	}
	if _, err := s.GetDoctor(doctorID); err != nil {
		return nil, err
	}

	review := models.DoctorReview{
		ID:         uuid.NewString(),
		CustomerID: actor.CustomerID,
		Rating:     rating,
		Comment:    strings.TrimSpace(comment),
		CreatedAt:  time.Now(),
	}
	if err := s.Doctors.AddReview(doctorID, review); err != nil {
		return nil, err
	}
	return s.GetDoctor(doctorID)
}
