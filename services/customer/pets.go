package customer

import (
	"strings"
	"time"

	"nekokin/models"
	"nekokin/services/booking"

	"github.com/google/uuid"
)

// CreatePetRequest carries the fields needed to register a pet.
type CreatePetRequest struct {
	Name      string `json:"name"`
	Species   string `json:"species"`
	Breed     string `json:"breed"`
	AgeMonths int    `json:"ageMonths"`
	Notes     string `json:"notes"`
}

// UpdatePetRequest patches the mutable pet fields.
type UpdatePetRequest struct {
	Name      *string `json:"name"`
	Species   *string `json:"species"`
	Breed     *string `json:"breed"`
	AgeMonths *int    `json:"ageMonths"`
	Notes     *string `json:"notes"`
}

// AddPet registers a pet under the acting customer.
func (s *Service) AddPet(actor booking.Actor, ownerID string, req CreatePetRequest) (*models.Pet, error) {
	if !actor.IsAdmin() && actor.CustomerID != ownerID {
		return nil, booking.NewForbiddenError("you can only add pets to your own account")
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Species) == "" {
		return nil, booking.NewValidationError("pet name and species are required")
	}
	owner, err := s.Customers.GetByID(ownerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, booking.NewNotFoundError("customer %s does not exist", ownerID)
	}

	now := time.Now()
	p := &models.Pet{
		ID:         uuid.NewString(),
		CustomerID: ownerID,
		Name:       strings.TrimSpace(req.Name),
		Species:    strings.TrimSpace(req.Species),
		Breed:      strings.TrimSpace(req.Breed),
		AgeMonths:  req.AgeMonths,
		Notes:      req.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Pets.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListPets returns a customer's pets.
func (s *Service) ListPets(actor booking.Actor, ownerID string) ([]models.Pet, error) {
	if !actor.IsAdmin() && actor.CustomerID != ownerID {
		return nil, booking.NewForbiddenError("you can only list your own pets")
	}
	return s.Pets.ListByCustomer(ownerID)
}

// GetPet returns a single pet, owner or admin only.
func (s *Service) GetPet(actor booking.Actor, id string) (*models.Pet, error) {
	p, err := s.Pets.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, booking.NewNotFoundError("pet %s does not exist", id)
	}
	if !actor.IsAdmin() && p.CustomerID != actor.CustomerID {
		return nil, booking.NewForbiddenError("you do not have access to this pet")
	}
	return p, nil
}

// UpdatePet applies a partial update to a pet.
func (s *Service) UpdatePet(actor booking.Actor, id string, req UpdatePetRequest) (*models.Pet, error) {
	p, err := s.GetPet(actor, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, booking.NewValidationError("pet name cannot be empty")
		}
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Species != nil {
		if strings.TrimSpace(*req.Species) == "" {
			return nil, booking.NewValidationError("pet species cannot be empty")
		}
		p.Species = strings.TrimSpace(*req.Species)
	}
	if req.Breed != nil {
		p.Breed = strings.TrimSpace(*req.Breed)
	}
	if req.AgeMonths != nil {
		if *req.AgeMonths < 0 {
			return nil, booking.NewValidationError("pet age cannot be negative")
		}
		p.AgeMonths = *req.AgeMonths
	}
	if req.Notes != nil {
		p.Notes = *req.Notes
	}
	p.UpdatedAt = time.Now()
	if err := s.Pets.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

// DeletePet removes a pet record.
func (s *Service) DeletePet(actor booking.Actor, id string) error {
	if _, err := s.GetPet(actor, id); err != nil {
		return err
	}
	return s.Pets.Delete(id)
}
