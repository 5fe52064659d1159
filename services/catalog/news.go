package catalog

import (
	"strings"
	"time"

	"nekokin/models"
	"nekokin/services/booking"

	"github.com/google/uuid"
)

// NewsInput carries the writable fields of an article.
type NewsInput struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Content string `json:"content"`
	Image   string `json:"image"`
}

func (in NewsInput) validate() error {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Content) == "" {
		return booking.NewValidationError("article title and content are required")
	}
	return nil
}

// ListNews returns all published articles.
func (s *Service) ListNews() ([]models.News, error) {
	return s.News.GetAll()
}

// GetNews returns one article.
func (s *Service) GetNews(id string) (*models.News, error) {
	n, err := s.News.GetByID(id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, booking.NewNotFoundError("article %s does not exist", id)
	}
	return n, nil
}

// CreateNews publishes an article.
func (s *Service) CreateNews(actor booking.Actor, in NewsInput) (*models.News, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	now := time.Now()
	n := &models.News{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(in.Title),
		Summary:   strings.TrimSpace(in.Summary),
		Content:   in.Content,
		Image:     in.Image,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.News.Create(n); err != nil {
		return nil, err
	}
	return n, nil
}

// UpdateNews replaces the writable fields of an article.
func (s *Service) UpdateNews(actor booking.Actor, id string, in NewsInput) (*models.News, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	n, err := s.GetNews(id)
	if err != nil {
		return nil, err
	}
	n.Title = strings.TrimSpace(in.Title)
	n.Summary = strings.TrimSpace(in.Summary)
	n.Content = in.Content
	n.Image = in.Image
	n.UpdatedAt = time.Now()
	if err := s.News.Update(n); err != nil {
		return nil, err
	}
	return n, nil
}

// DeleteNews removes an article.
func (s *Service) DeleteNews(actor booking.Actor, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if _, err := s.GetNews(id); err != nil {
		return err
	}
	return s.News.Delete(id)
}
