package newsRepo

import "nekokin/models"

// NewsRepository defines data access methods for news articles.
type NewsRepository interface {
	GetByID(id string) (*models.News, error)
	GetAll() ([]models.News, error)
	Create(article *models.News) error
	Update(article *models.News) error
	Delete(id string) error
	Count() (int64, error)
}
