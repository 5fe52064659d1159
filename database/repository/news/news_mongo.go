package newsRepo

import (
	"context"
	"fmt"
	"time"

	"nekokin/database"
	"nekokin/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoNewsRepo implements NewsRepository using MongoDB.
type MongoNewsRepo struct {
	coll *mongo.Collection
}

// NewMongoNewsRepo creates a new NewsRepository backed by MongoDB.
func NewMongoNewsRepo() NewsRepository {
	repo := &MongoNewsRepo{coll: database.Collection("news")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create news indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoNewsRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves an article by its unique ID.
func (r *MongoNewsRepo) GetByID(id string) (*models.News, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var article models.News
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&article); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch article %s: %w", id, err)
	}
	return &article, nil
}

// GetAll retrieves all articles, most recent first.
func (r *MongoNewsRepo) GetAll() ([]models.News, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve news: %w", err)
	}
	defer cursor.Close(ctx)

	var articles []models.News
	if err := cursor.All(ctx, &articles); err != nil {
		return nil, fmt.Errorf("failed to decode news: %w", err)
	}
	return articles, nil
}

// Create inserts a new article.
func (r *MongoNewsRepo) Create(article *models.News) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, article); err != nil {
		return fmt.Errorf("error creating article: %w", err)
	}
	return nil
}

// Update modifies an existing article.
func (r *MongoNewsRepo) Update(article *models.News) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	article.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": article.ID}, article)
	if err != nil {
		return fmt.Errorf("error updating article %s: %w", article.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("article %s not found", article.ID)
	}
	return nil
}

// Delete removes an article by its ID.
func (r *MongoNewsRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.DeleteOne(ctx, bson.M{"id": id}); err != nil {
		return fmt.Errorf("error deleting article %s: %w", id, err)
	}
	return nil
}

// Count returns the number of articles.
func (r *MongoNewsRepo) Count() (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count news: %w", err)
	}
	return n, nil
}
