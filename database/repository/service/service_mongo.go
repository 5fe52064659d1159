package serviceRepo

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

// MongoServiceRepo implements ServiceRepository using MongoDB.
type MongoServiceRepo struct {
	coll *mongo.Collection
}

// NewMongoServiceRepo creates a new ServiceRepository backed by MongoDB.
func NewMongoServiceRepo() ServiceRepository {
	repo := &MongoServiceRepo{coll: database.Collection("services")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create service indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoServiceRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a service by its unique ID.
func (r *MongoServiceRepo) GetByID(id string) (*models.Service, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var svc models.Service
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&svc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch service %s: %w", id, err)
	}
	return &svc, nil
}

// GetAll retrieves the whole catalog.
func (r *MongoServiceRepo) GetAll() ([]models.Service, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve services: %w", err)
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("failed to decode services: %w", err)
	}
	return services, nil
}

// FindByIDsAndCategory retrieves the services among ids with the given category.
func (r *MongoServiceRepo) FindByIDsAndCategory(ids []string, category models.ServiceCategory) ([]models.Service, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"id": bson.M{"$in": ids}, "category": category})
	if err != nil {
		return nil, fmt.Errorf("failed to query services by ids: %w", err)
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("failed to decode services: %w", err)
	}
	return services, nil
}

// Create inserts a new catalog entry.
func (r *MongoServiceRepo) Create(service *models.Service) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, service); err != nil {
		return fmt.Errorf("error creating service: %w", err)
	}
	return nil
}

// Update modifies an existing catalog entry.
func (r *MongoServiceRepo) Update(service *models.Service) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	service.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": service.ID}, service)
	if err != nil {
		return fmt.Errorf("error updating service %s: %w", service.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("service %s not found", service.ID)
	}
	return nil
}

// Delete removes a catalog entry by its ID.
func (r *MongoServiceRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.DeleteOne(ctx, bson.M{"id": id}); err != nil {
		return fmt.Errorf("error deleting service %s: %w", id, err)
	}
	return nil
}

// Count returns the catalog size.
func (r *MongoServiceRepo) Count() (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count services: %w", err)
	}
	return n, nil
}
