package petRepo

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

// MongoPetRepo implements PetRepository using MongoDB.
type MongoPetRepo struct {
	coll *mongo.Collection
}

// NewMongoPetRepo creates a new PetRepository backed by MongoDB.
func NewMongoPetRepo() PetRepository {
	repo := &MongoPetRepo{coll: database.Collection("pets")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create pet indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoPetRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "customer_id", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a pet by its unique ID.
func (r *MongoPetRepo) GetByID(id string) (*models.Pet, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var pet models.Pet
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&pet); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch pet %s: %w", id, err)
	}
	return &pet, nil
}

// ListByCustomer retrieves all pets owned by the customer.
func (r *MongoPetRepo) ListByCustomer(customerID string) ([]models.Pet, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"customer_id": customerID})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve pets: %w", err)
	}
	defer cursor.Close(ctx)

	var pets []models.Pet
	if err := cursor.All(ctx, &pets); err != nil {
		return nil, fmt.Errorf("failed to decode pets: %w", err)
	}
	return pets, nil
}

// Create inserts a new pet record.
func (r *MongoPetRepo) Create(pet *models.Pet) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, pet); err != nil {
		return fmt.Errorf("error creating pet: %w", err)
	}
	return nil
}

// Update modifies an existing pet record.
func (r *MongoPetRepo) Update(pet *models.Pet) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	pet.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": pet.ID}, pet)
	if err != nil {
		return fmt.Errorf("error updating pet %s: %w", pet.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("pet %s not found", pet.ID)
	}
	return nil
}

// Delete removes a pet record by its ID.
func (r *MongoPetRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.DeleteOne(ctx, bson.M{"id": id}); err != nil {
		return fmt.Errorf("error deleting pet %s: %w", id, err)
	}
	return nil
}
