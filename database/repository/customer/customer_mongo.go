package customerRepo

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

// MongoCustomerRepo implements CustomerRepository using MongoDB.
type MongoCustomerRepo struct {
	coll *mongo.Collection
}

// NewMongoCustomerRepo creates a new CustomerRepository backed by MongoDB.
func NewMongoCustomerRepo() CustomerRepository {
	repo := &MongoCustomerRepo{coll: database.Collection("customers")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create customer indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoCustomerRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a customer by its unique ID.
func (r *MongoCustomerRepo) GetByID(id string) (*models.Customer, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var customer models.Customer
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&customer); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch customer %s: %w", id, err)
	}
	return &customer, nil
}

// GetByEmail retrieves a customer by email.
func (r *MongoCustomerRepo) GetByEmail(email string) (*models.Customer, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var customer models.Customer
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&customer); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch customer by email: %w", err)
	}
	return &customer, nil
}

// GetAll retrieves all customers.
func (r *MongoCustomerRepo) GetAll() ([]models.Customer, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve customers: %w", err)
	}
	defer cursor.Close(ctx)

	var customers []models.Customer
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, fmt.Errorf("failed to decode customers: %w", err)
	}
	return customers, nil
}

// Create inserts a new customer record.
func (r *MongoCustomerRepo) Create(customer *models.Customer) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, customer); err != nil {
		return fmt.Errorf("error creating customer: %w", err)
	}
	return nil
}

// Update modifies an existing customer record.
func (r *MongoCustomerRepo) Update(customer *models.Customer) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	customer.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": customer.ID}, customer)
	if err != nil {
		return fmt.Errorf("error updating customer %s: %w", customer.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("customer %s not found", customer.ID)
	}
	return nil
}

// Delete removes a customer record by its ID.
func (r *MongoCustomerRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.DeleteOne(ctx, bson.M{"id": id}); err != nil {
		return fmt.Errorf("error deleting customer %s: %w", id, err)
	}
	return nil
}

// Count returns the number of customers.
func (r *MongoCustomerRepo) Count() (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}
	return n, nil
}
