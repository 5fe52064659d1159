package doctorRepo

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

// MongoDoctorRepo implements DoctorRepository using MongoDB.
type MongoDoctorRepo struct {
	coll *mongo.Collection
}

// NewMongoDoctorRepo creates a new DoctorRepository backed by MongoDB.
func NewMongoDoctorRepo() DoctorRepository {
	repo := &MongoDoctorRepo{coll: database.Collection("doctors")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create doctor indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoDoctorRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a doctor by its unique ID.
func (r *MongoDoctorRepo) GetByID(id string) (*models.Doctor, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var doctor models.Doctor
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doctor); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch doctor %s: %w", id, err)
	}
	return &doctor, nil
}

// GetAll retrieves all doctors.
func (r *MongoDoctorRepo) GetAll() ([]models.Doctor, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve doctors: %w", err)
	}
	defer cursor.Close(ctx)

	var doctors []models.Doctor
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, fmt.Errorf("failed to decode doctors: %w", err)
	}
	return doctors, nil
}

// Create inserts a new doctor record.
func (r *MongoDoctorRepo) Create(doctor *models.Doctor) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, doctor); err != nil {
		return fmt.Errorf("error creating doctor: %w", err)
	}
	return nil
}

// Update modifies an existing doctor record.
func (r *MongoDoctorRepo) Update(doctor *models.Doctor) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	doctor.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": doctor.ID}, doctor)
	if err != nil {
		return fmt.Errorf("error updating doctor %s: %w", doctor.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("doctor %s not found", doctor.ID)
	}
	return nil
}

// Delete removes a doctor record by its ID.
func (r *MongoDoctorRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.DeleteOne(ctx, bson.M{"id": id}); err != nil {
		return fmt.Errorf("error deleting doctor %s: %w", id, err)
	}
	return nil
}

// AddReview appends a review to the doctor document and recomputes the
// aggregate rating in one update.
func (r *MongoDoctorRepo) AddReview(doctorID string, review models.DoctorReview) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	doctor, err := r.GetByID(doctorID)
	if err != nil {
		return err
	}
	if doctor == nil {
		return fmt.Errorf("doctor %s not found", doctorID)
	}

	newCount := doctor.NumReviews + 1
	newRating := (doctor.Rating*float64(doctor.NumReviews) + float64(review.Rating)) / float64(newCount)

	update := bson.M{
		"$push": bson.M{"reviews": review},
		"$set": bson.M{
			"rating":      newRating,
			"num_reviews": newCount,
			"updated_at":  time.Now(),
		},
	}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"id": doctorID}, update); err != nil {
		return fmt.Errorf("error adding review for doctor %s: %w", doctorID, err)
	}
	return nil
}
