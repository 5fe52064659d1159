package bookingRepo

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

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a new BookingRepository backed by MongoDB.
func NewMongoBookingRepo() BookingRepository {
	repo := &MongoBookingRepo{coll: database.Collection("bookings")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create booking indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// Create inserts a new booking document.
func (r *MongoBookingRepo) Create(booking *models.Booking) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by its ID.
func (r *MongoBookingRepo) GetByID(id string) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var booking models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id, err)
	}
	return &booking, nil
}

// Update replaces an existing booking document.
func (r *MongoBookingRepo) Update(booking *models.Booking) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	booking.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": booking.ID}, booking)
	if err != nil {
		return fmt.Errorf("error updating booking %s: %w", booking.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("booking %s not found", booking.ID)
	}
	return nil
}

// Delete removes a booking record from the database.
func (r *MongoBookingRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.DeleteOne(ctx, bson.M{"id": id}); err != nil {
		return fmt.Errorf("error deleting booking %s: %w", id, err)
	}
	return nil
}

// ListAll retrieves every booking, most recent first.
func (r *MongoBookingRepo) ListAll() ([]models.Booking, error) {
	return r.list(bson.M{})
}

// ListByCustomer retrieves all bookings owned by the given customer.
func (r *MongoBookingRepo) ListByCustomer(customerID string) ([]models.Booking, error) {
	return r.list(bson.M{"customer_id": customerID})
}

func (r *MongoBookingRepo) list(filter bson.M) ([]models.Booking, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	for cursor.Next(ctx) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("failed to decode booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

// SetPaymentOutcome updates only the payment fields of a booking.
func (r *MongoBookingRepo) SetPaymentOutcome(id string, status models.PaymentStatus, method models.PaymentMethod, details map[string]interface{}) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	set := bson.M{
		"payment_status": status,
		"payment_method": method,
		"updated_at":     time.Now(),
	}
	if details != nil {
		set["payment_details"] = details
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("error updating payment outcome for booking %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("booking %s not found", id)
	}
	return nil
}

// Count returns the total number of bookings.
func (r *MongoBookingRepo) Count() (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return n, nil
}
