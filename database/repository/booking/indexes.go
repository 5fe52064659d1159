package bookingRepo

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates indexes for fields frequently used in queries.
// Availability stays a read-then-insert pair per request; a unique slot index
// cannot express the rules here because hotel bookings legitimately share
// (service, doctor=nil, bookingDate) across rooms. The double-booking window
// is a known race inherited from the request-per-call model.
func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "customer_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "service_id", Value: 1}, {Key: "booking_date", Value: 1}}},
		{Keys: bson.D{{Key: "service_id", Value: 1}, {Key: "check_in", Value: 1}, {Key: "check_out", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "booking_date", Value: 1}}},
		{Keys: bson.D{{Key: "doctor_id", Value: 1}, {Key: "booking_date", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
