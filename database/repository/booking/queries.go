package bookingRepo

import (
	"fmt"
	"time"

	"nekokin/models"

	"go.mongodb.org/mongo-driver/bson"
)

// FindSameDayAppointments returns capacity-occupying bookings for the service
// on the given calendar day, filtered by doctor. A nil doctorID matches only
// bookings that carry no doctor.
func (r *MongoBookingRepo) FindSameDayAppointments(serviceID string, doctorID *string, dayStart, dayEnd time.Time) ([]models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"service_id":   serviceID,
		"status":       bson.M{"$in": models.ActiveStatuses},
		"booking_date": bson.M{"$gte": dayStart, "$lte": dayEnd},
	}
	if doctorID != nil {
		filter["doctor_id"] = *doctorID
	} else {
		filter["doctor_id"] = nil
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query same-day appointments: %w", err)
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

// CountOverlappingStays counts capacity-occupying hotel bookings whose stay
// interval overlaps the requested one. The bounds are inclusive on purpose:
// a stay checking out at the instant another checks in still counts as an
// overlap, matching the behavior the storefront was built against.
func (r *MongoBookingRepo) CountOverlappingStays(serviceID string, checkIn, checkOut time.Time, excludeID string) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"service_id": serviceID,
		"status":     bson.M{"$in": models.ActiveStatuses},
		"check_in":   bson.M{"$lte": checkOut},
		"check_out":  bson.M{"$gte": checkIn},
	}
	if excludeID != "" {
		filter["id"] = bson.M{"$ne": excludeID}
	}

	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count overlapping stays: %w", err)
	}
	return n, nil
}

// CompletedRevenue aggregates completed-booking revenue, joining the services
// collection for the price of each completed occurrence.
func (r *MongoBookingRepo) CompletedRevenue(start, end *time.Time) (*RevenueSummary, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	match := bson.M{"status": models.StatusCompleted}
	if start != nil && end != nil {
		match["booking_date"] = bson.M{"$gte": *start, "$lte": *end}
	}

	pipeline := []bson.M{
		{"$match": match},
		{"$lookup": bson.M{
			"from":         "services",
			"localField":   "service_id",
			"foreignField": "id",
			"as":           "service",
		}},
		{"$unwind": "$service"},
		{"$group": bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$service.price"},
			"services": bson.M{"$push": bson.M{
				"name":  "$service.name",
				"price": "$service.price",
			}},
		}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate revenue: %w", err)
	}
	defer cursor.Close(ctx)

	var results []RevenueSummary
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode revenue summary: %w", err)
	}
	if len(results) == 0 {
		return &RevenueSummary{}, nil
	}
	return &results[0], nil
}
