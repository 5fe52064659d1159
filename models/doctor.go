package models

import "time"

// Doctor is a veterinarian attachable to medical-service bookings.
type Doctor struct {
	ID              string    `bson:"id" json:"id"`
	Name            string    `bson:"name" json:"name"`
	Specialty       string    `bson:"specialty" json:"specialty"`
	ExperienceYears int       `bson:"experience_years" json:"experienceYears"`
	Image           string    `bson:"image,omitempty" json:"image,omitempty"`
	Description     string    `bson:"description,omitempty" json:"description,omitempty"`
	FullDescription string    `bson:"full_description,omitempty" json:"fullDescription,omitempty"`
	ServiceIDs      []string  `bson:"services,omitempty" json:"serviceIds,omitempty"`
	Rating          float64   `bson:"rating" json:"rating"`
	NumReviews      int       `bson:"num_reviews" json:"numReviews"`
	CreatedAt       time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updatedAt"`
}

// DoctorReview is a customer review embedded in the doctors collection.
type DoctorReview struct {
	ID         string    `bson:"id" json:"id"`
	CustomerID string    `bson:"customer_id" json:"customerId"`
	Rating     int       `bson:"rating" json:"rating"`
	Comment    string    `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
}
