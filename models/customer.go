package models

import "time"

// Customer roles understood by the auth middleware.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Customer is an account holder. PasswordHash is never serialized.
type Customer struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	Phone        string    `bson:"phone" json:"phone"`
	Address      string    `bson:"address,omitempty" json:"address,omitempty"`
	Role         string    `bson:"role" json:"role"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updatedAt"`
}

// Pet belongs to exactly one customer.
type Pet struct {
	ID         string    `bson:"id" json:"id"`
	CustomerID string    `bson:"customer_id" json:"customerId"`
	Name       string    `bson:"name" json:"name"`
	Species    string    `bson:"species" json:"species"`
	Breed      string    `bson:"breed,omitempty" json:"breed,omitempty"`
	AgeMonths  int       `bson:"age_months,omitempty" json:"ageMonths,omitempty"`
	Notes      string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updatedAt"`
}
