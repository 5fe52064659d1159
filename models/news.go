package models

import "time"

// News is a published article shown on the storefront.
type News struct {
	ID        string    `bson:"id" json:"id"`
	Title     string    `bson:"title" json:"title"`
	Summary   string    `bson:"summary,omitempty" json:"summary,omitempty"`
	Content   string    `bson:"content" json:"content"`
	Image     string    `bson:"image,omitempty" json:"image,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
