package models

import "time"

// ServiceCategory is the closed taxonomy tag driving which pricing and
// availability rule applies to a service.
type ServiceCategory int

const (
	CategoryMedical  ServiceCategory = 1 // doctor appointments
	CategoryAddOn    ServiceCategory = 2 // add-on services attachable to a hotel stay
	CategoryHotel    ServiceCategory = 3 // pet hotel stays with room capacity
	CategoryShipment ServiceCategory = 4 // pet shipment priced per kilometre
)

// Valid reports whether the category is one of the known variants.
func (c ServiceCategory) Valid() bool {
	return c >= CategoryMedical && c <= CategoryShipment
}

// Service is a catalog entry. Price is an integer amount in the base
// currency unit (VND). TotalRooms is only meaningful for hotel services,
// PricePerKm only for shipment services.
type Service struct {
	ID          string          `bson:"id" json:"id"`
	Name        string          `bson:"name" json:"name"`
	Category    ServiceCategory `bson:"category" json:"category"`
	Price       int64           `bson:"price" json:"price"`
	PricePerKm  int64           `bson:"price_per_km,omitempty" json:"pricePerKm,omitempty"`
	TotalRooms  int             `bson:"total_rooms,omitempty" json:"totalRooms,omitempty"`
	Image       string          `bson:"image,omitempty" json:"image,omitempty"`
	Description string          `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time       `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time       `bson:"updated_at" json:"updatedAt"`
}
