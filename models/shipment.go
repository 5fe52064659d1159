package models

// DistanceEstimate is what a map provider returns for an origin/destination pair.
type DistanceEstimate struct {
	DistanceText  string `json:"distanceText"`
	DistanceValue int64  `json:"distanceValue"` // metres
	DurationText  string `json:"durationText"`
	DurationValue int64  `json:"durationValue"` // seconds
}

// ShipmentQuote is a priced distance estimate for a shipment service.
type ShipmentQuote struct {
	DistanceEstimate
	ServiceID string `json:"serviceId"`
	Amount    int64  `json:"amount"`
	Provider  string `json:"provider"` // which map provider produced the estimate
}
