package models

// PaymentRedirect is handed back to the client after a booking is created
// with a non-COD payment method.
type PaymentRedirect struct {
	BookingID string `json:"bookingId"`
	URL       string `json:"url"`
}

// GatewayCallback is the normalized result of verifying a gateway
// return/notify payload.
type GatewayCallback struct {
	BookingID string                 `json:"bookingId"`
	Success   bool                   `json:"success"`
	Message   string                 `json:"message,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

// ReminderPayload is carried by queued appointment-reminder tasks.
type ReminderPayload struct {
	BookingID  string `json:"bookingId"`
	CustomerID string `json:"customerId"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	FireDate   string `json:"fireDate"`
}
