package booking

import "nekokin/models"

// allowedTransitions is the booking state graph. Transitions are monotonic:
// nothing may skip a state or reverse one, and the two terminal states accept
// nothing.
var allowedTransitions = map[models.BookingStatus][]models.BookingStatus{
	models.StatusPending:   {models.StatusConfirmed, models.StatusCanceled},
	models.StatusConfirmed: {models.StatusActive, models.StatusCanceled},
	models.StatusActive:    {models.StatusCompleted},
	models.StatusCompleted: {},
	models.StatusCanceled:  {},
}

// ValidateTransition checks a requested status change against the state
// graph. A same-state request is a no-op, not an error.
func ValidateTransition(from, to models.BookingStatus) error {
	if from == to {
		return nil
	}
	if _, known := allowedTransitions[to]; !known {
		return NewValidationError("unknown booking status %q", to)
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return nil
		}
	}
	return NewValidationError("cannot transition booking from %s to %s", from, to)
}

// Cancelable reports whether a booking may still be canceled by its owner.
// Cancellation is its own operation: it is allowed from any non-terminal
// state, including active stays that are cut short.
func Cancelable(status models.BookingStatus) bool {
	switch status {
	case models.StatusPending, models.StatusConfirmed, models.StatusActive:
		return true
	default:
		return false
	}
}
