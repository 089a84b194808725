package models

// ReconcilePayload is the queued retry of a booking's paid update.
type ReconcilePayload struct {
	BookingID     string `json:"bookingId"`
	TransactionID string `json:"transactionId"`
}
