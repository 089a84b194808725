package models

import (
	"encoding/json"
	"time"
)

// Booking is a client's claim on one slot of one treatment on one date.
type Booking struct {
	ID              string    `bson:"id" json:"id"`
	Treatment       string    `bson:"treatment" json:"treatment" validate:"required"`             // TreatmentOption.Name
	AppointmentDate string    `bson:"appointmentDate" json:"appointmentDate" validate:"required"` // Calendar date, matched verbatim
	Slot            string    `bson:"slot" json:"slot" validate:"required"`
	Email           string    `bson:"email" json:"email" validate:"required,email"`
	Patient         string    `bson:"patient,omitempty" json:"patient,omitempty"`
	Phone           string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Price           float64   `bson:"price,omitempty" json:"price,omitempty"`
	Paid            bool      `bson:"paid" json:"paid"`
	TransactionID   string    `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	Extra           Extras    `bson:",inline" json:"-"`
}

type bookingJSON Booking

func (b *Booking) UnmarshalJSON(data []byte) error {
	var typed bookingJSON
	if err := json.Unmarshal(data, &typed); err != nil {
		return err
	}
	extra, err := splitExtras(data, typed)
	if err != nil {
		return err
	}
	*b = Booking(typed)
	b.Extra = extra
	return nil
}

func (b Booking) MarshalJSON() ([]byte, error) {
	return mergeExtras(bookingJSON(b), b.Extra)
}

// BookingResult is the body returned for a create request. A rejected
// request is still a successful call; callers branch on Accepted.
type BookingResult struct {
	Accepted   bool   `json:"accepted"`
	InsertedID string `json:"insertedId,omitempty"`
	Message    string `json:"message,omitempty"`
}

// MarshalJSON also writes the decision as "acknowledged", the key older
// clients branch on.
func (r BookingResult) MarshalJSON() ([]byte, error) {
	type result BookingResult
	return json.Marshal(struct {
		result
		Acknowledged bool `json:"acknowledged"`
	}{result(r), r.Accepted})
}
