package models

import (
	"encoding/json"
	"time"
)

// Payment is one entry of the append-only payment ledger.
type Payment struct {
	ID            string    `bson:"id" json:"id"`
	BookingID     string    `bson:"bookingId" json:"bookingId" validate:"required"`
	TransactionID string    `bson:"transactionId" json:"transactionId" validate:"required"`
	Amount        float64   `bson:"amount,omitempty" json:"amount,omitempty"`
	Email         string    `bson:"email,omitempty" json:"email,omitempty"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	Extra         Extras    `bson:",inline" json:"-"` // Gateway metadata
}

// legacyTransactionKey is the misspelled field older clients send.
const legacyTransactionKey = "transctionId"

type paymentJSON Payment

func (p *Payment) UnmarshalJSON(data []byte) error {
	var typed paymentJSON
	if err := json.Unmarshal(data, &typed); err != nil {
		return err
	}
	extra, err := splitExtras(data, typed)
	if err != nil {
		return err
	}
	if legacy, ok := extra[legacyTransactionKey].(string); ok {
		if typed.TransactionID == "" {
			typed.TransactionID = legacy
		}
		delete(extra, legacyTransactionKey)
	}
	*p = Payment(typed)
	if len(extra) > 0 {
		p.Extra = extra
	}
	return nil
}

func (p Payment) MarshalJSON() ([]byte, error) {
	return mergeExtras(paymentJSON(p), p.Extra)
}

// PaymentIntentRequest asks the gateway for a card payment of Price.
type PaymentIntentRequest struct {
	Price float64 `json:"price" binding:"required,gt=0"`
}

// PaymentIntent carries the client secret the browser confirms with.
type PaymentIntent struct {
	ClientSecret string `json:"clientSecret"`
}
