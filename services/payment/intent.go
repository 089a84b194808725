package payment

import (
	"context"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"

	"clinicbook/models"
)

// IntentCreator opens a card payment with the gateway.
type IntentCreator interface {
	CreateIntent(ctx context.Context, price float64) (*models.PaymentIntent, error)
}

// StripeIntents creates Stripe payment intents using the package-level
// stripe.Key.
type StripeIntents struct {
	Currency string
}

func NewStripeIntents(currency string) *StripeIntents {
	return &StripeIntents{Currency: currency}
}

// CreateIntent charges price in major units, converted to the currency's
// minor units.
func (s *StripeIntents) CreateIntent(ctx context.Context, price float64) (*models.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(MinorUnits(price)),
		Currency:           stripe.String(s.Currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}
	return &models.PaymentIntent{ClientSecret: pi.ClientSecret}, nil
}

// MinorUnits converts a price to cents, rounding to the nearest cent.
func MinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}
