package handlers

import (
	"clinicbook/services/access"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Guard *access.Guard

	Availability *AvailabilityHandler
	Booking      *BookingHandler
	Auth         *AuthHandler
	User         *UserHandler
	Payment      *PaymentHandler
	Provider     *ProviderHandler
	Health       *HealthHandler
}
