package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"clinicbook/middleware"
	"clinicbook/models"
	"clinicbook/services/access"
	"clinicbook/services/booking"
	"clinicbook/utils"
)

type BookingHandler struct {
	Coordinator *booking.Coordinator
	Guard       *access.Guard
}

func NewBookingHandler(coordinator *booking.Coordinator, guard *access.Guard) *BookingHandler {
	return &BookingHandler{Coordinator: coordinator, Guard: guard}
}

// CreateBookingHandler answers 200 for both accepted and rejected requests;
// clients branch on the body.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var req models.Booking
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	result, err := h.Coordinator.Create(c.Request.Context(), req)
	if errors.Is(err, booking.ErrInvalidRequest) {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking", err.Error())
		return
	}
	if err != nil {
		utils.StoreError(c, "Failed to create booking", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListClientBookingsHandler lists ?email= bookings for the token's owner.
func (h *BookingHandler) ListClientBookingsHandler(c *gin.Context) {
	email := c.Query("email")
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		middleware.AccessError(c, access.ErrUnauthorized)
		return
	}
	if err := h.Guard.Authorize(c.Request.Context(), id, access.ViewOwnBookings(email)); err != nil {
		middleware.AccessError(c, err)
		return
	}

	bookings, err := h.Coordinator.ForClient(c.Request.Context(), email)
	if err != nil {
		utils.StoreError(c, "Failed to fetch bookings", err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetBookingHandler writes null for an unknown id.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	b, err := h.Coordinator.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.StoreError(c, "Failed to fetch booking", err)
		return
	}
	c.JSON(http.StatusOK, b)
}
