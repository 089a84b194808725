package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clinicbook/services/availability"
	"clinicbook/utils"
)

type AvailabilityHandler struct {
	Service *availability.Service
}

func NewAvailabilityHandler(svc *availability.Service) *AvailabilityHandler {
	return &AvailabilityHandler{Service: svc}
}

// AppointmentOptionsHandler serves availability for ?date= using strategy.
func (h *AvailabilityHandler) AppointmentOptionsHandler(strategy string) gin.HandlerFunc {
	return func(c *gin.Context) {
		date := c.Query("date")
		result, err := h.Service.Resolve(c.Request.Context(), strategy, date)
		if err != nil {
			utils.StoreError(c, "Failed to load appointment options", err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// AppointmentSpecialtyHandler lists treatment names.
func (h *AvailabilityHandler) AppointmentSpecialtyHandler(c *gin.Context) {
	names, err := h.Service.TreatmentNames(c.Request.Context())
	if err != nil {
		utils.StoreError(c, "Failed to load specialties", err)
		return
	}
	c.JSON(http.StatusOK, names)
}
