package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clinicbook/models"
	"clinicbook/services/payment"
	"clinicbook/utils"
)

type PaymentHandler struct {
	Reconciler *payment.Reconciler
	Intents    payment.IntentCreator
}

func NewPaymentHandler(reconciler *payment.Reconciler, intents payment.IntentCreator) *PaymentHandler {
	return &PaymentHandler{Reconciler: reconciler, Intents: intents}
}

func (h *PaymentHandler) CreatePaymentIntentHandler(c *gin.Context) {
	var req models.PaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	intent, err := h.Intents.CreateIntent(c.Request.Context(), req.Price)
	if err != nil {
		utils.GetLogger().Error("Payment gateway error", zap.Error(err))
		c.JSON(http.StatusBadGateway, utils.ErrorResponse{Message: "payment gateway error"})
		return
	}
	c.JSON(http.StatusOK, intent)
}

func (h *PaymentHandler) RecordPaymentHandler(c *gin.Context) {
	var p models.Payment
	if err := c.ShouldBindJSON(&p); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	result, err := h.Reconciler.RecordPayment(c.Request.Context(), &p)
	if errors.Is(err, payment.ErrInvalidPayment) {
		utils.JSONError(c, http.StatusBadRequest, "invalid payment", err.Error())
		return
	}
	if err != nil {
		utils.StoreError(c, "Failed to record payment", err)
		return
	}
	c.JSON(http.StatusOK, result)
}
