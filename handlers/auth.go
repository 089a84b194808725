package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"clinicbook/services/access"
	"clinicbook/utils"
)

type AuthHandler struct {
	Guard *access.Guard
}

func NewAuthHandler(guard *access.Guard) *AuthHandler {
	return &AuthHandler{Guard: guard}
}

// IssueTokenHandler signs a token for ?email= when that account exists.
func (h *AuthHandler) IssueTokenHandler(c *gin.Context) {
	token, err := h.Guard.IssueToken(c.Request.Context(), c.Query("email"))
	if errors.Is(err, access.ErrForbidden) {
		c.JSON(http.StatusForbidden, gin.H{"accessToken": ""})
		return
	}
	if err != nil {
		utils.StoreError(c, "Failed to issue token", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"accessToken": token})
}
