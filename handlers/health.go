package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clinicbook/utils"
)

type HealthHandler struct{}

func (HealthHandler) RootHandler(c *gin.Context) {
	c.String(http.StatusOK, "Dentist server is running")
}

func (HealthHandler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "backends": utils.GetHealthStatus()})
}
