package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	providerRepo "clinicbook/database/repository/provider"
	"clinicbook/models"
	"clinicbook/utils"
)

// ProviderHandler manages the clinic's doctors. All routes are admin only.
type ProviderHandler struct {
	Repo providerRepo.ProviderRepository
}

func NewProviderHandler(repo providerRepo.ProviderRepository) *ProviderHandler {
	return &ProviderHandler{Repo: repo}
}

func (h *ProviderHandler) GetAllProvidersHandler(c *gin.Context) {
	providers, err := h.Repo.GetAll(c.Request.Context())
	if err != nil {
		utils.StoreError(c, "Failed to fetch doctors", err)
		return
	}
	c.JSON(http.StatusOK, providers)
}

func (h *ProviderHandler) CreateProviderHandler(c *gin.Context) {
	var p models.Provider
	if err := c.ShouldBindJSON(&p); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	p.ID = ""
	if err := h.Repo.Create(c.Request.Context(), &p); err != nil {
		utils.StoreError(c, "Failed to add doctor", err)
		return
	}
	c.JSON(http.StatusOK, models.WriteResult{Acknowledged: true, InsertedID: p.ID})
}

func (h *ProviderHandler) DeleteProviderHandler(c *gin.Context) {
	deleted, err := h.Repo.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.StoreError(c, "Failed to delete doctor", err)
		return
	}
	c.JSON(http.StatusOK, models.WriteResult{Acknowledged: true, DeletedCount: deleted})
}
