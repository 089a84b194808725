package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"clinicbook/models"
	"clinicbook/services/user"
	"clinicbook/utils"
)

type UserHandler struct {
	UserService user.UserService
}

func NewUserHandler(us user.UserService) *UserHandler {
	return &UserHandler{UserService: us}
}

func (h *UserHandler) CreateUserHandler(c *gin.Context) {
	var account models.Account
	if err := c.ShouldBindJSON(&account); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	result, err := h.UserService.CreateAccount(c.Request.Context(), &account)
	if errors.Is(err, user.ErrInvalidAccount) {
		utils.JSONError(c, http.StatusBadRequest, "invalid account", err.Error())
		return
	}
	if err != nil {
		utils.StoreError(c, "Failed to create user", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *UserHandler) GetAllUsersHandler(c *gin.Context) {
	users, err := h.UserService.GetAllUsers(c.Request.Context())
	if err != nil {
		utils.StoreError(c, "Failed to fetch users", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) IsAdminHandler(c *gin.Context) {
	isAdmin, err := h.UserService.IsAdmin(c.Request.Context(), c.Param("email"))
	if err != nil {
		utils.StoreError(c, "Failed to fetch user", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"isAdmin": isAdmin})
}

// PromoteAdminHandler runs behind the admin middleware.
func (h *UserHandler) PromoteAdminHandler(c *gin.Context) {
	result, err := h.UserService.PromoteToAdmin(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.StoreError(c, "Failed to update user", err)
		return
	}
	c.JSON(http.StatusOK, result)
}
