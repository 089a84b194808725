package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clinicbook/services/access"
	"clinicbook/utils"
)

const identityKey = "identity"

// JWTAuthMiddleware requires a valid bearer token and stores the verified
// identity in the context.
func JWTAuthMiddleware(guard *access.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := guard.Authenticate(c.GetHeader("Authorization"))
		if err != nil {
			AccessError(c, err)
			return
		}
		c.Set(identityKey, id)
		c.Next()
	}
}

// AdminMiddleware must run after JWTAuthMiddleware.
func AdminMiddleware(guard *access.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok {
			AccessError(c, access.ErrUnauthorized)
			return
		}
		if err := guard.Authorize(c.Request.Context(), id, access.AdminAction()); err != nil {
			AccessError(c, err)
			return
		}
		c.Next()
	}
}

// IdentityFrom returns the identity JWTAuthMiddleware verified.
func IdentityFrom(c *gin.Context) (access.Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return access.Identity{}, false
	}
	id, ok := v.(access.Identity)
	return id, ok
}

// AccessError aborts with 401 or 403 for guard decisions and 500 for
// anything else.
func AccessError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, access.ErrUnauthorized):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
	case errors.Is(err, access.ErrForbidden):
		utils.GetLogger().Debug("Access denied", zap.Error(err), zap.String("path", c.Request.URL.Path))
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "forbidden access"})
	default:
		utils.GetLogger().Error("Access check failed", zap.Error(err), zap.String("path", c.Request.URL.Path))
		c.AbortWithStatusJSON(http.StatusInternalServerError, utils.ErrorResponse{Message: "access check failed"})
	}
}
