package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	userRepo "clinicbook/database/repository/user"
	"clinicbook/models"
	"clinicbook/services/access"
	"clinicbook/utils"
)

func setupRouter(t *testing.T) (*gin.Engine, *utils.TokenSigner) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := userRepo.NewMemoryUserRepo()
	ctx := context.Background()
	require.NoError(t, users.Create(ctx, &models.Account{Email: "admin@x.io", Role: models.RoleAdmin}))
	require.NoError(t, users.Create(ctx, &models.Account{Email: "ann@x.io"}))

	signer := utils.NewTokenSigner("test-secret", time.Hour)
	guard := access.NewGuard(zap.NewNop(), users, signer)

	r := gin.New()
	r.GET("/me", JWTAuthMiddleware(guard), func(c *gin.Context) {
		id, _ := IdentityFrom(c)
		c.JSON(http.StatusOK, gin.H{"email": id.Email})
	})
	r.GET("/admin", JWTAuthMiddleware(guard), AdminMiddleware(guard), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r, signer
}

func TestJWTAuthMiddleware(t *testing.T) {
	r, signer := setupRouter(t)
	token, err := signer.GenerateToken("ann@x.io")
	require.NoError(t, err)

	tests := []struct {
		name     string
		header   string
		wantCode int
		wantBody string
	}{
		{"missing header", "", http.StatusUnauthorized, `{"message":"unauthorized access"}`},
		{"bad token", "Bearer nope", http.StatusForbidden, `{"message":"forbidden access"}`},
		{"valid token", "Bearer " + token, http.StatusOK, `{"email":"ann@x.io"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestAdminMiddleware(t *testing.T) {
	r, signer := setupRouter(t)

	for email, want := range map[string]int{
		"admin@x.io": http.StatusNoContent,
		"ann@x.io":   http.StatusForbidden,
		"ghost@x.io": http.StatusForbidden,
	} {
		t.Run(email, func(t *testing.T) {
			token, err := signer.GenerateToken(email)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, want, w.Code)
		})
	}
}
