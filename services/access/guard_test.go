package access

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	userRepo "clinicbook/database/repository/user"
	"clinicbook/models"
	"clinicbook/utils"
)

type brokenDirectory struct{}

func (brokenDirectory) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	return nil, errors.New("connection reset")
}

func newGuard(t *testing.T) (*Guard, *utils.TokenSigner) {
	t.Helper()
	ctx := context.Background()
	users := userRepo.NewMemoryUserRepo()
	require.NoError(t, users.Create(ctx, &models.Account{Email: "admin@x.io", Role: models.RoleAdmin}))
	require.NoError(t, users.Create(ctx, &models.Account{Email: "ann@x.io"}))

	signer := utils.NewTokenSigner("test-secret", time.Hour)
	return NewGuard(zap.NewNop(), users, signer), signer
}

func TestAuthenticate(t *testing.T) {
	g, signer := newGuard(t)
	valid, err := signer.GenerateToken("ann@x.io")
	require.NoError(t, err)
	expired, err := utils.NewTokenSigner("test-secret", -time.Minute).GenerateToken("ann@x.io")
	require.NoError(t, err)
	foreign, err := utils.NewTokenSigner("other-secret", time.Hour).GenerateToken("ann@x.io")
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{"valid token", "Bearer " + valid, "ann@x.io", nil},
		{"lowercase scheme", "bearer " + valid, "ann@x.io", nil},
		{"uppercase scheme", "BEARER " + valid, "ann@x.io", nil},
		{"no header", "", "", ErrUnauthorized},
		{"other scheme", "Basic " + valid, "", ErrForbidden},
		{"no bearer prefix", valid, "", ErrForbidden},
		{"empty token", "Bearer ", "", ErrForbidden},
		{"garbage", "Bearer not.a.jwt", "", ErrForbidden},
		{"expired", "Bearer " + expired, "", ErrForbidden},
		{"wrong secret", "Bearer " + foreign, "", ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := g.Authenticate(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id.Email)
		})
	}
}

func TestAuthorizeViewOwnBookings(t *testing.T) {
	g, _ := newGuard(t)
	ctx := context.Background()

	assert.NoError(t, g.Authorize(ctx, Identity{Email: "ann@x.io"}, ViewOwnBookings("ann@x.io")))

	err := g.Authorize(ctx, Identity{Email: "ann@x.io"}, ViewOwnBookings("bob@x.io"))
	assert.ErrorIs(t, err, ErrForbidden)
	var d *Denial
	require.ErrorAs(t, err, &d)
	assert.NotEmpty(t, d.Reason)
}

func TestAuthorizeAdminAction(t *testing.T) {
	g, _ := newGuard(t)
	ctx := context.Background()

	assert.NoError(t, g.Authorize(ctx, Identity{Email: "admin@x.io"}, AdminAction()))
	assert.ErrorIs(t, g.Authorize(ctx, Identity{Email: "ann@x.io"}, AdminAction()), ErrForbidden)
	assert.ErrorIs(t, g.Authorize(ctx, Identity{Email: "ghost@x.io"}, AdminAction()), ErrForbidden)
}

func TestAuthorizeStoreFailureIsNotADenial(t *testing.T) {
	g := NewGuard(zap.NewNop(), brokenDirectory{}, utils.NewTokenSigner("s", time.Hour))
	err := g.Authorize(context.Background(), Identity{Email: "admin@x.io"}, AdminAction())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrForbidden))
}

func TestIssueToken(t *testing.T) {
	g, signer := newGuard(t)
	ctx := context.Background()

	token, err := g.IssueToken(ctx, "ann@x.io")
	require.NoError(t, err)
	email, err := signer.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ann@x.io", email)

	_, err = g.IssueToken(ctx, "ghost@x.io")
	assert.ErrorIs(t, err, ErrForbidden)
}
