package access

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"clinicbook/models"
	"clinicbook/utils"
)

var (
	// ErrUnauthorized means no credential was presented.
	ErrUnauthorized = errors.New("unauthorized access")
	// ErrForbidden means a credential was presented but does not grant access.
	ErrForbidden = errors.New("forbidden access")
)

// Denial is a forbidden decision with the reason it was made. It matches
// ErrForbidden under errors.Is.
type Denial struct {
	Reason string
}

func (d *Denial) Error() string { return "forbidden: " + d.Reason }

func (d *Denial) Is(target error) bool { return target == ErrForbidden }

// Identity is the verified subject of a request.
type Identity struct {
	Email string
}

type capabilityKind int

const (
	viewOwnBookings capabilityKind = iota + 1
	adminAction
)

// Capability is an action a request wants to perform.
type Capability struct {
	kind  capabilityKind
	email string
}

// ViewOwnBookings lets an identity read the bookings made with email.
func ViewOwnBookings(email string) Capability {
	return Capability{kind: viewOwnBookings, email: email}
}

// AdminAction is any catalog, provider or role change.
func AdminAction() Capability {
	return Capability{kind: adminAction}
}

// Tokens issues and verifies access tokens.
type Tokens interface {
	GenerateToken(email string) (string, error)
	ValidateToken(token string) (string, error)
}

// AccountDirectory resolves accounts by email. A missing account is nil with
// a nil error.
type AccountDirectory interface {
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
}

// Guard authenticates bearer tokens and authorizes capabilities.
type Guard struct {
	accounts AccountDirectory
	tokens   Tokens
	logger   *zap.Logger
}

func NewGuard(logger *zap.Logger, accounts AccountDirectory, tokens Tokens) *Guard {
	return &Guard{accounts: accounts, tokens: tokens, logger: logger}
}

// Authenticate verifies an Authorization header value of the form
// "Bearer <token>". The scheme is matched case-insensitively.
func (g *Guard) Authenticate(authHeader string) (Identity, error) {
	if strings.TrimSpace(authHeader) == "" {
		return Identity{}, ErrUnauthorized
	}
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return Identity{}, &Denial{Reason: "malformed authorization header"}
	}
	tokenString := parts[1]

	email, err := g.tokens.ValidateToken(tokenString)
	if err != nil {
		reason := "invalid token"
		if errors.Is(err, utils.ErrTokenExpired) {
			reason = "token expired"
		}
		return Identity{}, &Denial{Reason: reason}
	}
	return Identity{Email: email}, nil
}

// Authorize returns nil when id may perform c, a *Denial when it may not, and
// any other error when the decision could not be made.
func (g *Guard) Authorize(ctx context.Context, id Identity, c Capability) error {
	switch c.kind {
	case viewOwnBookings:
		if id.Email != c.email {
			return &Denial{Reason: "bookings belong to another client"}
		}
		return nil
	case adminAction:
		account, err := g.accounts.GetByEmail(ctx, id.Email)
		if err != nil {
			return fmt.Errorf("lookup account %q: %w", id.Email, err)
		}
		if !account.IsAdmin() {
			g.logger.Info("Admin action denied", zap.String("email", id.Email))
			return &Denial{Reason: "admin role required"}
		}
		return nil
	default:
		return &Denial{Reason: "unknown capability"}
	}
}

// IssueToken signs a token for email if an account with that email exists.
func (g *Guard) IssueToken(ctx context.Context, email string) (string, error) {
	account, err := g.accounts.GetByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("lookup account %q: %w", email, err)
	}
	if account == nil {
		return "", &Denial{Reason: "no account for email"}
	}
	return g.tokens.GenerateToken(email)
}
