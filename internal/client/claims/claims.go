// Package claims extracts the identity projection embedded in a bearer
// token payload.
//
// Decoding happens without signature verification and makes no trust
// decision: the projection only makes an identity visible before the
// authoritative profile has been fetched from the server.
package claims

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aleksmv/userdesk/internal/client/models"
)

// ErrInvalidToken reports a token whose payload cannot be decoded. Callers
// must treat it as the absence of a usable identity.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the identity projection carried in a token payload.
type Claims struct {
	Subject   string
	Email     string
	Name      string
	Role      string
	ExpiresAt time.Time
}

// tokenClaims is the wire shape of the payload segment. The outer Subject
// shadows the registered "sub" claim so numeric subjects decode too.
type tokenClaims struct {
	jwt.RegisteredClaims
	Subject models.FlexID `json:"sub"`
	Email   string        `json:"email"`
	Name    string        `json:"name"`
	Role    string        `json:"role"`
}

// Decode parses the payload segment of a three-segment token. Any missing
// segment, invalid encoding, or invalid embedded structure yields
// ErrInvalidToken. Expiry is carried through but not validated here; the
// server remains the single authority on token validity.
func Decode(token string) (*Claims, error) {
	parsed := &tokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	c := &Claims{
		Subject: string(parsed.Subject),
		Email:   parsed.Email,
		Name:    parsed.Name,
		Role:    parsed.Role,
	}
	if parsed.ExpiresAt != nil {
		c.ExpiresAt = parsed.ExpiresAt.Time
	}
	return c, nil
}

// User converts the projection into a provisional identity record.
func (c *Claims) User() *models.User {
	return &models.User{
		ID:    c.Subject,
		Email: c.Email,
		Name:  c.Name,
		Role:  c.Role,
	}
}
