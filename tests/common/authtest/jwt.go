//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"supplier-quotes/internal/pkg/config"
	pkgjwt "supplier-quotes/internal/pkg/jwt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// JWTHelper mints tokens the way the identity provider does, so requests
// can pass the bearer check.
type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	return h.sign(t, userID, time.Now().Add(time.Hour))
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	return h.sign(t, userID, time.Now().Add(-time.Minute))
}

func (h *JWTHelper) sign(t *testing.T, userID uuid.UUID, expiresAt time.Time) string {
	t.Helper()
	claims := pkgjwt.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.cfg.Secret))
	require.NoError(t, err)
	return token
}
