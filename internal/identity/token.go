package identity

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"custodia/internal/platform/middleware"
	id "custodia/pkg/domain"
)

// tokenClaims is the JWT payload minted by the identity provider: the opaque
// principal {id, role} plus standard expiry.
type tokenClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// TokenService implements the identity-provider adapter over HS256 JWTs. The
// backend only ever verifies; Issue exists for tests and operator tooling.
type TokenService struct {
	signingKey []byte
}

func NewTokenService(signingKey string) *TokenService {
	return &TokenService{signingKey: []byte(signingKey)}
}

// Issue mints a token for the given principal.
func (s *TokenService) Issue(userID id.UserID, role id.Role, validity time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validity)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: userID.String(),
		Role:   string(role),
	})
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify validates a token and extracts the principal.
func (s *TokenService) Verify(tokenString string) (*middleware.Claims, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	userID, err := id.ParseUserID(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("token carries invalid user id: %w", err)
	}
	role := id.Role(claims.Role)
	if !role.Known() {
		return nil, fmt.Errorf("token carries unknown role %q", claims.Role)
	}
	return &middleware.Claims{UserID: userID, Role: role}, nil
}
