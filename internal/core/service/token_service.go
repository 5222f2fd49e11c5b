package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/salesbridge/dashboard-api/internal/core/domain"
	"github.com/salesbridge/dashboard-api/internal/core/ports"
)

// SessionTTL is how long session tokens live; invalidation is purely
// time-based plus cookie deletion on logout. There is no revocation list.
const SessionTTL = 7 * 24 * time.Hour

// TokenService issues and verifies HS256 session tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: SessionTTL, now: time.Now}
}

// Issue signs a token carrying the user id, role and optional client id.
func (s *TokenService) Issue(claims ports.TokenClaims) (string, error) {
	mc := jwt.MapClaims{
		"sub":  claims.UserID,
		"role": claims.Role,
		"exp":  s.now().Add(s.ttl).Unix(),
		"iat":  s.now().Unix(),
	}
	if claims.ClientID != "" {
		mc["client_id"] = claims.ClientID
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, mc)
	return t.SignedString(s.secret)
}

// Verify parses and validates a token, returning its claims. Any failure,
// signature or expiry, collapses to domain.ErrTokenInvalid.
func (s *TokenService) Verify(token string) (*ports.TokenClaims, error) {
	mc := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, mc, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrTokenInvalid
	}

	claims := &ports.TokenClaims{}
	claims.UserID, _ = mc["sub"].(string)
	claims.Role, _ = mc["role"].(string)
	claims.ClientID, _ = mc["client_id"].(string)
	if claims.UserID == "" || claims.Role == "" {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}
