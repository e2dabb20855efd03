package auth

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

var (
	// ErrNoToken is returned when no token was presented at all. The boundary
	// maps it to a different status code than ErrTokenInvalid.
	ErrNoToken = errors.New("no token provided")
	// ErrTokenInvalid covers every verification failure: malformed, expired,
	// or tampered tokens are indistinguishable to the caller.
	ErrTokenInvalid = errors.New("invalid token")
)

// Claims carries the identity embedded in an issued token.
type Claims struct {
	Username string `json:"username"`
	jwtv5.RegisteredClaims
}

// TokenManager issues and verifies signed, time-bounded tokens. Verification
// is stateless; there is no revocation, so an issued token stays valid for
// its full lifetime regardless of later logins or password changes.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a token manager signing with the given secret.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the given identity, expiring after the configured
// TTL.
func (m *TokenManager) Issue(username string) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: username,
		RegisteredClaims: jwtv5.RegisteredClaims{
			IssuedAt:  jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse verifies signature and expiry and returns the embedded claims.
func (m *TokenManager) Parse(tokenString string) (*Claims, error) {
	token, err := jwtv5.ParseWithClaims(tokenString, &Claims{}, func(t *jwtv5.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
