package jwt

import (
	"fmt"
	"sync"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// DefaultSecret is the insecure development secret.
const DefaultSecret = "dev-secret"

// DefaultTTL is the fixed session lifetime.
const DefaultTTL = 8 * time.Hour

var (
	mu     sync.RWMutex
	secret = []byte(DefaultSecret)
)

// SetSecret configures the JWT signing secret (call on startup).
func SetSecret(s string) {
	if s == "" {
		return
	}
	mu.Lock()
	secret = []byte(s)
	mu.Unlock()
}

// UsingDefaultSecret reports whether the development secret is still active.
func UsingDefaultSecret() bool {
	mu.RLock()
	defer mu.RUnlock()
	return string(secret) == DefaultSecret
}

func currentSecret() []byte {
	mu.RLock()
	defer mu.RUnlock()
	return secret
}

// Claims is the JWT payload.
type Claims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	jwtlib.RegisteredClaims
}

// Sign creates a signed token for the given admin.
func Sign(userID, email string, ttl time.Duration) (string, error) {
	return SignWithSecret(currentSecret(), userID, email, ttl)
}

// SignWithSecret signs with an explicit key.
func SignWithSecret(key []byte, userID, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwtlib.NewNumericDate(now),
		},
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(key)
}

// Parse validates a token string and returns the claims.
func Parse(tokenStr string) (*Claims, error) {
	key := currentSecret()
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return key, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
