package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims represents JWT claims carrying the subject's public ID.
type Claims struct {
	jwt.RegisteredClaims
	PublicID uuid.UUID `json:"public_id"`
}

// allowedMethods is the fixed server-side signing algorithm allow-list.
// The algorithm declared in a token header is never trusted on its own:
// decode accepts only the method this manager was configured with.
var allowedMethods = map[string]jwt.SigningMethod{
	jwt.SigningMethodHS256.Alg(): jwt.SigningMethodHS256,
	jwt.SigningMethodHS384.Alg(): jwt.SigningMethodHS384,
	jwt.SigningMethodHS512.Alg(): jwt.SigningMethodHS512,
}

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey string
	method    jwt.SigningMethod
	ttl       time.Duration
}

// NewJWT creates a JWT token manager. algorithm must be on the server
// allow-list; anything else is a configuration error.
func NewJWT(secretKey, algorithm string, ttl time.Duration) (*JWT, error) {
	method, ok := allowedMethods[algorithm]
	if !ok {
		return nil, fmt.Errorf("signing algorithm %q is not allowed", algorithm)
	}
	return &JWT{secretKey: secretKey, method: method, ttl: ttl}, nil
}

// Generate creates a session token bound to publicID with the configured TTL.
func (j *JWT) Generate(publicID uuid.UUID) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(j.method, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
		PublicID: publicID,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Parse validates signature, algorithm and expiry and extracts the subject's
// public ID. It does not consult the revocation blacklist; that composition
// happens one level up.
func (j *JWT) Parse(tokenString string) (uuid.UUID, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	}, jwt.WithValidMethods([]string{j.method.Alg()}))
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return uuid.Nil, fmt.Errorf("token is invalid")
	}
	if claims.PublicID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("token subject is empty")
	}
	return claims.PublicID, nil
}
