package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ratespot/ratespot/internal/domain"
)

// TokenTTL is the fixed lifetime of an issued session token.
const TokenTTL = 5 * time.Hour

// ErrInvalidToken covers every verification failure: bad signature, bad
// algorithm, malformed payload, or expiry.
var ErrInvalidToken = errors.New("auth: invalid token")

// Identity is the decoded content of a session token.
type Identity struct {
	UserID string
	Name   string
	Role   domain.Role
}

type sessionClaims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 session tokens.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

// NewTokenService builds a TokenService around a shared HMAC secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret), now: time.Now}
}

// Issue signs a token embedding the user's id, name, and role.
func (t *TokenService) Issue(user domain.User) (string, error) {
	now := t.now()
	claims := sessionClaims{
		Name: user.Name,
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Verify parses and validates a token, returning the embedded identity.
func (t *TokenService) Verify(tokenString string) (Identity, error) {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return t.now() }))
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}
	if claims.Subject == "" {
		return Identity{}, ErrInvalidToken
	}

	return Identity{UserID: claims.Subject, Name: claims.Name, Role: role}, nil
}
