package auth

import (
	"fmt"
	"time"

	"shopapi/internal/errors"
	"shopapi/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Credentials hashes/verifies passwords and issues/verifies bearer tokens.
// The hashing and signing algorithms are implementation details of this type.
type Credentials struct {
	jwtKey   []byte
	tokenTTL time.Duration
}

func New(jwtKey []byte, tokenTTL time.Duration) *Credentials {
	return &Credentials{jwtKey: jwtKey, tokenTTL: tokenTTL}
}

// HashPassword produces a salted one-way hash. The salt is randomized per
// call, so the same plaintext yields a different hash every time.
func (c *Credentials) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hash), nil
}

// VerifyPassword returns false on any mismatch, including a malformed hash.
func (c *Credentials) VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// IssueToken signs a time-bounded token binding the subject identity.
// Returns the token and its validity in seconds.
func (c *Credentials) IssueToken(userID uuid.UUID, email string) (string, int, error) {
	now := time.Now()
	claims := &models.Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(c.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(c.jwtKey)
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, int(c.tokenTTL.Seconds()), nil
}

// VerifyToken fails if the signature is invalid, the token is structurally
// malformed, or it has expired.
func (c *Credentials) VerifyToken(tokenString string) (*models.Claims, error) {
	claims := &models.Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return c.jwtKey, nil
	})
	if err != nil {
		return nil, errors.UnauthorizedError("Invalid or expired token").WithError(err)
	}

	if !token.Valid {
		return nil, errors.UnauthorizedError("Invalid token")
	}

	return claims, nil
}
