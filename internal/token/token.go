// Package token implements the signed identity token and its cookie delivery.
package token

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the cookie that carries the identity token.
const CookieName = "jwt"

// TTL is the fixed token lifetime. There is no refresh or rotation; a token
// is valid until it expires.
const TTL = 15 * 24 * time.Hour

// Verification failures. Possession of a valid, unexpired, correctly signed
// token is the sole authorization proof, so callers only need to distinguish
// these for logging; all of them mean "unauthorized".
var (
	ErrMalformed        = errors.New("token is malformed")
	ErrExpired          = errors.New("token is expired")
	ErrInvalidSignature = errors.New("token signature is invalid")
)

// Service issues and verifies identity tokens with a shared HMAC secret.
type Service struct {
	secret []byte
}

// NewService creates a token service signing with the given secret.
func NewService(secret string) *Service {
	return &Service{secret: []byte(secret)}
}

// Issue produces a signed token embedding the user ID and a fixed expiry.
// No other claims are included.
func (s *Service) Issue(userID uint) (string, error) {
	if len(s.secret) == 0 {
		return "", errors.New("JWT secret not configured")
	}

	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(TTL)),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(s.secret)
}

// Verify checks the signature and expiry and returns the embedded user ID.
// It has no side effects.
func (s *Service) Verify(tokenString string) (uint, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return 0, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return 0, ErrInvalidSignature
		default:
			return 0, ErrMalformed
		}
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid {
		return 0, ErrMalformed
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 32)
	if err != nil || userID == 0 {
		return 0, ErrMalformed
	}
	return uint(userID), nil
}

// Cookie builds the identity cookie for a freshly issued token. HTTP-only,
// whole-origin, SameSite Lax; the Secure flag follows the deployment
// environment.
func Cookie(value string, secure bool) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(TTL / time.Second),
		Expires:  time.Now().Add(TTL),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}

// ClearCookie builds an expired identity cookie for logout.
func ClearCookie(secure bool) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}
