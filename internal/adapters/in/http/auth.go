package http

import (
	"errors"
	"strings"
	"time"

	"orderflow/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const identityKey = "identity"

var ErrSecretIsRequired = errors.New("jwt secret is required")

// Claims carries the caller identity; the subject is the user id.
type Claims struct {
	jwt.RegisteredClaims
}

// GenerateToken signs an HS256 token for userID.
func GenerateToken(secret []byte, userID string, ttl time.Duration, now time.Time) (string, error) {
	if len(secret) == 0 {
		return "", ErrSecretIsRequired
	}
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// IdentityMiddleware resolves the bearer token into a kernel.Identity. A missing,
// expired or forged token leaves the caller anonymous; handlers decide whether that
// is acceptable.
func IdentityMiddleware(secret []byte) echo.MiddlewareFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(identityKey, resolveIdentity(parser, secret, c.Request().Header.Get(echo.HeaderAuthorization)))
			return next(c)
		}
	}
}

func resolveIdentity(parser *jwt.Parser, secret []byte, header string) kernel.Identity {
	tokenStr, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || len(secret) == 0 {
		return kernel.Anonymous()
	}

	claims := &Claims{}
	token, err := parser.ParseWithClaims(strings.TrimSpace(tokenStr), claims, func(*jwt.Token) (any, error) {
		return secret, nil
	})
	if err != nil || !token.Valid {
		return kernel.Anonymous()
	}
	return kernel.NewIdentity(claims.Subject)
}

// IdentityFrom returns the identity the middleware stored on c.
func IdentityFrom(c echo.Context) kernel.Identity {
	if identity, ok := c.Get(identityKey).(kernel.Identity); ok {
		return identity
	}
	return kernel.Anonymous()
}
