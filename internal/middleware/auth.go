package middleware

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"discussion-service/internal/service"
)

// JWT verifies bearer tokens on protected routes. A missing token is
// unauthorized; a malformed or expired one is forbidden.
func JWT(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(secret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(service.JwtCustomClaims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if errors.Is(err, echojwt.ErrJWTMissing) {
				return c.JSON(401, map[string]string{"error": "Unauthorized"})
			}
			return c.JSON(403, map[string]string{"error": "Invalid token"})
		},
	})
}
