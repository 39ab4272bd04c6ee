package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"discussion-service/internal/service"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, expiresAt time.Time) string {
	t.Helper()
	claims := &service.JwtCustomClaims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func protectedRequest(token string) *httptest.ResponseRecorder {
	e := echo.New()
	e.POST("/discussions", func(c echo.Context) error {
		return c.String(201, "Discussion posted")
	}, JWT(testSecret))

	req := httptest.NewRequest(http.MethodPost, "/discussions", nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJWTMissingToken(t *testing.T) {
	rec := protectedRequest("")

	assert.Equal(t, 401, rec.Code)
	assert.Contains(t, rec.Body.String(), "Unauthorized")
}

func TestJWTMalformedToken(t *testing.T) {
	rec := protectedRequest("not-a-token")

	assert.Equal(t, 403, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid token")
}

func TestJWTExpiredToken(t *testing.T) {
	token := signToken(t, testSecret, time.Now().Add(-time.Hour))
	rec := protectedRequest(token)

	assert.Equal(t, 403, rec.Code)
}

func TestJWTWrongSecret(t *testing.T) {
	token := signToken(t, "other-secret", time.Now().Add(time.Hour))
	rec := protectedRequest(token)

	assert.Equal(t, 403, rec.Code)
}

func TestJWTValidToken(t *testing.T) {
	token := signToken(t, testSecret, time.Now().Add(time.Hour))
	rec := protectedRequest(token)

	assert.Equal(t, 201, rec.Code)
	assert.Equal(t, "Discussion posted", rec.Body.String())
}
