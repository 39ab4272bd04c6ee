package service

import (
	"context"
	"os"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"discussion-service/internal/repository"
)

const testSecret = "test-secret"

func TestMain(m *testing.M) {
	os.Setenv("ENV", "test")
	os.Exit(m.Run())
}

func newAuthService(t *testing.T) (*AuthService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewAuthService(*repository.NewUserRepository(db), nil, testSecret), mock
}

func TestAuthServiceSignup(t *testing.T) {
	svc, mock := newAuthService(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users (name, username, email, password) VALUES (?, ?, ?, ?)`)).
		WithArgs("john", "john", "john@example.com", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	token, userID, err := svc.Signup(context.Background(), "john", "john@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, 1, userID)

	// The issued token carries the user id and a one hour expiry
	claims := &JwtCustomClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(tkn *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, 1, claims.UserID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthServiceSignupDuplicateEmail(t *testing.T) {
	svc, mock := newAuthService(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users (name, username, email, password) VALUES (?, ?, ?, ?)`)).
		WithArgs("john", "john", "john@example.com", sqlmock.AnyArg()).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	_, _, err := svc.Signup(context.Background(), "john", "john@example.com", "secret123")
	assert.ErrorIs(t, err, ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthServiceSignupMissingFields(t *testing.T) {
	svc, _ := newAuthService(t)

	_, _, err := svc.Signup(context.Background(), "john", "", "secret123")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAuthServiceLogin(t *testing.T) {
	svc, mock := newAuthService(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE email = \?`).
		WithArgs("john@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "username", "mobile_no", "email", "password"}).
			AddRow(1, "john", "john", "", "john@example.com", string(hash)))

	token, userID, err := svc.Login(context.Background(), "john@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, 1, userID)
	assert.NotEmpty(t, token)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	svc, mock := newAuthService(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE email = \?`).
		WithArgs("john@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "username", "mobile_no", "email", "password"}).
			AddRow(1, "john", "john", "", "john@example.com", string(hash)))

	token, _, err := svc.Login(context.Background(), "john@example.com", "wrongpass")
	assert.ErrorIs(t, err, ErrAuthentication)
	assert.Empty(t, token)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthServiceLoginUnknownEmail(t *testing.T) {
	svc, mock := newAuthService(t)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE email = \?`).
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "username", "mobile_no", "email", "password"}))

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
