package service

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"discussion-service/internal/entity"
	"discussion-service/internal/repository"
)

const tokenExpiry = time.Hour

type JwtCustomClaims struct {
	UserID int `json:"user_id"`
	jwt.RegisteredClaims
}

// AuthService handles signup and login, issuing short-lived JWTs.
type AuthService struct {
	userRepo  repository.UserRepository
	rdb       *redis.Client
	jwtSecret []byte
}

func NewAuthService(userRepo repository.UserRepository, rdb *redis.Client, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		rdb:       rdb,
		jwtSecret: []byte(jwtSecret),
	}
}

// Signup registers a new account. Duplicate emails surface as ErrConflict
// from the unique constraint, never as a second row.
func (s *AuthService) Signup(ctx context.Context, username, email, password string) (string, int, error) {
	if username == "" || email == "" || password == "" {
		return "", 0, ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error().Err(err).Msg("Error hashing password")
		return "", 0, ErrStorage
	}

	user := &entity.User{
		Name:     username,
		Username: username,
		Email:    email,
		Password: string(hash),
	}

	createdUser, err := s.userRepo.CreateAccount(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return "", 0, ErrConflict
		}
		logger.Error().Err(err).Msg("Error creating account")
		return "", 0, ErrStorage
	}

	token, err := s.issueToken(ctx, createdUser)
	if err != nil {
		return "", 0, err
	}

	return token, createdUser.ID, nil
}

// Login verifies the credentials and issues a token. An unknown email is
// ErrNotFound; a wrong password is ErrAuthentication.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, int, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", 0, ErrNotFound
		}
		logger.Error().Err(err).Msg("Error finding user by email")
		return "", 0, ErrStorage
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", 0, ErrAuthentication
	}

	token, err := s.issueToken(ctx, user)
	if err != nil {
		return "", 0, err
	}

	return token, user.ID, nil
}

func (s *AuthService) issueToken(ctx context.Context, user *entity.User) (string, error) {
	claims := &JwtCustomClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenExpiry)),
		},
	}

	tkn := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err := tkn.SignedString(s.jwtSecret)
	if err != nil {
		logger.Error().Err(err).Msg("Error signing token")
		return "", ErrStorage
	}

	// if env is set to test, skip the session cache
	if os.Getenv("ENV") == "test" {
		return token, nil
	}

	// Keep the issued token in redis keyed by email for the token lifetime
	if err := s.rdb.Set(ctx, "session:"+user.Email, token, tokenExpiry).Err(); err != nil {
		logger.Error().Err(err).Msg("Error caching session token")
		return "", ErrStorage
	}

	return token, nil
}
