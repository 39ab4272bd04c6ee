package api

import (
	"errors"

	"github.com/labstack/echo/v4"

	"discussion-service/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup registers a new account --> POST /auth/signup
func (h *AuthHandler) Signup(c echo.Context) error {
	ctx := c.Request().Context()

	signup := struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}{}

	if err := c.Bind(&signup); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	token, userID, err := h.authService.Signup(ctx, signup.Username, signup.Email, signup.Password)
	if err != nil {
		// A taken email is a client error on this endpoint
		if errors.Is(err, service.ErrConflict) {
			return c.JSON(400, map[string]string{"error": "Email already exists"})
		}
		return serviceError(c, err)
	}

	return c.JSON(201, map[string]interface{}{"token": token, "userId": userID})
}

// Login authenticates a user --> POST /auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	login := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{}

	if err := c.Bind(&login); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	token, userID, err := h.authService.Login(ctx, login.Email, login.Password)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(200, map[string]interface{}{"token": token, "userId": userID})
}
