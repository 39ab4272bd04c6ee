package api

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"discussion-service/internal/entity"
	"discussion-service/internal/service"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUser creates a new user --> POST /users
func (h *UserHandler) CreateUser(c echo.Context) error {
	user := entity.User{}
	if err := c.Bind(&user); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	createdUser, err := h.userService.CreateUser(c.Request().Context(), &user)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(201, createdUser)
}

// UpdateUser updates an existing user --> PUT /users/:id
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	user := entity.User{}
	if err := c.Bind(&user); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	user.ID = id

	updatedUser, err := h.userService.UpdateUser(c.Request().Context(), &user)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(200, updatedUser)
}

// DeleteUser deletes a user and returns the deleted record --> DELETE /users/:id
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	deletedUser, err := h.userService.DeleteUser(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(200, deletedUser)
}

// GetUsers lists all users --> GET /users
func (h *UserHandler) GetUsers(c echo.Context) error {
	users, err := h.userService.GetUsers(c.Request().Context())
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(200, users)
}

// SearchUsers matches name as a substring, case-insensitively --> GET /users/search?name=
func (h *UserHandler) SearchUsers(c echo.Context) error {
	users, err := h.userService.SearchUsers(c.Request().Context(), c.QueryParam("name"))
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(200, users)
}
