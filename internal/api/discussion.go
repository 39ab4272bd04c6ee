package api

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"discussion-service/internal/service"
	"discussion-service/internal/storage"
)

type DiscussionHandler struct {
	discussionService service.DiscussionService
	imageStore        *storage.ImageStore
}

func NewDiscussionHandler(discussionService service.DiscussionService, imageStore *storage.ImageStore) *DiscussionHandler {
	return &DiscussionHandler{
		discussionService: discussionService,
		imageStore:        imageStore,
	}
}

// CreateDiscussion posts a discussion --> POST /discussions
// Multipart form: user_id, text, hashtags (comma-separated), image (file, optional).
func (h *DiscussionHandler) CreateDiscussion(c echo.Context) error {
	userID, err := strconv.Atoi(c.FormValue("user_id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid user_id"})
	}

	image := ""
	if file, err := c.FormFile("image"); err == nil {
		image, err = h.imageStore.Save(file)
		if err != nil {
			return c.JSON(500, map[string]string{"error": "internal server error"})
		}
	}

	_, err = h.discussionService.CreateDiscussion(c.Request().Context(), userID, c.FormValue("text"), c.FormValue("hashtags"), image)
	if err != nil {
		return serviceError(c, err)
	}

	return c.String(201, "Discussion posted")
}

// UpdateDiscussion rewrites text and hashtags --> PUT /discussions/:id
func (h *DiscussionHandler) UpdateDiscussion(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	update := struct {
		Text     string `json:"text"`
		Hashtags string `json:"hashtags"`
	}{}

	if err := c.Bind(&update); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	_, err = h.discussionService.UpdateDiscussion(c.Request().Context(), id, update.Text, update.Hashtags)
	if err != nil {
		return serviceError(c, err)
	}

	return c.String(200, "Discussion updated")
}

// DeleteDiscussion removes a discussion and its hashtag links --> DELETE /discussions/:id
func (h *DiscussionHandler) DeleteDiscussion(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	deletedDiscussion, err := h.discussionService.DeleteDiscussion(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(200, deletedDiscussion)
}

// GetDiscussions lists all discussions --> GET /discussions
func (h *DiscussionHandler) GetDiscussions(c echo.Context) error {
	discussions, err := h.discussionService.GetDiscussions(c.Request().Context())
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(200, discussions)
}
