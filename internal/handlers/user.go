package handlers

import (
	"errors"
	"net/http"

	"github.com/flyosprey/Store-REST-API/internal/service"
	"github.com/gin-gonic/gin"
)

// UserHandler serves user lookups and deletion.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler instance.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Get godoc
// @Summary Get a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} UserResponse
// @Failure 404 {object} map[string]string
// @Router /user/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, "User not found.")
			return
		}
		logAndRespondError(c, http.StatusInternalServerError, err, "An error occurred while loading the user.")
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

// Delete godoc
// @Summary Delete a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /user/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, "User not found.")
			return
		}
		logAndRespondError(c, http.StatusInternalServerError, err, "An error occurred while deleting the user.")
		return
	}

	respondMessage(c, http.StatusOK, "User deleted.")
}
