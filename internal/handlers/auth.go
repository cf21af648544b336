// Package handlers contains HTTP request handlers for the stores service.
package handlers

import (
	"errors"
	"net/http"

	"github.com/flyosprey/Store-REST-API/internal/middleware"
	"github.com/flyosprey/Store-REST-API/internal/service"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles registration and token HTTP requests.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents the registration payload.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,max=80"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest represents the login request payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register godoc
// @Summary Register a user
// @Description Create an account and enqueue the welcome email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "New account"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	_, err := h.authService.Register(c.Request.Context(), service.RegisterRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			respondError(c, http.StatusConflict, "A user with that username or email already exists.")
			return
		}
		logAndRespondError(c, http.StatusInternalServerError, err, "An error occurred while creating the user.")
		return
	}

	respondMessage(c, http.StatusCreated, "User created successfully.")
}

// Login godoc
// @Summary User login
// @Description Authenticate user and return access and refresh tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} service.LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	response, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "Invalid credentials.")
			return
		}
		logAndRespondError(c, http.StatusInternalServerError, err, "An error occurred while logging in.")
		return
	}

	c.JSON(http.StatusOK, response)
}

// Refresh godoc
// @Summary Refresh access token
// @Description Issue a non-fresh access token from a refresh token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.RefreshResponse
// @Failure 401 {object} map[string]string
// @Router /refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Request does not contain an access token.")
		return
	}

	response, err := h.authService.Refresh(c.Request.Context(), claims)
	if err != nil {
		if errors.Is(err, service.ErrNotRefreshToken) {
			respondError(c, http.StatusUnauthorized, "Only refresh tokens are allowed.")
			return
		}
		logAndRespondError(c, http.StatusInternalServerError, err, "An error occurred while refreshing the token.")
		return
	}

	c.JSON(http.StatusOK, response)
}

// Logout godoc
// @Summary User logout
// @Description Revoke the presented access token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Request does not contain an access token.")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		logAndRespondError(c, http.StatusInternalServerError, err, "An error occurred while logging out.")
		return
	}

	respondMessage(c, http.StatusOK, "Successfully logged out.")
}
