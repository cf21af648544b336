package handlers

import (
	"errors"
	"net/http"

	"github.com/flyosprey/Store-REST-API/internal/service"
	"github.com/gin-gonic/gin"
)

// StoreHandler serves store endpoints.
type StoreHandler struct {
	storeService service.StoreService
}

// NewStoreHandler creates a new StoreHandler instance.
func NewStoreHandler(storeService service.StoreService) *StoreHandler {
	return &StoreHandler{storeService: storeService}
}

// StoreRequest represents the store creation payload.
type StoreRequest struct {
	Name string `json:"name" binding:"required,max=60"`
}

// List godoc
// @Summary List stores
// @Tags stores
// @Produce json
// @Security BearerAuth
// @Success 200 {array} StoreResponse
// @Router /store [get]
func (h *StoreHandler) List(c *gin.Context) {
	stores, err := h.storeService.List(c.Request.Context())
	if err != nil {
		logAndRespondError(c, http.StatusInternalServerError, err, "An error occurred while listing stores.")
		return
	}
	c.JSON(http.StatusOK, toStoreResponses(stores))
}

// Get godoc
// @Summary Get a store
// @Tags stores
// @Produce json
// @Security BearerAuth
// @Param id path int true "Store ID"
// @Success 200 {object} StoreResponse
// @Failure 404 {object} map[string]string
// @Router /store/{id} [get]
func (h *StoreHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	store, err := h.storeService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			respondError(c, http.StatusNotFound, "Store not found.")
			return
		}
		logAndRespondError(c, http.StatusInternalServerError, err, "An error occurred while loading the store.")
		return
	}

	c.JSON(http.StatusOK, toStoreResponse(store))
}

// Create godoc
// @Summary Create a store
// @Tags stores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body StoreRequest true "Store"
// @Success 201 {object} StoreResponse
// @Failure 400 {object} map[string]string
// @Router /store [post]
func (h *StoreHandler) Create(c *gin.Context) {
	var req StoreRequest
	if !bindJSON(c, &req) {
		return
	}

	store, err := h.storeService.Create(c.Request.Context(), req.Name)
	if err != nil {
		if errors.Is(err, service.ErrStoreExists) {
			respondError(c, http.StatusBadRequest, "A store with that name already exists.")
			return
		}
		logAndRespondError(c, http.StatusInternalServerError, err, "An error occurred while inserting the store.")
		return
	}

	c.JSON(http.StatusCreated, toStoreResponse(store))
}

// Delete godoc
// @Summary Delete a store
// @Description Delete a store with its items and tags
// @Tags stores
// @Produce json
// @Security BearerAuth
// @Param id path int true "Store ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /store/{id} [delete]
func (h *StoreHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.storeService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			respondError(c, http.StatusNotFound, "Store not found.")
			return
		}
		logAndRespondError(c, http.StatusInternalServerError, err, "An error occurred while deleting the store.")
		return
	}

	respondMessage(c, http.StatusOK, "Store deleted")
}
