package handlers

import (
	"errors"
	"net/http"

	"github.com/flyosprey/Store-REST-API/internal/service"
	"github.com/gin-gonic/gin"
)

// ItemHandler serves item endpoints.
type ItemHandler struct {
	itemService service.ItemService
}

// NewItemHandler creates a new ItemHandler instance.
func NewItemHandler(itemService service.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// CreateItemRequest represents the item creation payload.
type CreateItemRequest struct {
	Name    string   `json:"name" binding:"required,max=80"`
	Price   *float64 `json:"price" binding:"required"`
	StoreID *int64   `json:"store_id" binding:"required"`
}

// UpdateItemRequest represents the item update payload. StoreID is only
// needed when the item does not exist yet.
type UpdateItemRequest struct {
	Name    string   `json:"name" binding:"required,max=80"`
	Price   *float64 `json:"price" binding:"required"`
	StoreID *int64   `json:"store_id"`
}

// List godoc
// @Summary List items
// @Tags items
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ItemResponse
// @Router /item [get]
func (h *ItemHandler) List(c *gin.Context) {
	items, err := h.itemService.List(c.Request.Context())
	if err != nil {
		logAndRespondError(c, http.StatusInternalServerError, err, "An error occurred while listing items.")
		return
	}
	c.JSON(http.StatusOK, toItemResponses(items))
}

// Get godoc
// @Summary Get an item
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Success 200 {object} ItemResponse
// @Failure 404 {object} map[string]string
// @Router /item/{id} [get]
func (h *ItemHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	item, err := h.itemService.Get(c.Request.Context(), id)
	if err != nil {
		h.respondItemError(c, err, "An error occurred while loading the item.")
		return
	}

	c.JSON(http.StatusOK, toItemResponse(item))
}

// Create godoc
// @Summary Create an item
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateItemRequest true "Item"
// @Success 201 {object} ItemResponse
// @Failure 400 {object} map[string]string
// @Router /item [post]
func (h *ItemHandler) Create(c *gin.Context) {
	var req CreateItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.itemService.Create(c.Request.Context(), service.ItemInput{
		Name:    req.Name,
		Price:   *req.Price,
		StoreID: req.StoreID,
	})
	if err != nil {
		h.respondItemError(c, err, "An error occurred while inserting the item.")
		return
	}

	c.JSON(http.StatusCreated, toItemResponse(item))
}

// Update godoc
// @Summary Update or create an item
// @Description Update name and price, or create the item under this id. Requires a fresh token.
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Param request body UpdateItemRequest true "Item"
// @Success 200 {object} ItemResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /item/{id} [put]
func (h *ItemHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.itemService.Upsert(c.Request.Context(), id, service.ItemInput{
		Name:    req.Name,
		Price:   *req.Price,
		StoreID: req.StoreID,
	})
	if err != nil {
		h.respondItemError(c, err, "An error occurred while saving the item.")
		return
	}

	c.JSON(http.StatusOK, toItemResponse(item))
}

// Delete godoc
// @Summary Delete an item
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /item/{id} [delete]
func (h *ItemHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.itemService.Delete(c.Request.Context(), id); err != nil {
		h.respondItemError(c, err, "An error occurred while deleting the item.")
		return
	}

	respondMessage(c, http.StatusOK, "Item deleted")
}

func (h *ItemHandler) respondItemError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrItemNotFound):
		respondError(c, http.StatusNotFound, "Item not found.")
	case errors.Is(err, service.ErrInvalidStoreReference):
		respondError(c, http.StatusBadRequest, "Store not found.")
	default:
		logAndRespondError(c, http.StatusInternalServerError, err, fallback)
	}
}
