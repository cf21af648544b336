package handlers

import (
	"errors"
	"net/http"

	"github.com/flyosprey/Store-REST-API/internal/service"
	"github.com/gin-gonic/gin"
)

// TagHandler serves tag endpoints and tag to item links.
type TagHandler struct {
	tagService service.TagService
}

// NewTagHandler creates a new TagHandler instance.
func NewTagHandler(tagService service.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// TagRequest represents the tag creation payload.
type TagRequest struct {
	Name string `json:"name" binding:"required,max=80"`
}

// ListByStore godoc
// @Summary List tags of a store
// @Tags tags
// @Produce json
// @Security BearerAuth
// @Param id path int true "Store ID"
// @Success 200 {array} TagResponse
// @Failure 404 {object} map[string]string
// @Router /store/{id}/tag [get]
func (h *TagHandler) ListByStore(c *gin.Context) {
	storeID, ok := pathID(c, "id")
	if !ok {
		return
	}

	tags, err := h.tagService.ListByStore(c.Request.Context(), storeID)
	if err != nil {
		respondTagError(c, err, "An error occurred while listing tags.")
		return
	}

	c.JSON(http.StatusOK, toTagResponses(tags))
}

// Create godoc
// @Summary Create a tag in a store
// @Tags tags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Store ID"
// @Param request body TagRequest true "Tag"
// @Success 201 {object} TagResponse
// @Failure 404 {object} map[string]string
// @Router /store/{id}/tag [post]
func (h *TagHandler) Create(c *gin.Context) {
	storeID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req TagRequest
	if !bindJSON(c, &req) {
		return
	}

	tag, err := h.tagService.Create(c.Request.Context(), storeID, req.Name)
	if err != nil {
		respondTagError(c, err, "An error occurred while inserting the tag.")
		return
	}

	c.JSON(http.StatusCreated, toTagResponse(tag))
}

// Get godoc
// @Summary Get a tag
// @Tags tags
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tag ID"
// @Success 200 {object} TagResponse
// @Failure 404 {object} map[string]string
// @Router /tag/{id} [get]
func (h *TagHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	tag, err := h.tagService.Get(c.Request.Context(), id)
	if err != nil {
		respondTagError(c, err, "An error occurred while loading the tag.")
		return
	}

	c.JSON(http.StatusOK, toTagResponse(tag))
}

// Delete godoc
// @Summary Delete an unused tag
// @Tags tags
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tag ID"
// @Success 202 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tag/{id} [delete]
func (h *TagHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.tagService.Delete(c.Request.Context(), id); err != nil {
		respondTagError(c, err, "An error occurred while deleting the tag.")
		return
	}

	respondMessage(c, http.StatusAccepted, "Tag deleted.")
}

// Link godoc
// @Summary Link a tag to an item
// @Tags tags
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Param tag_id path int true "Tag ID"
// @Success 201 {object} TagResponse
// @Failure 404 {object} map[string]string
// @Router /item/{id}/tag/{tag_id} [post]
func (h *TagHandler) Link(c *gin.Context) {
	itemID, tagID, ok := linkIDs(c)
	if !ok {
		return
	}

	link, err := h.tagService.LinkToItem(c.Request.Context(), itemID, tagID)
	if err != nil {
		respondTagError(c, err, "An error occurred while inserting the tag.")
		return
	}

	c.JSON(http.StatusCreated, toTagResponse(link.Tag))
}

// Unlink godoc
// @Summary Remove a tag from an item
// @Tags tags
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Param tag_id path int true "Tag ID"
// @Success 200 {object} TagLinkResponse
// @Failure 404 {object} map[string]string
// @Router /item/{id}/tag/{tag_id} [delete]
func (h *TagHandler) Unlink(c *gin.Context) {
	itemID, tagID, ok := linkIDs(c)
	if !ok {
		return
	}

	link, err := h.tagService.UnlinkFromItem(c.Request.Context(), itemID, tagID)
	if err != nil {
		respondTagError(c, err, "An error occurred while removing the tag.")
		return
	}

	c.JSON(http.StatusOK, TagLinkResponse{
		Message: "Item removed from the tag",
		Item:    toItemResponse(link.Item),
		Tag:     toTagResponse(link.Tag),
	})
}

func linkIDs(c *gin.Context) (int64, int64, bool) {
	itemID, ok := pathID(c, "id")
	if !ok {
		return 0, 0, false
	}
	tagID, ok := pathID(c, "tag_id")
	if !ok {
		return 0, 0, false
	}
	return itemID, tagID, true
}

func respondTagError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrTagNotFound):
		respondError(c, http.StatusNotFound, "Tag not found.")
	case errors.Is(err, service.ErrItemNotFound):
		respondError(c, http.StatusNotFound, "Item not found.")
	case errors.Is(err, service.ErrStoreNotFound):
		respondError(c, http.StatusNotFound, "Store not found.")
	case errors.Is(err, service.ErrTagInUse):
		respondError(c, http.StatusBadRequest, "Could not delete tag. Make sure tag is not associated with any items, then try again.")
	default:
		logAndRespondError(c, http.StatusInternalServerError, err, fallback)
	}
}
