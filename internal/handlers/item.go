package handlers

import (
	"errors"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/items-api/internal/dto"
	apierrors "github.com/yukikurage/items-api/internal/errors"
	"github.com/yukikurage/items-api/internal/middleware"
	"github.com/yukikurage/items-api/internal/models"
	"github.com/yukikurage/items-api/internal/services"
)

type ItemHandler struct {
	itemService *services.ItemService
	log         *slog.Logger
}

func NewItemHandler(itemService *services.ItemService, log *slog.Logger) *ItemHandler {
	return &ItemHandler{
		itemService: itemService,
		log:         log,
	}
}

type listItemsQuery struct {
	Page     *int   `form:"page" binding:"omitempty,min=1"`
	PageSize *int   `form:"pageSize" binding:"omitempty,min=1"`
	Q        string `form:"q"`
	Status   string `form:"status"`
	Priority string `form:"priority"`
	SortBy   string `form:"sortBy"`
	SortDir  string `form:"sortDir"`
}

type createItemRequest struct {
	Title       string               `json:"title"`
	Description *string              `json:"description"`
	Status      *models.ItemStatus   `json:"status"`
	Priority    *models.ItemPriority `json:"priority"`
}

type updateItemRequest struct {
	Title       *string              `json:"title"`
	Description *string              `json:"description"`
	Status      *models.ItemStatus   `json:"status"`
	Priority    *models.ItemPriority `json:"priority"`
}

// ListItems returns one page of the current user's items
func (h *ItemHandler) ListItems(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var query listItemsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		apierrors.BadRequest(c, "Invalid query parameters")
		return
	}

	input := services.ListItemsInput{
		Query:   query.Q,
		SortBy:  query.SortBy,
		SortDir: query.SortDir,
	}
	if query.Page != nil {
		input.Page = *query.Page
	}
	if query.PageSize != nil {
		input.PageSize = *query.PageSize
	}
	if query.Status != "" {
		status := models.ItemStatus(query.Status)
		input.Status = &status
	}
	if query.Priority != "" {
		priority := models.ItemPriority(query.Priority)
		input.Priority = &priority
	}

	result, err := h.itemService.ListItems(c.Request.Context(), userID, input)
	if err != nil {
		h.respondItemError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToItemListResponse(result.Items, result.Pagination))
}

// GetItem returns a specific item by ID
func (h *ItemHandler) GetItem(c *gin.Context) {
	userID, itemID, ok := h.resolveItem(c)
	if !ok {
		return
	}

	item, err := h.itemService.GetItem(c.Request.Context(), userID, itemID)
	if err != nil {
		h.respondItemError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ItemResponse{Item: dto.ToItemDTO(*item)})
}

// CreateItem creates a new item
func (h *ItemHandler) CreateItem(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.itemService.CreateItem(c.Request.Context(), userID, services.CreateItemInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
	})
	if err != nil {
		h.respondItemError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ItemResponse{Item: dto.ToItemDTO(*item)})
}

// UpdateItem applies a partial update
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	userID, itemID, ok := h.resolveItem(c)
	if !ok {
		return
	}

	// An empty body is an empty update.
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.itemService.UpdateItem(c.Request.Context(), userID, itemID, services.UpdateItemInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
	})
	if err != nil {
		h.respondItemError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ItemResponse{Item: dto.ToItemDTO(*item)})
}

// DeleteItem permanently deletes an item
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	userID, itemID, ok := h.resolveItem(c)
	if !ok {
		return
	}

	if err := h.itemService.DeleteItem(c.Request.Context(), userID, itemID); err != nil {
		h.respondItemError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Item deleted successfully"})
}

// resolveItem reads the caller and the :id path parameter, responding on failure
func (h *ItemHandler) resolveItem(c *gin.Context) (uint64, uint64, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return 0, 0, false
	}

	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid item ID")
		return 0, 0, false
	}
	// Row ids are signed 64-bit in every supported store.
	if itemID > math.MaxInt64 {
		apierrors.NotFound(c, "Item not found")
		return 0, 0, false
	}

	return userID, itemID, true
}

func (h *ItemHandler) respondItemError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrItemNotFound):
		apierrors.NotFound(c, "Item not found")
	default:
		h.log.Error("item request failed", "requestId", middleware.GetRequestID(c), "error", err)
		apierrors.InternalError(c, "")
	}
}
