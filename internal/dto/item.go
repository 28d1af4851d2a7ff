package dto

import (
	"time"

	"github.com/yukikurage/items-api/internal/models"
	"github.com/yukikurage/items-api/internal/utils"
)

// ItemDTO represents an item in API responses
type ItemDTO struct {
	ID          uint64              `json:"id"`
	UserID      uint64              `json:"userId"`
	Title       string              `json:"title"`
	Description *string             `json:"description"`
	Status      models.ItemStatus   `json:"status"`
	Priority    models.ItemPriority `json:"priority"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// ItemResponse wraps a single item
type ItemResponse struct {
	Item ItemDTO `json:"item"`
}

// ItemListResponse represents a paginated list of items
type ItemListResponse struct {
	Items      []ItemDTO                `json:"items"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToItemDTO converts an Item model to ItemDTO
func ToItemDTO(item models.Item) ItemDTO {
	return ItemDTO{
		ID:          item.ID,
		UserID:      item.UserID,
		Title:       item.Title,
		Description: item.Description,
		Status:      item.Status,
		Priority:    item.Priority,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

// ToItemListResponse converts a page of items and its metadata
func ToItemListResponse(items []models.Item, pagination utils.PaginationResponse) ItemListResponse {
	dtos := make([]ItemDTO, len(items))
	for i, item := range items {
		dtos[i] = ToItemDTO(item)
	}

	return ItemListResponse{
		Items:      dtos,
		Pagination: pagination,
	}
}
