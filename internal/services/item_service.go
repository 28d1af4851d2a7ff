package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/items-api/internal/constants"
	"github.com/yukikurage/items-api/internal/models"
	"github.com/yukikurage/items-api/internal/repository"
	"github.com/yukikurage/items-api/internal/utils"
	"gorm.io/gorm"
)

const (
	SortDirAsc  = "asc"
	SortDirDesc = "desc"
)

// ItemService handles item business logic. Every operation is scoped to the calling user.
type ItemService struct {
	itemRepo repository.ItemRepository
	now      func() time.Time
}

// NewItemService creates a new ItemService
func NewItemService(itemRepo repository.ItemRepository) *ItemService {
	return &ItemService{
		itemRepo: itemRepo,
		now:      time.Now,
	}
}

// ListItemsInput represents filters for listing items. Zero Page/PageSize and empty
// SortBy/SortDir select the defaults.
type ListItemsInput struct {
	Page     int
	PageSize int
	Query    string
	Status   *models.ItemStatus
	Priority *models.ItemPriority
	SortBy   string
	SortDir  string
}

// ListItemsResult is one page of items plus its pagination metadata
type ListItemsResult struct {
	Items      []models.Item
	Pagination utils.PaginationResponse
}

// CreateItemInput represents input for creating an item
type CreateItemInput struct {
	Title       string
	Description *string
	Status      *models.ItemStatus
	Priority    *models.ItemPriority
}

// UpdateItemInput represents input for updating an item. Nil fields are left unchanged.
type UpdateItemInput struct {
	Title       *string
	Description *string
	Status      *models.ItemStatus
	Priority    *models.ItemPriority
}

// ListItems returns one page of the user's items
func (s *ItemService) ListItems(ctx context.Context, userID uint64, input ListItemsInput) (*ListItemsResult, error) {
	if input.Page < 0 {
		return nil, validationError("page must be at least 1")
	}
	if input.PageSize < 0 {
		return nil, validationError("pageSize must be at least %d", constants.MinPageSize)
	}
	if input.Status != nil && !input.Status.Valid() {
		return nil, validationError("unknown status %q", *input.Status)
	}
	if input.Priority != nil && !input.Priority.Valid() {
		return nil, validationError("unknown priority %q", *input.Priority)
	}

	sortBy := repository.SortByCreatedAt
	switch field := repository.ItemSortField(input.SortBy); field {
	case "":
	case repository.SortByCreatedAt, repository.SortByUpdatedAt, repository.SortByTitle, repository.SortByPriority:
		sortBy = field
	default:
		return nil, validationError("unknown sortBy %q", input.SortBy)
	}

	descending := true
	switch input.SortDir {
	case "", SortDirDesc:
	case SortDirAsc:
		descending = false
	default:
		return nil, validationError("sortDir must be %q or %q", SortDirAsc, SortDirDesc)
	}

	params := utils.NewPaginationParams(input.Page, input.PageSize)

	items, total, err := s.itemRepo.List(ctx, repository.ItemFilter{
		OwnerID:    userID,
		Query:      input.Query,
		Status:     input.Status,
		Priority:   input.Priority,
		SortBy:     sortBy,
		Descending: descending,
		Offset:     params.Offset,
		Limit:      params.PageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	return &ListItemsResult{
		Items:      items,
		Pagination: utils.NewPaginationResponse(params, total),
	}, nil
}

// GetItem returns one of the user's items
func (s *ItemService) GetItem(ctx context.Context, userID, itemID uint64) (*models.Item, error) {
	item, err := s.itemRepo.FindByID(ctx, userID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to find item: %w", err)
	}

	return item, nil
}

// CreateItem creates an item owned by userID
func (s *ItemService) CreateItem(ctx context.Context, userID uint64, input CreateItemInput) (*models.Item, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, validationError("title is required")
	}

	item := &models.Item{
		UserID:      userID,
		Title:       title,
		Description: input.Description,
		Status:      models.ItemStatusTodo,
		Priority:    models.ItemPriorityMedium,
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, validationError("unknown status %q", *input.Status)
		}
		item.Status = *input.Status
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, validationError("unknown priority %q", *input.Priority)
		}
		item.Priority = *input.Priority
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	return item, nil
}

// UpdateItem applies the provided fields to one of the user's items.
// updated_at is refreshed even when no field is provided.
func (s *ItemService) UpdateItem(ctx context.Context, userID, itemID uint64, input UpdateItemInput) (*models.Item, error) {
	changes := map[string]any{}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, validationError("title cannot be empty")
		}
		changes["title"] = title
	}
	if input.Description != nil {
		changes["description"] = *input.Description
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, validationError("unknown status %q", *input.Status)
		}
		changes["status"] = *input.Status
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, validationError("unknown priority %q", *input.Priority)
		}
		changes["priority"] = *input.Priority
	}
	changes["updated_at"] = s.now()

	item, err := s.itemRepo.Update(ctx, userID, itemID, changes)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	return item, nil
}

// DeleteItem permanently removes one of the user's items
func (s *ItemService) DeleteItem(ctx context.Context, userID, itemID uint64) error {
	if err := s.itemRepo.Delete(ctx, userID, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		return fmt.Errorf("failed to delete item: %w", err)
	}

	return nil
}
