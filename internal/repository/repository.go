package repository

import (
	"context"

	"github.com/yukikurage/items-api/internal/models"
)

// ItemSortField is a column items can be ordered by
type ItemSortField string

const (
	SortByCreatedAt ItemSortField = "createdAt"
	SortByUpdatedAt ItemSortField = "updatedAt"
	SortByTitle     ItemSortField = "title"
	SortByPriority  ItemSortField = "priority"
)

// ItemFilter holds filtering, sorting and pagination options for listing items.
// OwnerID is mandatory; every query is scoped to it.
type ItemFilter struct {
	OwnerID    uint64
	Query      string
	Status     *models.ItemStatus
	Priority   *models.ItemPriority
	SortBy     ItemSortField
	Descending bool
	Offset     int
	Limit      int
}

// ItemRepository defines the interface for item data access.
// Lookups and mutations of a single item are keyed on both the item id and the owner id;
// a row owned by someone else behaves exactly like a missing row (gorm.ErrRecordNotFound).
type ItemRepository interface {
	// Create inserts a new item and fills in its id and timestamps
	Create(ctx context.Context, item *models.Item) error

	// FindByID finds an item owned by ownerID
	FindByID(ctx context.Context, ownerID, id uint64) (*models.Item, error)

	// List retrieves one page of items plus the filtered total
	List(ctx context.Context, filter ItemFilter) ([]models.Item, int64, error)

	// Update applies changes with a single conditional statement and returns the fresh row
	Update(ctx context.Context, ownerID, id uint64, changes map[string]any) (*models.Item, error)

	// Delete removes an item with a single conditional statement
	Delete(ctx context.Context, ownerID, id uint64) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByEmail finds a user by exact (case-sensitive) email
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}
