package repository

import (
	"context"
	"strings"

	"github.com/yukikurage/items-api/internal/database"
	"github.com/yukikurage/items-api/internal/models"
	"github.com/yukikurage/items-api/internal/utils"
	"gorm.io/gorm"
)

// priorityRank orders priorities by meaning instead of alphabetically.
const priorityRank = "CASE priority WHEN 'low' THEN 1 WHEN 'medium' THEN 2 WHEN 'high' THEN 3 END"

var sortColumns = map[ItemSortField]string{
	SortByCreatedAt: "created_at",
	SortByUpdatedAt: "updated_at",
	SortByTitle:     "title",
	SortByPriority:  priorityRank,
}

// GormItemRepository is a GORM implementation of ItemRepository
type GormItemRepository struct {
	db *gorm.DB
}

// NewItemRepository creates a new ItemRepository
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &GormItemRepository{db: db}
}

// Create creates a new item
func (r *GormItemRepository) Create(ctx context.Context, item *models.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// FindByID finds an item by ID within the owner's items
func (r *GormItemRepository) FindByID(ctx context.Context, ownerID, id uint64) (*models.Item, error) {
	var item models.Item
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// List retrieves items with filtering, sorting and pagination
func (r *GormItemRepository) List(ctx context.Context, filter ItemFilter) ([]models.Item, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Scopes(database.OwnedBy(filter.OwnerID))

	// Apply filters
	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		query = query.Where("(LOWER(title) LIKE ? OR LOWER(COALESCE(description, '')) LIKE ?)", pattern, pattern)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}

	// Count and page queries share the same filters
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := sortColumns[filter.SortBy]
	if !ok {
		column = sortColumns[SortByCreatedAt]
	}
	direction := " ASC"
	if filter.Descending {
		direction = " DESC"
	}

	items := []models.Item{}
	if err := query.
		Order(column + direction).
		Order("id" + direction).
		Scopes(database.Paginate(utils.PaginationParams{Offset: filter.Offset, PageSize: filter.Limit})).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// Update applies changes to the owner's item and returns the updated row.
// The ownership check and the write are one UPDATE statement.
func (r *GormItemRepository) Update(ctx context.Context, ownerID, id uint64, changes map[string]any) (*models.Item, error) {
	var item models.Item
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Item{}).
			Where("id = ? AND user_id = ?", id, ownerID).
			Updates(changes)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Where("id = ? AND user_id = ?", id, ownerID).First(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes the owner's item
func (r *GormItemRepository) Delete(ctx context.Context, ownerID, id uint64) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&models.Item{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
