package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/itemlab/itemlab/internal/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrItemNotFound is returned when an item is not found
var ErrItemNotFound = errors.New("item not found")

// ItemRepository handles item storage operations
type ItemRepository struct {
	db  *db.DB
	log *zap.Logger
}

// NewItemRepository creates a new item repository
func NewItemRepository(database *db.DB, logger *zap.Logger) *ItemRepository {
	return &ItemRepository{
		db:  database,
		log: logger,
	}
}

// List returns every stored item in insertion order
func (r *ItemRepository) List(ctx context.Context) ([]*db.Item, error) {
	var items []*db.Item
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		r.log.Error("Failed to list items", zap.Error(err))
		return nil, err
	}
	return items, nil
}

// Get retrieves an item by ID
func (r *ItemRepository) Get(ctx context.Context, id uint) (*db.Item, error) {
	var item db.Item
	err := r.db.WithContext(ctx).First(&item, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		r.log.Error("Failed to get item", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &item, nil
}

// Create stores a new item; the database assigns the ID
func (r *ItemRepository) Create(ctx context.Context, item *db.Item) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		r.log.Error("Failed to create item", zap.String("name", item.Name), zap.Error(err))
		return err
	}

	r.log.Info("Item created", zap.Uint("id", item.ID), zap.String("name", item.Name))
	return nil
}

// Replace overwrites every mutable field of an existing item
func (r *ItemRepository) Replace(ctx context.Context, id uint, item *db.Item) (*db.Item, error) {
	result := r.db.WithContext(ctx).Model(&db.Item{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":     item.Name,
		"quantity": item.Quantity,
	})
	if result.Error != nil {
		r.log.Error("Failed to replace item", zap.Uint("id", id), zap.Error(result.Error))
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrItemNotFound
	}

	r.log.Info("Item replaced", zap.Uint("id", id))
	return r.Get(ctx, id)
}

// Patch applies a partial update, leaving absent fields untouched
func (r *ItemRepository) Patch(ctx context.Context, id uint, updates map[string]interface{}) (*db.Item, error) {
	if len(updates) == 0 {
		return r.Get(ctx, id)
	}

	result := r.db.WithContext(ctx).Model(&db.Item{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		r.log.Error("Failed to patch item", zap.Uint("id", id), zap.Error(result.Error))
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrItemNotFound
	}

	r.log.Info("Item patched", zap.Uint("id", id))
	return r.Get(ctx, id)
}

// Delete removes an item permanently
func (r *ItemRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&db.Item{}, id)
	if result.Error != nil {
		r.log.Error("Failed to delete item", zap.Uint("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}

	r.log.Info("Item deleted", zap.Uint("id", id))
	return nil
}

// Count returns the number of stored items
func (r *ItemRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&db.Item{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return total, nil
}
