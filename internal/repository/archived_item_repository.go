package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/jakubrevaj/Matratex/internal/entity"
)

type ArchivedItemRepository struct {
	db *gorm.DB
}

func NewArchivedItemRepository(db *gorm.DB) *ArchivedItemRepository {
	return &ArchivedItemRepository{db: db}
}

// FindByOriginalItemID looks up the archive snapshot of a live item.
// Returns ErrNotFound when the item was never archived.
func (r *ArchivedItemRepository) FindByOriginalItemID(ctx context.Context, originalItemID uint) (*entity.ArchivedItem, error) {
	var item entity.ArchivedItem
	err := r.db.WithContext(ctx).
		Where("original_item_id = ?", originalItemID).
		First(&item).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}

func (r *ArchivedItemRepository) List(ctx context.Context) ([]entity.ArchivedItem, error) {
	var items []entity.ArchivedItem
	err := r.db.WithContext(ctx).
		Order("archived_at DESC, id DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// ExistsForOriginal reports whether a snapshot already exists inside
// the given transaction, keeping archival idempotent under retries.
func ExistsForOriginal(tx *gorm.DB, originalItemID uint) (bool, error) {
	var item entity.ArchivedItem
	err := tx.Where("original_item_id = ?", originalItemID).First(&item).Error
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}
