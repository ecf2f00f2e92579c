package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jakubrevaj/Matratex/internal/entity"
)

type HistoricalRepository struct {
	db *gorm.DB
}

func NewHistoricalRepository(db *gorm.DB) *HistoricalRepository {
	return &HistoricalRepository{db: db}
}

func (r *HistoricalRepository) FindByID(ctx context.Context, id uint) (*entity.HistoricalOrder, error) {
	var order entity.HistoricalOrder
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &order, nil
}

func (r *HistoricalRepository) FindByNumber(ctx context.Context, orderNumber string) (*entity.HistoricalOrder, error) {
	var order entity.HistoricalOrder
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("order_number = ?", orderNumber).
		First(&order).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &order, nil
}

func (r *HistoricalRepository) FindItemByID(ctx context.Context, id uint) (*entity.HistoricalOrderItem, error) {
	var item entity.HistoricalOrderItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}

func (r *HistoricalRepository) List(ctx context.Context) ([]entity.HistoricalOrder, error) {
	var orders []entity.HistoricalOrder
	err := r.db.WithContext(ctx).
		Preload("Items").
		Order("issue_date DESC, id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// CountArchivedIssuedOn counts historical orders whose number starts
// with the given day prefix. Archived orders still occupy their slot
// in the day's numbering sequence.
func CountArchivedIssuedOn(tx *gorm.DB, dayPrefix string) (int64, error) {
	var count int64
	err := tx.Model(&entity.HistoricalOrder{}).
		Where("order_number LIKE ?", dayPrefix+"%").
		Count(&count).Error
	return count, err
}
