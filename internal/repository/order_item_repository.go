package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jakubrevaj/Matratex/internal/entity"
)

type OrderItemRepository struct {
	db *gorm.DB
}

func NewOrderItemRepository(db *gorm.DB) *OrderItemRepository {
	return &OrderItemRepository{db: db}
}

func (r *OrderItemRepository) Create(ctx context.Context, item *entity.OrderItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *OrderItemRepository) FindByID(ctx context.Context, id uint) (*entity.OrderItem, error) {
	var item entity.OrderItem
	err := r.db.WithContext(ctx).
		Preload("Order").
		Preload("Order.Customer").
		First(&item, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}

func (r *OrderItemRepository) ListByOrder(ctx context.Context, orderID uint) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *OrderItemRepository) ListByStatuses(ctx context.Context, statuses ...entity.ItemStatus) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := r.db.WithContext(ctx).
		Preload("Order").
		Preload("Order.Customer").
		Where("status IN ?", statuses).
		Order("order_id ASC, id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *OrderItemRepository) Save(ctx context.Context, item *entity.OrderItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *OrderItemRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.OrderItem{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
