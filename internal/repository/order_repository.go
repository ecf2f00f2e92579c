package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jakubrevaj/Matratex/internal/entity"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) FindByID(ctx context.Context, id uint) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items").
		First(&order, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &order, nil
}

func (r *OrderRepository) FindByNumber(ctx context.Context, orderNumber string) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items").
		Where("order_number = ?", orderNumber).
		First(&order).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &order, nil
}

func (r *OrderRepository) List(ctx context.Context) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items").
		Order("issue_date DESC, id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) ListByStatus(ctx context.Context, status entity.OrderStatus) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items").
		Where("production_status = ?", status).
		Order("issue_date DESC, id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// CountIssuedOn counts live orders whose number starts with the given
// day prefix (YYYYMMDD). Used together with the historical count when
// allocating the next order number of the day.
func CountIssuedOn(tx *gorm.DB, dayPrefix string) (int64, error) {
	var count int64
	err := tx.Model(&entity.Order{}).
		Where("order_number LIKE ?", dayPrefix+"%").
		Count(&count).Error
	return count, err
}

func (r *OrderRepository) Save(ctx context.Context, order *entity.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

func (r *OrderRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Select("Items").Delete(&entity.Order{ID: id})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
