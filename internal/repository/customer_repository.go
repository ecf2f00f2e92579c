package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jakubrevaj/Matratex/internal/entity"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *CustomerRepository) FindByID(ctx context.Context, id uint) (*entity.Customer, error) {
	var customer entity.Customer
	if err := r.db.WithContext(ctx).First(&customer, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &customer, nil
}

func (r *CustomerRepository) FindByIDWithOrders(ctx context.Context, id uint) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.WithContext(ctx).
		Preload("Orders", func(db *gorm.DB) *gorm.DB {
			return db.Order("issue_date DESC")
		}).
		Preload("Orders.Items").
		First(&customer, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &customer, nil
}

// Search matches company name or ICO, case-insensitively, for the
// customer picker. An empty term lists everyone.
func (r *CustomerRepository) Search(ctx context.Context, term string) ([]entity.Customer, error) {
	var customers []entity.Customer
	q := r.db.WithContext(ctx).Order("podnik ASC")
	if term != "" {
		pattern := "%" + term + "%"
		q = q.Where("podnik ILIKE ? OR ico ILIKE ?", pattern, pattern)
	}
	if err := q.Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *CustomerRepository) Save(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

func (r *CustomerRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.Customer{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
