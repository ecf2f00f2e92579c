package service

import (
	"context"
	"fmt"

	"github.com/jakubrevaj/Matratex/internal/entity"
	"github.com/jakubrevaj/Matratex/internal/repository"
)

type CustomerService struct {
	repo *repository.CustomerRepository
}

func NewCustomerService(repo *repository.CustomerRepository) *CustomerService {
	return &CustomerService{repo: repo}
}

func (s *CustomerService) Create(ctx context.Context, customer *entity.Customer) error {
	if err := s.repo.Create(ctx, customer); err != nil {
		return fmt.Errorf("create customer: %w", err)
	}
	return nil
}

func (s *CustomerService) Get(ctx context.Context, id uint) (*entity.Customer, error) {
	return s.repo.FindByID(ctx, id)
}

// GetWithOrders returns the customer together with their live orders,
// newest first.
func (s *CustomerService) GetWithOrders(ctx context.Context, id uint) (*entity.Customer, error) {
	return s.repo.FindByIDWithOrders(ctx, id)
}

func (s *CustomerService) Search(ctx context.Context, term string) ([]entity.Customer, error) {
	return s.repo.Search(ctx, term)
}

func (s *CustomerService) Update(ctx context.Context, customer *entity.Customer) error {
	if _, err := s.repo.FindByID(ctx, customer.ID); err != nil {
		return err
	}
	if err := s.repo.Save(ctx, customer); err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

func (s *CustomerService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
