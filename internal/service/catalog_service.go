package service

import (
	"context"
	"fmt"

	"github.com/jakubrevaj/Matratex/internal/entity"
	"github.com/jakubrevaj/Matratex/internal/money"
	"github.com/jakubrevaj/Matratex/internal/repository"
)

// CatalogService manages the mattress catalog and the material list
// the order form offers.
type CatalogService struct {
	mattressRepo *repository.MattressRepository
	materialRepo *repository.MaterialRepository
}

func NewCatalogService(mattressRepo *repository.MattressRepository, materialRepo *repository.MaterialRepository) *CatalogService {
	return &CatalogService{mattressRepo: mattressRepo, materialRepo: materialRepo}
}

func (s *CatalogService) CreateMattress(ctx context.Context, mattress *entity.Mattress) error {
	if err := s.mattressRepo.Create(ctx, mattress); err != nil {
		return fmt.Errorf("create mattress: %w", err)
	}
	return nil
}

func (s *CatalogService) GetMattress(ctx context.Context, id uint) (*entity.Mattress, error) {
	return s.mattressRepo.FindByID(ctx, id)
}

func (s *CatalogService) ListMattresses(ctx context.Context) ([]entity.Mattress, error) {
	return s.mattressRepo.List(ctx)
}

func (s *CatalogService) UpdateMattress(ctx context.Context, mattress *entity.Mattress) error {
	if _, err := s.mattressRepo.FindByID(ctx, mattress.ID); err != nil {
		return err
	}
	if err := s.mattressRepo.Save(ctx, mattress); err != nil {
		return fmt.Errorf("update mattress: %w", err)
	}
	return nil
}

func (s *CatalogService) DeleteMattress(ctx context.Context, id uint) error {
	return s.mattressRepo.Delete(ctx, id)
}

// PriceFor quotes a mattress price for the given dimensions in
// centimeters: base price scaled by area and the model coefficient.
// Models without a base price or coefficient have no suggested price.
func (s *CatalogService) PriceFor(ctx context.Context, mattressID uint, length, width float64) (float64, error) {
	mattress, err := s.mattressRepo.FindByID(ctx, mattressID)
	if err != nil {
		return 0, err
	}
	if mattress.BasePrice == nil || mattress.Coefficient == nil {
		return 0, nil
	}
	area := length * width / 10000
	return money.Round2(*mattress.BasePrice * *mattress.Coefficient * area), nil
}

func (s *CatalogService) CreateMaterial(ctx context.Context, material *entity.Material) error {
	if err := s.materialRepo.Create(ctx, material); err != nil {
		return fmt.Errorf("create material: %w", err)
	}
	return nil
}

func (s *CatalogService) ListMaterials(ctx context.Context) ([]entity.Material, error) {
	return s.materialRepo.List(ctx)
}

func (s *CatalogService) DeleteMaterial(ctx context.Context, id uint) error {
	return s.materialRepo.Delete(ctx, id)
}
