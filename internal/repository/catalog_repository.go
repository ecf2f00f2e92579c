package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jakubrevaj/Matratex/internal/entity"
)

type MattressRepository struct {
	db *gorm.DB
}

func NewMattressRepository(db *gorm.DB) *MattressRepository {
	return &MattressRepository{db: db}
}

func (r *MattressRepository) Create(ctx context.Context, mattress *entity.Mattress) error {
	return r.db.WithContext(ctx).Create(mattress).Error
}

func (r *MattressRepository) FindByID(ctx context.Context, id uint) (*entity.Mattress, error) {
	var mattress entity.Mattress
	if err := r.db.WithContext(ctx).First(&mattress, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &mattress, nil
}

func (r *MattressRepository) List(ctx context.Context) ([]entity.Mattress, error) {
	var mattresses []entity.Mattress
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&mattresses).Error; err != nil {
		return nil, err
	}
	return mattresses, nil
}

func (r *MattressRepository) Save(ctx context.Context, mattress *entity.Mattress) error {
	return r.db.WithContext(ctx).Save(mattress).Error
}

func (r *MattressRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.Mattress{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type MaterialRepository struct {
	db *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

func (r *MaterialRepository) Create(ctx context.Context, material *entity.Material) error {
	return r.db.WithContext(ctx).Create(material).Error
}

func (r *MaterialRepository) List(ctx context.Context) ([]entity.Material, error) {
	var materials []entity.Material
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&materials).Error; err != nil {
		return nil, err
	}
	return materials, nil
}

func (r *MaterialRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.Material{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
