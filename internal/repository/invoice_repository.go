package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jakubrevaj/Matratex/internal/entity"
)

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

func (r *InvoiceRepository) FindByID(ctx context.Context, id uint) (*entity.Invoice, error) {
	var invoice entity.Invoice
	if err := r.db.WithContext(ctx).First(&invoice, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &invoice, nil
}

func (r *InvoiceRepository) List(ctx context.Context) ([]entity.Invoice, error) {
	var invoices []entity.Invoice
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *InvoiceRepository) Save(ctx context.Context, invoice *entity.Invoice) error {
	return r.db.WithContext(ctx).Save(invoice).Error
}

// LastNumberForYear returns the highest invoice number issued in the
// given year, locked for update inside the transaction. Invoice
// numbers are zero padded so lexical order matches numeric order.
func LastNumberForYear(tx *gorm.DB, yearPrefix string) (string, error) {
	var invoice entity.Invoice
	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("invoice_number LIKE ?", yearPrefix+"%").
		Order("invoice_number DESC").
		First(&invoice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return invoice.InvoiceNumber, nil
}
