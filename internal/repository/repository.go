package repository

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Repositories bundles all repositories for dependency injection.
type Repositories struct {
	Customer   *CustomerRepository
	Mattress   *MattressRepository
	Material   *MaterialRepository
	Order      *OrderRepository
	OrderItem  *OrderItemRepository
	Historical *HistoricalRepository
	Archived   *ArchivedItemRepository
	Invoice    *InvoiceRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Customer:   NewCustomerRepository(db),
		Mattress:   NewMattressRepository(db),
		Material:   NewMaterialRepository(db),
		Order:      NewOrderRepository(db),
		OrderItem:  NewOrderItemRepository(db),
		Historical: NewHistoricalRepository(db),
		Archived:   NewArchivedItemRepository(db),
		Invoice:    NewInvoiceRepository(db),
	}
}

// LockNumberDomain serializes allocation of sequential document
// numbers within the given transaction. The lock is keyed per domain
// (e.g. "order_number:20260901", "invoice_number:2026") and released
// automatically at commit or rollback.
func LockNumberDomain(tx *gorm.DB, key string) error {
	return tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", key).Error
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
