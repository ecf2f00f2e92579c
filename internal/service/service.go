package service

import (
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jakubrevaj/Matratex/internal/config"
	"github.com/jakubrevaj/Matratex/internal/repository"
	"github.com/jakubrevaj/Matratex/internal/storage"
)

var (
	// ErrInvalidStatus is returned for a status value outside the
	// item lifecycle or a transition the lifecycle does not allow.
	ErrInvalidStatus = errors.New("invalid item status")
	// ErrInvalidSplitQuantity is returned when a split quantity is
	// not strictly between zero and the item quantity.
	ErrInvalidSplitQuantity = errors.New("invalid split quantity")
	// ErrNoCompletedItems is returned when invoicing an order that
	// has no completed items.
	ErrNoCompletedItems = errors.New("no completed items to invoice")
	// ErrCustomerRequired is returned when an order is created
	// without an existing customer.
	ErrCustomerRequired = errors.New("customer is required")
)

// Services bundles all services for dependency injection.
type Services struct {
	Customer   *CustomerService
	Catalog    *CatalogService
	Order      *OrderService
	OrderItem  *OrderItemService
	Invoice    *InvoiceService
	Archive    *ArchiveService
	Production *ProductionService
}

func NewServices(db *gorm.DB, repos *repository.Repositories, store storage.DocumentStore, cfg *config.Config, logger *zap.Logger) *Services {
	archive := NewArchiveService(db, repos, logger)
	return &Services{
		Customer:   NewCustomerService(repos.Customer),
		Catalog:    NewCatalogService(repos.Mattress, repos.Material),
		Order:      NewOrderService(db, repos, archive),
		OrderItem:  NewOrderItemService(db, repos, archive),
		Invoice:    NewInvoiceService(db, repos, store, cfg.Invoice),
		Archive:    archive,
		Production: NewProductionService(db, repos, store),
	}
}

// repositoryNotFound maps gorm's sentinel onto the repository one for
// service code that queries inside a transaction directly.
func repositoryNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.ErrNotFound
	}
	return err
}
