package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jakubrevaj/Matratex/internal/entity"
	"github.com/jakubrevaj/Matratex/internal/repository"
)

type OrderItemService struct {
	db      *gorm.DB
	repos   *repository.Repositories
	archive *ArchiveService
}

func NewOrderItemService(db *gorm.DB, repos *repository.Repositories, archive *ArchiveService) *OrderItemService {
	return &OrderItemService{db: db, repos: repos, archive: archive}
}

// ItemLookup is a single-item search result spanning live and
// historical items.
type ItemLookup struct {
	Item       *entity.OrderItem           `json:"order_item,omitempty"`
	Historical *entity.HistoricalOrderItem `json:"historical_item,omitempty"`
	Archived   bool                        `json:"archived"`
}

// Get finds the item in the live table first and falls back to the
// historical one, so scanned labels of archived orders still resolve.
func (s *OrderItemService) Get(ctx context.Context, id uint) (*ItemLookup, error) {
	item, err := s.repos.OrderItem.FindByID(ctx, id)
	if err == nil {
		return &ItemLookup{Item: item}, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hist, err := s.repos.Historical.FindItemByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ItemLookup{Historical: hist, Archived: true}, nil
}

// ListByOrder returns the live items of an order in creation order.
func (s *OrderItemService) ListByOrder(ctx context.Context, orderID uint) ([]entity.OrderItem, error) {
	if _, err := s.repos.Order.FindByID(ctx, orderID); err != nil {
		return nil, err
	}
	return s.repos.OrderItem.ListByOrder(ctx, orderID)
}

// Create adds an item to an existing order and refreshes the order's
// total and derived status.
func (s *OrderItemService) Create(ctx context.Context, orderID uint, input *OrderItemInput) (*entity.OrderItem, error) {
	var created entity.OrderItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order entity.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			return repositoryNotFound(err)
		}

		status := input.Status
		if status == "" {
			status = entity.ItemStatusPending
		}
		if !status.Valid() {
			return ErrInvalidStatus
		}

		created = itemFromInput(*input, status)
		created.OrderID = order.ID
		if err := tx.Create(&created).Error; err != nil {
			return fmt.Errorf("create item: %w", err)
		}
		return recomputeOrderTx(tx, order.ID)
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update rewrites the item's fields and refreshes the parent order.
func (s *OrderItemService) Update(ctx context.Context, id uint, input *OrderItemInput) (*entity.OrderItem, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item entity.OrderItem
		if err := tx.First(&item, id).Error; err != nil {
			return repositoryNotFound(err)
		}

		item.ProductID = input.ProductID
		item.ProductName = input.ProductName
		item.Price = input.Price
		item.Quantity = input.Quantity
		item.NotesCore = input.NotesCore
		item.NotesCover = input.NotesCover
		item.Label1 = input.Label1
		item.Label2 = input.Label2
		item.Label3 = input.Label3
		item.MaterialName = input.MaterialName
		item.Length = input.Length
		item.Width = input.Width
		item.Height = input.Height
		item.TechWidth = input.TechWidth
		if input.Status != "" {
			if !input.Status.Valid() {
				return ErrInvalidStatus
			}
			item.Status = input.Status
		}
		if err := tx.Save(&item).Error; err != nil {
			return fmt.Errorf("update item: %w", err)
		}
		return recomputeOrderTx(tx, item.OrderID)
	})
	if err != nil {
		return nil, err
	}
	return s.repos.OrderItem.FindByID(ctx, id)
}

// UpdateStatus moves the item through its lifecycle. Setting the
// archived status also writes the idempotent archive snapshot and
// drops the invoice reference; the invoice's own item snapshot stays
// authoritative. The parent order's derived status follows.
func (s *OrderItemService) UpdateStatus(ctx context.Context, id uint, status entity.ItemStatus) (*entity.OrderItem, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item entity.OrderItem
		if err := tx.Preload("Order").Preload("Order.Customer").First(&item, id).Error; err != nil {
			return repositoryNotFound(err)
		}

		if status == entity.ItemStatusArchived {
			if err := snapshotItemTx(tx, &item, item.Order); err != nil {
				return err
			}
			item.InvoiceID = nil
		}

		item.Status = status
		if err := tx.Save(&item).Error; err != nil {
			return fmt.Errorf("update item status: %w", err)
		}
		return recomputeOrderTx(tx, item.OrderID)
	})
	if err != nil {
		return nil, err
	}
	return s.repos.OrderItem.FindByID(ctx, id)
}

func (s *OrderItemService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item entity.OrderItem
		if err := tx.First(&item, id).Error; err != nil {
			return repositoryNotFound(err)
		}
		if err := tx.Delete(&entity.OrderItem{}, id).Error; err != nil {
			return fmt.Errorf("delete item: %w", err)
		}
		return recomputeOrderTx(tx, item.OrderID)
	})
}

// Split carves quantity units off the item into a new item on the
// same order and returns both, the shrunk original first. The new
// item copies every field except the invoice reference and the
// produced count; the order total is recomputed from the new line
// layout.
func (s *OrderItemService) Split(ctx context.Context, id uint, quantity int) ([]entity.OrderItem, error) {
	return s.split(ctx, id, quantity, "")
}

// SplitAndInvoice splits like Split but starts the new item in the
// invoiced status, used when only part of a line is billed.
func (s *OrderItemService) SplitAndInvoice(ctx context.Context, id uint, quantity int) ([]entity.OrderItem, error) {
	return s.split(ctx, id, quantity, entity.ItemStatusInvoiced)
}

func (s *OrderItemService) split(ctx context.Context, id uint, quantity int, newStatus entity.ItemStatus) ([]entity.OrderItem, error) {
	var item, split entity.OrderItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, id).Error; err != nil {
			return repositoryNotFound(err)
		}
		if quantity <= 0 || quantity >= item.Quantity {
			return ErrInvalidSplitQuantity
		}

		item.Quantity -= quantity
		if item.ProducedCount > item.Quantity {
			item.ProducedCount = item.Quantity
		}
		if err := tx.Save(&item).Error; err != nil {
			return fmt.Errorf("shrink item: %w", err)
		}

		split = entity.OrderItem{
			OrderID:      item.OrderID,
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			Price:        item.Price,
			Quantity:     quantity,
			NotesCore:    item.NotesCore,
			NotesCover:   item.NotesCover,
			Label1:       item.Label1,
			Label2:       item.Label2,
			Label3:       item.Label3,
			MaterialName: item.MaterialName,
			Length:       item.Length,
			Width:        item.Width,
			Height:       item.Height,
			TechWidth:    item.TechWidth,
			Status:       item.Status,
		}
		if newStatus != "" {
			split.Status = newStatus
		}
		if err := tx.Create(&split).Error; err != nil {
			return fmt.Errorf("create split item: %w", err)
		}
		return recomputeOrderTx(tx, item.OrderID)
	})
	if err != nil {
		return nil, err
	}
	return []entity.OrderItem{item, split}, nil
}
