package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/jakubrevaj/Matratex/internal/entity"
	"github.com/jakubrevaj/Matratex/internal/money"
	"github.com/jakubrevaj/Matratex/internal/repository"
)

type OrderService struct {
	db      *gorm.DB
	repos   *repository.Repositories
	archive *ArchiveService
}

func NewOrderService(db *gorm.DB, repos *repository.Repositories, archive *ArchiveService) *OrderService {
	return &OrderService{db: db, repos: repos, archive: archive}
}

// OrderItemInput carries one item of a create or update request. ID
// is zero for new items.
type OrderItemInput struct {
	ID           uint              `json:"id"`
	ProductID    uint              `json:"product_id"`
	ProductName  string            `json:"product_name" binding:"required"`
	Price        float64           `json:"price"`
	Quantity     int               `json:"quantity" binding:"required,gt=0"`
	NotesCore    string            `json:"notes_core"`
	NotesCover   string            `json:"notes_cover"`
	Label1       string            `json:"label_1"`
	Label2       string            `json:"label_2"`
	Label3       string            `json:"label_3"`
	MaterialName string            `json:"material_name"`
	Length       float64           `json:"length"`
	Width        float64           `json:"width"`
	Height       float64           `json:"height"`
	TechWidth    float64           `json:"tech_width"`
	Status       entity.ItemStatus `json:"status"`
}

type CreateOrderRequest struct {
	CustomerID uint             `json:"customer_id" binding:"required"`
	IssueDate  *time.Time       `json:"issue_date"`
	Notes      string           `json:"notes"`
	Items      []OrderItemInput `json:"order_items"`
}

type UpdateOrderRequest struct {
	Notes *string          `json:"notes"`
	Items []OrderItemInput `json:"order_items"`
}

// Create allocates the next order number of the day and stores the
// order with its items. When every item already carries the invoiced
// status the order is archived in the same transaction.
func (s *OrderService) Create(ctx context.Context, req *CreateOrderRequest) (*entity.Order, error) {
	var order *entity.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var customer entity.Customer
		if err := tx.First(&customer, req.CustomerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCustomerRequired
			}
			return err
		}

		issueDate := time.Now()
		if req.IssueDate != nil {
			issueDate = *req.IssueDate
		}

		number, err := nextOrderNumber(tx, issueDate)
		if err != nil {
			return err
		}

		items := make([]entity.OrderItem, 0, len(req.Items))
		totals := make([]float64, 0, len(req.Items))
		for _, input := range req.Items {
			status := input.Status
			if status == "" {
				status = entity.ItemStatusPending
			}
			if !status.Valid() {
				return ErrInvalidStatus
			}
			items = append(items, itemFromInput(input, status))
			totals = append(totals, money.LineTotal(input.Price, input.Quantity))
		}

		order = &entity.Order{
			OrderNumber:      number,
			CustomerID:       customer.ID,
			ICO:              customer.ICO,
			IssueDate:        issueDate,
			TotalPrice:       money.Sum(totals...),
			Notes:            req.Notes,
			ProductionStatus: entity.ComputeProductionStatus(items),
			Customer:         &customer,
			Items:            items,
		}
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		if order.ProductionStatus == entity.OrderStatusInvoiced {
			if _, err := archiveOrderTx(tx, order); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// nextOrderNumber allocates YYYYMMDD plus a 3-digit sequence counting
// both live and archived orders of that day. The advisory lock keeps
// concurrent creations from drawing the same number.
func nextOrderNumber(tx *gorm.DB, issueDate time.Time) (string, error) {
	prefix := issueDate.Format("20060102")
	if err := repository.LockNumberDomain(tx, "order_number:"+prefix); err != nil {
		return "", fmt.Errorf("lock order numbering: %w", err)
	}
	live, err := repository.CountIssuedOn(tx, prefix)
	if err != nil {
		return "", fmt.Errorf("count live orders: %w", err)
	}
	archived, err := repository.CountArchivedIssuedOn(tx, prefix)
	if err != nil {
		return "", fmt.Errorf("count archived orders: %w", err)
	}
	return fmt.Sprintf("%s%03d", prefix, live+archived+1), nil
}

func itemFromInput(input OrderItemInput, status entity.ItemStatus) entity.OrderItem {
	return entity.OrderItem{
		ProductID:    input.ProductID,
		ProductName:  input.ProductName,
		Price:        input.Price,
		Quantity:     input.Quantity,
		NotesCore:    input.NotesCore,
		NotesCover:   input.NotesCover,
		Label1:       input.Label1,
		Label2:       input.Label2,
		Label3:       input.Label3,
		MaterialName: input.MaterialName,
		Length:       input.Length,
		Width:        input.Width,
		Height:       input.Height,
		TechWidth:    input.TechWidth,
		Status:       status,
	}
}

func (s *OrderService) List(ctx context.Context) ([]entity.Order, error) {
	return s.repos.Order.List(ctx)
}

func (s *OrderService) Get(ctx context.Context, id uint) (*entity.Order, error) {
	return s.repos.Order.FindByID(ctx, id)
}

// OrderLookup is the result of a number search spanning live and
// historical orders.
type OrderLookup struct {
	Order      *entity.Order           `json:"order,omitempty"`
	Historical *entity.HistoricalOrder `json:"historical_order,omitempty"`
	Archived   bool                    `json:"archived"`
}

// FindByNumber looks the order number up in the live table first and
// falls back to the historical one.
func (s *OrderService) FindByNumber(ctx context.Context, orderNumber string) (*OrderLookup, error) {
	order, err := s.repos.Order.FindByNumber(ctx, orderNumber)
	if err == nil {
		return &OrderLookup{Order: order}, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hist, err := s.repos.Historical.FindByNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	return &OrderLookup{Historical: hist, Archived: true}, nil
}

// Update rewrites the order's notes and items. Items present in the
// request are updated or created, missing ones are removed; the total
// and derived status are recomputed afterwards.
func (s *OrderService) Update(ctx context.Context, id uint, req *UpdateOrderRequest) (*entity.Order, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order entity.Order
		if err := tx.Preload("Items").First(&order, id).Error; err != nil {
			return repositoryNotFound(err)
		}

		if req.Notes != nil {
			if err := tx.Model(&order).Update("notes", *req.Notes).Error; err != nil {
				return fmt.Errorf("update notes: %w", err)
			}
		}

		if req.Items != nil {
			keep := make(map[uint]bool, len(req.Items))
			for _, input := range req.Items {
				if input.Status != "" && !input.Status.Valid() {
					return ErrInvalidStatus
				}
				if input.ID == 0 {
					status := input.Status
					if status == "" {
						status = entity.ItemStatusPending
					}
					item := itemFromInput(input, status)
					item.OrderID = order.ID
					if err := tx.Create(&item).Error; err != nil {
						return fmt.Errorf("create item: %w", err)
					}
					keep[item.ID] = true
					continue
				}

				var item entity.OrderItem
				if err := tx.Where("id = ? AND order_id = ?", input.ID, order.ID).First(&item).Error; err != nil {
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
					item.Status = input.Status
				}
				if err := tx.Save(&item).Error; err != nil {
					return fmt.Errorf("update item: %w", err)
				}
				keep[item.ID] = true
			}

			for _, existing := range order.Items {
				if !keep[existing.ID] {
					if err := tx.Delete(&entity.OrderItem{}, existing.ID).Error; err != nil {
						return fmt.Errorf("delete item: %w", err)
					}
				}
			}
		}

		return recomputeOrderTx(tx, order.ID)
	})
	if err != nil {
		return nil, err
	}
	return s.repos.Order.FindByID(ctx, id)
}

func (s *OrderService) Delete(ctx context.Context, id uint) error {
	return s.repos.Order.Delete(ctx, id)
}

// recomputeOrderTx refreshes the order's total and derived status
// from its current items.
func recomputeOrderTx(tx *gorm.DB, orderID uint) error {
	var items []entity.OrderItem
	if err := tx.Where("order_id = ?", orderID).Find(&items).Error; err != nil {
		return fmt.Errorf("load items: %w", err)
	}

	totals := make([]float64, 0, len(items))
	for _, item := range items {
		totals = append(totals, money.LineTotal(item.Price, item.Quantity))
	}

	var order entity.Order
	if err := tx.Select("id", "total_price", "production_status").First(&order, orderID).Error; err != nil {
		return repositoryNotFound(err)
	}

	updates := map[string]interface{}{}
	if total := money.Sum(totals...); total != order.TotalPrice {
		updates["total_price"] = total
	}
	if status := entity.ComputeProductionStatus(items); status != order.ProductionStatus {
		updates["production_status"] = status
	}
	if len(updates) == 0 {
		return nil
	}
	return tx.Model(&entity.Order{}).Where("id = ?", orderID).Updates(updates).Error
}
