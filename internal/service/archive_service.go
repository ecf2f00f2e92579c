package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jakubrevaj/Matratex/internal/entity"
	"github.com/jakubrevaj/Matratex/internal/repository"
)

// ArchiveService moves fully invoiced orders into the historical
// tables and keeps per-item archive snapshots.
type ArchiveService struct {
	db     *gorm.DB
	repos  *repository.Repositories
	logger *zap.Logger
}

func NewArchiveService(db *gorm.DB, repos *repository.Repositories, logger *zap.Logger) *ArchiveService {
	return &ArchiveService{db: db, repos: repos, logger: logger}
}

// ArchiveOrder copies the order and its items into the historical
// tables and removes the live rows, all in one transaction. A crash
// can therefore never leave the order half-archived.
func (s *ArchiveService) ArchiveOrder(ctx context.Context, orderID uint) (*entity.HistoricalOrder, error) {
	var hist *entity.HistoricalOrder
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order entity.Order
		if err := tx.Preload("Customer").Preload("Items").First(&order, orderID).Error; err != nil {
			return repositoryNotFound(err)
		}

		h, err := archiveOrderTx(tx, &order)
		if err != nil {
			return err
		}
		hist = h
		return nil
	})
	if err != nil {
		return nil, err
	}
	return hist, nil
}

// archiveOrderTx does the actual move inside an open transaction so
// flows that already hold one (invoicing an order whose items are all
// settled) can archive without nesting.
func archiveOrderTx(tx *gorm.DB, order *entity.Order) (*entity.HistoricalOrder, error) {
	hist := &entity.HistoricalOrder{
		OrderNumber:      order.OrderNumber,
		CustomerName:     order.Customer.CompanyName(),
		ICO:              order.ICO,
		IssueDate:        order.IssueDate,
		TotalPrice:       order.TotalPrice,
		Notes:            order.Notes,
		ProductionStatus: order.ProductionStatus,
	}
	for _, item := range order.Items {
		hist.Items = append(hist.Items, entity.HistoricalOrderItem{
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			Price:        item.Price,
			Quantity:     item.Quantity,
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
			Status:       entity.ItemStatusArchived,
		})
	}

	if err := tx.Create(hist).Error; err != nil {
		return nil, fmt.Errorf("create historical order: %w", err)
	}
	if err := tx.Where("order_id = ?", order.ID).Delete(&entity.OrderItem{}).Error; err != nil {
		return nil, fmt.Errorf("delete live items: %w", err)
	}
	if err := tx.Delete(&entity.Order{}, order.ID).Error; err != nil {
		return nil, fmt.Errorf("delete live order: %w", err)
	}
	return hist, nil
}

// ArchiveAllInvoiced archives every order whose derived status is
// invoiced. One failing order is logged and skipped so the rest of
// the sweep still runs.
func (s *ArchiveService) ArchiveAllInvoiced(ctx context.Context) (int, error) {
	orders, err := s.repos.Order.ListByStatus(ctx, entity.OrderStatusInvoiced)
	if err != nil {
		return 0, fmt.Errorf("list invoiced orders: %w", err)
	}

	archived := 0
	for _, order := range orders {
		if _, err := s.ArchiveOrder(ctx, order.ID); err != nil {
			s.logger.Error("archive order failed",
				zap.Uint("order_id", order.ID),
				zap.String("order_number", order.OrderNumber),
				zap.Error(err))
			continue
		}
		archived++
	}
	return archived, nil
}

// snapshotItemTx writes the idempotent per-item archive snapshot. A
// second archival of the same item is a no-op.
func snapshotItemTx(tx *gorm.DB, item *entity.OrderItem, order *entity.Order) error {
	exists, err := repository.ExistsForOriginal(tx, item.ID)
	if err != nil {
		return fmt.Errorf("check archived item: %w", err)
	}
	if exists {
		return nil
	}

	snapshot := &entity.ArchivedItem{
		OriginalItemID: item.ID,
		ProductName:    item.ProductName,
		Quantity:       item.Quantity,
		Price:          item.Price,
		NotesCore:      item.NotesCore,
		NotesCover:     item.NotesCover,
		Label1:         item.Label1,
		Label2:         item.Label2,
		Label3:         item.Label3,
		MaterialName:   item.MaterialName,
		Length:         item.Length,
		Width:          item.Width,
		Height:         item.Height,
		TechWidth:      item.TechWidth,
	}
	if order != nil {
		snapshot.OrderNumber = &order.OrderNumber
		snapshot.ICO = order.ICO
		name := order.Customer.CompanyName()
		snapshot.CustomerName = &name
	}
	if err := tx.Create(snapshot).Error; err != nil {
		return fmt.Errorf("create archived item: %w", err)
	}
	return nil
}

// ListHistorical returns archived orders, newest first.
func (s *ArchiveService) ListHistorical(ctx context.Context) ([]entity.HistoricalOrder, error) {
	return s.repos.Historical.List(ctx)
}

func (s *ArchiveService) GetHistorical(ctx context.Context, id uint) (*entity.HistoricalOrder, error) {
	return s.repos.Historical.FindByID(ctx, id)
}

// ListArchivedItems returns the per-item snapshots, newest first.
func (s *ArchiveService) ListArchivedItems(ctx context.Context) ([]entity.ArchivedItem, error) {
	return s.repos.Archived.List(ctx)
}

// GetArchivedItem returns the snapshot taken for a live item id.
func (s *ArchiveService) GetArchivedItem(ctx context.Context, originalItemID uint) (*entity.ArchivedItem, error) {
	return s.repos.Archived.FindByOriginalItemID(ctx, originalItemID)
}
