package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jakubrevaj/Matratex/internal/entity"
	"github.com/jakubrevaj/Matratex/internal/pdf"
	"github.com/jakubrevaj/Matratex/internal/repository"
	"github.com/jakubrevaj/Matratex/internal/storage"
)

// ErrScanMismatch is returned when a scanned barcode does not match
// the item it points at.
var ErrScanMismatch = errors.New("scanned code does not match item")

// ProductionService drives the shop floor: the production queue,
// label printing and barcode scanning of produced units.
type ProductionService struct {
	db    *gorm.DB
	repos *repository.Repositories
	store storage.DocumentStore
}

func NewProductionService(db *gorm.DB, repos *repository.Repositories, store storage.DocumentStore) *ProductionService {
	return &ProductionService{db: db, repos: repos, store: store}
}

// Queue lists the items waiting for or currently in production.
func (s *ProductionService) Queue(ctx context.Context) ([]entity.OrderItem, error) {
	return s.repos.OrderItem.ListByStatuses(ctx, entity.ItemStatusToProduction, entity.ItemStatusInProduction)
}

// MoveResult carries the generated print documents and the number of
// items moved.
type MoveResult struct {
	Moved      int
	LabelsPDF  []byte
	SummaryPDF []byte
}

// MoveAllToProduction takes every item queued for production,
// generates the sticker sheet (one label per unit) and the customer
// summary, stores both PDFs and flips the items to in-production.
func (s *ProductionService) MoveAllToProduction(ctx context.Context) (*MoveResult, error) {
	var result MoveResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var items []entity.OrderItem
		err := tx.
			Preload("Order").
			Preload("Order.Customer").
			Where("status = ?", entity.ItemStatusToProduction).
			Order("order_id ASC, id ASC").
			Find(&items).Error
		if err != nil {
			return fmt.Errorf("load queued items: %w", err)
		}
		if len(items) == 0 {
			return nil
		}

		labels := buildLabels(items)
		labelsPDF, err := pdf.RenderLabelSheet(labels)
		if err != nil {
			return err
		}
		summaryPDF, err := pdf.RenderProductionSummary(buildSummary(items))
		if err != nil {
			return err
		}

		orderIDs := map[uint]bool{}
		ids := make([]uint, 0, len(items))
		for _, item := range items {
			ids = append(ids, item.ID)
			orderIDs[item.OrderID] = true
		}
		err = tx.Model(&entity.OrderItem{}).
			Where("id IN ?", ids).
			Update("status", entity.ItemStatusInProduction).Error
		if err != nil {
			return fmt.Errorf("move items to production: %w", err)
		}
		for orderID := range orderIDs {
			if err := recomputeOrderTx(tx, orderID); err != nil {
				return err
			}
		}

		result = MoveResult{Moved: len(items), LabelsPDF: labelsPDF, SummaryPDF: summaryPDF}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Moved > 0 {
		stamp := time.Now().Format("20060102-150405")
		if err := s.store.Put(ctx, fmt.Sprintf("labels/%s-labels.pdf", stamp), result.LabelsPDF, "application/pdf"); err != nil {
			return nil, err
		}
		if err := s.store.Put(ctx, fmt.Sprintf("labels/%s-summary.pdf", stamp), result.SummaryPDF, "application/pdf"); err != nil {
			return nil, err
		}
	}
	return &result, nil
}

func buildLabels(items []entity.OrderItem) []pdf.Label {
	var labels []pdf.Label
	for _, item := range items {
		customer := item.Order.Customer.CompanyName()
		for unit := 1; unit <= item.Quantity; unit++ {
			labels = append(labels, pdf.Label{
				Customer:    customer,
				Product:     item.ProductName,
				Material:    item.MaterialName,
				Dimensions:  dimensionsOf(item.Length, item.Width, item.Height),
				Date:        item.Order.IssueDate.Format("02.01.2006"),
				UnitIndex:   unit,
				Quantity:    item.Quantity,
				Label1:      item.Label1,
				Label2:      item.Label2,
				Label3:      item.Label3,
				BarcodeText: ScanCode(item.Order.OrderNumber, item.ID, unit),
			})
		}
	}
	return labels
}

func buildSummary(items []entity.OrderItem) []pdf.SummaryGroup {
	index := map[string]int{}
	var groups []pdf.SummaryGroup
	for _, item := range items {
		customer := item.Order.Customer.CompanyName()
		i, ok := index[customer]
		if !ok {
			i = len(groups)
			index[customer] = i
			groups = append(groups, pdf.SummaryGroup{Customer: customer})
		}
		groups[i].Lines = append(groups[i].Lines, pdf.SummaryLine{
			OrderNumber: item.Order.OrderNumber,
			Product:     item.ProductName,
			Material:    item.MaterialName,
			Dimensions:  dimensionsOf(item.Length, item.Width, item.Height),
			Quantity:    item.Quantity,
		})
	}
	return groups
}

// ScanCode builds the barcode payload for one produced unit.
func ScanCode(orderNumber string, itemID uint, unitIndex int) string {
	return fmt.Sprintf("%s-%d-%d", orderNumber, itemID, unitIndex)
}

// Scan records one produced unit from a scanned label. The produced
// count never passes the quantity; reaching it completes the item.
func (s *ProductionService) Scan(ctx context.Context, code string) (*entity.OrderItem, error) {
	orderNumber, itemID, err := parseScanCode(code)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item entity.OrderItem
		if err := tx.Preload("Order").First(&item, itemID).Error; err != nil {
			return repositoryNotFound(err)
		}
		if item.Order == nil || item.Order.OrderNumber != orderNumber {
			return ErrScanMismatch
		}

		if item.ProducedCount < item.Quantity {
			item.ProducedCount++
		}
		if item.ProducedCount >= item.Quantity {
			item.Status = entity.ItemStatusCompleted
		}
		if err := tx.Save(&item).Error; err != nil {
			return fmt.Errorf("record scan: %w", err)
		}
		return recomputeOrderTx(tx, item.OrderID)
	})
	if err != nil {
		return nil, err
	}
	return s.repos.OrderItem.FindByID(ctx, itemID)
}

// parseScanCode splits "orderNumber-itemID-unitIndex". Order numbers
// contain no dashes, so three fields are exact.
func parseScanCode(code string) (string, uint, error) {
	parts := strings.Split(strings.TrimSpace(code), "-")
	if len(parts) != 3 {
		return "", 0, ErrScanMismatch
	}
	itemID, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return "", 0, ErrScanMismatch
	}
	if _, err := strconv.Atoi(parts[2]); err != nil {
		return "", 0, ErrScanMismatch
	}
	return parts[0], uint(itemID), nil
}
