package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jakubrevaj/Matratex/internal/config"
	"github.com/jakubrevaj/Matratex/internal/entity"
	"github.com/jakubrevaj/Matratex/internal/money"
	"github.com/jakubrevaj/Matratex/internal/pdf"
	"github.com/jakubrevaj/Matratex/internal/repository"
	"github.com/jakubrevaj/Matratex/internal/storage"
)

type InvoiceService struct {
	db    *gorm.DB
	repos *repository.Repositories
	store storage.DocumentStore
	cfg   config.InvoiceConfig
}

func NewInvoiceService(db *gorm.DB, repos *repository.Repositories, store storage.DocumentStore, cfg config.InvoiceConfig) *InvoiceService {
	return &InvoiceService{db: db, repos: repos, store: store, cfg: cfg}
}

type CreateInvoiceRequest struct {
	Notes    string     `json:"notes"`
	IssuedBy string     `json:"issued_by"`
	DueDate  *time.Time `json:"due_date"`
}

// CreateForOrder invoices every completed item of the order: the
// invoice number is allocated, the item snapshot is taken, the items
// move to the invoiced status and the order's derived status is
// refreshed, all in one transaction.
func (s *InvoiceService) CreateForOrder(ctx context.Context, orderID uint, req *CreateInvoiceRequest) (*entity.Invoice, error) {
	var invoice *entity.Invoice
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order entity.Order
		if err := tx.Preload("Customer").Preload("Items").First(&order, orderID).Error; err != nil {
			return repositoryNotFound(err)
		}

		var completed []entity.OrderItem
		for _, item := range order.Items {
			if item.Status == entity.ItemStatusCompleted {
				completed = append(completed, item)
			}
		}
		if len(completed) == 0 {
			return ErrNoCompletedItems
		}

		number, err := nextInvoiceNumber(tx, time.Now().Year())
		if err != nil {
			return err
		}

		lines := make([]entity.InvoiceLine, 0, len(completed))
		totals := make([]float64, 0, len(completed))
		for _, item := range completed {
			line := entity.InvoiceLine{
				Name:       item.ProductName,
				Material:   item.MaterialName,
				Dimensions: dimensionsOf(item.Length, item.Width, item.Height),
				Quantity:   item.Quantity,
				UnitPrice:  item.Price,
				TotalPrice: money.LineTotal(item.Price, item.Quantity),
				NotesCore:  item.NotesCore,
				NotesCover: item.NotesCover,
			}
			lines = append(lines, line)
			totals = append(totals, line.TotalPrice)
		}

		dueDate := req.DueDate
		if dueDate == nil && s.cfg.DueDays > 0 {
			d := time.Now().AddDate(0, 0, s.cfg.DueDays)
			dueDate = &d
		}

		invoice = &entity.Invoice{
			InvoiceNumber:   number,
			OrderID:         &order.ID,
			OrderNumber:     &order.OrderNumber,
			IssueDate:       time.Now(),
			DueDate:         dueDate,
			TotalPrice:      money.Sum(totals...),
			VariableSymbol:  variableSymbol(number),
			Notes:           req.Notes,
			CustomerName:    order.Customer.CompanyName(),
			CustomerAddress: order.Customer.Address(),
			CustomerICO:     order.Customer.ICO,
			IssuedBy:        req.IssuedBy,
			Items:           lines,
		}
		if err := tx.Create(invoice).Error; err != nil {
			return fmt.Errorf("create invoice: %w", err)
		}

		ids := make([]uint, 0, len(completed))
		for _, item := range completed {
			ids = append(ids, item.ID)
		}
		err = tx.Model(&entity.OrderItem{}).
			Where("id IN ?", ids).
			Updates(map[string]interface{}{
				"status":     entity.ItemStatusInvoiced,
				"invoice_id": invoice.ID,
			}).Error
		if err != nil {
			return fmt.Errorf("mark items invoiced: %w", err)
		}

		return recomputeOrderTx(tx, order.ID)
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

// ManualInvoiceRequest creates an invoice that is not backed by an
// order, e.g. for services or corrections.
type ManualInvoiceRequest struct {
	CustomerName    string               `json:"customer_name" binding:"required"`
	CustomerAddress string               `json:"customer_address"`
	CustomerICO     *string              `json:"customer_ico"`
	Notes           string               `json:"notes"`
	IssuedBy        string               `json:"issued_by"`
	DueDate         *time.Time           `json:"due_date"`
	Items           []entity.InvoiceLine `json:"items" binding:"required,min=1"`
}

func (s *InvoiceService) CreateManual(ctx context.Context, req *ManualInvoiceRequest) (*entity.Invoice, error) {
	var invoice *entity.Invoice
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		number, err := nextInvoiceNumber(tx, time.Now().Year())
		if err != nil {
			return err
		}

		lines := make([]entity.InvoiceLine, 0, len(req.Items))
		totals := make([]float64, 0, len(req.Items))
		for _, line := range req.Items {
			line.TotalPrice = money.LineTotal(line.UnitPrice, line.Quantity)
			lines = append(lines, line)
			totals = append(totals, line.TotalPrice)
		}

		dueDate := req.DueDate
		if dueDate == nil && s.cfg.DueDays > 0 {
			d := time.Now().AddDate(0, 0, s.cfg.DueDays)
			dueDate = &d
		}

		invoice = &entity.Invoice{
			InvoiceNumber:   number,
			IssueDate:       time.Now(),
			DueDate:         dueDate,
			TotalPrice:      money.Sum(totals...),
			VariableSymbol:  variableSymbol(number),
			Notes:           req.Notes,
			CustomerName:    req.CustomerName,
			CustomerAddress: req.CustomerAddress,
			CustomerICO:     req.CustomerICO,
			IssuedBy:        req.IssuedBy,
			Items:           lines,
		}
		if err := tx.Create(invoice).Error; err != nil {
			return fmt.Errorf("create invoice: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

// nextInvoiceNumber allocates the year's next invoice number. The
// sequence is zero padded to four digits so lexical ordering of the
// numbers matches issue order.
func nextInvoiceNumber(tx *gorm.DB, year int) (string, error) {
	prefix := strconv.Itoa(year)
	if err := repository.LockNumberDomain(tx, "invoice_number:"+prefix); err != nil {
		return "", fmt.Errorf("lock invoice numbering: %w", err)
	}
	last, err := repository.LastNumberForYear(tx, prefix)
	if err != nil {
		return "", fmt.Errorf("last invoice number: %w", err)
	}

	seq := 1
	if last != "" {
		n, err := strconv.Atoi(last[len(prefix):])
		if err != nil {
			return "", fmt.Errorf("parse invoice number %q: %w", last, err)
		}
		seq = n + 1
	}
	return fmt.Sprintf("%s%04d", prefix, seq), nil
}

// variableSymbol keeps only the digits of the invoice number, as
// required for bank transfers.
func variableSymbol(invoiceNumber string) string {
	var b strings.Builder
	for _, r := range invoiceNumber {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// dimensionsOf formats item dimensions rounded to whole centimeters.
func dimensionsOf(length, width, height float64) string {
	if length == 0 && width == 0 && height == 0 {
		return ""
	}
	return fmt.Sprintf("%dx%dx%d cm",
		int(math.Round(length)), int(math.Round(width)), int(math.Round(height)))
}

// PatchInvoiceRequest edits an issued invoice. Only the snapshot
// lines, notes and due date may change; the total follows the lines.
type PatchInvoiceRequest struct {
	Items   []entity.InvoiceLine `json:"items"`
	Notes   *string              `json:"notes"`
	DueDate *time.Time           `json:"due_date"`
}

func (s *InvoiceService) Patch(ctx context.Context, id uint, req *PatchInvoiceRequest) (*entity.Invoice, error) {
	invoice, err := s.repos.Invoice.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Items != nil {
		lines := make([]entity.InvoiceLine, 0, len(req.Items))
		totals := make([]float64, 0, len(req.Items))
		for _, line := range req.Items {
			line.TotalPrice = money.LineTotal(line.UnitPrice, line.Quantity)
			lines = append(lines, line)
			totals = append(totals, line.TotalPrice)
		}
		invoice.Items = lines
		invoice.TotalPrice = money.Sum(totals...)
	}
	if req.Notes != nil {
		invoice.Notes = *req.Notes
	}
	if req.DueDate != nil {
		invoice.DueDate = req.DueDate
	}

	if err := s.repos.Invoice.Save(ctx, invoice); err != nil {
		return nil, fmt.Errorf("save invoice: %w", err)
	}
	return invoice, nil
}

// InvoiceSummary is the list projection of an invoice.
type InvoiceSummary struct {
	ID            uint      `json:"id"`
	InvoiceNumber string    `json:"invoice_number"`
	CustomerName  string    `json:"customer_name"`
	OrderNumber   *string   `json:"order_number"`
	IssueDate     time.Time `json:"issue_date"`
	TotalPrice    float64   `json:"total_price"`
}

func (s *InvoiceService) List(ctx context.Context) ([]InvoiceSummary, error) {
	invoices, err := s.repos.Invoice.List(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]InvoiceSummary, 0, len(invoices))
	for _, inv := range invoices {
		summaries = append(summaries, InvoiceSummary{
			ID:            inv.ID,
			InvoiceNumber: inv.InvoiceNumber,
			CustomerName:  inv.CustomerName,
			OrderNumber:   inv.OrderNumber,
			IssueDate:     inv.IssueDate,
			TotalPrice:    inv.TotalPrice,
		})
	}
	return summaries, nil
}

func (s *InvoiceService) Get(ctx context.Context, id uint) (*entity.Invoice, error) {
	return s.repos.Invoice.FindByID(ctx, id)
}

// RenderPDF renders the invoice and stores a copy in the document
// store under invoices/<number>.pdf.
func (s *InvoiceService) RenderPDF(ctx context.Context, id uint, withVAT bool) ([]byte, error) {
	invoice, err := s.repos.Invoice.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err := pdf.RenderInvoice(invoice, pdf.Supplier{
		Name:    s.cfg.SupplierName,
		Address: s.cfg.SupplierAddress,
		ICO:     s.cfg.SupplierICO,
		DIC:     s.cfg.SupplierDIC,
		IBAN:    s.cfg.IBAN,
	}, withVAT, s.cfg.VATRate)
	if err != nil {
		return nil, fmt.Errorf("render invoice %s: %w", invoice.InvoiceNumber, err)
	}

	objectName := fmt.Sprintf("invoices/%s.pdf", invoice.InvoiceNumber)
	if err := s.store.Put(ctx, objectName, data, "application/pdf"); err != nil {
		return nil, err
	}
	return data, nil
}
