package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/jakubrevaj/Matratex/internal/entity"
	"github.com/jakubrevaj/Matratex/internal/testutil"
)

func TestCreateForOrderInvoicesCompletedItems(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()
	customer := testutil.SeedCustomer(t, db, "Hotel Royal", "12345678")

	order, err := svc.Order.Create(ctx, &CreateOrderRequest{
		CustomerID: customer.ID,
		Items: []OrderItemInput{
			{ProductName: "Matrac Komfort", Price: 120, Quantity: 2, Status: entity.ItemStatusCompleted,
				MaterialName: "PUR pena", Length: 200, Width: 90, Height: 18},
			{ProductName: "Matrac Klasik", Price: 80, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	invoice, err := svc.Invoice.CreateForOrder(ctx, order.ID, &CreateInvoiceRequest{IssuedBy: "jv"})
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}

	year := strconv.Itoa(time.Now().Year())
	if want := year + "0001"; invoice.InvoiceNumber != want {
		t.Errorf("invoice number = %q, want %q", invoice.InvoiceNumber, want)
	}
	if invoice.VariableSymbol != invoice.InvoiceNumber {
		t.Errorf("variable symbol = %q, want %q", invoice.VariableSymbol, invoice.InvoiceNumber)
	}
	if len(invoice.Items) != 1 {
		t.Fatalf("invoice lines = %d, want 1", len(invoice.Items))
	}
	line := invoice.Items[0]
	if line.TotalPrice != 240 || invoice.TotalPrice != 240 {
		t.Errorf("line total %v / invoice total %v, want 240", line.TotalPrice, invoice.TotalPrice)
	}
	if line.Dimensions != "200x90x18 cm" {
		t.Errorf("dimensions = %q, want 200x90x18 cm", line.Dimensions)
	}
	if invoice.CustomerName != "Hotel Royal" {
		t.Errorf("customer name = %q", invoice.CustomerName)
	}

	// the completed item is now invoiced and linked; the pending one
	// keeps the order open
	reloaded, err := svc.Order.Get(ctx, order.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	for _, item := range reloaded.Items {
		switch item.ProductName {
		case "Matrac Komfort":
			if item.Status != entity.ItemStatusInvoiced {
				t.Errorf("completed item status = %q, want invoiced", item.Status)
			}
			if item.InvoiceID == nil || *item.InvoiceID != invoice.ID {
				t.Errorf("completed item invoice ref = %v, want %d", item.InvoiceID, invoice.ID)
			}
		case "Matrac Klasik":
			if item.Status != entity.ItemStatusPending {
				t.Errorf("pending item status = %q, want pending", item.Status)
			}
		}
	}
	if reloaded.ProductionStatus != entity.OrderStatusPending {
		t.Errorf("order status = %q, want pending while items remain", reloaded.ProductionStatus)
	}
}

func TestInvoiceNumbersIncrementWithinYear(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()
	customer := testutil.SeedCustomer(t, db, "Hotel Royal", "")

	for i := 1; i <= 2; i++ {
		order, err := svc.Order.Create(ctx, &CreateOrderRequest{
			CustomerID: customer.ID,
			Items: []OrderItemInput{
				{ProductName: "Matrac Komfort", Price: 100, Quantity: 1, Status: entity.ItemStatusCompleted},
			},
		})
		if err != nil {
			t.Fatalf("create order %d: %v", i, err)
		}
		invoice, err := svc.Invoice.CreateForOrder(ctx, order.ID, &CreateInvoiceRequest{})
		if err != nil {
			t.Fatalf("create invoice %d: %v", i, err)
		}
		year := strconv.Itoa(time.Now().Year())
		want := year + "000" + strconv.Itoa(i)
		if invoice.InvoiceNumber != want {
			t.Errorf("invoice %d number = %q, want %q", i, invoice.InvoiceNumber, want)
		}
	}
}

func TestCreateForOrderRequiresCompletedItems(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()
	customer := testutil.SeedCustomer(t, db, "Hotel Royal", "")

	order, err := svc.Order.Create(ctx, &CreateOrderRequest{
		CustomerID: customer.ID,
		Items: []OrderItemInput{
			{ProductName: "Matrac Komfort", Price: 100, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	_, err = svc.Invoice.CreateForOrder(ctx, order.ID, &CreateInvoiceRequest{})
	if !errors.Is(err, ErrNoCompletedItems) {
		t.Fatalf("got %v, want ErrNoCompletedItems", err)
	}
}

func TestCreateManualInvoice(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	invoice, err := svc.Invoice.CreateManual(ctx, &ManualInvoiceRequest{
		CustomerName: "Penzión Lipa",
		Items: []entity.InvoiceLine{
			{Name: "Doprava", Quantity: 1, UnitPrice: 25},
			{Name: "Matrac Komfort", Quantity: 2, UnitPrice: 100},
		},
	})
	if err != nil {
		t.Fatalf("create manual invoice: %v", err)
	}
	if invoice.TotalPrice != 225 {
		t.Errorf("total = %v, want 225", invoice.TotalPrice)
	}
	if invoice.OrderID != nil {
		t.Error("manual invoice must not reference an order")
	}
	if invoice.DueDate == nil {
		t.Error("due date should default from configuration")
	}
}

func TestPatchInvoiceRecomputesTotal(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	invoice, err := svc.Invoice.CreateManual(ctx, &ManualInvoiceRequest{
		CustomerName: "Penzión Lipa",
		Items:        []entity.InvoiceLine{{Name: "Matrac", Quantity: 1, UnitPrice: 100}},
	})
	if err != nil {
		t.Fatalf("create manual invoice: %v", err)
	}

	notes := "dodatočná zľava"
	patched, err := svc.Invoice.Patch(ctx, invoice.ID, &PatchInvoiceRequest{
		Items: []entity.InvoiceLine{
			{Name: "Matrac", Quantity: 1, UnitPrice: 90},
			{Name: "Doprava", Quantity: 1, UnitPrice: 10},
		},
		Notes: &notes,
	})
	if err != nil {
		t.Fatalf("patch invoice: %v", err)
	}
	if patched.TotalPrice != 100 {
		t.Errorf("total = %v, want 100", patched.TotalPrice)
	}
	if patched.Notes != notes {
		t.Errorf("notes = %q, want %q", patched.Notes, notes)
	}
	if patched.InvoiceNumber != invoice.InvoiceNumber {
		t.Error("invoice number must never change on patch")
	}
}

func TestRenderPDFStoresDocument(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	invoice, err := svc.Invoice.CreateManual(ctx, &ManualInvoiceRequest{
		CustomerName: "Hotel Royal",
		Items:        []entity.InvoiceLine{{Name: "Matrac Komfort", Quantity: 1, UnitPrice: 120}},
	})
	if err != nil {
		t.Fatalf("create manual invoice: %v", err)
	}

	data, err := svc.Invoice.RenderPDF(ctx, invoice.ID, false)
	if err != nil {
		t.Fatalf("render pdf: %v", err)
	}
	if len(data) == 0 || string(data[:5]) != "%PDF-" {
		t.Fatalf("output is not a PDF (%d bytes)", len(data))
	}

	withVAT, err := svc.Invoice.RenderPDF(ctx, invoice.ID, true)
	if err != nil {
		t.Fatalf("render pdf with VAT: %v", err)
	}
	if len(withVAT) == 0 {
		t.Fatal("empty VAT variant")
	}
}

func TestDimensionsRoundToWholeCentimeters(t *testing.T) {
	cases := []struct {
		l, w, h float64
		want    string
	}{
		{200.4, 90.2, 17.8, "200x90x18 cm"},
		{200, 90, 18, "200x90x18 cm"},
		{200, 90, 0, "200x90x0 cm"},
		{0, 0, 0, ""},
	}
	for _, c := range cases {
		if got := dimensionsOf(c.l, c.w, c.h); got != c.want {
			t.Errorf("dimensionsOf(%v, %v, %v) = %q, want %q", c.l, c.w, c.h, got, c.want)
		}
	}
}

func TestInvoiceNumberUsesCurrentYear(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()
	customer := testutil.SeedCustomer(t, db, "Hotel Royal", "")

	lastYear := time.Now().AddDate(-1, 0, 0)
	order, err := svc.Order.Create(ctx, &CreateOrderRequest{
		CustomerID: customer.ID,
		IssueDate:  &lastYear,
		Items: []OrderItemInput{
			{ProductName: "Matrac Komfort", Price: 50, Quantity: 1, Status: entity.ItemStatusCompleted},
		},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	invoice, err := svc.Invoice.CreateForOrder(ctx, order.ID, &CreateInvoiceRequest{})
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}
	year := strconv.Itoa(time.Now().Year())
	if !strings.HasPrefix(invoice.InvoiceNumber, year) {
		t.Errorf("invoice number %q not in the %s sequence", invoice.InvoiceNumber, year)
	}
}
