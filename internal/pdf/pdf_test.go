package pdf

import (
	"fmt"
	"testing"
	"time"

	"github.com/jakubrevaj/Matratex/internal/entity"
)

func TestRenderInvoice(t *testing.T) {
	ico := "12345678"
	inv := &entity.Invoice{
		InvoiceNumber:   "20260001",
		IssueDate:       time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		TotalPrice:      240,
		VariableSymbol:  "20260001",
		CustomerName:    "Hotel Royal",
		CustomerAddress: "Štúrova 5, Košice",
		CustomerICO:     &ico,
		Items: []entity.InvoiceLine{
			{Name: "Matrac Komfort", Material: "PUR pena", Dimensions: "200x90x18 cm", Quantity: 2, UnitPrice: 120, TotalPrice: 240},
		},
	}
	sup := Supplier{
		Name:    "Matratex s.r.o.",
		Address: "Hlavná 1, Košice",
		IBAN:    "SK2202000000001572951551",
	}

	plain, err := RenderInvoice(inv, sup, false, 0.23)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(plain) == 0 || string(plain[:5]) != "%PDF-" {
		t.Fatal("output is not a PDF")
	}

	withVAT, err := RenderInvoice(inv, sup, true, 0.23)
	if err != nil {
		t.Fatalf("render with VAT: %v", err)
	}
	if len(withVAT) == 0 {
		t.Fatal("empty VAT variant")
	}
}

func TestRenderLabelSheet(t *testing.T) {
	var labels []Label
	for unit := 1; unit <= 5; unit++ {
		labels = append(labels, Label{
			Customer:    "Hotel Royal",
			Product:     "Matrac Komfort",
			Material:    "PUR pena",
			Dimensions:  "200x90x18 cm",
			Date:        "01.09.2026",
			UnitIndex:   unit,
			Quantity:    5,
			Label1:      "izba 101",
			BarcodeText: fmt.Sprintf("20260901001-1-%d", unit),
		})
	}

	data, err := RenderLabelSheet(labels)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(data) == 0 || string(data[:5]) != "%PDF-" {
		t.Fatal("output is not a PDF")
	}
}

func TestRenderProductionSummary(t *testing.T) {
	data, err := RenderProductionSummary([]SummaryGroup{
		{
			Customer: "Hotel Royal",
			Lines: []SummaryLine{
				{OrderNumber: "20260901001", Product: "Matrac Komfort", Material: "PUR pena", Dimensions: "200x90 cm", Quantity: 2},
			},
		},
		{
			Customer: "Penzión Lipa",
			Lines: []SummaryLine{
				{OrderNumber: "20260901002", Product: "Matrac Klasik", Quantity: 1},
			},
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(data) == 0 || string(data[:5]) != "%PDF-" {
		t.Fatal("output is not a PDF")
	}
}
