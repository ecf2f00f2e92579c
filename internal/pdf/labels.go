package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// Label is one sticker on the production label sheet. Every produced
// unit of an item gets its own label with a unique barcode.
type Label struct {
	Customer   string
	Product    string
	Material   string
	Dimensions string
	Date       string
	UnitIndex  int
	Quantity   int
	Label1     string
	Label2     string
	Label3     string
	// BarcodeText identifies the unit for production scanning.
	BarcodeText string
}

const (
	labelWidth   = 63.0
	labelHeight  = 46.0
	labelsPerRow = 3
	sheetMargin  = 8.0
)

// RenderLabelSheet lays labels out three per row on A4 pages.
func RenderLabelSheet(labels []Label) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("cp1250")
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	x, y := sheetMargin, sheetMargin
	for i, label := range labels {
		if i > 0 && i%labelsPerRow == 0 {
			x = sheetMargin
			y += labelHeight + 2
			if y+labelHeight > 290 {
				doc.AddPage()
				y = sheetMargin
			}
		}
		if err := drawLabel(doc, tr, label, x, y, i); err != nil {
			return nil, err
		}
		x += labelWidth + 2
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render label sheet: %w", err)
	}
	return buf.Bytes(), nil
}

func drawLabel(doc *gofpdf.Fpdf, tr func(string) string, label Label, x, y float64, idx int) error {
	doc.Rect(x, y, labelWidth, labelHeight, "D")

	doc.SetXY(x+2, y+2)
	doc.SetFont("Helvetica", "B", 8)
	doc.CellFormat(labelWidth-4, 4, tr(label.Customer), "", 2, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 7)
	doc.CellFormat(labelWidth-4, 3.5, tr(label.Product), "", 2, "L", false, 0, "")
	if label.Material != "" {
		doc.CellFormat(labelWidth-4, 3.5, tr(label.Material), "", 2, "L", false, 0, "")
	}
	doc.CellFormat(labelWidth-4, 3.5, tr(label.Dimensions), "", 2, "L", false, 0, "")
	doc.CellFormat(labelWidth-4, 3.5, tr(fmt.Sprintf("%s   %d/%d ks", label.Date, label.UnitIndex, label.Quantity)), "", 2, "L", false, 0, "")
	for _, extra := range []string{label.Label1, label.Label2, label.Label3} {
		if extra != "" {
			doc.CellFormat(labelWidth-4, 3.5, tr(extra), "", 2, "L", false, 0, "")
		}
	}

	img, err := barcodePNG(label.BarcodeText, 400, 80)
	if err != nil {
		return err
	}
	name := fmt.Sprintf("label-%d", idx)
	doc.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(img))
	doc.ImageOptions(name, x+4, y+labelHeight-13, labelWidth-8, 9, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	doc.SetXY(x+2, y+labelHeight-4)
	doc.SetFont("Helvetica", "", 6)
	doc.CellFormat(labelWidth-4, 3, label.BarcodeText, "", 0, "C", false, 0, "")
	return nil
}

// SummaryGroup holds one customer's items for the production summary.
type SummaryGroup struct {
	Customer string
	Lines    []SummaryLine
}

type SummaryLine struct {
	OrderNumber string
	Product     string
	Material    string
	Dimensions  string
	Quantity    int
}

// RenderProductionSummary prints a per-customer overview of what goes
// into production, one table per customer.
func RenderProductionSummary(groups []SummaryGroup) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("cp1250")
	doc.SetAutoPageBreak(true, 15)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 14)
	doc.CellFormat(0, 8, tr("Súhrn výroby"), "", 1, "L", false, 0, "")
	doc.Ln(2)

	for _, group := range groups {
		doc.SetFont("Helvetica", "B", 11)
		doc.CellFormat(0, 7, tr(group.Customer), "", 1, "L", false, 0, "")

		doc.SetFont("Helvetica", "B", 8)
		doc.SetFillColor(229, 231, 235)
		doc.CellFormat(30, 6, tr("Objednávka"), "1", 0, "L", true, 0, "")
		doc.CellFormat(65, 6, tr("Produkt"), "1", 0, "L", true, 0, "")
		doc.CellFormat(45, 6, tr("Materiál"), "1", 0, "L", true, 0, "")
		doc.CellFormat(35, 6, tr("Rozmery"), "1", 0, "L", true, 0, "")
		doc.CellFormat(15, 6, tr("Ks"), "1", 1, "C", true, 0, "")

		doc.SetFont("Helvetica", "", 8)
		total := 0
		for _, line := range group.Lines {
			doc.CellFormat(30, 5.5, line.OrderNumber, "1", 0, "L", false, 0, "")
			doc.CellFormat(65, 5.5, tr(line.Product), "1", 0, "L", false, 0, "")
			doc.CellFormat(45, 5.5, tr(line.Material), "1", 0, "L", false, 0, "")
			doc.CellFormat(35, 5.5, tr(line.Dimensions), "1", 0, "L", false, 0, "")
			doc.CellFormat(15, 5.5, fmt.Sprintf("%d", line.Quantity), "1", 1, "C", false, 0, "")
			total += line.Quantity
		}
		doc.SetFont("Helvetica", "B", 8)
		doc.CellFormat(175, 6, tr("Spolu"), "1", 0, "R", false, 0, "")
		doc.CellFormat(15, 6, fmt.Sprintf("%d", total), "1", 1, "C", false, 0, "")
		doc.Ln(4)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render production summary: %w", err)
	}
	return buf.Bytes(), nil
}
