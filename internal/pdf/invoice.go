package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/jakubrevaj/Matratex/internal/entity"
	"github.com/jakubrevaj/Matratex/internal/money"
	"github.com/jakubrevaj/Matratex/internal/paybysquare"
)

// Supplier is the issuer block printed on every invoice.
type Supplier struct {
	Name    string
	Address string
	ICO     string
	DIC     string
	IBAN    string
}

// RenderInvoice renders the invoice as an A4 PDF. When withVAT is
// set the item table carries net, VAT and gross columns and the VAT
// recap is printed above the total.
func RenderInvoice(inv *entity.Invoice, sup Supplier, withVAT bool, vatRate float64) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("cp1250")
	doc.SetAutoPageBreak(true, 20)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	doc.CellFormat(0, 10, tr(fmt.Sprintf("FAKTÚRA č. %s", inv.InvoiceNumber)), "", 1, "L", false, 0, "")
	doc.Ln(4)

	// supplier and customer blocks side by side
	top := doc.GetY()
	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(90, 5, tr("Dodávateľ:"), "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(90, 5, tr(sup.Name), "", 1, "L", false, 0, "")
	doc.CellFormat(90, 5, tr(sup.Address), "", 1, "L", false, 0, "")
	if sup.ICO != "" {
		doc.CellFormat(90, 5, tr("IČO: "+sup.ICO), "", 1, "L", false, 0, "")
	}
	if sup.DIC != "" {
		doc.CellFormat(90, 5, tr("DIČ: "+sup.DIC), "", 1, "L", false, 0, "")
	}
	bottom := doc.GetY()

	doc.SetY(top)
	doc.SetX(110)
	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(90, 5, tr("Odberateľ:"), "", 1, "L", false, 0, "")
	doc.SetX(110)
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(90, 5, tr(inv.CustomerName), "", 1, "L", false, 0, "")
	if inv.CustomerAddress != "" {
		doc.SetX(110)
		doc.CellFormat(90, 5, tr(inv.CustomerAddress), "", 1, "L", false, 0, "")
	}
	if inv.CustomerICO != nil && *inv.CustomerICO != "" {
		doc.SetX(110)
		doc.CellFormat(90, 5, tr("IČO: "+*inv.CustomerICO), "", 1, "L", false, 0, "")
	}
	if doc.GetY() < bottom {
		doc.SetY(bottom)
	}
	doc.Ln(4)

	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(0, 5, tr("Dátum vystavenia: "+inv.IssueDate.Format("02.01.2006")), "", 1, "L", false, 0, "")
	if inv.DueDate != nil {
		doc.CellFormat(0, 5, tr("Dátum splatnosti: "+inv.DueDate.Format("02.01.2006")), "", 1, "L", false, 0, "")
	}
	if inv.OrderNumber != nil && *inv.OrderNumber != "" {
		doc.CellFormat(0, 5, tr("Objednávka č.: "+*inv.OrderNumber), "", 1, "L", false, 0, "")
	}
	doc.Ln(3)

	// payment box
	doc.SetFillColor(219, 234, 254)
	doc.SetFont("Helvetica", "B", 11)
	boxY := doc.GetY()
	doc.Rect(10, boxY, 120, 22, "F")
	doc.SetXY(14, boxY+3)
	doc.CellFormat(112, 5, tr(fmt.Sprintf("Suma na úhradu: %.2f EUR", inv.TotalPrice)), "", 1, "L", false, 0, "")
	doc.SetX(14)
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(112, 5, tr("Variabilný symbol: "+inv.VariableSymbol), "", 1, "L", false, 0, "")
	doc.SetX(14)
	doc.CellFormat(112, 5, tr("IBAN: "+sup.IBAN), "", 1, "L", false, 0, "")

	// Pay by square QR next to the payment box
	qrText, err := paybysquare.Encode(paybysquare.Payment{
		Amount:         inv.TotalPrice,
		VariableSymbol: inv.VariableSymbol,
		Note:           "Faktura " + inv.InvoiceNumber,
		IBAN:           sup.IBAN,
	})
	if err != nil {
		return nil, err
	}
	qrImg, err := qrPNG(qrText, 256)
	if err != nil {
		return nil, err
	}
	doc.RegisterImageOptionsReader("pay-qr", gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrImg))
	doc.ImageOptions("pay-qr", 140, boxY-4, 30, 30, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	doc.SetXY(140, boxY+26)
	doc.SetFont("Helvetica", "", 7)
	doc.CellFormat(30, 4, "PAY by square", "", 1, "C", false, 0, "")

	doc.SetY(boxY + 32)
	renderItemTable(doc, tr, inv, withVAT, vatRate)

	if inv.Notes != "" {
		doc.Ln(4)
		doc.SetFont("Helvetica", "I", 9)
		doc.MultiCell(0, 5, tr(inv.Notes), "", "L", false)
	}

	if inv.IssuedBy != "" {
		doc.Ln(8)
		doc.SetFont("Helvetica", "", 9)
		doc.CellFormat(0, 5, tr("Vystavil: "+inv.IssuedBy), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func renderItemTable(doc *gofpdf.Fpdf, tr func(string) string, inv *entity.Invoice, withVAT bool, vatRate float64) {
	doc.SetFont("Helvetica", "B", 9)
	doc.SetFillColor(229, 231, 235)
	if withVAT {
		doc.CellFormat(55, 7, tr("Názov"), "1", 0, "L", true, 0, "")
		doc.CellFormat(30, 7, tr("Rozmery"), "1", 0, "L", true, 0, "")
		doc.CellFormat(15, 7, tr("Ks"), "1", 0, "C", true, 0, "")
		doc.CellFormat(25, 7, tr("Cena/ks"), "1", 0, "R", true, 0, "")
		doc.CellFormat(25, 7, tr("Bez DPH"), "1", 0, "R", true, 0, "")
		doc.CellFormat(20, 7, tr(fmt.Sprintf("DPH %.0f%%", vatRate*100)), "1", 0, "R", true, 0, "")
		doc.CellFormat(20, 7, tr("S DPH"), "1", 1, "R", true, 0, "")
	} else {
		doc.CellFormat(70, 7, tr("Názov"), "1", 0, "L", true, 0, "")
		doc.CellFormat(40, 7, tr("Rozmery"), "1", 0, "L", true, 0, "")
		doc.CellFormat(20, 7, tr("Ks"), "1", 0, "C", true, 0, "")
		doc.CellFormat(30, 7, tr("Cena/ks"), "1", 0, "R", true, 0, "")
		doc.CellFormat(30, 7, tr("Spolu"), "1", 1, "R", true, 0, "")
	}

	doc.SetFont("Helvetica", "", 9)
	var netTotal, vatTotal float64
	for _, line := range inv.Items {
		name := line.Name
		if line.Material != "" {
			name += " (" + line.Material + ")"
		}
		if withVAT {
			vat := money.Round2(line.TotalPrice * vatRate)
			gross := money.WithVAT(line.TotalPrice, vatRate)
			netTotal += line.TotalPrice
			vatTotal += vat
			doc.CellFormat(55, 6, tr(name), "1", 0, "L", false, 0, "")
			doc.CellFormat(30, 6, tr(line.Dimensions), "1", 0, "L", false, 0, "")
			doc.CellFormat(15, 6, fmt.Sprintf("%d", line.Quantity), "1", 0, "C", false, 0, "")
			doc.CellFormat(25, 6, fmt.Sprintf("%.2f", line.UnitPrice), "1", 0, "R", false, 0, "")
			doc.CellFormat(25, 6, fmt.Sprintf("%.2f", line.TotalPrice), "1", 0, "R", false, 0, "")
			doc.CellFormat(20, 6, fmt.Sprintf("%.2f", vat), "1", 0, "R", false, 0, "")
			doc.CellFormat(20, 6, fmt.Sprintf("%.2f", gross), "1", 1, "R", false, 0, "")
		} else {
			doc.CellFormat(70, 6, tr(name), "1", 0, "L", false, 0, "")
			doc.CellFormat(40, 6, tr(line.Dimensions), "1", 0, "L", false, 0, "")
			doc.CellFormat(20, 6, fmt.Sprintf("%d", line.Quantity), "1", 0, "C", false, 0, "")
			doc.CellFormat(30, 6, fmt.Sprintf("%.2f", line.UnitPrice), "1", 0, "R", false, 0, "")
			doc.CellFormat(30, 6, fmt.Sprintf("%.2f", line.TotalPrice), "1", 1, "R", false, 0, "")
		}
	}

	doc.Ln(2)
	doc.SetFont("Helvetica", "B", 10)
	if withVAT {
		doc.CellFormat(0, 6, tr(fmt.Sprintf("Základ dane: %.2f EUR", money.Round2(netTotal))), "", 1, "R", false, 0, "")
		doc.CellFormat(0, 6, tr(fmt.Sprintf("DPH %.0f%%: %.2f EUR", vatRate*100, money.Round2(vatTotal))), "", 1, "R", false, 0, "")
	}
	doc.CellFormat(0, 7, tr(fmt.Sprintf("Spolu na úhradu: %.2f EUR", inv.TotalPrice)), "", 1, "R", false, 0, "")
}
