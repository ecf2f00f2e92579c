package entity

import (
	"time"

	"gorm.io/datatypes"
)

// InvoiceLine is one line of an invoice's item snapshot. The snapshot
// is taken when the invoice is created; later edits to the source
// order items never change an issued invoice.
type InvoiceLine struct {
	Name       string  `json:"name"`
	Material   string  `json:"material"`
	Dimensions string  `json:"dimensions"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	TotalPrice float64 `json:"total_price"`
	NotesCore  string  `json:"notes_core,omitempty"`
	NotesCover string  `json:"notes_cover,omitempty"`
}

// Invoice holds an issued invoice. The invoice number is the 4-digit
// year plus a zero-padded 4-digit sequence that resets yearly. OrderID
// is kept as a plain reference, not a relation; the authoritative
// content is the Items snapshot. Only Items, Notes and DueDate may be
// patched after creation.
type Invoice struct {
	ID              uint                                  `json:"id" gorm:"primaryKey"`
	InvoiceNumber   string                                `json:"invoice_number" gorm:"size:20;not null;uniqueIndex"`
	OrderID         *uint                                 `json:"order_id"`
	OrderNumber     *string                               `json:"order_number" gorm:"size:50"`
	IssueDate       time.Time                             `json:"issue_date"`
	DueDate         *time.Time                            `json:"due_date"`
	TotalPrice      float64                               `json:"total_price" gorm:"type:decimal(10,2);not null"`
	VariableSymbol  string                                `json:"variable_symbol" gorm:"size:20"`
	Notes           string                                `json:"notes" gorm:"type:text"`
	CustomerName    string                                `json:"customer_name" gorm:"not null"`
	CustomerAddress string                                `json:"customer_address"`
	CustomerICO     *string                               `json:"customer_ico" gorm:"column:customer_ico"`
	IssuedBy        string                                `json:"issued_by"`
	Items           datatypes.JSONSlice[InvoiceLine]      `json:"items" gorm:"not null"`
	CreatedAt       time.Time                             `json:"created_at"`
}

func (Invoice) TableName() string {
	return "invoices"
}
