package entity

import (
	"time"
)

// Order is a live customer order. The order number is YYYYMMDD plus a
// zero-padded 3-digit daily sequence spanning both live and historical
// orders. ProductionStatus is derived from the items and must only be
// written through ComputeProductionStatus.
type Order struct {
	ID               uint        `json:"id" gorm:"primaryKey"`
	OrderNumber      string      `json:"order_number" gorm:"size:50;not null;uniqueIndex"`
	CustomerID       uint        `json:"customer_id" gorm:"not null;index"`
	ICO              *string     `json:"ico" gorm:"column:ico"`
	IssueDate        time.Time   `json:"issue_date"`
	TotalPrice       float64     `json:"total_price" gorm:"type:decimal(10,2)"`
	Notes            string      `json:"notes" gorm:"type:text"`
	ProductionStatus OrderStatus `json:"production_status" gorm:"size:20;not null;default:pending"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`

	Customer *Customer   `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Items    []OrderItem `json:"order_items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem is one line of an order: a product configuration, its
// quantity and its own production status. ProducedCount tracks barcode
// scans on the shop floor. The invoice reference is set once the item
// is invoiced and is dropped when the item is archived; the invoice's
// own snapshot is the authoritative record from then on.
type OrderItem struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	OrderID       uint       `json:"order_id" gorm:"not null;index"`
	ProductID     uint       `json:"product_id" gorm:"not null"`
	ProductName   string     `json:"product_name" gorm:"size:100;not null"`
	Price         float64    `json:"price" gorm:"type:decimal(10,2);not null"`
	Quantity      int        `json:"quantity" gorm:"not null;check:quantity > 0"`
	ProducedCount int        `json:"produced_count" gorm:"not null;default:0"`
	NotesCore     string     `json:"notes_core" gorm:"type:text"`
	NotesCover    string     `json:"notes_cover" gorm:"type:text"`
	Label1        string     `json:"label_1" gorm:"column:label_1;type:text"`
	Label2        string     `json:"label_2" gorm:"column:label_2;type:text"`
	Label3        string     `json:"label_3" gorm:"column:label_3;type:text"`
	MaterialName  string     `json:"material_name"`
	Length        float64    `json:"length" gorm:"type:decimal(10,2)"`
	Width         float64    `json:"width" gorm:"type:decimal(10,2)"`
	Height        float64    `json:"height" gorm:"type:decimal(10,2)"`
	TechWidth     float64    `json:"tech_width" gorm:"type:decimal(10,2)"`
	Status        ItemStatus `json:"status" gorm:"size:20;not null;default:pending;index"`
	InvoiceID     *uint      `json:"invoice_id" gorm:"index"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	Order   *Order   `json:"order,omitempty" gorm:"foreignKey:OrderID"`
	Invoice *Invoice `json:"invoice,omitempty" gorm:"foreignKey:InvoiceID;constraint:OnDelete:SET NULL"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
