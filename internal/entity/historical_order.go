package entity

import (
	"time"
)

// HistoricalOrder is the permanent record of an archived order. It
// keeps a denormalized customer name and ICO snapshot instead of a
// live customer reference, so later edits to the customer record do
// not rewrite history.
type HistoricalOrder struct {
	ID               uint        `json:"id" gorm:"primaryKey"`
	OrderNumber      string      `json:"order_number" gorm:"size:50;not null;index"`
	CustomerName     string      `json:"customer_name" gorm:"size:100;not null"`
	ICO              *string     `json:"ico" gorm:"column:ico"`
	IssueDate        time.Time   `json:"issue_date"`
	TotalPrice       float64     `json:"total_price" gorm:"type:decimal(10,2)"`
	Notes            string      `json:"notes" gorm:"type:text"`
	ProductionStatus OrderStatus `json:"production_status" gorm:"size:20;not null"`
	ArchivedAt       time.Time   `json:"archived_at" gorm:"autoCreateTime"`

	Items []HistoricalOrderItem `json:"order_items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (HistoricalOrder) TableName() string {
	return "historical_orders"
}

// HistoricalOrderItem mirrors OrderItem minus the live-only invoice
// reference.
type HistoricalOrderItem struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	OrderID      uint       `json:"order_id" gorm:"not null;index"`
	ProductID    uint       `json:"product_id" gorm:"not null"`
	ProductName  string     `json:"product_name" gorm:"size:100;not null"`
	Price        float64    `json:"price" gorm:"type:decimal(10,2);not null"`
	Quantity     int        `json:"quantity" gorm:"not null"`
	NotesCore    string     `json:"notes_core" gorm:"type:text"`
	NotesCover   string     `json:"notes_cover" gorm:"type:text"`
	Label1       string     `json:"label_1" gorm:"column:label_1;type:text"`
	Label2       string     `json:"label_2" gorm:"column:label_2;type:text"`
	Label3       string     `json:"label_3" gorm:"column:label_3;type:text"`
	MaterialName string     `json:"material_name"`
	Length       float64    `json:"length" gorm:"type:decimal(10,2)"`
	Width        float64    `json:"width" gorm:"type:decimal(10,2)"`
	Height       float64    `json:"height" gorm:"type:decimal(10,2)"`
	TechWidth    float64    `json:"tech_width" gorm:"type:decimal(10,2)"`
	Status       ItemStatus `json:"status" gorm:"size:20;not null;index"`

	Order *HistoricalOrder `json:"order,omitempty" gorm:"foreignKey:OrderID"`
}

func (HistoricalOrderItem) TableName() string {
	return "historical_order_items"
}

// ArchivedItem is a denormalized snapshot of a single order item taken
// when the item is archived on its own, independently of full-order
// archival. Rows are written once and never mutated.
type ArchivedItem struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	OriginalItemID uint       `json:"original_item_id" gorm:"not null;uniqueIndex"`
	ProductName    string     `json:"product_name" gorm:"not null"`
	Quantity       int        `json:"quantity" gorm:"not null"`
	Price          float64    `json:"price" gorm:"type:decimal(10,2);not null"`
	NotesCore      string     `json:"notes_core" gorm:"type:text"`
	NotesCover     string     `json:"notes_cover" gorm:"type:text"`
	Label1         string     `json:"label_1" gorm:"column:label_1;type:text"`
	Label2         string     `json:"label_2" gorm:"column:label_2;type:text"`
	Label3         string     `json:"label_3" gorm:"column:label_3;type:text"`
	MaterialName   string     `json:"material_name"`
	Length         float64    `json:"length" gorm:"type:decimal(10,2)"`
	Width          float64    `json:"width" gorm:"type:decimal(10,2)"`
	Height         float64    `json:"height" gorm:"type:decimal(10,2)"`
	TechWidth      float64    `json:"tech_width" gorm:"type:decimal(10,2)"`
	OrderNumber    *string    `json:"order_number" gorm:"size:50"`
	CustomerName   *string    `json:"customer_name" gorm:"size:100"`
	ICO            *string    `json:"ico" gorm:"column:ico;size:20"`
	ArchivedAt     time.Time  `json:"archived_at" gorm:"autoCreateTime"`
}

func (ArchivedItem) TableName() string {
	return "archived_items"
}
