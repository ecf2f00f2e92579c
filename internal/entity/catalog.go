package entity

// Mattress is a catalog entry for a mattress model. The base price and
// size coefficient feed the price suggestion in the order form.
type Mattress struct {
	ID          uint     `json:"id" gorm:"primaryKey"`
	Name        string   `json:"name" gorm:"size:50;not null"`
	BasePrice   *float64 `json:"base_price" gorm:"type:decimal(10,2)"`
	Coefficient *float64 `json:"coefficient" gorm:"type:decimal(5,2)"`
}

func (Mattress) TableName() string {
	return "mattresses"
}

// Material is a catalog entry for a core/cover material.
type Material struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:50;not null;uniqueIndex"`
}

func (Material) TableName() string {
	return "materials"
}
