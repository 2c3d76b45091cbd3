package model

import (
	"time"

	"gorm.io/gorm"
)

// Placeholder values persisted when extraction resolves nothing. The
// submission flow prefers best-effort completion over failing the insert.
const (
	UnknownItem  = "Unknown Item"
	UnknownBrand = "Unknown Brand"
)

// CatalogItem is a wardrobe item created by the web extraction pipeline or
// by manual entry. BrandName correlates with IngestedMessage.BrandName by
// string equality only; there is no foreign key between the two.
type CatalogItem struct {
	ID              uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID          uint           `json:"user_id" gorm:"not null;index"`
	BrandName       string         `json:"brand_name" gorm:"type:varchar(255);not null;index"`
	ProductName     string         `json:"product_name" gorm:"type:varchar(512)"`
	Description     string         `json:"description" gorm:"type:text"`
	ImageURL        string         `json:"image_url" gorm:"type:varchar(2048)"`
	StoredImagePath string         `json:"stored_image_path" gorm:"type:varchar(512)"`
	Price           *float64       `json:"price,omitempty"`
	Size            string         `json:"size" gorm:"type:varchar(50)"`
	Color           string         `json:"color" gorm:"type:varchar(100)"`
	Category        string         `json:"category" gorm:"type:varchar(100);not null"`
	SourceURL       string         `json:"source_url" gorm:"type:varchar(2048)"`
	PurchaseDate    *time.Time     `json:"purchase_date,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// TableName specifies the table name for CatalogItem
func (CatalogItem) TableName() string {
	return "catalog_items"
}
