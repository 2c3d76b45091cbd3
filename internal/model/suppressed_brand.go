package model

import (
	"time"
)

// SuppressedBrand is a brand the user opted out of; the scan pipeline
// consults the set before persisting an ingested message. Rows delete hard
// so re-suppressing after an unsuppress does not trip the unique index.
type SuppressedBrand struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_brand"`
	BrandName string    `json:"brand_name" gorm:"type:varchar(255);not null;uniqueIndex:idx_user_brand"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for SuppressedBrand
func (SuppressedBrand) TableName() string {
	return "suppressed_brands"
}
