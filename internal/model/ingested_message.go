package model

import (
	"time"

	"gorm.io/gorm"
)

// Message categories assigned by the classifier, in priority order.
const (
	CategoryOrderConfirmation = "order_confirmation"
	CategoryShipping          = "shipping"
	CategoryPromotion         = "promotion"
	CategoryOther             = "other"
)

// Message sources, recording which search query surfaced the message.
const (
	SourcePromotionalQuery = "promotional_query"
	SourceInboxQuery       = "inbox_query"
)

// IngestedMessage is a mail message accepted by the relevance filter and
// persisted by the scan pipeline. (user_id, provider_message_id) is the
// dedup key and carries a storage-level unique constraint so concurrent
// scans cannot double-insert.
type IngestedMessage struct {
	ID                uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID            uint           `json:"user_id" gorm:"not null;uniqueIndex:idx_user_provider_message"`
	ProviderMessageID string         `json:"provider_message_id" gorm:"type:varchar(255);not null;uniqueIndex:idx_user_provider_message"`
	SenderEmail       string         `json:"sender_email" gorm:"type:varchar(255)"`
	SenderName        string         `json:"sender_name" gorm:"type:varchar(255)"`
	BrandName         string         `json:"brand_name" gorm:"type:varchar(255);index"`
	Subject           string         `json:"subject" gorm:"type:varchar(998)"`
	Snippet           string         `json:"snippet" gorm:"type:text"`
	ReceivedAt        time.Time      `json:"received_at"`
	Category          string         `json:"category" gorm:"type:varchar(50);not null"`
	Source            string         `json:"source" gorm:"type:varchar(50);not null"`
	ExpiresAt         *time.Time     `json:"expires_at,omitempty"`
	OrderNumber       *string        `json:"order_number,omitempty" gorm:"type:varchar(255)"`
	OrderTotal        *float64       `json:"order_total,omitempty"`
	OrderItemCount    *int           `json:"order_item_count,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	DeletedAt         gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// TableName specifies the table name for IngestedMessage
func (IngestedMessage) TableName() string {
	return "ingested_messages"
}

// IsExpired reports whether the promotion's deadline has passed. It is
// derived at read time and never stored.
func (m *IngestedMessage) IsExpired(now time.Time) bool {
	return m.ExpiresAt != nil && now.After(*m.ExpiresAt)
}
