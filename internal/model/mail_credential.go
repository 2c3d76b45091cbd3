package model

import (
	"time"
)

// MailCredential holds the OAuth2 token pair for one user's mail account.
// Only the token lifecycle manager mutates it; expires_at always reflects
// the token currently valid for use.
type MailCredential struct {
	ID             uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID         uint      `json:"user_id" gorm:"not null;uniqueIndex"`
	AccountAddress string    `json:"account_address" gorm:"type:varchar(255);not null"`
	AccessToken    string    `json:"-" gorm:"type:text;not null"`
	RefreshToken   string    `json:"-" gorm:"type:text;not null"`
	ExpiresAt      time.Time `json:"expires_at"`
	Scope          string    `json:"scope" gorm:"type:varchar(512)"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName specifies the table name for MailCredential
func (MailCredential) TableName() string {
	return "mail_credentials"
}
