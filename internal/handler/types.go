package handler

import (
	"time"

	"stylescout-go/internal/model"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    int    `json:"code"`
}

type ScanRequest struct {
	MaxResults int `json:"max_results"`
}

type MessageResponse struct {
	ID                uint       `json:"id"`
	ProviderMessageID string     `json:"provider_message_id"`
	Source            string     `json:"source"`
	SenderEmail       string     `json:"sender_email"`
	SenderName        string     `json:"sender_name"`
	BrandName         string     `json:"brand_name"`
	Subject           string     `json:"subject"`
	Snippet           string     `json:"snippet"`
	Category          string     `json:"category"`
	ExpiresAt         *time.Time `json:"expires_at,omitempty"`
	IsExpired         bool       `json:"is_expired"`
	OrderNumber       *string    `json:"order_number,omitempty"`
	OrderTotal        *float64   `json:"order_total,omitempty"`
	OrderItemCount    *int       `json:"order_item_count,omitempty"`
	ReceivedAt        time.Time  `json:"received_at"`
}

type ScanResponse struct {
	ProcessedCount int               `json:"processed_count"`
	Messages       []MessageResponse `json:"messages"`
}

type CredentialRequest struct {
	AccountAddress string    `json:"account_address" binding:"required"`
	AccessToken    string    `json:"access_token" binding:"required"`
	RefreshToken   string    `json:"refresh_token"`
	ExpiresAt      time.Time `json:"expires_at"`
	Scope          string    `json:"scope"`
}

type ItemRequest struct {
	URL          string   `json:"url"`
	ImageData    string   `json:"image_data"`
	Title        string   `json:"title"`
	BrandName    string   `json:"brand_name"`
	Description  string   `json:"description"`
	Price        *float64 `json:"price"`
	Size         string   `json:"size"`
	Color        string   `json:"color"`
	Category     string   `json:"category"`
	PurchaseDate string   `json:"purchase_date"`
}

type ItemResponse struct {
	Success bool              `json:"success"`
	Item    model.CatalogItem `json:"item"`
}

type SuppressBrandRequest struct {
	BrandName string `json:"brand_name" binding:"required"`
}

// messageResponse derives the expiry flag at read time so stored rows
// never go stale.
func messageResponse(m model.IngestedMessage, now time.Time) MessageResponse {
	return MessageResponse{
		ID:                m.ID,
		ProviderMessageID: m.ProviderMessageID,
		Source:            m.Source,
		SenderEmail:       m.SenderEmail,
		SenderName:        m.SenderName,
		BrandName:         m.BrandName,
		Subject:           m.Subject,
		Snippet:           m.Snippet,
		Category:          m.Category,
		ExpiresAt:         m.ExpiresAt,
		IsExpired:         m.IsExpired(now),
		OrderNumber:       m.OrderNumber,
		OrderTotal:        m.OrderTotal,
		OrderItemCount:    m.OrderItemCount,
		ReceivedAt:        m.ReceivedAt,
	}
}
