package repository

import (
	"fmt"

	"gorm.io/gorm"

	"stylescout-go/internal/model"
)

type Repository struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetCredential returns the user's mail credential, or nil when none is on
// file.
func (r *Repository) GetCredential(userID uint) (*model.MailCredential, error) {
	var cred model.MailCredential
	result := r.db.Where("user_id = ?", userID).First(&cred)
	if result.Error == nil {
		return &cred, nil
	}
	if result.Error == gorm.ErrRecordNotFound {
		return nil, nil
	}
	return nil, fmt.Errorf("database error loading credential: %w", result.Error)
}

// SaveCredential inserts or replaces the user's mail credential. Concurrent
// refreshes resolve last-writer-wins; the unique index on user_id keeps one
// row per user.
func (r *Repository) SaveCredential(cred *model.MailCredential) error {
	var existing model.MailCredential
	result := r.db.Where("user_id = ?", cred.UserID).First(&existing)
	if result.Error == gorm.ErrRecordNotFound {
		if err := r.db.Create(cred).Error; err != nil {
			return fmt.Errorf("failed to create credential: %w", err)
		}
		return nil
	}
	if result.Error != nil {
		return fmt.Errorf("database error loading credential: %w", result.Error)
	}

	existing.AccountAddress = cred.AccountAddress
	existing.AccessToken = cred.AccessToken
	existing.RefreshToken = cred.RefreshToken
	existing.ExpiresAt = cred.ExpiresAt
	existing.Scope = cred.Scope
	if err := r.db.Save(&existing).Error; err != nil {
		return fmt.Errorf("failed to update credential: %w", err)
	}
	*cred = existing
	return nil
}

// ListCredentialUserIDs returns the IDs of all users with a connected mail
// account, for scheduled scans.
func (r *Repository) ListCredentialUserIDs() ([]uint, error) {
	var ids []uint
	result := r.db.Model(&model.MailCredential{}).Pluck("user_id", &ids)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list credential users: %w", result.Error)
	}
	return ids, nil
}

// MessageExists checks the dedup key before insert. The unique index on
// (user_id, provider_message_id) backstops this under concurrent scans.
func (r *Repository) MessageExists(userID uint, providerMessageID string) (bool, error) {
	var msg model.IngestedMessage
	result := r.db.Where("user_id = ? AND provider_message_id = ?", userID, providerMessageID).First(&msg)
	if result.Error == nil {
		return true, nil
	}
	if result.Error == gorm.ErrRecordNotFound {
		return false, nil
	}
	return false, fmt.Errorf("database error checking message: %w", result.Error)
}

// CreateMessage persists an ingested message.
func (r *Repository) CreateMessage(msg *model.IngestedMessage) error {
	if err := r.db.Create(msg).Error; err != nil {
		return fmt.Errorf("failed to create ingested message: %w", err)
	}
	return nil
}

// ListMessages returns the user's ingested messages, newest first.
func (r *Repository) ListMessages(userID uint) ([]model.IngestedMessage, error) {
	var msgs []model.IngestedMessage
	result := r.db.Where("user_id = ?", userID).Order("received_at DESC").Find(&msgs)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list messages: %w", result.Error)
	}
	return msgs, nil
}

// KnownBrands returns the distinct brand names already seen for this user,
// feeding the brand-targeted inbox queries.
func (r *Repository) KnownBrands(userID uint) ([]string, error) {
	var brands []string
	result := r.db.Model(&model.IngestedMessage{}).
		Where("user_id = ? AND brand_name <> ''", userID).
		Distinct().
		Pluck("brand_name", &brands)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list known brands: %w", result.Error)
	}
	return brands, nil
}

// IsBrandSuppressed checks the user's opt-out set.
func (r *Repository) IsBrandSuppressed(userID uint, brandName string) (bool, error) {
	if brandName == "" {
		return false, nil
	}
	var sb model.SuppressedBrand
	result := r.db.Where("user_id = ? AND brand_name = ?", userID, brandName).First(&sb)
	if result.Error == nil {
		return true, nil
	}
	if result.Error == gorm.ErrRecordNotFound {
		return false, nil
	}
	return false, fmt.Errorf("database error checking suppressed brand: %w", result.Error)
}

// ListSuppressedBrands returns the user's opt-out set.
func (r *Repository) ListSuppressedBrands(userID uint) ([]model.SuppressedBrand, error) {
	var brands []model.SuppressedBrand
	result := r.db.Where("user_id = ?", userID).Order("brand_name ASC").Find(&brands)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list suppressed brands: %w", result.Error)
	}
	return brands, nil
}

// SuppressBrand adds a brand to the user's opt-out set; adding an already
// suppressed brand is a no-op.
func (r *Repository) SuppressBrand(userID uint, brandName string) error {
	suppressed, err := r.IsBrandSuppressed(userID, brandName)
	if err != nil {
		return err
	}
	if suppressed {
		return nil
	}
	sb := model.SuppressedBrand{UserID: userID, BrandName: brandName}
	if err := r.db.Create(&sb).Error; err != nil {
		return fmt.Errorf("failed to suppress brand: %w", err)
	}
	return nil
}

// UnsuppressBrand removes a brand from the user's opt-out set.
func (r *Repository) UnsuppressBrand(userID uint, brandName string) error {
	result := r.db.Where("user_id = ? AND brand_name = ?", userID, brandName).
		Delete(&model.SuppressedBrand{})
	if result.Error != nil {
		return fmt.Errorf("failed to unsuppress brand: %w", result.Error)
	}
	return nil
}

// CreateItem persists a catalog item.
func (r *Repository) CreateItem(item *model.CatalogItem) error {
	if err := r.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create catalog item: %w", err)
	}
	return nil
}

// ListItems returns the user's catalog items, newest first.
func (r *Repository) ListItems(userID uint) ([]model.CatalogItem, error) {
	var items []model.CatalogItem
	result := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&items)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list items: %w", result.Error)
	}
	return items, nil
}
