package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"stylescout-go/internal/extract"
	"stylescout-go/internal/metrics"
	"stylescout-go/internal/model"
	"stylescout-go/internal/rules"
)

// ItemRepository is the slice of the repository the item pipeline needs.
type ItemRepository interface {
	CreateItem(item *model.CatalogItem) error
}

// ImageStore persists uploaded image payloads.
type ImageStore interface {
	SaveImage(userID uint, payload string) (string, error)
}

// ItemSubmission is one item/URL ingestion request. Caller-supplied fields
// are authoritative: no extraction tier overwrites them.
type ItemSubmission struct {
	URL          string
	ImageData    string
	Title        string
	BrandName    string
	Description  string
	Price        *float64
	Size         string
	Color        string
	Category     string
	PurchaseDate *time.Time
}

// ItemService runs the web extraction pipeline: store the uploaded image,
// run the extraction chain for whatever the caller left unset, categorize,
// and persist with placeholders for anything still unresolved. Extraction
// failures never fail the submission.
type ItemService struct {
	repo    ItemRepository
	images  ImageStore
	chain   *extract.Chain
	metrics *metrics.Metrics
}

// NewItemService creates the item ingestion pipeline.
func NewItemService(repo ItemRepository, images ImageStore, chain *extract.Chain, m *metrics.Metrics) *ItemService {
	return &ItemService{
		repo:    repo,
		images:  images,
		chain:   chain,
		metrics: m,
	}
}

// Ingest processes one submission for the user and returns the persisted
// catalog item.
func (s *ItemService) Ingest(ctx context.Context, userID uint, sub ItemSubmission) (*model.CatalogItem, error) {
	var storedPath string
	if sub.ImageData != "" {
		path, err := s.images.SaveImage(userID, sub.ImageData)
		if err != nil {
			return nil, fmt.Errorf("failed to store uploaded image: %w", err)
		}
		storedPath = path
	}

	result := extract.Result{
		Title:       sub.Title,
		Description: sub.Description,
		Brand:       sub.BrandName,
		Price:       sub.Price,
	}

	// The uploaded image takes precedence over anything scraped, so it
	// counts as resolved when deciding whether to run the chain.
	imageResolved := storedPath != ""
	if sub.URL != "" && (result.Title == "" || result.Brand == "" || !imageResolved) {
		result = s.chain.Run(ctx, sub.URL, result)
	}

	category := sub.Category
	if category == "" {
		category = rules.GuessCategory(strings.Join([]string{result.Title, result.Description, sub.URL}, " "))
	}

	item := &model.CatalogItem{
		UserID:          userID,
		BrandName:       orPlaceholder(result.Brand, model.UnknownBrand),
		ProductName:     orPlaceholder(result.Title, model.UnknownItem),
		Description:     result.Description,
		ImageURL:        result.ImageURL,
		StoredImagePath: storedPath,
		Price:           result.Price,
		Size:            sub.Size,
		Color:           sub.Color,
		Category:        category,
		SourceURL:       sub.URL,
		PurchaseDate:    sub.PurchaseDate,
	}

	if err := s.repo.CreateItem(item); err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ItemIngests.Inc()
	}

	logrus.Infof("Ingested catalog item %q (%s) for user %d", item.ProductName, item.Category, userID)
	return item, nil
}

func orPlaceholder(value, placeholder string) string {
	if strings.TrimSpace(value) == "" {
		return placeholder
	}
	return value
}
