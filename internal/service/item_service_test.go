package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"stylescout-go/internal/extract"
	"stylescout-go/internal/model"
)

type fakeItemRepo struct {
	items []model.CatalogItem
}

func (r *fakeItemRepo) CreateItem(item *model.CatalogItem) error {
	item.ID = uint(len(r.items) + 1)
	r.items = append(r.items, *item)
	return nil
}

type fakeImageStore struct {
	saved int
	err   error
}

func (s *fakeImageStore) SaveImage(userID uint, payload string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.saved++
	return "1/123.jpg", nil
}

// fixedStrategy returns the same result for every URL.
type fixedStrategy struct {
	result extract.Result
	calls  int
}

func (s *fixedStrategy) Name() string { return "fixed" }

func (s *fixedStrategy) Extract(ctx context.Context, pageURL string) (extract.Result, error) {
	s.calls++
	return s.result, nil
}

func TestIngestFromURL(t *testing.T) {
	repo := &fakeItemRepo{}
	strategy := &fixedStrategy{result: extract.Result{
		Title:       "Air Max 90",
		Description: "Iconic running sneaker with visible Air cushioning.",
		Brand:       "Nike",
		ImageURL:    "https://img.example.com/air-max-90.jpg",
	}}
	svc := NewItemService(repo, &fakeImageStore{}, extract.NewChain(strategy), nil)

	item, err := svc.Ingest(context.Background(), 1, ItemSubmission{
		URL: "https://www.nike.com/t/air-max-90",
	})
	assert.NoError(t, err)
	assert.Equal(t, "Air Max 90", item.ProductName)
	assert.Equal(t, "Nike", item.BrandName)
	assert.Equal(t, "shoes", item.Category)
	assert.Len(t, repo.items, 1)
}

func TestIngestCallerFieldsAreAuthoritative(t *testing.T) {
	repo := &fakeItemRepo{}
	strategy := &fixedStrategy{result: extract.Result{
		Title: "Scraped Name",
		Brand: "Scraped Brand",
	}}
	svc := NewItemService(repo, &fakeImageStore{}, extract.NewChain(strategy), nil)

	item, err := svc.Ingest(context.Background(), 1, ItemSubmission{
		URL:   "https://example.com/p/some-jacket",
		Title: "My Jacket",
	})
	assert.NoError(t, err)
	assert.Equal(t, "My Jacket", item.ProductName)
	// The chain still fills the fields the caller left unset.
	assert.Equal(t, "Scraped Brand", item.BrandName)
}

func TestIngestManualEntrySkipsChain(t *testing.T) {
	repo := &fakeItemRepo{}
	strategy := &fixedStrategy{}
	images := &fakeImageStore{}
	svc := NewItemService(repo, images, extract.NewChain(strategy), nil)

	item, err := svc.Ingest(context.Background(), 1, ItemSubmission{
		ImageData: "data:image/jpeg;base64,/9j/4AAQ",
		Title:     "Vintage Tee",
		BrandName: "Levi's",
	})
	assert.NoError(t, err)
	assert.Equal(t, 0, strategy.calls)
	assert.Equal(t, 1, images.saved)
	assert.Equal(t, "1/123.jpg", item.StoredImagePath)
	assert.Equal(t, "t-shirts", item.Category)
}

func TestIngestPlaceholdersWhenUnresolved(t *testing.T) {
	repo := &fakeItemRepo{}
	// Chain resolves nothing at all.
	svc := NewItemService(repo, &fakeImageStore{}, extract.NewChain(&fixedStrategy{}), nil)

	item, err := svc.Ingest(context.Background(), 1, ItemSubmission{
		URL: "https://example.com/",
	})
	assert.NoError(t, err)
	assert.Equal(t, model.UnknownItem, item.ProductName)
	assert.Equal(t, model.UnknownBrand, item.BrandName)
	assert.Equal(t, "shirts", item.Category)
}

func TestIngestImageStoreFailure(t *testing.T) {
	repo := &fakeItemRepo{}
	images := &fakeImageStore{err: errors.New("disk full")}
	svc := NewItemService(repo, images, extract.NewChain(&fixedStrategy{}), nil)

	_, err := svc.Ingest(context.Background(), 1, ItemSubmission{
		ImageData: "data:image/jpeg;base64,/9j/4AAQ",
	})
	assert.Error(t, err)
	assert.Empty(t, repo.items)
}
