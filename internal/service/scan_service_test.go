package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"stylescout-go/internal/model"
)

// fakeRepo is an in-memory MessageRepository.
type fakeRepo struct {
	messages   []model.IngestedMessage
	suppressed map[string]bool
	brands     []string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{suppressed: make(map[string]bool)}
}

func (r *fakeRepo) KnownBrands(userID uint) ([]string, error) { return r.brands, nil }

func (r *fakeRepo) MessageExists(userID uint, providerMessageID string) (bool, error) {
	for _, m := range r.messages {
		if m.UserID == userID && m.ProviderMessageID == providerMessageID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) IsBrandSuppressed(userID uint, brandName string) (bool, error) {
	return r.suppressed[brandName], nil
}

func (r *fakeRepo) CreateMessage(msg *model.IngestedMessage) error {
	msg.ID = uint(len(r.messages) + 1)
	r.messages = append(r.messages, *msg)
	return nil
}

// fakeSource serves a fixed set of messages for every query.
type fakeSource struct {
	messages map[string]*ParsedMessage
	listErr  error
	closed   bool
}

func (s *fakeSource) ListMessageIDs(ctx context.Context, query string, max int64) ([]string, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var ids []string
	for id := range s.messages {
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *fakeSource) GetMessage(ctx context.Context, id string) (*ParsedMessage, error) {
	msg, ok := s.messages[id]
	if !ok {
		return nil, fmt.Errorf("no such message: %s", id)
	}
	return msg, nil
}

func (s *fakeSource) Close() error {
	s.closed = true
	return nil
}

func testPolicy() QuotaPolicy {
	return QuotaPolicy{MaxMessages: 50, MaxBrands: 8, MaxPerBrand: 10}
}

func scanServiceWith(repo *fakeRepo, source *fakeSource) *ScanService {
	factory := func(ctx context.Context, userID uint) (MailSource, error) {
		return source, nil
	}
	return NewScanService(repo, factory, testPolicy(), nil)
}

func promoMessage(id string) *ParsedMessage {
	return &ParsedMessage{
		ProviderID:  id,
		SenderEmail: "promo@email.nike.com",
		SenderName:  "Nike",
		Subject:     "Flash sale: 40% off new arrivals",
		Snippet:     "Members save on sneakers and apparel. Only 3 days left.",
		ReceivedAt:  time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestScanIngestsRelevantMessage(t *testing.T) {
	repo := newFakeRepo()
	source := &fakeSource{messages: map[string]*ParsedMessage{"m-1": promoMessage("m-1")}}
	svc := scanServiceWith(repo, source)

	result, err := svc.Scan(context.Background(), 1, 0)
	assert.NoError(t, err)
	assert.Len(t, result.Messages, 1)

	msg := result.Messages[0]
	assert.Equal(t, "Nike", msg.BrandName)
	assert.Equal(t, model.CategoryPromotion, msg.Category)
	assert.NotNil(t, msg.ExpiresAt)
	assert.True(t, source.closed)
}

func TestScanIsIdempotent(t *testing.T) {
	repo := newFakeRepo()
	source := &fakeSource{messages: map[string]*ParsedMessage{"m-1": promoMessage("m-1")}}
	svc := scanServiceWith(repo, source)

	first, err := svc.Scan(context.Background(), 1, 0)
	assert.NoError(t, err)
	assert.Len(t, first.Messages, 1)

	// The same provider message on a second run is deduplicated.
	second, err := svc.Scan(context.Background(), 1, 0)
	assert.NoError(t, err)
	assert.Empty(t, second.Messages)
	assert.Len(t, repo.messages, 1)
}

func TestScanDropsSuppressedBrand(t *testing.T) {
	repo := newFakeRepo()
	repo.suppressed["Nike"] = true
	source := &fakeSource{messages: map[string]*ParsedMessage{"m-1": promoMessage("m-1")}}
	svc := scanServiceWith(repo, source)

	result, err := svc.Scan(context.Background(), 1, 0)
	assert.NoError(t, err)
	assert.Empty(t, result.Messages)
	assert.Empty(t, repo.messages)
}

func TestScanDropsIrrelevantMessage(t *testing.T) {
	repo := newFakeRepo()
	source := &fakeSource{messages: map[string]*ParsedMessage{
		"m-2": {
			ProviderID:  "m-2",
			SenderEmail: "billing@utilityco.com",
			Subject:     "Your electric bill is ready",
			Snippet:     "Amount due: $82.10",
			ReceivedAt:  time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		},
	}}
	svc := scanServiceWith(repo, source)

	result, err := svc.Scan(context.Background(), 1, 0)
	assert.NoError(t, err)
	assert.Empty(t, result.Messages)
	// Examined but dropped still counts as processed.
	assert.Equal(t, 1, result.ProcessedCount)
}

func TestScanExtractsOrderFields(t *testing.T) {
	repo := newFakeRepo()
	source := &fakeSource{messages: map[string]*ParsedMessage{
		"m-3": {
			ProviderID:  "m-3",
			SenderEmail: "orders@jcrew.com",
			Subject:     "Order Confirmation",
			Snippet:     "Thanks for your order #JC-88210. Order total: $145.00 for 2 items",
			ReceivedAt:  time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		},
	}}
	svc := scanServiceWith(repo, source)

	result, err := svc.Scan(context.Background(), 1, 0)
	assert.NoError(t, err)
	if assert.Len(t, result.Messages, 1) {
		msg := result.Messages[0]
		assert.Equal(t, model.CategoryOrderConfirmation, msg.Category)
		if assert.NotNil(t, msg.OrderNumber) {
			assert.Equal(t, "JC-88210", *msg.OrderNumber)
		}
		if assert.NotNil(t, msg.OrderTotal) {
			assert.Equal(t, 145.00, *msg.OrderTotal)
		}
		if assert.NotNil(t, msg.OrderItemCount) {
			assert.Equal(t, 2, *msg.OrderItemCount)
		}
	}
}

func TestScanSurfacesProviderListFailure(t *testing.T) {
	repo := newFakeRepo()
	source := &fakeSource{listErr: fmt.Errorf("quota exceeded")}
	svc := scanServiceWith(repo, source)

	_, err := svc.Scan(context.Background(), 1, 0)
	assert.Error(t, err)
}

func TestScanSurfacesSourceFactoryFailure(t *testing.T) {
	repo := newFakeRepo()
	factory := func(ctx context.Context, userID uint) (MailSource, error) {
		return nil, ErrNoCredential
	}
	svc := NewScanService(repo, factory, testPolicy(), nil)

	_, err := svc.Scan(context.Background(), 1, 0)
	assert.ErrorIs(t, err, ErrNoCredential)
}
