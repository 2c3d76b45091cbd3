package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"stylescout-go/internal/model"
)

func TestBuildQueriesRespectsQuota(t *testing.T) {
	policy := QuotaPolicy{MaxMessages: 50, MaxBrands: 8, MaxPerBrand: 10}

	queries := BuildQueries(policy, nil)

	// One promotional query plus one per brand, capped at MaxBrands.
	assert.Len(t, queries, 1+8)

	promo := queries[0]
	assert.Equal(t, model.SourcePromotionalQuery, promo.Source)
	assert.Equal(t, int64(25), promo.Max)
	assert.Contains(t, promo.Query, "category:promotions")

	for _, q := range queries[1:] {
		assert.Equal(t, model.SourceInboxQuery, q.Source)
		assert.Equal(t, int64(10), q.Max)
		assert.Contains(t, q.Query, "newer_than:30d")
	}
}

func TestBuildQueriesPrefersSeenBrands(t *testing.T) {
	policy := QuotaPolicy{MaxMessages: 50, MaxBrands: 3, MaxPerBrand: 10}

	queries := BuildQueries(policy, []string{"Patagonia", "Nike"})

	var brands []string
	for _, q := range queries[1:] {
		brands = append(brands, q.Brand)
	}
	// Seen brands come first; the seed list fills remaining slots without
	// duplicating Nike.
	assert.Equal(t, []string{"Patagonia", "Nike", "Adidas"}, brands)
}

func TestBuildQueriesQuotesSpacedBrands(t *testing.T) {
	policy := QuotaPolicy{MaxMessages: 50, MaxBrands: 1, MaxPerBrand: 10}

	queries := BuildQueries(policy, []string{"Banana Republic"})
	assert.True(t, strings.Contains(queries[1].Query, `from:"Banana Republic"`))
}

func TestWithMaxMessagesOverride(t *testing.T) {
	policy := QuotaPolicy{MaxMessages: 50, MaxBrands: 8, MaxPerBrand: 10}

	assert.Equal(t, 20, policy.WithMaxMessages(20).MaxMessages)
	// Zero and negative leave the configured cap in place.
	assert.Equal(t, 50, policy.WithMaxMessages(0).MaxMessages)
	assert.Equal(t, 50, policy.WithMaxMessages(-1).MaxMessages)
}
