package service

import (
	"fmt"
	"strings"

	"stylescout-go/config"
	"stylescout-go/internal/model"
)

// QuotaPolicy bounds the external calls one scan run may make: one
// promotional query capped at MaxMessages/2 plus at most MaxBrands
// brand-targeted queries of MaxPerBrand messages each.
type QuotaPolicy struct {
	MaxMessages int
	MaxBrands   int
	MaxPerBrand int
}

// QuotaPolicyFromConfig builds the policy from mail configuration.
func QuotaPolicyFromConfig(cfg *config.MailConfig) QuotaPolicy {
	return QuotaPolicy{
		MaxMessages: cfg.MaxResults,
		MaxBrands:   cfg.MaxBrands,
		MaxPerBrand: cfg.MaxPerBrand,
	}
}

// WithMaxMessages returns a copy of the policy with the message cap
// overridden, for per-request max_results.
func (p QuotaPolicy) WithMaxMessages(max int) QuotaPolicy {
	if max > 0 {
		p.MaxMessages = max
	}
	return p
}

// MailQuery is one provider search to run, with its identifier cap and the
// source tag recorded on messages it surfaces.
type MailQuery struct {
	Query  string
	Max    int64
	Source string
	Brand  string
}

// seedBrands are well-known fashion brands queried for every user, unioned
// with the brands already seen in their ingested mail.
var seedBrands = []string{
	"Nike", "Adidas", "Zara", "H&M", "Uniqlo", "J.Crew",
	"Madewell", "ASOS", "Everlane", "Lululemon",
}

// promotionalSenderTokens approximate marketing-style senders for providers
// without a promotions category filter.
var promotionalSenderTokens = []string{"promo", "sale", "offers", "deals", "newsletter", "marketing"}

// BuildQueries produces the scan run's query set under the quota policy:
// one broad promotional query and one inbox query per brand, brands drawn
// from the union of already-seen brands and the seed list.
func BuildQueries(policy QuotaPolicy, knownBrands []string) []MailQuery {
	queries := []MailQuery{
		{
			Query:  fmt.Sprintf("category:promotions OR from:(%s)", strings.Join(promotionalSenderTokens, " OR ")),
			Max:    int64(policy.MaxMessages / 2),
			Source: model.SourcePromotionalQuery,
		},
	}

	for _, brand := range unionBrands(knownBrands, seedBrands, policy.MaxBrands) {
		queries = append(queries, MailQuery{
			Query:  fmt.Sprintf("from:%s newer_than:30d", quoteIfSpaced(brand)),
			Max:    int64(policy.MaxPerBrand),
			Source: model.SourceInboxQuery,
			Brand:  brand,
		})
	}

	return queries
}

// unionBrands merges seen brands with the seed list, case-insensitively,
// preserving order (seen brands first) and capping at max.
func unionBrands(seen, seed []string, max int) []string {
	var out []string
	have := make(map[string]bool)
	for _, brand := range append(append([]string{}, seen...), seed...) {
		key := strings.ToLower(strings.TrimSpace(brand))
		if key == "" || have[key] {
			continue
		}
		have[key] = true
		out = append(out, brand)
		if len(out) >= max {
			break
		}
	}
	return out
}

func quoteIfSpaced(s string) string {
	if strings.ContainsAny(s, " \t") {
		return `"` + s + `"`
	}
	return s
}
