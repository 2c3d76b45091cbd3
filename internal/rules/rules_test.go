package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"stylescout-go/internal/model"
)

func TestFirstMatchOrder(t *testing.T) {
	table := []Rule{
		{"t-shirt", "t-shirts"},
		{"shirt", "shirts"},
	}

	label, ok := FirstMatch("Vintage T-Shirt", table)
	assert.True(t, ok)
	assert.Equal(t, "t-shirts", label)

	// Later rule matches when the earlier one does not.
	label, ok = FirstMatch("Linen Shirt", table)
	assert.True(t, ok)
	assert.Equal(t, "shirts", label)

	_, ok = FirstMatch("Wool Socks", table)
	assert.False(t, ok)
}

func TestAnyMatchCaseInsensitive(t *testing.T) {
	assert.True(t, AnyMatch("FLASH SALE today", []string{"flash sale"}))
	assert.False(t, AnyMatch("nothing here", []string{"flash sale"}))
}

func TestRelevanceExclusionWinsOverInclusion(t *testing.T) {
	// Fashion keywords are present, but the pharmacy exclusion rejects.
	text := "New arrivals at your pharmacy: style-ish compression socks"
	assert.False(t, IsRelevant(text, "cvs.com", "Cvs"))

	// Same text without the excluded term passes on the fashion keyword.
	assert.True(t, IsRelevant("New arrivals this week", "example.com", ""))
}

func TestRelevanceInclusionArms(t *testing.T) {
	// Keyword arm.
	assert.True(t, IsRelevant("our fall collection is here", "example.com", ""))
	// Domain suffix arm.
	assert.True(t, IsRelevant("20% off everything", "shop.acmeclothing.com", ""))
	// Known brand domain arm: no fashion keyword in the text at all.
	assert.True(t, IsRelevant("members get early access", "email.nike.com", "Nike"))
	// Brand token arm.
	assert.True(t, IsRelevant("big savings inside", "example.com", "Acme Apparel"))
	// No arm matches.
	assert.False(t, IsRelevant("20% off everything", "example.com", "Acme"))
}

func TestClassifyPriority(t *testing.T) {
	// Order language beats shipping language when both appear.
	text := "Your order #12345 has shipped"
	assert.Equal(t, model.CategoryOrderConfirmation, Classify(text))

	assert.Equal(t, model.CategoryShipping, Classify("Your package is out for delivery"))
	assert.Equal(t, model.CategoryPromotion, Classify("Flash sale: 40% off sitewide"))
	assert.Equal(t, model.CategoryOther, Classify("See you at the fitting"))
}

func TestParseExpirationAbsolute(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	got := ParseExpiration("Sale ends 12/31/2025!", now)
	if assert.NotNil(t, got) {
		assert.Equal(t, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), *got)
	}

	got = ParseExpiration("Offer valid until 7/4/2025", now)
	if assert.NotNil(t, got) {
		assert.Equal(t, time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC), *got)
	}

	assert.Nil(t, ParseExpiration("No deadline mentioned", now))
}

func TestParseExpirationRelative(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	got := ParseExpiration("Only 3 days left to save", now)
	if assert.NotNil(t, got) {
		assert.Equal(t, now.Add(72*time.Hour), *got)
	}

	got = ParseExpiration("12 hours left!", now)
	if assert.NotNil(t, got) {
		assert.Equal(t, now.Add(12*time.Hour), *got)
	}

	// Absolute date wins when both forms appear.
	got = ParseExpiration("2 days left, ends 12/31/2025", now)
	if assert.NotNil(t, got) {
		assert.Equal(t, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), *got)
	}
}

func TestParseOrderInfo(t *testing.T) {
	info := ParseOrderInfo("Order #AB-12345 confirmed. Order total: $129.99 for 3 items")
	if assert.NotNil(t, info.Number) {
		assert.Equal(t, "AB-12345", *info.Number)
	}
	if assert.NotNil(t, info.Total) {
		assert.Equal(t, 129.99, *info.Total)
	}
	if assert.NotNil(t, info.ItemCount) {
		assert.Equal(t, 3, *info.ItemCount)
	}
}

func TestParseOrderInfoPartial(t *testing.T) {
	// Only a total; number and count stay nil.
	info := ParseOrderInfo("You paid $49.50 today")
	assert.Nil(t, info.Number)
	if assert.NotNil(t, info.Total) {
		assert.Equal(t, 49.50, *info.Total)
	}
	assert.Nil(t, info.ItemCount)

	// Thousands separator in the total.
	info = ParseOrderInfo("Total: $1,249.00")
	if assert.NotNil(t, info.Total) {
		assert.Equal(t, 1249.00, *info.Total)
	}
}

func TestResolveBrand(t *testing.T) {
	// Known domain, with and without subdomains.
	assert.Equal(t, "Nike", ResolveBrand("nike.com"))
	assert.Equal(t, "Nike", ResolveBrand("email.nike.com"))
	assert.Equal(t, "H&M", ResolveBrand("news.hm.com"))

	// Unknown domain falls back to the title-cased second-level label.
	assert.Equal(t, "Somebrand", ResolveBrand("mail.somebrand.com"))
	assert.Equal(t, "Acme Threads", ResolveBrand("acme-threads.co.uk"))

	assert.Equal(t, "", ResolveBrand(""))
}

func TestResolveBrandFromURL(t *testing.T) {
	assert.Equal(t, "Nike", ResolveBrandFromURL("https://www.nike.com/t/air-max-90"))
	// Storefront aliases beat the second-level fallback.
	assert.Equal(t, "Amazon", ResolveBrandFromURL("https://www.amazon.com/dp/B0ABCD"))
	assert.Equal(t, "Shopify Store", ResolveBrandFromURL("https://acme.myshopify.com/products/tee"))
	assert.Equal(t, "", ResolveBrandFromURL("not a url"))
}

func TestDomainFromAddress(t *testing.T) {
	assert.Equal(t, "nike.com", DomainFromAddress("promo@nike.com"))
	assert.Equal(t, "nike.com", DomainFromAddress("Nike <promo@Nike.com>"))
	assert.Equal(t, "", DomainFromAddress("not-an-address"))
}

func TestGuessCategory(t *testing.T) {
	assert.Equal(t, "t-shirts", GuessCategory("Graphic T-Shirt"))
	// "polo" precedes the generic shirt rule.
	assert.Equal(t, "polos", GuessCategory("Pique Polo Shirt"))
	assert.Equal(t, "jeans", GuessCategory("Slim fit jeans in dark wash"))
	assert.Equal(t, "shoes", GuessCategory("https://shop.example.com/products/retro-sneaker"))
	// No keyword at all falls back to the default.
	assert.Equal(t, DefaultCategory, GuessCategory("Silk Scarf"))
}
