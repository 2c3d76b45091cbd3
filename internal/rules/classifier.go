package rules

import "stylescout-go/internal/model"

// Keyword sets checked in fixed priority order: order confirmation first,
// then shipping, then promotion. A message matching both order and shipping
// language classifies as order_confirmation; the ordering is deliberate and
// kept as-is.
var orderKeywords = []string{
	"order confirmation", "order confirmed", "your order", "order #",
	"order number", "thanks for your order", "thank you for your order",
	"receipt for your purchase", "purchase confirmation", "we received your order",
}

var shippingKeywords = []string{
	"has shipped", "shipping confirmation", "shipment", "on its way",
	"out for delivery", "tracking number", "track your package",
	"has been delivered", "delivery update",
}

var promotionKeywords = []string{
	"sale", "% off", "percent off", "discount", "promo code", "coupon",
	"deal", "clearance", "free shipping", "limited time", "exclusive offer",
	"new arrivals", "flash sale", "save up to", "last chance",
}

// Classify assigns a category to the message text (subject + snippet).
// First matching set wins; no match yields CategoryOther.
func Classify(text string) string {
	if AnyMatch(text, orderKeywords) {
		return model.CategoryOrderConfirmation
	}
	if AnyMatch(text, shippingKeywords) {
		return model.CategoryShipping
	}
	if AnyMatch(text, promotionKeywords) {
		return model.CategoryPromotion
	}
	return model.CategoryOther
}
