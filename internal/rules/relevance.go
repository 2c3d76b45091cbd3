package rules

import "strings"

// exclusionPatterns reject a message outright regardless of anything the
// inclusion stage would say. They cover the noisy non-fashion mail that
// otherwise matches promotional language: health, streaming, government,
// sports, finance, travel, food delivery, utilities, and generic account
// or security notices.
var exclusionPatterns = []string{
	// health / medical
	"pharmacy", "prescription", "refill", "clinic", "dental", "medicare",
	"health plan", "copay", "appointment reminder", "lab results",
	// streaming / entertainment
	"netflix", "hulu", "spotify", "disney+", "hbo", "paramount+",
	"your watchlist", "new episodes", "now streaming",
	// government / tolls
	"dmv", "irs", "toll", "e-zpass", "ezpass", "fastrak", "jury duty",
	"vehicle registration",
	// sports leagues
	"nba", "nfl", "mlb", "nhl", "espn", "fantasy football", "game day tickets",
	// finance / banking
	"bank statement", "credit card statement", "your statement is ready",
	"loan", "mortgage", "credit score", "overdraft", "direct deposit",
	"chase", "wells fargo", "capital one", "venmo", "paypal balance",
	// travel
	"flight", "airline", "boarding pass", "hotel reservation", "itinerary",
	"expedia", "airbnb", "rental car",
	// food delivery
	"doordash", "uber eats", "ubereats", "grubhub", "instacart",
	"your food order", "restaurant",
	// utilities
	"electric bill", "water bill", "gas bill", "internet service",
	"comcast", "xfinity", "verizon bill", "at&t bill", "utility payment",
	// generic account / security notices
	"verify your account", "password reset", "security alert",
	"two-factor", "verification code", "new sign-in", "suspicious activity",
	"terms of service", "privacy policy update",
}

// inclusionKeywords accept a message as fashion-domain. Checked only after
// the exclusion stage passes.
var inclusionKeywords = []string{
	"fashion", "clothing", "apparel", "style", "outfit", "wardrobe",
	"dress", "shoes", "sneaker", "boots", "denim", "jeans", "jacket",
	"hoodie", "sweater", "activewear", "athleisure", "accessories",
	"handbag", "menswear", "womenswear", "streetwear", "lookbook",
	"new arrivals", "new collection", "fall collection", "spring collection",
	"fit", "sizes", "try on",
}

// inclusionDomainSuffixes accept based on the sender's domain alone.
var inclusionDomainSuffixes = []string{
	"clothing.com", "apparel.com", "fashion.com", "wear.com",
	"outfitters.com", ".style", ".boutique",
}

// inclusionBrandTokens accept based on a fashion-flavored substring in the
// resolved brand name.
var inclusionBrandTokens = []string{
	"wear", "cloth", "apparel", "style", "denim", "thread", "fabric",
	"boutique", "outfit",
}

// IsRelevant applies the two-stage relevance gate: any exclusion match
// rejects immediately; otherwise the message is accepted only if the
// inclusion keyword list, the fashion domain suffix list, or a fashion
// brand token matches. A message matching neither list is rejected.
func IsRelevant(text, senderDomain, brandName string) bool {
	if AnyMatch(text, exclusionPatterns) {
		return false
	}
	if AnyMatch(text, inclusionKeywords) {
		return true
	}
	if AnySuffix(senderDomain, inclusionDomainSuffixes) {
		return true
	}
	if IsKnownBrandDomain(senderDomain) {
		return true
	}
	return AnyMatch(strings.ToLower(brandName), inclusionBrandTokens)
}
