package rules

// DefaultCategory is persisted when no category keyword matches at all,
// biasing unclassifiable items into shirts.
const DefaultCategory = "shirts"

// categoryRules is the ordered keyword→category table for catalog items.
// More specific garments precede "shirt" so "t-shirt" does not fall through
// to the generic bucket; everything after follows the fixed source order.
var categoryRules = []Rule{
	{"polo", "polos"},
	{"button down", "button-downs"},
	{"button-down", "button-downs"},
	{"button up", "button-downs"},
	{"t-shirt", "t-shirts"},
	{"tee", "t-shirts"},
	{"shirt", "shirts"},
	{"jean", "jeans"},
	{"short", "shorts"},
	{"pant", "pants"},
	{"trouser", "pants"},
	{"chino", "pants"},
	{"jacket", "jackets"},
	{"coat", "jackets"},
	{"sweater", "sweaters"},
	{"cardigan", "sweaters"},
	{"hoodie", "hoodies"},
	{"activewear", "activewear"},
	{"legging", "activewear"},
	{"jogger", "activewear"},
	{"shoe", "shoes"},
	{"sneaker", "shoes"},
	{"boot", "shoes"},
	{"loafer", "shoes"},
}

// GuessCategory applies the ordered category table to the concatenated
// title, description, and URL of an item. First match wins; no match
// falls back to DefaultCategory.
func GuessCategory(text string) string {
	if label, ok := FirstMatch(text, categoryRules); ok {
		return label
	}
	return DefaultCategory
}
