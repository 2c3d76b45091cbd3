package rules

import (
	"net/mail"
	"net/url"
	"strings"
)

// brandByDomain maps known retailer domains to canonical brand names.
// Lookups strip subdomains, so promo senders like email.nike.com resolve
// through the nike.com entry.
var brandByDomain = map[string]string{
	"nike.com":               "Nike",
	"adidas.com":             "Adidas",
	"newbalance.com":         "New Balance",
	"puma.com":               "Puma",
	"reebok.com":             "Reebok",
	"converse.com":           "Converse",
	"vans.com":               "Vans",
	"underarmour.com":        "Under Armour",
	"lululemon.com":          "Lululemon",
	"patagonia.com":          "Patagonia",
	"thenorthface.com":       "The North Face",
	"carhartt.com":           "Carhartt",
	"champion.com":           "Champion",
	"levi.com":               "Levi's",
	"levis.com":              "Levi's",
	"zara.com":               "Zara",
	"hm.com":                 "H&M",
	"uniqlo.com":             "Uniqlo",
	"gap.com":                "Gap",
	"oldnavy.com":            "Old Navy",
	"bananarepublic.com":     "Banana Republic",
	"jcrew.com":              "J.Crew",
	"madewell.com":           "Madewell",
	"everlane.com":           "Everlane",
	"aritzia.com":            "Aritzia",
	"abercrombie.com":        "Abercrombie & Fitch",
	"hollisterco.com":        "Hollister",
	"ae.com":                 "American Eagle",
	"forever21.com":          "Forever 21",
	"express.com":            "Express",
	"urbanoutfitters.com":    "Urban Outfitters",
	"anthropologie.com":      "Anthropologie",
	"freepeople.com":         "Free People",
	"asos.com":               "ASOS",
	"shein.com":              "SHEIN",
	"revolve.com":            "Revolve",
	"ssense.com":             "SSENSE",
	"farfetch.com":           "Farfetch",
	"nordstrom.com":          "Nordstrom",
	"macys.com":              "Macy's",
	"bloomingdales.com":      "Bloomingdale's",
	"saksfifthavenue.com":    "Saks Fifth Avenue",
	"zappos.com":             "Zappos",
	"footlocker.com":         "Foot Locker",
	"dickssportinggoods.com": "Dick's Sporting Goods",
}

// storefrontAliases clean up brand names derived from marketplace and
// storefront URLs where the second-level label is not the brand.
var storefrontAliases = map[string]string{
	"amazon.com":    "Amazon",
	"amzn.to":       "Amazon",
	"ebay.com":      "eBay",
	"etsy.com":      "Etsy",
	"poshmark.com":  "Poshmark",
	"depop.com":     "Depop",
	"grailed.com":   "Grailed",
	"stockx.com":    "StockX",
	"goat.com":      "GOAT",
	"shop.app":      "Shop",
	"myshopify.com": "Shopify Store",
}

// ResolveBrand maps a sender domain to a brand name. Unknown domains fall
// back to the second-level label, title-cased.
func ResolveBrand(domain string) string {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		return ""
	}
	if name, ok := lookupDomain(domain, brandByDomain); ok {
		return name
	}
	return titleCaseLabel(secondLevelLabel(domain))
}

// ResolveBrandFromURL derives a brand from a product page URL, applying the
// storefront aliases before the sender-domain table.
func ResolveBrandFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	if name, ok := lookupDomain(host, storefrontAliases); ok {
		return name
	}
	return ResolveBrand(host)
}

// IsKnownBrandDomain reports whether the domain resolves through the known
// retailer table rather than the title-case fallback.
func IsKnownBrandDomain(domain string) bool {
	_, ok := lookupDomain(strings.ToLower(domain), brandByDomain)
	return ok
}

// DomainFromAddress extracts the domain part of an email address, accepting
// both bare addresses and RFC 5322 "Name <addr>" forms.
func DomainFromAddress(addr string) string {
	if parsed, err := mail.ParseAddress(addr); err == nil {
		addr = parsed.Address
	}
	at := strings.LastIndex(addr, "@")
	if at < 0 || at == len(addr)-1 {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(addr[at+1:]))
}

// lookupDomain tries the full host, then strips leading labels until a
// table entry matches.
func lookupDomain(host string, table map[string]string) (string, bool) {
	for host != "" {
		if name, ok := table[host]; ok {
			return name, true
		}
		dot := strings.Index(host, ".")
		if dot < 0 {
			break
		}
		host = host[dot+1:]
	}
	return "", false
}

// secondLevelLabel returns the label left of the public suffix, e.g.
// "somebrand" for mail.somebrand.co.uk. Only the common two-part suffixes
// are special-cased.
func secondLevelLabel(domain string) string {
	labels := strings.Split(domain, ".")
	if len(labels) < 2 {
		return domain
	}
	idx := len(labels) - 2
	if len(labels) >= 3 {
		tail := labels[len(labels)-2] + "." + labels[len(labels)-1]
		switch tail {
		case "co.uk", "com.au", "co.jp", "com.br":
			idx = len(labels) - 3
		}
	}
	return labels[idx]
}

func titleCaseLabel(label string) string {
	label = strings.ReplaceAll(label, "-", " ")
	words := strings.Fields(label)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
