package rules

import (
	"regexp"
	"strconv"
	"strings"
)

// OrderInfo holds fields extracted from order and shipping mail. Any field
// not matched stays nil; partial extraction is expected.
type OrderInfo struct {
	Number    *string
	Total     *float64
	ItemCount *int
}

var (
	orderNumberPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)order\s*(?:#|no\.?|number:?)\s*([A-Z0-9][A-Z0-9-]{3,})`),
		regexp.MustCompile(`(?i)confirmation\s*(?:#|number:?)\s*([A-Z0-9][A-Z0-9-]{3,})`),
	}
	orderTotalPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:order\s+)?total:?\s*\$\s*([\d,]+(?:\.\d{2})?)`),
		regexp.MustCompile(`\$\s*([\d,]+\.\d{2})`),
	}
	itemCountPattern = regexp.MustCompile(`(?i)(\d+)\s+items?\b`)
)

// ParseOrderInfo extracts order number, currency total, and item count from
// message text using regex alternatives tried in order.
func ParseOrderInfo(text string) OrderInfo {
	var info OrderInfo

	for _, re := range orderNumberPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			num := m[1]
			info.Number = &num
			break
		}
	}

	for _, re := range orderTotalPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			raw := strings.ReplaceAll(m[1], ",", "")
			if total, err := strconv.ParseFloat(raw, 64); err == nil {
				info.Total = &total
				break
			}
		}
	}

	if m := itemCountPattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			info.ItemCount = &n
		}
	}

	return info
}
