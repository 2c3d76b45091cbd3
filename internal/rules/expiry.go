package rules

import (
	"regexp"
	"strconv"
	"time"
)

// Absolute-date alternatives: "expires on 12/31/2025", "valid until ...",
// "ends ...". The first capture group is always the MM/DD/YYYY date.
var absoluteExpiryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)expires?\s+(?:on\s+)?(\d{1,2}/\d{1,2}/\d{4})`),
	regexp.MustCompile(`(?i)valid\s+(?:until|through|thru)\s+(\d{1,2}/\d{1,2}/\d{4})`),
	regexp.MustCompile(`(?i)ends?\s+(?:on\s+)?(\d{1,2}/\d{1,2}/\d{4})`),
	regexp.MustCompile(`(?i)(?:offer|sale|deal)\s+ends?\s+(\d{1,2}/\d{1,2}/\d{4})`),
}

// Relative offsets: "3 days left", "12 hours left". These resolve against
// the time the message is processed, not its received time.
var (
	daysLeftPattern  = regexp.MustCompile(`(?i)(\d+)\s+days?\s+left`)
	hoursLeftPattern = regexp.MustCompile(`(?i)(\d+)\s+hours?\s+left`)
)

// ParseExpiration extracts a promotion deadline from message text. Absolute
// dates win over relative offsets; nil means no deadline was found.
func ParseExpiration(text string, now time.Time) *time.Time {
	for _, re := range absoluteExpiryPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			if t, err := time.Parse("1/2/2006", m[1]); err == nil {
				return &t
			}
		}
	}
	if m := daysLeftPattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			t := now.Add(time.Duration(n) * 24 * time.Hour)
			return &t
		}
	}
	if m := hoursLeftPattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			t := now.Add(time.Duration(n) * time.Hour)
			return &t
		}
	}
	return nil
}
