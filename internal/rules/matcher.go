// Package rules holds the declarative keyword heuristics used by the
// ingestion pipelines: the relevance filter, the message classifier, the
// brand lookup table, the promotion/order field extractors, and the item
// categorizer. Each rule set is plain data consumed by a generic matcher
// so individual rules can be reordered and tested in isolation.
package rules

import "strings"

// Rule pairs a lowercase substring pattern with the label it produces.
type Rule struct {
	Pattern string
	Label   string
}

// FirstMatch scans the rule list in order and returns the label of the
// first rule whose pattern occurs in text. Matching is case-insensitive;
// order is significant and callers rely on it.
func FirstMatch(text string, rules []Rule) (string, bool) {
	lower := strings.ToLower(text)
	for _, r := range rules {
		if strings.Contains(lower, r.Pattern) {
			return r.Label, true
		}
	}
	return "", false
}

// AnyMatch reports whether any pattern occurs in text, case-insensitively.
func AnyMatch(text string, patterns []string) bool {
	lower := strings.ToLower(text)
	for _, p := range patterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// AnySuffix reports whether s ends with any of the given suffixes,
// case-insensitively.
func AnySuffix(s string, suffixes []string) bool {
	lower := strings.ToLower(s)
	for _, suf := range suffixes {
		if strings.HasSuffix(lower, suf) {
			return true
		}
	}
	return false
}
