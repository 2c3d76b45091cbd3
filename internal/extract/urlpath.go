package extract

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// URLHeuristic is the Tier C strategy: when the page cannot be fetched at
// all, derive a product title from the final URL path segment. It resolves
// nothing else.
type URLHeuristic struct{}

// NewURLHeuristic creates the Tier C strategy.
func NewURLHeuristic() *URLHeuristic {
	return &URLHeuristic{}
}

// Name identifies the tier in logs and metrics.
func (s *URLHeuristic) Name() string {
	return "urlpath"
}

var trailingIDPattern = regexp.MustCompile(`[-_]?\d{4,}$`)

// Extract title-cases the last path segment of pageURL.
func (s *URLHeuristic) Extract(ctx context.Context, pageURL string) (Result, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return Result{}, fmt.Errorf("failed to parse URL: %w", err)
	}

	segment := lastPathSegment(u.Path)
	if segment == "" {
		return Result{}, fmt.Errorf("URL has no usable path segment")
	}

	return Result{Title: TitleFromSegment(segment)}, nil
}

// TitleFromSegment turns a slug like "classic-denim-jacket-118204" into
// "Classic Denim Jacket".
func TitleFromSegment(segment string) string {
	// Strip extension and trailing product-ID digits.
	if dot := strings.LastIndex(segment, "."); dot > 0 {
		segment = segment[:dot]
	}
	segment = trailingIDPattern.ReplaceAllString(segment, "")

	segment = strings.ReplaceAll(segment, "-", " ")
	segment = strings.ReplaceAll(segment, "_", " ")

	words := strings.Fields(segment)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func lastPathSegment(path string) string {
	path = strings.Trim(path, "/")
	if path == "" {
		return ""
	}
	segments := strings.Split(path, "/")
	return segments[len(segments)-1]
}
