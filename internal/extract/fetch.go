package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

// maxBodyBytes caps how much of a page body is read for pattern matching.
const maxBodyBytes = 2 << 20

// DirectFetch is the Tier B strategy: fetch the raw page with browser-like
// headers and extract fields via regex alternatives over the title tag,
// open-graph metadata, and common price/image markup.
type DirectFetch struct {
	client *http.Client
	strip  *bluemonday.Policy
}

// NewDirectFetch creates the Tier B strategy.
func NewDirectFetch(timeout time.Duration) *DirectFetch {
	return &DirectFetch{
		client: &http.Client{Timeout: timeout},
		strip:  bluemonday.StrictPolicy(),
	}
}

// Name identifies the tier in logs and metrics.
func (s *DirectFetch) Name() string {
	return "fetch"
}

var (
	titleTagPattern = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	ogTitlePattern  = regexp.MustCompile(`(?i)<meta[^>]+property=["']og:title["'][^>]+content=["']([^"']+)["']`)
	ogImagePattern  = regexp.MustCompile(`(?i)<meta[^>]+property=["']og:image["'][^>]+content=["']([^"']+)["']`)
	ogDescPattern   = regexp.MustCompile(`(?i)<meta[^>]+property=["']og:description["'][^>]+content=["']([^"']+)["']`)
	metaDescPattern = regexp.MustCompile(`(?i)<meta[^>]+name=["']description["'][^>]+content=["']([^"']+)["']`)
	ogPricePattern  = regexp.MustCompile(`(?i)<meta[^>]+property=["'](?:og|product):price:amount["'][^>]+content=["']([\d.,]+)["']`)
	markupPricePat  = regexp.MustCompile(`(?i)(?:class|id)=["'][^"']*price[^"']*["'][^>]*>[^<$]*\$\s*([\d,]+(?:\.\d{2})?)`)
	currencyPattern = regexp.MustCompile(`\$\s*([\d,]+(?:\.\d{2})?)`)
	firstImgPattern = regexp.MustCompile(`(?i)<img[^>]+src=["']([^"']+\.(?:jpe?g|png|webp)[^"']*)["']`)
)

// Extract fetches pageURL and pattern-matches the markup. A failed fetch
// is an error (the chain falls through to the URL heuristic); a fetched
// page that matches nothing returns an empty partial result.
func (s *DirectFetch) Extract(ctx context.Context, pageURL string) (Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return Result{}, fmt.Errorf("failed to build page request: %w", err)
	}

	// Storefronts reject obvious bot traffic; look like a browser.
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := s.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("page fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("page fetch returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Result{}, fmt.Errorf("failed to read page body: %w", err)
	}

	return s.ParsePage(string(body), pageURL), nil
}

// ParsePage runs the regex alternatives over fetched markup. Split out so
// the pattern matching is testable without a live fetch.
func (s *DirectFetch) ParsePage(page, pageURL string) Result {
	var result Result

	if m := ogTitlePattern.FindStringSubmatch(page); m != nil {
		result.Title = cleanText(s.strip.Sanitize(m[1]))
	} else if m := titleTagPattern.FindStringSubmatch(page); m != nil {
		result.Title = cleanTitle(cleanText(s.strip.Sanitize(m[1])))
	}

	if m := ogDescPattern.FindStringSubmatch(page); m != nil {
		result.Description = cleanText(s.strip.Sanitize(m[1]))
	} else if m := metaDescPattern.FindStringSubmatch(page); m != nil {
		result.Description = cleanText(s.strip.Sanitize(m[1]))
	}

	if m := ogImagePattern.FindStringSubmatch(page); m != nil {
		result.ImageURL = absoluteURL(m[1], pageURL)
	} else if m := firstImgPattern.FindStringSubmatch(page); m != nil {
		result.ImageURL = absoluteURL(m[1], pageURL)
	}

	if m := ogPricePattern.FindStringSubmatch(page); m != nil {
		result.Price = parsePrice(m[1])
	} else if m := markupPricePat.FindStringSubmatch(page); m != nil {
		result.Price = parsePrice(m[1])
	}

	return result
}

// firstPrice returns the first currency match in free text, or nil.
func firstPrice(text string) *float64 {
	if m := currencyPattern.FindStringSubmatch(text); m != nil {
		return parsePrice(m[1])
	}
	return nil
}

func parsePrice(raw string) *float64 {
	raw = strings.ReplaceAll(raw, ",", "")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

// cleanTitle strips the trailing "| Site Name" style suffix retailers
// append to title tags.
func cleanTitle(title string) string {
	for _, sep := range []string{" | ", " – ", " - "} {
		if idx := strings.Index(title, sep); idx > 0 {
			return strings.TrimSpace(title[:idx])
		}
	}
	return title
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func absoluteURL(href, base string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if u.IsAbs() {
		return href
	}
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	return b.ResolveReference(u).String()
}
