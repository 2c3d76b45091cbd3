package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"stylescout-go/internal/rules"
)

// RemoteService is the Tier A strategy: a hosted rendering/metadata service
// that returns structured page data as JSON. It is unavailable when no
// endpoint is configured, which advances the chain to direct fetch.
type RemoteService struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// remoteResponse mirrors the service's JSON envelope.
type remoteResponse struct {
	Status string `json:"status"`
	Data   struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Image       struct {
			URL string `json:"url"`
		} `json:"image"`
		Content string `json:"content"`
	} `json:"data"`
}

// NewRemoteService creates the Tier A strategy. An empty endpoint yields a
// service whose Extract always fails, so the chain degrades cleanly.
func NewRemoteService(endpoint, apiKey string, timeout time.Duration) *RemoteService {
	return &RemoteService{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
	}
}

// Available reports whether an endpoint is configured.
func (s *RemoteService) Available() bool {
	return s.endpoint != ""
}

// Name identifies the tier in logs and metrics.
func (s *RemoteService) Name() string {
	return "remote"
}

// Extract requests rendered metadata for pageURL and maps it to a partial
// result. Price is the first currency pattern found in the rendered body
// text; brand derives from the page domain via the storefront-aware lookup.
func (s *RemoteService) Extract(ctx context.Context, pageURL string) (Result, error) {
	if !s.Available() {
		return Result{}, fmt.Errorf("remote extraction service not configured")
	}

	reqURL := fmt.Sprintf("%s?url=%s", s.endpoint, url.QueryEscape(pageURL))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Result{}, fmt.Errorf("failed to build extraction request: %w", err)
	}
	if s.apiKey != "" {
		req.Header.Set("X-Api-Key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("extraction service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("extraction service returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Result{}, fmt.Errorf("failed to read extraction response: %w", err)
	}

	var parsed remoteResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Result{}, fmt.Errorf("failed to decode extraction response: %w", err)
	}
	if parsed.Status != "success" {
		return Result{}, fmt.Errorf("extraction service reported status %q", parsed.Status)
	}

	return Result{
		Title:       parsed.Data.Title,
		Description: parsed.Data.Description,
		ImageURL:    parsed.Data.Image.URL,
		Price:       firstPrice(parsed.Data.Content),
		Brand:       rules.ResolveBrandFromURL(pageURL),
	}, nil
}
