package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"stylescout-go/internal/metrics"
	"stylescout-go/internal/model"
	"stylescout-go/internal/rules"
)

// MessageRepository is the slice of the repository the scan pipeline needs.
type MessageRepository interface {
	KnownBrands(userID uint) ([]string, error)
	MessageExists(userID uint, providerMessageID string) (bool, error)
	IsBrandSuppressed(userID uint, brandName string) (bool, error)
	CreateMessage(msg *model.IngestedMessage) error
}

// SourceFactory opens a mail source for one user's scan run. The Gmail
// factory resolves a valid access token first; the IMAP factory ignores
// the user's stored credential and uses the configured session.
type SourceFactory func(ctx context.Context, userID uint) (MailSource, error)

// ScanResult is the outcome of one mail scan run.
type ScanResult struct {
	ProcessedCount int
	Messages       []model.IngestedMessage
}

// ScanService runs the mail ingestion pipeline: build queries under the
// quota policy, fetch each message, filter, classify, extract fields, then
// gate on dedup and brand suppression before persisting. Messages are
// processed sequentially; the bounded query set is the quota-shaping
// mechanism, not an incidental loop.
type ScanService struct {
	repo    MessageRepository
	sources SourceFactory
	policy  QuotaPolicy
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewScanService creates the scan pipeline.
func NewScanService(repo MessageRepository, sources SourceFactory, policy QuotaPolicy, m *metrics.Metrics) *ScanService {
	return &ScanService{
		repo:    repo,
		sources: sources,
		policy:  policy,
		metrics: m,
		now:     time.Now,
	}
}

// Scan runs one ingestion pass for the user. maxResults overrides the
// policy's message cap when positive. Provider errors opening the source
// or listing identifiers surface as top-level failures; a failure on one
// message is logged and skipped without aborting the batch.
func (s *ScanService) Scan(ctx context.Context, userID uint, maxResults int) (*ScanResult, error) {
	start := s.now()
	if s.metrics != nil {
		s.metrics.ScanRuns.Inc()
	}

	knownBrands, err := s.repo.KnownBrands(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load known brands: %w", err)
	}

	policy := s.policy.WithMaxMessages(maxResults)
	queries := BuildQueries(policy, knownBrands)

	source, err := s.sources(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer source.Close()

	result := &ScanResult{}
	seen := make(map[string]bool)

	for _, q := range queries {
		ids, err := source.ListMessageIDs(ctx, q.Query, q.Max)
		if err != nil {
			return nil, fmt.Errorf("mail provider query failed: %w", err)
		}

		for _, id := range ids {
			if seen[id] {
				continue
			}
			seen[id] = true

			msg, err := s.processMessage(ctx, source, userID, id, q.Source)
			if err != nil {
				logrus.Warnf("Failed to process message %s for user %d: %v", id, userID, err)
				continue
			}
			result.ProcessedCount++
			if msg != nil {
				result.Messages = append(result.Messages, *msg)
			}
		}
	}

	if s.metrics != nil {
		s.metrics.ScanDuration.Observe(s.now().Sub(start).Seconds())
	}
	logrus.Infof("Mail scan for user %d processed %d messages, ingested %d", userID, result.ProcessedCount, len(result.Messages))
	return result, nil
}

// processMessage runs filter → classify → extract → dedup/suppress →
// persist for one message. A nil message with nil error means the message
// was examined and dropped (irrelevant, duplicate, or suppressed).
func (s *ScanService) processMessage(ctx context.Context, source MailSource, userID uint, id, querySource string) (*model.IngestedMessage, error) {
	parsed, err := source.GetMessage(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.MessagesProcessed.Inc()
	}

	senderDomain := rules.DomainFromAddress(parsed.SenderEmail)
	brand := rules.ResolveBrand(senderDomain)
	text := strings.Join([]string{parsed.Subject, parsed.Snippet, senderDomain, brand}, " ")

	if !rules.IsRelevant(text, senderDomain, brand) {
		if s.metrics != nil {
			s.metrics.MessagesRejected.Inc()
		}
		logrus.Debugf("Message %s rejected by relevance filter", id)
		return nil, nil
	}

	exists, err := s.repo.MessageExists(userID, parsed.ProviderID)
	if err != nil {
		return nil, err
	}
	if exists {
		if s.metrics != nil {
			s.metrics.MessagesDuplicate.Inc()
		}
		return nil, nil
	}

	suppressed, err := s.repo.IsBrandSuppressed(userID, brand)
	if err != nil {
		return nil, err
	}
	if suppressed {
		if s.metrics != nil {
			s.metrics.MessagesSuppressed.Inc()
		}
		logrus.Debugf("Message %s from suppressed brand %s dropped", id, brand)
		return nil, nil
	}

	classifyText := parsed.Subject + " " + parsed.Snippet
	msg := &model.IngestedMessage{
		UserID:            userID,
		ProviderMessageID: parsed.ProviderID,
		SenderEmail:       parsed.SenderEmail,
		SenderName:        parsed.SenderName,
		BrandName:         brand,
		Subject:           parsed.Subject,
		Snippet:           parsed.Snippet,
		ReceivedAt:        parsed.ReceivedAt,
		Category:          rules.Classify(classifyText),
		Source:            querySource,
		// Relative offsets resolve against processing time, not the
		// message's received time.
		ExpiresAt: rules.ParseExpiration(classifyText, s.now()),
	}

	if msg.Category == model.CategoryOrderConfirmation || msg.Category == model.CategoryShipping {
		info := rules.ParseOrderInfo(classifyText)
		msg.OrderNumber = info.Number
		msg.OrderTotal = info.Total
		msg.OrderItemCount = info.ItemCount
	}

	if err := s.repo.CreateMessage(msg); err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.MessagesAccepted.Inc()
	}
	return msg, nil
}
