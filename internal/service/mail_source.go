package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/oauth2"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/emersion/go-message"
	"github.com/microcosm-cc/bluemonday"

	"stylescout-go/config"
)

// snippetLength caps the stored message preview.
const snippetLength = 200

// ParsedMessage is one mail message reduced to the fields the ingestion
// pipeline consumes.
type ParsedMessage struct {
	ProviderID  string
	SenderEmail string
	SenderName  string
	Subject     string
	Snippet     string
	ReceivedAt  time.Time
}

// MailSource lists message identifiers for a provider search query and
// fetches individual full messages. Implementations wrap one user's
// connected account for the duration of a single scan run.
type MailSource interface {
	ListMessageIDs(ctx context.Context, query string, max int64) ([]string, error)
	GetMessage(ctx context.Context, id string) (*ParsedMessage, error)
	Close() error
}

// GmailSource implements MailSource over the Gmail API using an access
// token supplied by the token lifecycle manager.
type GmailSource struct {
	service *gmail.Service
	strip   *bluemonday.Policy
}

// NewGmailSource creates a Gmail-backed mail source for one scan run.
func NewGmailSource(ctx context.Context, accessToken string) (*GmailSource, error) {
	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	svc, err := gmail.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}
	return &GmailSource{
		service: svc,
		strip:   bluemonday.StrictPolicy(),
	}, nil
}

// ListMessageIDs runs one provider search and returns identifiers only; the
// full message is a second round-trip per identifier.
func (s *GmailSource) ListMessageIDs(ctx context.Context, query string, max int64) ([]string, error) {
	call := s.service.Users.Messages.List("me").Q(query).MaxResults(max).Context(ctx)
	response, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	ids := make([]string, 0, len(response.Messages))
	for _, msg := range response.Messages {
		ids = append(ids, msg.Id)
	}
	return ids, nil
}

// GetMessage fetches one full message and extracts sender, subject,
// snippet, and timestamp.
func (s *GmailSource) GetMessage(ctx context.Context, id string) (*ParsedMessage, error) {
	msg, err := s.service.Users.Messages.Get("me", id).Format("full").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get message %s: %w", id, err)
	}

	parsed := &ParsedMessage{
		ProviderID: msg.Id,
		Snippet:    truncate(msg.Snippet, snippetLength),
		ReceivedAt: time.UnixMilli(msg.InternalDate),
	}

	for _, header := range msg.Payload.Headers {
		switch header.Name {
		case "Subject":
			parsed.Subject = header.Value
		case "From":
			parsed.SenderName, parsed.SenderEmail = splitAddress(header.Value)
		case "Date":
			if t, err := mail.ParseDate(header.Value); err == nil {
				parsed.ReceivedAt = t
			}
		}
	}

	// Providers occasionally return an empty snippet; fall back to the
	// message body with markup stripped.
	if parsed.Snippet == "" {
		plain, html := collectBodies(msg.Payload)
		if plain == "" && html != "" {
			plain = s.strip.Sanitize(html)
		}
		parsed.Snippet = truncate(strings.Join(strings.Fields(plain), " "), snippetLength)
	}

	return parsed, nil
}

// Close is a no-op; the Gmail API client holds no connection state.
func (s *GmailSource) Close() error {
	return nil
}

// collectBodies walks the message parts recursively, returning the first
// text/plain and text/html contents found.
func collectBodies(part *gmail.MessagePart) (plain, html string) {
	if part == nil {
		return "", ""
	}
	if part.Body != nil && part.Body.Data != "" {
		if data, err := base64.URLEncoding.DecodeString(part.Body.Data); err == nil {
			switch part.MimeType {
			case "text/plain":
				plain = string(data)
			case "text/html":
				html = string(data)
			}
		}
	}
	for _, sub := range part.Parts {
		p, h := collectBodies(sub)
		if plain == "" {
			plain = p
		}
		if html == "" {
			html = h
		}
	}
	return plain, html
}

// splitAddress parses an RFC 5322 From header into display name and bare
// address, tolerating malformed headers.
func splitAddress(header string) (name, address string) {
	if parsed, err := mail.ParseAddress(header); err == nil {
		return parsed.Name, parsed.Address
	}
	return "", strings.Trim(header, "<> ")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// IMAPSource implements MailSource over IMAP for accounts without an API
// credential. Provider query syntax maps onto IMAP search criteria
// loosely: from: terms become From-header searches, everything else is a
// recency search.
type IMAPSource struct {
	client *client.Client
	strip  *bluemonday.Policy
}

// NewIMAPSource connects and authenticates an IMAP session.
func NewIMAPSource(cfg *config.MailConfig) (*IMAPSource, error) {
	c, err := client.DialTLS(fmt.Sprintf("%s:%d", cfg.IMAPHost, cfg.IMAPPort), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to IMAP server: %w", err)
	}

	if err := c.Login(cfg.IMAPUser, cfg.IMAPPassword); err != nil {
		c.Logout()
		return nil, fmt.Errorf("failed to login to IMAP server: %w", err)
	}

	return &IMAPSource{
		client: c,
		strip:  bluemonday.StrictPolicy(),
	}, nil
}

// ListMessageIDs searches INBOX with criteria approximating the provider
// query and returns sequence numbers as identifiers, newest last, capped
// at max.
func (s *IMAPSource) ListMessageIDs(ctx context.Context, query string, max int64) ([]string, error) {
	if _, err := s.client.Select("INBOX", true); err != nil {
		return nil, fmt.Errorf("failed to select INBOX: %w", err)
	}

	criteria := imap.NewSearchCriteria()
	criteria.Since = time.Now().Add(-30 * 24 * time.Hour)
	if from := fromTerm(query); from != "" {
		criteria.Header.Set("From", from)
	}

	seqs, err := s.client.Search(criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to search messages: %w", err)
	}

	if int64(len(seqs)) > max {
		seqs = seqs[int64(len(seqs))-max:]
	}

	ids := make([]string, 0, len(seqs))
	for _, seq := range seqs {
		ids = append(ids, fmt.Sprintf("%d", seq))
	}
	return ids, nil
}

// GetMessage fetches one message's envelope and body.
func (s *IMAPSource) GetMessage(ctx context.Context, id string) (*ParsedMessage, error) {
	var seq uint32
	if _, err := fmt.Sscanf(id, "%d", &seq); err != nil {
		return nil, fmt.Errorf("invalid IMAP message id %q: %w", id, err)
	}

	seqset := new(imap.SeqSet)
	seqset.AddNum(seq)

	section := &imap.BodySectionName{Peek: true}
	messages := make(chan *imap.Message, 1)
	done := make(chan error, 1)
	go func() {
		done <- s.client.Fetch(seqset, []imap.FetchItem{imap.FetchEnvelope, section.FetchItem()}, messages)
	}()

	msg := <-messages
	if err := <-done; err != nil {
		return nil, fmt.Errorf("failed to fetch message %s: %w", id, err)
	}
	if msg == nil {
		return nil, fmt.Errorf("message %s not found", id)
	}

	parsed := &ParsedMessage{ProviderID: id}
	if msg.Envelope != nil {
		parsed.Subject = msg.Envelope.Subject
		parsed.ReceivedAt = msg.Envelope.Date
		if msg.Envelope.MessageId != "" {
			parsed.ProviderID = msg.Envelope.MessageId
		}
		if len(msg.Envelope.From) > 0 {
			parsed.SenderName = msg.Envelope.From[0].PersonalName
			parsed.SenderEmail = msg.Envelope.From[0].Address()
		}
	}

	parsed.Snippet = truncate(s.bodySnippet(msg, section), snippetLength)
	return parsed, nil
}

// Close logs the IMAP session out.
func (s *IMAPSource) Close() error {
	return s.client.Logout()
}

// bodySnippet extracts a plain-text preview from the fetched body section.
func (s *IMAPSource) bodySnippet(msg *imap.Message, section *imap.BodySectionName) string {
	r := msg.GetBody(section)
	if r == nil {
		return ""
	}

	entity, err := message.Read(r)
	if err != nil {
		return ""
	}

	plain, html := readEntity(entity)
	if plain == "" && html != "" {
		plain = s.strip.Sanitize(html)
	}
	return strings.Join(strings.Fields(plain), " ")
}

// readEntity walks a MIME entity, returning the first text/plain and
// text/html parts.
func readEntity(entity *message.Entity) (plain, html string) {
	if mr := entity.MultipartReader(); mr != nil {
		for {
			p, err := mr.NextPart()
			if err == io.EOF {
				break
			}
			if err != nil {
				return plain, html
			}
			content, err := io.ReadAll(p.Body)
			if err != nil {
				continue
			}
			contentType := p.Header.Get("Content-Type")
			if strings.Contains(contentType, "text/plain") && plain == "" {
				plain = string(content)
			} else if strings.Contains(contentType, "text/html") && html == "" {
				html = string(content)
			}
		}
		return plain, html
	}

	content, err := io.ReadAll(entity.Body)
	if err != nil {
		return "", ""
	}
	if strings.Contains(entity.Header.Get("Content-Type"), "text/html") {
		return "", string(content)
	}
	return string(content), ""
}

// fromTerm pulls the sender term out of a provider query like
// `from:"J.Crew" newer_than:30d`.
func fromTerm(query string) string {
	idx := strings.Index(query, "from:")
	if idx < 0 {
		return ""
	}
	rest := query[idx+len("from:"):]
	if strings.HasPrefix(rest, `"`) {
		if end := strings.Index(rest[1:], `"`); end >= 0 {
			return rest[1 : end+1]
		}
		return strings.Trim(rest, `"`)
	}
	if strings.HasPrefix(rest, "(") {
		// Multi-sender promotional queries have no single From term.
		return ""
	}
	if end := strings.IndexAny(rest, " \t"); end >= 0 {
		return rest[:end]
	}
	return rest
}
