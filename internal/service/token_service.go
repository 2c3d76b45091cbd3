package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmail "google.golang.org/api/gmail/v1"

	"stylescout-go/config"
	"stylescout-go/internal/model"
)

// ErrNoCredential means the user never connected a mail account.
var ErrNoCredential = errors.New("no mail credential on file")

// ErrReconnectRequired means the refresh token was rejected by the provider;
// the user must reconnect the account. Retrying the scan will not help.
var ErrReconnectRequired = errors.New("mail account disconnected, reconnect required")

// CredentialStore is the slice of the repository the token manager needs.
type CredentialStore interface {
	GetCredential(userID uint) (*model.MailCredential, error)
	SaveCredential(cred *model.MailCredential) error
}

// TokenService owns the mail credential lifecycle: it returns a stored
// access token while it is still valid and exchanges the refresh token at
// the provider's token endpoint once it is not.
type TokenService struct {
	store CredentialStore
	oauth *oauth2.Config
	now   func() time.Time
}

// NewTokenService creates a token service for the configured OAuth2 client.
func NewTokenService(cfg *config.MailConfig, store CredentialStore) *TokenService {
	return &TokenService{
		store: store,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Scopes:       []string{gmail.GmailReadonlyScope},
			Endpoint:     google.Endpoint,
		},
		now: time.Now,
	}
}

// ValidToken returns an access token usable right now. If the stored token
// is expired it refreshes, persists the new token pair, and returns the
// fresh token. Refresh failure is fatal for the scan run and surfaces as
// ErrReconnectRequired.
func (s *TokenService) ValidToken(ctx context.Context, userID uint) (string, error) {
	cred, err := s.store.GetCredential(userID)
	if err != nil {
		return "", err
	}
	if cred == nil {
		return "", ErrNoCredential
	}

	if s.now().Before(cred.ExpiresAt) {
		return cred.AccessToken, nil
	}

	tokenSource := s.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: cred.RefreshToken})
	token, err := tokenSource.Token()
	if err != nil {
		logrus.Warnf("Token refresh failed for user %d: %v", userID, err)
		return "", fmt.Errorf("%w: %v", ErrReconnectRequired, err)
	}

	cred.AccessToken = token.AccessToken
	cred.ExpiresAt = token.Expiry
	if token.RefreshToken != "" {
		cred.RefreshToken = token.RefreshToken
	}
	if err := s.store.SaveCredential(cred); err != nil {
		return "", fmt.Errorf("failed to persist refreshed token: %w", err)
	}

	logrus.Infof("Refreshed mail token for user %d, valid until %s", userID, cred.ExpiresAt.Format(time.RFC3339))
	return cred.AccessToken, nil
}
