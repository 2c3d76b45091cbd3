package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"stylescout-go/config"
	"stylescout-go/internal/model"
)

// fakeCredStore holds one credential in memory.
type fakeCredStore struct {
	cred *model.MailCredential
}

func (s *fakeCredStore) GetCredential(userID uint) (*model.MailCredential, error) {
	return s.cred, nil
}

func (s *fakeCredStore) SaveCredential(cred *model.MailCredential) error {
	s.cred = cred
	return nil
}

func testTokenService(store CredentialStore) *TokenService {
	return NewTokenService(&config.MailConfig{
		ClientID:     "client",
		ClientSecret: "secret",
	}, store)
}

func TestValidTokenNoCredential(t *testing.T) {
	svc := testTokenService(&fakeCredStore{})

	_, err := svc.ValidToken(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNoCredential)
}

func TestValidTokenReturnsStoredWhileFresh(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := &fakeCredStore{cred: &model.MailCredential{
		UserID:      1,
		AccessToken: "stored-token",
		ExpiresAt:   now.Add(30 * time.Minute),
	}}

	svc := testTokenService(store)
	svc.now = func() time.Time { return now }

	token, err := svc.ValidToken(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, "stored-token", token)
}

func TestValidTokenExpiredTriggersRefresh(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := &fakeCredStore{cred: &model.MailCredential{
		UserID:       1,
		AccessToken:  "stale-token",
		RefreshToken: "refresh-token",
		ExpiresAt:    now.Add(-time.Minute),
	}}

	svc := testTokenService(store)
	svc.now = func() time.Time { return now }

	// The refresh round-trip hits the provider's token endpoint, which is
	// unreachable here; the failure must surface as a reconnect error, not
	// as the stale token.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := svc.ValidToken(ctx, 1)
	assert.ErrorIs(t, err, ErrReconnectRequired)
	assert.Equal(t, "stale-token", store.cred.AccessToken)
}
