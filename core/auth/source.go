package auth

import (
	"context"
	"log"
	"sync"
)

// TokenSource provides valid access tokens with automatic refresh.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// OAuthTokenSource implements TokenSource with auto-refresh and write-through
// persistence.
type OAuthTokenSource struct {
	key   *KeyFile
	creds *Credentials
	store CredentialsStore
	mu    sync.Mutex
}

func NewOAuthTokenSource(key *KeyFile, creds *Credentials, store CredentialsStore) *OAuthTokenSource {
	return &OAuthTokenSource{key: key, creds: creds, store: store}
}

func (s *OAuthTokenSource) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.creds.NeedsRefresh() {
		if err := Refresh(ctx, s.key, s.creds); err != nil {
			return "", err
		}
		if s.store != nil {
			if err := s.store.Save(s.creds); err != nil {
				// Token is still valid; persistence failure is not fatal.
				log.Println("Failed to persist refreshed credentials:", err)
			}
		}
	}

	return s.creds.AccessToken, nil
}

// Credentials returns the current credentials.
func (s *OAuthTokenSource) Credentials() *Credentials {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creds
}
