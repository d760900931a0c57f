package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Credentials are the persisted OAuth tokens for one Google account.
type Credentials struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	Expiry       time.Time `json:"expiry"`
}

// NeedsRefresh reports whether the access token expires within a minute.
func (c *Credentials) NeedsRefresh() bool {
	return time.Now().Add(time.Minute).After(c.Expiry)
}

// KeyFile is an installed-application OAuth client secret file as downloaded
// from the Google Cloud console.
type KeyFile struct {
	ClientID     string
	ClientSecret string
	AuthURI      string
	TokenURI     string
}

func LoadKeyFile(path string) (*KeyFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}

	var parsed struct {
		Installed struct {
			ClientID     string `json:"client_id"`
			ClientSecret string `json:"client_secret"`
			AuthURI      string `json:"auth_uri"`
			TokenURI     string `json:"token_uri"`
		} `json:"installed"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse key file: %w", err)
	}
	if parsed.Installed.ClientID == "" || parsed.Installed.ClientSecret == "" {
		return nil, fmt.Errorf("key file is missing installed client credentials")
	}

	key := &KeyFile{
		ClientID:     parsed.Installed.ClientID,
		ClientSecret: parsed.Installed.ClientSecret,
		AuthURI:      parsed.Installed.AuthURI,
		TokenURI:     parsed.Installed.TokenURI,
	}
	if key.AuthURI == "" {
		key.AuthURI = defaultAuthURI
	}
	if key.TokenURI == "" {
		key.TokenURI = defaultTokenURI
	}
	return key, nil
}

// CredentialsStore persists tokens between runs.
type CredentialsStore interface {
	Load() (*Credentials, error)
	Save(creds *Credentials) error
}

// FileStore keeps credentials in a JSON file with owner-only permissions.
type FileStore struct {
	Path string
}

func (s *FileStore) Load() (*Credentials, error) {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoStoredCredentials
		}
		return nil, fmt.Errorf("failed to read token store: %w", err)
	}

	creds := Credentials{}
	if err := json.Unmarshal(raw, &creds); err != nil {
		return nil, fmt.Errorf("failed to parse token store: %w", err)
	}
	if creds.RefreshToken == "" {
		return nil, ErrNoStoredCredentials
	}
	return &creds, nil
}

func (s *FileStore) Save(creds *Credentials) error {
	raw, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return fmt.Errorf("failed to create token store directory: %w", err)
	}
	if err := os.WriteFile(s.Path, raw, 0o600); err != nil {
		return fmt.Errorf("failed to write token store: %w", err)
	}
	return nil
}
