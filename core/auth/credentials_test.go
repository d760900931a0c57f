package auth

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store := &FileStore{Path: filepath.Join(t.TempDir(), "tokens", "credentials.json")}

	saved := &Credentials{
		AccessToken:  "access",
		RefreshToken: "refresh",
		Expiry:       time.Now().Add(time.Hour).Round(time.Second),
	}
	if err := store.Save(saved); err != nil {
		t.Fatalf("expected save to succeed, got %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("expected load to succeed, got %v", err)
	}
	if loaded.AccessToken != saved.AccessToken || loaded.RefreshToken != saved.RefreshToken {
		t.Fatalf("expected stored tokens back, got %+v", loaded)
	}
	if !loaded.Expiry.Equal(saved.Expiry) {
		t.Fatalf("expected expiry %v, got %v", saved.Expiry, loaded.Expiry)
	}
}

func TestFileStoreLoadMissingFileReportsNoCredentials(t *testing.T) {
	store := &FileStore{Path: filepath.Join(t.TempDir(), "absent.json")}

	if _, err := store.Load(); err != ErrNoStoredCredentials {
		t.Fatalf("expected ErrNoStoredCredentials, got %v", err)
	}
}

func TestNeedsRefreshNearExpiry(t *testing.T) {
	fresh := Credentials{Expiry: time.Now().Add(time.Hour)}
	if fresh.NeedsRefresh() {
		t.Fatalf("expected fresh token to not need refresh")
	}

	stale := Credentials{Expiry: time.Now().Add(30 * time.Second)}
	if !stale.NeedsRefresh() {
		t.Fatalf("expected token expiring within a minute to need refresh")
	}
}

func TestLoadKeyFileParsesInstalledClient(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key.json")
	raw := `{"installed":{"client_id":"id.apps.googleusercontent.com","client_secret":"secret"}}`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("failed to write key file: %v", err)
	}

	key, err := LoadKeyFile(path)
	if err != nil {
		t.Fatalf("expected key file to parse, got %v", err)
	}
	if key.ClientID != "id.apps.googleusercontent.com" || key.ClientSecret != "secret" {
		t.Fatalf("unexpected key file contents: %+v", key)
	}
	if key.AuthURI == "" || key.TokenURI == "" {
		t.Fatalf("expected endpoint defaults to be filled in, got %+v", key)
	}
}

func TestLoadKeyFileRejectsMissingClient(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key.json")
	if err := os.WriteFile(path, []byte(`{"installed":{}}`), 0o600); err != nil {
		t.Fatalf("failed to write key file: %v", err)
	}

	if _, err := LoadKeyFile(path); err == nil {
		t.Fatalf("expected an error for a key file without client credentials")
	}
}
