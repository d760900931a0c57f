package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func TestAuthorizeURLCarriesOfflineCodeRequest(t *testing.T) {
	key := &KeyFile{ClientID: "client", ClientSecret: "secret", AuthURI: defaultAuthURI, TokenURI: defaultTokenURI}

	parsed, err := url.Parse(AuthorizeURL(key, "challenge"))
	if err != nil {
		t.Fatalf("expected a parseable URL, got %v", err)
	}

	q := parsed.Query()
	if q.Get("client_id") != "client" {
		t.Fatalf("expected client_id to be set, got %q", q.Get("client_id"))
	}
	if q.Get("response_type") != "code" {
		t.Fatalf("expected response_type=code, got %q", q.Get("response_type"))
	}
	if q.Get("access_type") != "offline" {
		t.Fatalf("expected access_type=offline, got %q", q.Get("access_type"))
	}
	if q.Get("code_challenge") != "challenge" || q.Get("code_challenge_method") != "S256" {
		t.Fatalf("expected PKCE parameters, got challenge=%q method=%q", q.Get("code_challenge"), q.Get("code_challenge_method"))
	}
	if q.Get("redirect_uri") != redirectURI {
		t.Fatalf("expected out-of-band redirect, got %q", q.Get("redirect_uri"))
	}
}

func TestExchangeCodeParsesTokenResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("failed to parse form: %v", err)
		}
		if r.Form.Get("grant_type") != "authorization_code" {
			t.Fatalf("expected authorization_code grant, got %q", r.Form.Get("grant_type"))
		}
		if r.Form.Get("code") != "4/pasted" {
			t.Fatalf("expected the pasted code, got %q", r.Form.Get("code"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"access","refresh_token":"refresh","expires_in":3600}`))
	}))
	defer server.Close()

	key := &KeyFile{ClientID: "client", ClientSecret: "secret", TokenURI: server.URL}

	creds, err := ExchangeCode(context.Background(), key, "4/pasted", "verifier")
	if err != nil {
		t.Fatalf("expected exchange to succeed, got %v", err)
	}
	if creds.AccessToken != "access" || creds.RefreshToken != "refresh" {
		t.Fatalf("unexpected credentials: %+v", creds)
	}
	if !creds.Expiry.After(time.Now().Add(30 * time.Minute)) {
		t.Fatalf("expected expiry roughly an hour out, got %v", creds.Expiry)
	}
}

func TestExchangeCodeRejectsMissingRefreshToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"access","expires_in":3600}`))
	}))
	defer server.Close()

	key := &KeyFile{ClientID: "client", ClientSecret: "secret", TokenURI: server.URL}

	if _, err := ExchangeCode(context.Background(), key, "4/pasted", "verifier"); err == nil {
		t.Fatalf("expected an error when no refresh token is returned")
	}
}

func TestRefreshInvalidGrantReportsExpiredCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer server.Close()

	key := &KeyFile{ClientID: "client", ClientSecret: "secret", TokenURI: server.URL}
	creds := &Credentials{RefreshToken: "revoked"}

	if err := Refresh(context.Background(), key, creds); err != ErrCredentialsExpired {
		t.Fatalf("expected ErrCredentialsExpired, got %v", err)
	}
}

func TestStartAuthorizationSubmitIsOneShot(t *testing.T) {
	exchanges := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("failed to parse form: %v", err)
		}
		exchanges++
		if r.Form.Get("code") != "4/first" {
			t.Fatalf("expected only the first submitted code, got %q", r.Form.Get("code"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"access","refresh_token":"refresh","expires_in":3600}`))
	}))
	defer server.Close()

	key := &KeyFile{ClientID: "client", ClientSecret: "secret", AuthURI: defaultAuthURI, TokenURI: server.URL}

	resultChan, authURL, submit, err := StartAuthorization(context.Background(), key)
	if err != nil {
		t.Fatalf("expected authorization to start, got %v", err)
	}
	if authURL == "" {
		t.Fatalf("expected a non-empty authorization URL")
	}

	submit("4/first")
	submit("4/second")

	select {
	case result := <-resultChan:
		if result.Err != nil {
			t.Fatalf("expected exchange to succeed, got %v", result.Err)
		}
		if result.Credentials.AccessToken != "access" {
			t.Fatalf("unexpected credentials: %+v", result.Credentials)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for authorization result")
	}

	if exchanges != 1 {
		t.Fatalf("expected exactly one token exchange, got %d", exchanges)
	}
}
