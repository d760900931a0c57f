package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultAuthURI  = "https://accounts.google.com/o/oauth2/v2/auth"
	defaultTokenURI = "https://oauth2.googleapis.com/token"

	// redirectURI is the out-of-band flow: the browser shows the code and the
	// user pastes it back into the client.
	redirectURI = "urn:ietf:wg:oauth:2.0:oob"
)

// Scopes requested during authorization.
var Scopes = []string{"https://www.googleapis.com/auth/assistant-sdk-prototype"}

// httpClient instruments token-endpoint calls with the process tracer.
var httpClient = &http.Client{
	Transport: otelhttp.NewTransport(http.DefaultTransport),
	Timeout:   30 * time.Second,
}

// generatePKCE creates a code verifier and challenge for OAuth PKCE.
func generatePKCE() (verifier, challenge string, err error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", "", err
	}
	verifier = base64.RawURLEncoding.EncodeToString(b)
	h := sha256.Sum256([]byte(verifier))
	challenge = base64.RawURLEncoding.EncodeToString(h[:])
	return verifier, challenge, nil
}

// AuthorizeURL builds the authorization URL the user must visit.
func AuthorizeURL(key *KeyFile, challenge string) string {
	u, _ := url.Parse(key.AuthURI)
	q := u.Query()
	q.Set("client_id", key.ClientID)
	q.Set("response_type", "code")
	q.Set("redirect_uri", redirectURI)
	q.Set("scope", strings.Join(Scopes, " "))
	q.Set("code_challenge", challenge)
	q.Set("code_challenge_method", "S256")
	q.Set("access_type", "offline")
	q.Set("prompt", "consent")
	u.RawQuery = q.Encode()
	return u.String()
}

// ExchangeCode exchanges a pasted authorization code for tokens.
func ExchangeCode(ctx context.Context, key *KeyFile, code, verifier string) (*Credentials, error) {
	data := url.Values{}
	data.Set("client_id", key.ClientID)
	data.Set("client_secret", key.ClientSecret)
	data.Set("code", code)
	data.Set("grant_type", "authorization_code")
	data.Set("redirect_uri", redirectURI)
	data.Set("code_verifier", verifier)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, key.TokenURI, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token exchange failed: %s", resp.Status)
	}

	var result struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresIn    int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	if result.RefreshToken == "" {
		return nil, fmt.Errorf("no refresh token received - ensure 'offline' access was requested")
	}

	return &Credentials{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		Expiry:       time.Now().Add(time.Duration(result.ExpiresIn) * time.Second),
	}, nil
}

// Refresh uses the refresh token to get a new access token.
func Refresh(ctx context.Context, key *KeyFile, creds *Credentials) error {
	if creds.RefreshToken == "" {
		return ErrCredentialsExpired
	}

	data := url.Values{}
	data.Set("client_id", key.ClientID)
	data.Set("client_secret", key.ClientSecret)
	data.Set("refresh_token", creds.RefreshToken)
	data.Set("grant_type", "refresh_token")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, key.TokenURI, strings.NewReader(data.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&errResp) == nil && errResp.Error == "invalid_grant" {
			return ErrCredentialsExpired
		}
		return fmt.Errorf("token refresh failed: %s", resp.Status)
	}

	var result struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return err
	}

	creds.AccessToken = result.AccessToken
	creds.Expiry = time.Now().Add(time.Duration(result.ExpiresIn) * time.Second)
	return nil
}

// AuthorizationResult is the outcome of one interactive authorization.
type AuthorizationResult struct {
	Credentials *Credentials
	Err         error
}

// StartAuthorization begins an interactive code-paste authorization. It
// returns the URL the user must visit and a submit func that accepts the
// pasted code exactly once; the exchange outcome arrives on the channel.
func StartAuthorization(ctx context.Context, key *KeyFile) (<-chan AuthorizationResult, string, func(code string), error) {
	verifier, challenge, err := generatePKCE()
	if err != nil {
		return nil, "", nil, fmt.Errorf("failed to generate PKCE: %w", err)
	}

	authURL := AuthorizeURL(key, challenge)
	resultChan := make(chan AuthorizationResult, 1)
	codeChan := make(chan string, 1)

	submit := func(code string) {
		select {
		case codeChan <- code:
		default:
			// One callback per authentication attempt; later codes are dropped.
		}
	}

	go func() {
		select {
		case <-ctx.Done():
			resultChan <- AuthorizationResult{Err: ctx.Err()}
		case code := <-codeChan:
			creds, err := ExchangeCode(ctx, key, strings.TrimSpace(code), verifier)
			resultChan <- AuthorizationResult{Credentials: creds, Err: err}
		}
	}()

	return resultChan, authURL, submit, nil
}

// CodePrompt asks the user to visit authURL and hand the resulting code to
// submit. Each prompt instance is satisfied at most once.
type CodePrompt func(authURL string, submit func(code string))

// EnsureTokenSource loads stored credentials or runs the interactive flow
// through prompt, then returns an auto-refreshing token source.
func EnsureTokenSource(ctx context.Context, keyFilePath, tokenStorePath string, prompt CodePrompt) (TokenSource, error) {
	key, err := LoadKeyFile(keyFilePath)
	if err != nil {
		return nil, err
	}

	store := &FileStore{Path: tokenStorePath}
	creds, err := store.Load()
	if err == nil {
		return NewOAuthTokenSource(key, creds, store), nil
	}
	if err != ErrNoStoredCredentials {
		return nil, err
	}

	if prompt == nil {
		return nil, ErrNoStoredCredentials
	}

	resultChan, authURL, submit, err := StartAuthorization(ctx, key)
	if err != nil {
		return nil, err
	}
	prompt(authURL, submit)

	result := <-resultChan
	if result.Err != nil {
		return nil, fmt.Errorf("authorization failed: %w", result.Err)
	}
	if err := store.Save(result.Credentials); err != nil {
		return nil, err
	}
	return NewOAuthTokenSource(key, result.Credentials, store), nil
}
