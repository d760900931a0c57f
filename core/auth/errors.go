package auth

import "errors"

var (
	// ErrNoStoredCredentials means the token store has no usable tokens and
	// an interactive authorization is required.
	ErrNoStoredCredentials = errors.New("no stored credentials")

	// ErrCredentialsExpired means the refresh token was revoked or expired
	// and the user must re-authorize.
	ErrCredentialsExpired = errors.New("credentials expired, re-authorization required")

	// ErrAuthorizationPending means the one-shot code prompt has not been
	// answered yet.
	ErrAuthorizationPending = errors.New("authorization pending")
)
