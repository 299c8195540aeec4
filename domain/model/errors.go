package model

import "errors"

// Sentinel errors for the integration core. Callers match with errors.Is and
// wrap with fmt.Errorf("...: %w", err) to add context.
var (
	// ErrMissingCredentials indicates no stored client id/secret for the project.
	ErrMissingCredentials = errors.New("missing youtube client credentials")
	// ErrAuthenticationRequired indicates no valid or refreshable token is available.
	ErrAuthenticationRequired = errors.New("authentication required")
	// ErrTokenExchangeFailed indicates a non-success response from the token endpoint.
	ErrTokenExchangeFailed = errors.New("token exchange failed")
	// ErrRedirectMismatch indicates a state nonce mismatch or missing code on the redirect.
	ErrRedirectMismatch = errors.New("oauth redirect mismatch")
	// ErrRemoteAPI indicates a failure from the downstream analytics/upload API.
	ErrRemoteAPI = errors.New("remote api error")
	// ErrFileIO indicates a local storage read/write failure.
	ErrFileIO = errors.New("file io error")
)
