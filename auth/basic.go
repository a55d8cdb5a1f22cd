package auth

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"strings"
)

// BasicAuthenticator checks HTTP Basic credentials against one configured
// username and password.
type BasicAuthenticator struct {
	username string
	password string
}

// NewBasicAuthenticator creates a Basic authenticator.
func NewBasicAuthenticator(username, password string) *BasicAuthenticator {
	return &BasicAuthenticator{username: username, password: password}
}

// Name returns "basic".
func (a *BasicAuthenticator) Name() string {
	return "basic"
}

// Supports returns true if the Authorization header uses the Basic scheme.
func (a *BasicAuthenticator) Supports(_ context.Context, req *AuthRequest) bool {
	_, ok := cutScheme(req.GetHeader("Authorization"), "Basic")
	return ok
}

// Authenticate compares the supplied credentials in constant time.
func (a *BasicAuthenticator) Authenticate(_ context.Context, req *AuthRequest) (*AuthResult, error) {
	encoded, ok := cutScheme(req.GetHeader("Authorization"), "Basic")
	if !ok || encoded == "" {
		return AuthFailure(ErrMissingCredentials, "basic"), nil
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return AuthFailure(ErrInvalidCredentials, "basic"), nil
	}
	user, pass, ok := strings.Cut(string(raw), ":")
	if !ok {
		return AuthFailure(ErrInvalidCredentials, "basic"), nil
	}

	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(a.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(a.password)) == 1
	if !userOK || !passOK {
		return AuthFailure(ErrInvalidCredentials, "basic"), nil
	}

	return AuthSuccess(&Identity{Principal: user, Method: AuthMethodBasic}), nil
}

// cutScheme strips a case-insensitive auth scheme and the following space.
func cutScheme(header, scheme string) (string, bool) {
	if len(header) <= len(scheme) || header[len(scheme)] != ' ' {
		return "", false
	}
	if !strings.EqualFold(header[:len(scheme)], scheme) {
		return "", false
	}
	return strings.TrimSpace(header[len(scheme)+1:]), true
}

var _ Authenticator = (*BasicAuthenticator)(nil)
