package auth

import (
	"context"
	"fmt"
	"net/http"
)

// Verify authenticates request headers and returns the caller's identity.
// Failures wrap one of the package sentinels; internal authenticator
// errors are wrapped with the authenticator name.
func Verify(ctx context.Context, a Authenticator, headers http.Header, resource string) (*Identity, error) {
	req := &AuthRequest{Headers: headers, Resource: resource}
	if !a.Supports(ctx, req) {
		return nil, ErrMissingCredentials
	}

	result, err := a.Authenticate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("auth: %s: %w", a.Name(), err)
	}
	if !result.Authenticated {
		if result.Error == nil {
			return nil, ErrInvalidCredentials
		}
		return nil, result.Error
	}
	return result.Identity, nil
}

// Challenge returns the WWW-Authenticate value advertising a's schemes.
func Challenge(a Authenticator, realm string) string {
	switch v := a.(type) {
	case *BasicAuthenticator:
		return fmt.Sprintf("Basic realm=%q", realm)
	case *CompositeAuthenticator:
		for _, inner := range v.Authenticators {
			if _, ok := inner.(*BasicAuthenticator); ok {
				return fmt.Sprintf("Basic realm=%q", realm)
			}
		}
	}
	return fmt.Sprintf("Bearer realm=%q", realm)
}
