package secret

import "errors"

// Sentinel errors for secret resolution.
var (
	// ErrMissingEnv indicates a ${VAR} reference to an unset variable.
	ErrMissingEnv = errors.New("secret: missing required environment variables")

	// ErrProviderNotRegistered indicates a secretref naming an unknown provider.
	ErrProviderNotRegistered = errors.New("secret: provider is not registered")

	// ErrSecretNotFound indicates the provider has no value for the reference.
	ErrSecretNotFound = errors.New("secret: reference not found")

	// ErrEmptySecret indicates a strict resolver received an empty value.
	ErrEmptySecret = errors.New("secret: provider returned empty value")
)
