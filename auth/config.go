package auth

import "time"

// Config selects the schemes protecting the front-end's JSON routes.
// A scheme is enabled when its credentials are set.
type Config struct {
	// JWTSecret enables HS256 bearer tokens.
	JWTSecret   string
	JWTIssuer   string
	JWTAudience string

	// Username and Password enable HTTP Basic.
	Username string
	Password string
}

// Enabled reports whether any scheme is configured.
func (c Config) Enabled() bool {
	return c.JWTSecret != "" || c.Username != ""
}

// New builds an authenticator for every configured scheme. It returns
// ErrNotConfigured when none is.
func New(cfg Config) (Authenticator, error) {
	var auths []Authenticator
	if cfg.JWTSecret != "" {
		auths = append(auths, NewJWTAuthenticator(JWTConfig{
			Issuer:   cfg.JWTIssuer,
			Audience: cfg.JWTAudience,
			Leeway:   30 * time.Second,
		}, NewStaticKeyProvider([]byte(cfg.JWTSecret))))
	}
	if cfg.Username != "" {
		auths = append(auths, NewBasicAuthenticator(cfg.Username, cfg.Password))
	}

	switch len(auths) {
	case 0:
		return nil, ErrNotConfigured
	case 1:
		return auths[0], nil
	default:
		return NewCompositeAuthenticator(auths...), nil
	}
}
