package auth

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}
	return s
}

func bearer(token string) *AuthRequest {
	return &AuthRequest{Headers: http.Header{"Authorization": {"Bearer " + token}}}
}

func TestJWTAuthenticator_Supports(t *testing.T) {
	auth := NewJWTAuthenticator(JWTConfig{}, NewStaticKeyProvider([]byte("secret")))

	tests := []struct {
		name    string
		headers http.Header
		want    bool
	}{
		{name: "no authorization header", headers: http.Header{}, want: false},
		{name: "bearer token", headers: http.Header{"Authorization": {"Bearer token123"}}, want: true},
		{name: "lowercase scheme", headers: http.Header{"Authorization": {"bearer token123"}}, want: true},
		{name: "basic scheme", headers: http.Header{"Authorization": {"Basic abc123"}}, want: false},
		{name: "scheme only", headers: http.Header{"Authorization": {"Bearer"}}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &AuthRequest{Headers: tt.headers}
			if got := auth.Supports(context.Background(), req); got != tt.want {
				t.Errorf("Supports() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestJWTAuthenticator_Authenticate(t *testing.T) {
	auth := NewJWTAuthenticator(JWTConfig{
		Issuer:     "studentops",
		Audience:   "frontend",
		RolesClaim: "roles",
	}, NewStaticKeyProvider([]byte("secret")))

	now := time.Now()
	valid := jwt.MapClaims{
		"sub":   "alice",
		"iss":   "studentops",
		"aud":   "frontend",
		"roles": []any{"admin", "instructor"},
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}

	result, err := auth.Authenticate(context.Background(), bearer(signToken(t, "secret", valid)))
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if !result.Authenticated {
		t.Fatalf("expected authentication to succeed, got %v", result.Error)
	}
	id := result.Identity
	if id.Principal != "alice" || id.Method != AuthMethodJWT {
		t.Errorf("identity = %+v", id)
	}
	if !id.HasRole("admin") || id.HasRole("student") {
		t.Errorf("roles = %v", id.Roles)
	}
	if id.ExpiresAt.Unix() != now.Add(time.Hour).Unix() {
		t.Errorf("ExpiresAt = %v", id.ExpiresAt)
	}
	if result.Method != "jwt" {
		t.Errorf("Method = %q", result.Method)
	}
}

func TestJWTAuthenticator_Failures(t *testing.T) {
	auth := NewJWTAuthenticator(JWTConfig{Issuer: "studentops"}, NewStaticKeyProvider([]byte("secret")))
	now := time.Now()

	tests := []struct {
		name    string
		req     *AuthRequest
		wantErr error
	}{
		{
			name:    "missing header",
			req:     &AuthRequest{Headers: http.Header{}},
			wantErr: ErrMissingCredentials,
		},
		{
			name: "expired",
			req: bearer(signToken(t, "secret", jwt.MapClaims{
				"sub": "alice", "iss": "studentops", "exp": now.Add(-time.Hour).Unix(),
			})),
			wantErr: ErrTokenExpired,
		},
		{
			name:    "malformed",
			req:     bearer("not-a-jwt"),
			wantErr: ErrTokenMalformed,
		},
		{
			name:    "wrong secret",
			req:     bearer(signToken(t, "other", jwt.MapClaims{"sub": "alice", "iss": "studentops"})),
			wantErr: ErrInvalidCredentials,
		},
		{
			name:    "wrong issuer",
			req:     bearer(signToken(t, "secret", jwt.MapClaims{"sub": "alice", "iss": "elsewhere"})),
			wantErr: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := auth.Authenticate(context.Background(), tt.req)
			if err != nil {
				t.Fatalf("Authenticate() error = %v", err)
			}
			if result.Authenticated {
				t.Fatal("expected authentication to fail")
			}
			if !errors.Is(result.Error, tt.wantErr) {
				t.Errorf("Error = %v, want %v", result.Error, tt.wantErr)
			}
		})
	}
}

func TestJWTAuthenticator_RejectsUnsignedToken(t *testing.T) {
	auth := NewJWTAuthenticator(JWTConfig{}, NewStaticKeyProvider([]byte("secret")))

	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "mallory"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}

	result, err := auth.Authenticate(context.Background(), bearer(token))
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if result.Authenticated {
		t.Fatal("unsigned token must not authenticate")
	}
}
