package auth

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"testing"
)

func basicHeader(user, pass string) http.Header {
	return http.Header{"Authorization": {"Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))}}
}

func TestBasicAuthenticator(t *testing.T) {
	auth := NewBasicAuthenticator("admin", "s3cret")

	tests := []struct {
		name     string
		headers  http.Header
		wantOK   bool
		wantErr  error
		wantUser string
	}{
		{name: "valid", headers: basicHeader("admin", "s3cret"), wantOK: true, wantUser: "admin"},
		{name: "password with colon", headers: basicHeader("admin", "s3:cret"), wantErr: ErrInvalidCredentials},
		{name: "wrong password", headers: basicHeader("admin", "nope"), wantErr: ErrInvalidCredentials},
		{name: "wrong user", headers: basicHeader("root", "s3cret"), wantErr: ErrInvalidCredentials},
		{name: "bad base64", headers: http.Header{"Authorization": {"Basic !!!"}}, wantErr: ErrInvalidCredentials},
		{name: "no colon", headers: http.Header{"Authorization": {"Basic " + base64.StdEncoding.EncodeToString([]byte("admin"))}}, wantErr: ErrInvalidCredentials},
		{name: "missing", headers: http.Header{}, wantErr: ErrMissingCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := auth.Authenticate(context.Background(), &AuthRequest{Headers: tt.headers})
			if err != nil {
				t.Fatalf("Authenticate() error = %v", err)
			}
			if result.Authenticated != tt.wantOK {
				t.Fatalf("Authenticated = %v, want %v (%v)", result.Authenticated, tt.wantOK, result.Error)
			}
			if tt.wantOK {
				if result.Identity.Principal != tt.wantUser || result.Identity.Method != AuthMethodBasic {
					t.Errorf("identity = %+v", result.Identity)
				}
				return
			}
			if !errors.Is(result.Error, tt.wantErr) {
				t.Errorf("Error = %v, want %v", result.Error, tt.wantErr)
			}
		})
	}
}

func TestBasicAuthenticator_Supports(t *testing.T) {
	auth := NewBasicAuthenticator("admin", "s3cret")

	if !auth.Supports(context.Background(), &AuthRequest{Headers: basicHeader("a", "b")}) {
		t.Error("expected Basic header to be supported")
	}
	if auth.Supports(context.Background(), &AuthRequest{Headers: http.Header{"Authorization": {"Bearer x"}}}) {
		t.Error("bearer header should not be supported")
	}
}
