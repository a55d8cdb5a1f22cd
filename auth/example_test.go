package auth_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jonwraymond/studentops/auth"
)

func ExampleNewJWTAuthenticator() {
	authenticator := auth.NewJWTAuthenticator(auth.JWTConfig{
		Issuer:     "studentops",
		RolesClaim: "roles",
	}, auth.NewStaticKeyProvider([]byte("example-secret")))

	token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "alice",
		"iss":   "studentops",
		"roles": []any{"admin"},
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("example-secret"))

	req := &auth.AuthRequest{Headers: http.Header{"Authorization": {"Bearer " + token}}}
	result, err := authenticator.Authenticate(context.Background(), req)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println("Authenticated:", result.Authenticated)
	fmt.Println("Principal:", result.Identity.Principal)
	fmt.Println("Admin:", result.Identity.HasRole("admin"))
	// Output:
	// Authenticated: true
	// Principal: alice
	// Admin: true
}

func ExampleNewBasicAuthenticator() {
	authenticator := auth.NewBasicAuthenticator("admin", "pa$word")

	r, _ := http.NewRequest(http.MethodGet, "/api/students", nil)
	r.SetBasicAuth("admin", "pa$word")

	id, err := auth.Verify(context.Background(), authenticator, r.Header, "/api/students")
	fmt.Println("Principal:", id.Principal, "Error:", err)

	r.SetBasicAuth("admin", "wrong")
	_, err = auth.Verify(context.Background(), authenticator, r.Header, "/api/students")
	fmt.Println("Invalid:", errors.Is(err, auth.ErrInvalidCredentials))
	// Output:
	// Principal: admin Error: <nil>
	// Invalid: true
}

func ExampleNew() {
	_, err := auth.New(auth.Config{})
	fmt.Println("Nothing configured:", errors.Is(err, auth.ErrNotConfigured))

	a, _ := auth.New(auth.Config{JWTSecret: "s3cret", Username: "admin", Password: "pw"})
	fmt.Println("Name:", a.Name())
	fmt.Println("Challenge:", auth.Challenge(a, "studentops"))
	// Output:
	// Nothing configured: true
	// Name: composite
	// Challenge: Basic realm="studentops"
}

func ExampleVerify_missingCredentials() {
	a, _ := auth.New(auth.Config{JWTSecret: "s3cret"})

	_, err := auth.Verify(context.Background(), a, http.Header{}, "/api/students")
	fmt.Println(errors.Is(err, auth.ErrMissingCredentials))
	fmt.Println(auth.Challenge(a, "studentops"))
	// Output:
	// true
	// Bearer realm="studentops"
}

func ExampleWithIdentity() {
	ctx := auth.WithIdentity(context.Background(), auth.AnonymousIdentity())

	fmt.Println("Principal:", auth.PrincipalFromContext(ctx))
	fmt.Println("Anonymous:", auth.IdentityFromContext(ctx).IsAnonymous())
	// Output:
	// Principal: anonymous
	// Anonymous: true
}
