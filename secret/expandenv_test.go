package secret

import (
	"errors"
	"strings"
	"testing"
)

func TestExpandEnvStrict_MissingVarErrors(t *testing.T) {
	t.Setenv("API_USERNAME", "toto")

	_, err := ExpandEnvStrict("user=${API_USERNAME} pass=${STUDENTOPS_UNSET_PASSWORD}")
	if !errors.Is(err, ErrMissingEnv) {
		t.Fatalf("expected ErrMissingEnv, got: %v", err)
	}
	if !strings.Contains(err.Error(), "STUDENTOPS_UNSET_PASSWORD") {
		t.Fatalf("expected missing var name in error, got: %v", err)
	}
}

func TestExpandEnvStrict_BracedOnly(t *testing.T) {
	t.Setenv("X", "y")
	t.Setenv("word", "expanded")

	tests := map[string]string{
		"${X}":       "y",
		"a-${X}-b":   "a-y-b",
		"pa$word":    "pa$word",
		"p$$w0rd":    "p$$w0rd",
		"abc$1":      "abc$1",
		"$$${X}":     "$$y",
		"trailing$":  "trailing$",
		"${unclosed": "${unclosed",
	}
	for in, want := range tests {
		out, err := ExpandEnvStrict(in)
		if err != nil {
			t.Fatalf("ExpandEnvStrict(%q) error = %v", in, err)
		}
		if out != want {
			t.Errorf("ExpandEnvStrict(%q) = %q, want %q", in, out, want)
		}
	}
}

func TestExpandEnvStrict_Literal(t *testing.T) {
	out, err := ExpandEnvStrict("python")
	if err != nil || out != "python" {
		t.Fatalf("ExpandEnvStrict() = %q, %v", out, err)
	}
}
