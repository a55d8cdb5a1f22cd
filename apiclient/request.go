package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"time"
)

// Header is one request header. RequestSpec keeps headers in insertion order.
type Header struct {
	Name  string
	Value string
}

// RequestSpec describes one outbound call. It is built per call.
type RequestSpec struct {
	URL     string
	Method  string // GET or POST
	Headers []Header
	Body    []byte
	Timeout time.Duration

	// Operation names the call in spans, metrics and logs.
	Operation string
}

// NewGet builds a GET request.
func NewGet(rawURL string, timeout time.Duration) RequestSpec {
	return RequestSpec{
		URL:     rawURL,
		Method:  http.MethodGet,
		Headers: []Header{{Name: "Accept", Value: "application/json"}},
		Timeout: timeout,
	}
}

// NewJSONPost builds a POST request whose body is body encoded as UTF-8 JSON.
func NewJSONPost(rawURL string, body any, timeout time.Duration) (RequestSpec, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return RequestSpec{}, fmt.Errorf("%w: encode body: %v", ErrInvalidRequest, err)
	}
	return RequestSpec{
		URL:    rawURL,
		Method: http.MethodPost,
		Headers: []Header{
			{Name: "Accept", Value: "application/json"},
			{Name: "Content-Type", Value: "application/json"},
		},
		Body:    data,
		Timeout: timeout,
	}, nil
}

// WithHeader returns a copy of s with the header appended.
func (s RequestSpec) WithHeader(name, value string) RequestSpec {
	s.Headers = append(slices.Clip(s.Headers), Header{Name: name, Value: value})
	return s
}

// WithOperation returns a copy of s tagged with the operation name.
func (s RequestSpec) WithOperation(op string) RequestSpec {
	s.Operation = op
	return s
}

// Validate reports whether s can be sent.
func (s RequestSpec) Validate() error {
	switch s.Method {
	case http.MethodGet, http.MethodPost:
	default:
		return fmt.Errorf("%w: unsupported method %q", ErrInvalidRequest, s.Method)
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidRequest)
	}
	u, err := url.Parse(s.URL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: url must be absolute http(s), got %q", ErrInvalidRequest, s.URL)
	}
	return nil
}
