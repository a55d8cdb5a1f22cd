package apiclient

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// ClientConfig configures a Client.
type ClientConfig struct {
	// BaseURL is the student API root, e.g. http://api:5000.
	BaseURL string

	// Credentials are sent with every call when non-nil.
	Credentials *Credentials

	// Timeout bounds calls whose RequestSpec has none. Default: 10s.
	Timeout time.Duration
}

// Client issues calls against one API base URL with fixed credentials.
type Client struct {
	base    string
	creds   *Credentials
	timeout time.Duration
	exec    *Executor
}

// NewClient creates a Client. A nil exec uses a default Executor.
func NewClient(cfg ClientConfig, exec *Executor) (*Client, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: base url %q", ErrInvalidRequest, cfg.BaseURL)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if exec == nil {
		exec = NewExecutor(ExecutorConfig{})
	}
	var creds *Credentials
	if cfg.Credentials != nil {
		c := *cfg.Credentials
		creds = &c
	}
	return &Client{
		base:    strings.TrimRight(cfg.BaseURL, "/"),
		creds:   creds,
		timeout: cfg.Timeout,
		exec:    exec,
	}, nil
}

// URL joins path onto the base URL.
func (c *Client) URL(path string) string {
	if path == "" {
		return c.base
	}
	return c.base + "/" + strings.TrimLeft(path, "/")
}

// Timeout returns the default call timeout.
func (c *Client) Timeout() time.Duration { return c.timeout }

// Do executes spec with the client's credentials and normalizes the outcome.
// A zero spec.Timeout is replaced by the client default.
func (c *Client) Do(ctx context.Context, spec RequestSpec) CallResult {
	if spec.Timeout <= 0 {
		spec.Timeout = c.timeout
	}
	return Normalize(c.exec.Execute(ctx, spec, c.creds))
}

// Get calls GET {base}/path.
func (c *Client) Get(ctx context.Context, path, operation string) CallResult {
	return c.Do(ctx, NewGet(c.URL(path), c.timeout).WithOperation(operation))
}

// PostJSON calls POST {base}/path with body encoded as JSON.
func (c *Client) PostJSON(ctx context.Context, path, operation string, body any) CallResult {
	spec, err := NewJSONPost(c.URL(path), body, c.timeout)
	if err != nil {
		return TransportFailure(err.Error())
	}
	return c.Do(ctx, spec.WithOperation(operation))
}
