package openai

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/oaigo/oaigo/core/request"
	"github.com/oaigo/oaigo/internal/httpx"
)

const (
	defaultBaseURL = "https://api.openai.com/"
	defaultTimeout = 60 * time.Second

	completionsPath     = "v1/completions"
	chatCompletionsPath = "v1/chat/completions"
	embeddingsPath      = "v1/embeddings"
	moderationsPath     = "v1/moderations"
)

// Client talks to the OpenAI API. One client owns one HTTP connection pool
// shared by every execution, whichever style it runs in. Construct it with
// NewClient and release the pool with Shutdown when done.
type Client struct {
	httpClient            *http.Client
	baseURL               string
	apiKey                string
	timeout               time.Duration
	logger                *slog.Logger
	logRequests           bool
	logResponses          bool
	logStreamingResponses bool
}

// Option configures a Client.
type Option func(*Client) error

// WithAPIKey sets the API key sent as a Bearer token on every request.
func WithAPIKey(apiKey string) Option {
	return func(c *Client) error {
		if apiKey == "" {
			return fmt.Errorf("API key cannot be empty")
		}
		c.apiKey = apiKey
		return nil
	}
}

// WithBaseURL sets the API base URL. A trailing slash is appended when
// missing so that endpoint paths join cleanly.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) error {
		if baseURL == "" {
			return fmt.Errorf("base URL cannot be empty")
		}
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		c.baseURL = baseURL
		return nil
	}
}

// WithHTTPClient sets a custom HTTP client. The timeout configured with
// WithTimeout is not applied to a custom client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) error {
		if httpClient == nil {
			return fmt.Errorf("HTTP client cannot be nil")
		}
		c.httpClient = httpClient
		return nil
	}
}

// WithTimeout sets the whole-call timeout of the internally built HTTP
// client, streaming reads included. Zero disables the timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) error {
		if timeout < 0 {
			return fmt.Errorf("timeout cannot be negative")
		}
		c.timeout = timeout
		return nil
	}
}

// WithLogRequests enables debug logging of outgoing request bodies.
func WithLogRequests() Option {
	return func(c *Client) error {
		c.logRequests = true
		return nil
	}
}

// WithLogResponses enables debug logging of buffered response bodies.
func WithLogResponses() Option {
	return func(c *Client) error {
		c.logResponses = true
		return nil
	}
}

// WithLogStreamingResponses enables debug logging of individual stream
// events. Logging never alters decode outcomes.
func WithLogStreamingResponses() Option {
	return func(c *Client) error {
		c.logStreamingResponses = true
		return nil
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		c.logger = logger
		return nil
	}
}

// NewClient creates a client with default values. The API key defaults to
// the OPENAI_API_KEY environment variable and the base URL to
// OPENAI_BASE_URL, falling back to the public endpoint.
func NewClient(opts ...Option) (*Client, error) {
	baseURL := os.Getenv("OPENAI_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	c := &Client{
		apiKey:  os.Getenv("OPENAI_API_KEY"),
		baseURL: baseURL,
		timeout: defaultTimeout,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}
	return c, nil
}

// Shutdown evicts the pooled connections. Calls already in flight finish
// under their own contexts.
func (c *Client) Shutdown() {
	c.httpClient.CloseIdleConnections()
}

func (c *Client) httpOptions() httpx.Options {
	return httpx.Options{
		APIKey:       c.apiKey,
		LogRequests:  c.logRequests,
		LogResponses: c.logResponses,
		Logger:       c.logger,
	}
}

// newCallFunc builds the buffered call shared by blocking and async
// execution of one request.
func newCallFunc[R any](c *Client, path string, body any) request.CallFunc[R] {
	return func(ctx context.Context) (R, error) {
		var zero R
		if c.apiKey == "" {
			return zero, fmt.Errorf("API key is not set")
		}
		out, err := httpx.DoPostSync[R](ctx, c.httpClient, c.baseURL+path, body, c.httpOptions())
		if err != nil {
			return zero, err
		}
		return *out, nil
	}
}

// newStreamFunc builds the stream opener for the streaming variant of one
// request.
func newStreamFunc(c *Client, path string, body any) request.StreamOpenFunc {
	return func(ctx context.Context) (io.ReadCloser, error) {
		if c.apiKey == "" {
			return nil, fmt.Errorf("API key is not set")
		}
		return httpx.DoPostStream(ctx, c.httpClient, c.baseURL+path, body, c.httpOptions())
	}
}

// identity is the raw-response mapper of the factories that expose the
// full response type.
func identity[T any](v T) T { return v }

// textAccumulator concatenates streamed text fragments in arrival order.
var textAccumulator = request.Accumulator[string]{
	Fold: func(acc, partial string) string { return acc + partial },
}
