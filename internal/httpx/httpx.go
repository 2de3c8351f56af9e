package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/oaigo/oaigo/core/request"
	"github.com/oaigo/oaigo/internal/utils"
)

// maxResponseBodySize is the maximum response body size (10 MB). Enforced
// via io.LimitReader to prevent unbounded memory allocation from rogue
// responses.
const maxResponseBodySize int64 = 10 * 1024 * 1024

// Options carries the per-client settings the POST helpers need: the bearer
// credential and the logging switches.
type Options struct {
	APIKey       string
	LogRequests  bool
	LogResponses bool
	Logger       *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// newJSONRequest marshals body and builds a POST request with the JSON
// content type and, when configured, the bearer authorization header. Both
// the blocking and the streaming path go through here so every call is
// prepared identically.
func newJSONRequest(ctx context.Context, url string, body any, opts Options) (*http.Request, []byte, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, nil, fmt.Errorf("error marshaling body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, nil, fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if opts.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+opts.APIKey)
	}
	return req, jsonBody, nil
}

// DoPostSync performs a synchronous HTTP POST request with a JSON body and
// decodes the 2xx response into Out.
//
// Error handling strategy:
//   - connection failures and body read failures return a TransportError
//   - non-2xx responses return an APIError with the envelope parsed
//   - undecodable 2xx bodies return a DecodeError carrying the payload
//   - response body close errors are logged, never returned
func DoPostSync[Out any](ctx context.Context, client *http.Client, url string, body any, opts Options) (*Out, error) {
	httpClient := client
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	req, jsonBody, err := newJSONRequest(ctx, url, body, opts)
	if err != nil {
		return nil, err
	}

	if opts.LogRequests {
		opts.logger().Debug("sending request",
			"method", http.MethodPost,
			"url", url,
			"body", utils.TruncateString(string(jsonBody), utils.DefaultMaxStringLength),
		)
	}

	res, err := httpClient.Do(req)
	if err != nil {
		return nil, &request.TransportError{Op: "call", Err: err}
	}
	defer utils.CloseWithLog(res.Body)

	respBody, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBodySize))
	if err != nil {
		return nil, &request.TransportError{Op: "call", Err: fmt.Errorf("error reading response body: %w", err)}
	}

	if opts.LogResponses {
		opts.logger().Debug("received response",
			"url", url,
			"status", res.StatusCode,
			"body", utils.TruncateString(string(respBody), utils.DefaultMaxStringLength),
		)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, request.NewAPIError(res.StatusCode, respBody)
	}

	var out Out
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, &request.DecodeError{Err: err, Payload: string(respBody)}
	}
	return &out, nil
}

// DoPostStream performs an HTTP POST request and returns the response body
// left open for SSE reading. The caller owns the returned body and must
// close it when done. On error paths the body is read and closed before
// returning.
func DoPostStream(ctx context.Context, client *http.Client, url string, body any, opts Options) (io.ReadCloser, error) {
	httpClient := client
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	req, jsonBody, err := newJSONRequest(ctx, url, body, opts)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")

	if opts.LogRequests {
		opts.logger().Debug("sending stream request",
			"method", http.MethodPost,
			"url", url,
			"body", utils.TruncateString(string(jsonBody), utils.DefaultMaxStringLength),
		)
	}

	res, err := httpClient.Do(req)
	if err != nil {
		return nil, &request.TransportError{Op: "stream open", Err: err}
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		defer utils.CloseWithLog(res.Body)
		errorBody, readErr := io.ReadAll(io.LimitReader(res.Body, maxResponseBodySize))
		if readErr != nil {
			return nil, &request.TransportError{Op: "stream open", Err: fmt.Errorf("non-2xx status %d (failed to read body: %w)", res.StatusCode, readErr)}
		}
		return nil, request.NewAPIError(res.StatusCode, errorBody)
	}

	return res.Body, nil
}
