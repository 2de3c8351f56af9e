package openai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

// ---- construction tests ----

func TestNewClient_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OPENAI_BASE_URL", "")

	client, err := NewClient()
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	if client.baseURL != defaultBaseURL {
		t.Errorf("baseURL = %q, want %q", client.baseURL, defaultBaseURL)
	}
	if client.timeout != defaultTimeout {
		t.Errorf("timeout = %v, want %v", client.timeout, defaultTimeout)
	}
	if client.httpClient == nil {
		t.Fatal("expected an internally built HTTP client")
	}
	if client.httpClient.Timeout != defaultTimeout {
		t.Errorf("httpClient.Timeout = %v, want %v", client.httpClient.Timeout, defaultTimeout)
	}
	if client.logger == nil {
		t.Error("expected a default logger")
	}
	if client.apiKey != "" {
		t.Errorf("apiKey = %q, want empty", client.apiKey)
	}
}

func TestNewClient_EnvironmentDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "env-key")
	t.Setenv("OPENAI_BASE_URL", "https://proxy.example.com")

	client, err := NewClient()
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	if client.apiKey != "env-key" {
		t.Errorf("apiKey = %q, want %q", client.apiKey, "env-key")
	}
	// The trailing slash is appended to environment values too.
	if client.baseURL != "https://proxy.example.com/" {
		t.Errorf("baseURL = %q, want %q", client.baseURL, "https://proxy.example.com/")
	}
}

func TestNewClient_OptionsOverrideEnvironment(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "env-key")
	t.Setenv("OPENAI_BASE_URL", "https://env.example.com/")

	client, err := NewClient(
		WithAPIKey("option-key"),
		WithBaseURL("https://option.example.com/v2/"),
	)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	if client.apiKey != "option-key" {
		t.Errorf("apiKey = %q, want %q", client.apiKey, "option-key")
	}
	if client.baseURL != "https://option.example.com/v2/" {
		t.Errorf("baseURL = %q, want %q", client.baseURL, "https://option.example.com/v2/")
	}
}

func TestNewClient_OptionValidation(t *testing.T) {
	testCases := []struct {
		name   string
		option Option
	}{
		{name: "empty API key", option: WithAPIKey("")},
		{name: "empty base URL", option: WithBaseURL("")},
		{name: "nil HTTP client", option: WithHTTPClient(nil)},
		{name: "negative timeout", option: WithTimeout(-time.Second)},
		{name: "nil logger", option: WithLogger(nil)},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if _, err := NewClient(testCase.option); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestWithBaseURL_AppendsTrailingSlash(t *testing.T) {
	client, err := NewClient(WithBaseURL("https://api.example.com"))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if client.baseURL != "https://api.example.com/" {
		t.Errorf("baseURL = %q, want %q", client.baseURL, "https://api.example.com/")
	}
}

func TestWithHTTPClient_KeepsCustomClientUntouched(t *testing.T) {
	custom := &http.Client{}

	client, err := NewClient(WithHTTPClient(custom), WithTimeout(5*time.Second))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	if client.httpClient != custom {
		t.Error("expected the custom HTTP client to be used")
	}
	// WithTimeout configures only the internally built client.
	if custom.Timeout != 0 {
		t.Errorf("custom client timeout = %v, want 0", custom.Timeout)
	}
}

func TestWithTimeout_AppliesToInternalClient(t *testing.T) {
	client, err := NewClient(WithTimeout(5 * time.Second))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if client.httpClient.Timeout != 5*time.Second {
		t.Errorf("httpClient.Timeout = %v, want %v", client.httpClient.Timeout, 5*time.Second)
	}
}

// ---- lifecycle tests ----

// TestClient_Shutdown verifies that shutdown evicts the pool without
// breaking the client for calls that follow.
func TestClient_Shutdown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.Write([]byte(`{"id":"chatcmpl-1","choices":[{"index":0,"message":{"role":"assistant","content":"ok"}}]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	request := ChatCompletionRequest{
		Model:    ModelGPT4oMini,
		Messages: []ChatMessage{UserMessage("Hi")},
	}
	if _, err := client.ChatCompletion(request).Execute(context.Background()); err != nil {
		t.Fatalf("Execute before shutdown returned error: %v", err)
	}

	client.Shutdown()

	if _, err := client.ChatCompletion(request).Execute(context.Background()); err != nil {
		t.Fatalf("Execute after shutdown returned error: %v", err)
	}
}

// TestClient_MissingAPIKey verifies that a client without an API key fails
// at call time, before any request is sent, in every execution style.
func TestClient_MissingAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		requests.Add(1)
	}))
	defer server.Close()

	client, err := NewClient(WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	chatRequest := ChatCompletionRequest{
		Model:    ModelGPT4oMini,
		Messages: []ChatMessage{UserMessage("Hi")},
	}

	if _, err := client.ChatCompletion(chatRequest).Execute(context.Background()); err == nil {
		t.Fatal("expected error from Execute, got nil")
	} else if !strings.Contains(err.Error(), "API key is not set") {
		t.Errorf("unexpected error: %v", err)
	}

	errs := make(chan error, 1)
	client.ChatCompletionText(chatRequest).Stream().
		OnError(func(err error) { errs <- err }).
		Start(context.Background())

	select {
	case err := <-errs:
		if !strings.Contains(err.Error(), "API key is not set") {
			t.Errorf("unexpected stream error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for stream error")
	}

	if got := requests.Load(); got != 0 {
		t.Errorf("server received %d requests, want 0", got)
	}
}
