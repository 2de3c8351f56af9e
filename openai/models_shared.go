package openai

import (
	"github.com/oaigo/oaigo/internal/utils"
)

// Message roles accepted by the chat completions API.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Usage reports token consumption for one call. Embeddings and moderations
// leave CompletionTokens at zero.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens,omitempty"`
	TotalTokens      int `json:"total_tokens"`
}

// StreamOptions tunes the streaming variant of a call. It only applies when
// the stream flag is set, so the blocking variant of a request drops it.
type StreamOptions struct {
	// IncludeUsage asks the API to append a final usage event before the
	// stream terminator.
	IncludeUsage bool `json:"include_usage,omitempty"`
}

// Ptr returns a pointer to v, for filling optional request fields inline.
//
// Example:
//
//	request.Temperature = openai.Ptr(0.2)
func Ptr[T any](v T) *T {
	return utils.Ptr(v)
}
