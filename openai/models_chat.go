package openai

// Common chat completion models.
const (
	ModelGPT4o     = "gpt-4o"
	ModelGPT4oMini = "gpt-4o-mini"
	ModelGPT41     = "gpt-4.1"
	ModelGPT41Mini = "gpt-4.1-mini"
	ModelGPT41Nano = "gpt-4.1-nano"
)

/*
	CHAT COMPLETIONS API - INPUT
*/

// ChatCompletionRequest represents the v1/chat/completions request format.
// Optional fields are pointers so the zero value stays off the wire; [Ptr]
// helps fill them inline.
type ChatCompletionRequest struct {
	Model               string         `json:"model"`
	Messages            []ChatMessage  `json:"messages"`
	Temperature         *float64       `json:"temperature,omitempty"`
	TopP                *float64       `json:"top_p,omitempty"`
	N                   *int           `json:"n,omitempty"`
	MaxTokens           *int           `json:"max_tokens,omitempty"`            // Legacy, still accepted
	MaxCompletionTokens *int           `json:"max_completion_tokens,omitempty"` // Preferred
	FrequencyPenalty    *float64       `json:"frequency_penalty,omitempty"`
	PresencePenalty     *float64       `json:"presence_penalty,omitempty"`
	LogitBias           map[string]int `json:"logit_bias,omitempty"`
	Stop                any            `json:"stop,omitempty"` // string or []string
	Seed                *int           `json:"seed,omitempty"`
	User                string         `json:"user,omitempty"`

	Stream        *bool          `json:"stream,omitempty"`
	StreamOptions *StreamOptions `json:"stream_options,omitempty"`

	// Tool calling
	Tools             []Tool `json:"tools,omitempty"`
	ToolChoice        any    `json:"tool_choice,omitempty"` // "auto", "none", "required", or object
	ParallelToolCalls *bool  `json:"parallel_tool_calls,omitempty"`

	// Response format
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

// withStreamDisabled returns the blocking variant of the request: a copy
// with the streaming indicator group cleared.
func (r ChatCompletionRequest) withStreamDisabled() ChatCompletionRequest {
	r.Stream = nil
	r.StreamOptions = nil
	return r
}

// withStreamEnabled returns the streaming variant of the request: a copy
// with the stream flag forced on and usage reporting requested unless the
// caller configured stream options explicitly.
func (r ChatCompletionRequest) withStreamEnabled() ChatCompletionRequest {
	r.Stream = Ptr(true)
	if r.StreamOptions == nil {
		r.StreamOptions = &StreamOptions{IncludeUsage: true}
	}
	return r
}

// ChatMessage is one entry of a conversation, used both in requests and in
// responses.
type ChatMessage struct {
	Role       string     `json:"role"` // system, user, assistant, tool
	Content    string     `json:"content"`
	Name       string     `json:"name,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"` // for role=tool
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`   // for role=assistant
}

// SystemMessage builds a system-role message.
func SystemMessage(content string) ChatMessage {
	return ChatMessage{Role: RoleSystem, Content: content}
}

// UserMessage builds a user-role message.
func UserMessage(content string) ChatMessage {
	return ChatMessage{Role: RoleUser, Content: content}
}

// AssistantMessage builds an assistant-role message, typically to replay a
// prior model turn.
func AssistantMessage(content string) ChatMessage {
	return ChatMessage{Role: RoleAssistant, Content: content}
}

// ToolMessage builds a tool-role message carrying the result of the tool
// call identified by toolCallID.
func ToolMessage(toolCallID, content string) ChatMessage {
	return ChatMessage{Role: RoleTool, Content: content, ToolCallID: toolCallID}
}

// Tool declares a function the model may call.
type Tool struct {
	Type     string   `json:"type"` // "function"
	Function Function `json:"function"`
}

// Function describes a callable function. Parameters is a JSON schema
// object passed through to the API as-is.
type Function struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parameters  map[string]any `json:"parameters,omitempty"`
	Strict      bool           `json:"strict,omitempty"`
}

// ToolCall is a function invocation requested by the model. In full
// responses Index is absent; streamed fragments carry it so the pieces of
// concurrent calls can be told apart during assembly.
type ToolCall struct {
	Index    *int         `json:"index,omitempty"`
	ID       string       `json:"id,omitempty"`
	Type     string       `json:"type,omitempty"` // "function"
	Function FunctionCall `json:"function"`
}

// FunctionCall carries the function name and its argument JSON. Arguments
// is a string, parsed on demand with [ParseToolCallArguments].
type FunctionCall struct {
	Name      string `json:"name,omitempty"`
	Arguments string `json:"arguments"`
}

// ResponseFormat selects the output format of the model.
type ResponseFormat struct {
	Type       string            `json:"type"` // "text", "json_object", "json_schema"
	JSONSchema *JSONSchemaFormat `json:"json_schema,omitempty"`
}

// JSONSchemaFormat names and defines a schema for structured output. Schema
// is a JSON schema object passed through to the API as-is.
type JSONSchemaFormat struct {
	Name   string         `json:"name"`
	Schema map[string]any `json:"schema"`
	Strict bool           `json:"strict,omitempty"`
}

/*
	CHAT COMPLETIONS API - OUTPUT
*/

// ChatCompletionResponse represents the v1/chat/completions response. The
// same type decodes streamed chunks: a full response populates Message in
// each choice, a chunk populates Delta.
type ChatCompletionResponse struct {
	ID                string                 `json:"id"`
	Object            string                 `json:"object"` // "chat.completion" or "chat.completion.chunk"
	Created           int64                  `json:"created"`
	Model             string                 `json:"model"`
	SystemFingerprint string                 `json:"system_fingerprint,omitempty"`
	Choices           []ChatCompletionChoice `json:"choices"`
	Usage             *Usage                 `json:"usage,omitempty"`
}

// ChatCompletionChoice is one alternative completion.
type ChatCompletionChoice struct {
	Index        int          `json:"index"`
	Message      *ChatMessage `json:"message,omitempty"`
	Delta        *ChatDelta   `json:"delta,omitempty"`
	FinishReason string       `json:"finish_reason,omitempty"` // "stop", "length", "tool_calls", "content_filter"
}

// ChatDelta is the incremental part of a choice carried by one streamed
// chunk.
type ChatDelta struct {
	Role      string     `json:"role,omitempty"`
	Content   string     `json:"content,omitempty"`
	Refusal   string     `json:"refusal,omitempty"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}

// Content returns the assistant text of the first choice, or "" when the
// response has no message content.
func (r ChatCompletionResponse) Content() string {
	if len(r.Choices) == 0 || r.Choices[0].Message == nil {
		return ""
	}
	return r.Choices[0].Message.Content
}

// DeltaContent returns the text fragment of the first choice's delta, or ""
// for chunks without one (role primers, tool-call fragments, usage events).
func (r ChatCompletionResponse) DeltaContent() string {
	if len(r.Choices) == 0 || r.Choices[0].Delta == nil {
		return ""
	}
	return r.Choices[0].Delta.Content
}

// ToolCalls returns the tool calls requested in the first choice, or nil
// when there are none.
func (r ChatCompletionResponse) ToolCalls() []ToolCall {
	if len(r.Choices) == 0 || r.Choices[0].Message == nil {
		return nil
	}
	return r.Choices[0].Message.ToolCalls
}

// FinishReason returns the finish reason of the first choice, or "" while
// the response is still streaming.
func (r ChatCompletionResponse) FinishReason() string {
	if len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].FinishReason
}
