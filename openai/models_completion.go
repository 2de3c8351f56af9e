package openai

import "github.com/oaigo/oaigo/core/request"

// ModelGPT35TurboInstruct is the only broadly available model still served
// by the legacy completions endpoint.
const ModelGPT35TurboInstruct = "gpt-3.5-turbo-instruct"

/*
	COMPLETIONS API (LEGACY) - INPUT
*/

// CompletionRequest is the request payload for the legacy completions
// endpoint. Prefer the chat completions API for current models.
type CompletionRequest struct {
	Model            string         `json:"model"`
	Prompt           string         `json:"prompt"`
	Suffix           string         `json:"suffix,omitempty"`
	MaxTokens        *int           `json:"max_tokens,omitempty"`
	Temperature      *float64       `json:"temperature,omitempty"`
	TopP             *float64       `json:"top_p,omitempty"`
	N                *int           `json:"n,omitempty"`
	Logprobs         *int           `json:"logprobs,omitempty"`
	Echo             *bool          `json:"echo,omitempty"`
	Stop             any            `json:"stop,omitempty"`
	PresencePenalty  *float64       `json:"presence_penalty,omitempty"`
	FrequencyPenalty *float64       `json:"frequency_penalty,omitempty"`
	BestOf           *int           `json:"best_of,omitempty"`
	LogitBias        map[string]int `json:"logit_bias,omitempty"`
	User             string         `json:"user,omitempty"`
	Seed             *int           `json:"seed,omitempty"`
	Stream           *bool          `json:"stream,omitempty"`
	StreamOptions    *StreamOptions `json:"stream_options,omitempty"`
}

// withStreamDisabled returns a copy of the request with the stream
// indicator cleared, for blocking and async execution.
func (r CompletionRequest) withStreamDisabled() CompletionRequest {
	r.Stream = nil
	r.StreamOptions = nil
	return r
}

// withStreamEnabled returns a copy of the request with streaming forced on.
// Usage reporting on the final chunk is enabled unless the caller already
// chose their own stream options.
func (r CompletionRequest) withStreamEnabled() CompletionRequest {
	r.Stream = Ptr(true)
	if r.StreamOptions == nil {
		r.StreamOptions = &StreamOptions{IncludeUsage: true}
	}
	return r
}

/*
	COMPLETIONS API (LEGACY) - OUTPUT
*/

// CompletionResponse is the response payload for the legacy completions
// endpoint. Streamed chunks decode into the same shape, with each chunk's
// choices carrying a fragment of the generated text.
type CompletionResponse struct {
	ID      string             `json:"id,omitempty"`
	Object  string             `json:"object,omitempty"`
	Created int64              `json:"created,omitempty"`
	Model   string             `json:"model,omitempty"`
	Choices []CompletionChoice `json:"choices,omitempty"`
	Usage   *Usage             `json:"usage,omitempty"`
}

// CompletionChoice is one generated completion.
type CompletionChoice struct {
	Index        int    `json:"index"`
	Text         string `json:"text,omitempty"`
	FinishReason string `json:"finish_reason,omitempty"`
}

// Text returns the text of the first choice, or "" when the response has
// no choices. On streamed chunks this is the text fragment of the chunk.
func (r CompletionResponse) Text() string {
	if len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Text
}

// completionAccumulator merges streamed completion chunks back into the
// shape of a blocking response.
var completionAccumulator = request.Accumulator[CompletionResponse]{
	Fold: mergeCompletionChunk,
}

// mergeCompletionChunk folds one streamed chunk into the accumulated
// response. Text fragments append per choice index; identifiers, finish
// reasons and usage settle on the last value seen.
func mergeCompletionChunk(acc, chunk CompletionResponse) CompletionResponse {
	if chunk.ID != "" {
		acc.ID = chunk.ID
	}
	if chunk.Object != "" {
		acc.Object = chunk.Object
	}
	if chunk.Created != 0 {
		acc.Created = chunk.Created
	}
	if chunk.Model != "" {
		acc.Model = chunk.Model
	}
	if chunk.Usage != nil {
		acc.Usage = chunk.Usage
	}

	for _, choice := range chunk.Choices {
		for len(acc.Choices) <= choice.Index {
			acc.Choices = append(acc.Choices, CompletionChoice{Index: len(acc.Choices)})
		}
		target := &acc.Choices[choice.Index]
		target.Text += choice.Text
		if choice.FinishReason != "" {
			target.FinishReason = choice.FinishReason
		}
	}
	return acc
}
