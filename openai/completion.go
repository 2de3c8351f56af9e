package openai

import "github.com/oaigo/oaigo/core/request"

// Completion prepares a legacy completions call. The returned handle runs
// it blocking (Execute), asynchronously (Async) or streaming (Stream) from
// the one request: the buffered variants send it with the stream indicator
// cleared, the streaming variant with streaming forced on.
func (c *Client) Completion(req CompletionRequest) *request.StreamingExecutor[CompletionResponse, CompletionResponse] {
	return request.NewStreaming(
		newCallFunc[CompletionResponse](c, completionsPath, req.withStreamDisabled()),
		identity[CompletionResponse],
		newStreamFunc(c, completionsPath, req.withStreamEnabled()),
		identity[CompletionResponse],
		completionAccumulator,
		c.logStreamingResponses,
		c.logger,
	)
}

// CompletionText is Completion projected onto the generated text: blocking
// and async execution yield the first choice's text, streaming yields text
// fragments and accumulates them into the full text.
func (c *Client) CompletionText(req CompletionRequest) *request.StreamingExecutor[CompletionResponse, string] {
	return request.NewStreaming(
		newCallFunc[CompletionResponse](c, completionsPath, req.withStreamDisabled()),
		CompletionResponse.Text,
		newStreamFunc(c, completionsPath, req.withStreamEnabled()),
		CompletionResponse.Text,
		textAccumulator,
		c.logStreamingResponses,
		c.logger,
	)
}
