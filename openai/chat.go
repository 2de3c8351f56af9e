package openai

import "github.com/oaigo/oaigo/core/request"

// ChatCompletion prepares a chat completions call. The returned handle runs
// it blocking (Execute), asynchronously (Async) or streaming (Stream) from
// the one request: the buffered variants send it with the stream indicator
// cleared, the streaming variant with streaming forced on.
func (c *Client) ChatCompletion(req ChatCompletionRequest) *request.StreamingExecutor[ChatCompletionResponse, ChatCompletionResponse] {
	return request.NewStreaming(
		newCallFunc[ChatCompletionResponse](c, chatCompletionsPath, req.withStreamDisabled()),
		identity[ChatCompletionResponse],
		newStreamFunc(c, chatCompletionsPath, req.withStreamEnabled()),
		identity[ChatCompletionResponse],
		chatAccumulator,
		c.logStreamingResponses,
		c.logger,
	)
}

// ChatCompletionText is ChatCompletion projected onto the generated text:
// blocking and async execution yield the first choice's message content,
// streaming yields content fragments and accumulates them into the full
// text.
func (c *Client) ChatCompletionText(req ChatCompletionRequest) *request.StreamingExecutor[ChatCompletionResponse, string] {
	return request.NewStreaming(
		newCallFunc[ChatCompletionResponse](c, chatCompletionsPath, req.withStreamDisabled()),
		ChatCompletionResponse.Content,
		newStreamFunc(c, chatCompletionsPath, req.withStreamEnabled()),
		ChatCompletionResponse.DeltaContent,
		textAccumulator,
		c.logStreamingResponses,
		c.logger,
	)
}
