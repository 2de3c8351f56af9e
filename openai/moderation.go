package openai

import "github.com/oaigo/oaigo/core/request"

// Moderation prepares a moderations call. The endpoint has no streaming
// variant, so the returned handle runs it blocking (Execute) or
// asynchronously (Async) only.
func (c *Client) Moderation(req ModerationRequest) *request.Executor[ModerationResponse, ModerationResponse] {
	return request.New(
		newCallFunc[ModerationResponse](c, moderationsPath, req),
		identity[ModerationResponse],
	)
}

// ModerationResult is Moderation projected onto the first result.
func (c *Client) ModerationResult(req ModerationRequest) *request.Executor[ModerationResponse, ModerationResult] {
	return request.New(
		newCallFunc[ModerationResponse](c, moderationsPath, req),
		ModerationResponse.FirstResult,
	)
}
