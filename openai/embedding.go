package openai

import "github.com/oaigo/oaigo/core/request"

// Embedding prepares an embeddings call. The endpoint has no streaming
// variant, so the returned handle runs it blocking (Execute) or
// asynchronously (Async) only.
func (c *Client) Embedding(req EmbeddingRequest) *request.Executor[EmbeddingResponse, EmbeddingResponse] {
	return request.New(
		newCallFunc[EmbeddingResponse](c, embeddingsPath, req),
		identity[EmbeddingResponse],
	)
}

// EmbeddingVector is Embedding projected onto the first embedding vector.
func (c *Client) EmbeddingVector(req EmbeddingRequest) *request.Executor[EmbeddingResponse, []float32] {
	return request.New(
		newCallFunc[EmbeddingResponse](c, embeddingsPath, req),
		EmbeddingResponse.FirstEmbedding,
	)
}
