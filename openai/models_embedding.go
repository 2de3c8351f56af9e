package openai

// Embedding model names.
const (
	ModelTextEmbedding3Small = "text-embedding-3-small"
	ModelTextEmbedding3Large = "text-embedding-3-large"
)

/*
	EMBEDDINGS API - INPUT
*/

// EmbeddingRequest is the request payload for the embeddings endpoint.
// Each input string produces one embedding vector in the response.
type EmbeddingRequest struct {
	Model          string   `json:"model"`
	Input          []string `json:"input"`
	Dimensions     *int     `json:"dimensions,omitempty"`
	EncodingFormat string   `json:"encoding_format,omitempty"`
	User           string   `json:"user,omitempty"`
}

/*
	EMBEDDINGS API - OUTPUT
*/

// EmbeddingResponse is the response payload for the embeddings endpoint.
type EmbeddingResponse struct {
	Object string      `json:"object,omitempty"`
	Data   []Embedding `json:"data,omitempty"`
	Model  string      `json:"model,omitempty"`
	Usage  *Usage      `json:"usage,omitempty"`
}

// Embedding is one embedding vector. Index matches the position of the
// input string that produced it.
type Embedding struct {
	Object    string    `json:"object,omitempty"`
	Index     int       `json:"index"`
	Embedding []float32 `json:"embedding"`
}

// FirstEmbedding returns the vector of the first embedding, or nil when the
// response has no data.
func (r EmbeddingResponse) FirstEmbedding() []float32 {
	if len(r.Data) == 0 {
		return nil
	}
	return r.Data[0].Embedding
}
