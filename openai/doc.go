// Package openai is a client for the OpenAI REST API built around one
// execution core: every endpoint factory returns a prepared call that the
// caller then runs blocking, asynchronously with callbacks, or as a live
// stream of partial results, without the request being rebuilt per style.
//
// The main entry point is [NewClient], which reads OPENAI_API_KEY and
// OPENAI_BASE_URL from the environment. Use [WithAPIKey], [WithBaseURL] and
// the other options to override these values programmatically.
//
// [Client.ChatCompletion] and [Client.Completion] return streaming-capable
// handles; [Client.Embedding] and [Client.Moderation] return handles
// without a Stream method, the endpoints having no streaming variant. Each
// factory has a scalar-projection sibling ([Client.ChatCompletionText],
// [Client.CompletionText], [Client.EmbeddingVector],
// [Client.ModerationResult]) mapping the raw response onto its payload.
//
//	client, err := openai.NewClient()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Shutdown()
//
//	text, err := client.ChatCompletionText(openai.ChatCompletionRequest{
//	    Model:    openai.ModelGPT4oMini,
//	    Messages: []openai.ChatMessage{openai.UserMessage("Hello!")},
//	}).Execute(ctx)
package openai
