package openai

import (
	"github.com/oaigo/oaigo/core/parse"
	"github.com/oaigo/oaigo/core/request"
)

// chatAccumulator merges streamed chat chunks back into the shape of a
// blocking response and repairs tool-call argument JSON once the stream
// ends.
var chatAccumulator = request.Accumulator[ChatCompletionResponse]{
	Fold:     mergeChatChunk,
	Finalize: finalizeChatResponse,
}

// mergeChatChunk folds one streamed chunk into the accumulated response.
// Content deltas append into the choice's message, tool-call fragments merge
// by index, and identifiers, finish reasons and usage settle on the last
// value seen.
func mergeChatChunk(acc, chunk ChatCompletionResponse) ChatCompletionResponse {
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
	if chunk.SystemFingerprint != "" {
		acc.SystemFingerprint = chunk.SystemFingerprint
	}
	if chunk.Usage != nil {
		acc.Usage = chunk.Usage
	}

	for _, choice := range chunk.Choices {
		for len(acc.Choices) <= choice.Index {
			acc.Choices = append(acc.Choices, ChatCompletionChoice{Index: len(acc.Choices)})
		}
		target := &acc.Choices[choice.Index]

		if choice.FinishReason != "" {
			target.FinishReason = choice.FinishReason
		}
		if choice.Delta == nil {
			continue
		}
		if target.Message == nil {
			target.Message = &ChatMessage{Role: RoleAssistant}
		}
		if choice.Delta.Role != "" {
			target.Message.Role = choice.Delta.Role
		}
		target.Message.Content += choice.Delta.Content
		for _, fragment := range choice.Delta.ToolCalls {
			mergeToolCallFragment(target.Message, fragment)
		}
	}
	return acc
}

// mergeToolCallFragment merges one streamed tool-call fragment into the
// message. Fragments of the same call share an index; the id, type and name
// arrive on the first fragment and the argument JSON accumulates across all
// of them.
func mergeToolCallFragment(message *ChatMessage, fragment ToolCall) {
	index := 0
	if fragment.Index != nil {
		index = *fragment.Index
	}
	for len(message.ToolCalls) <= index {
		message.ToolCalls = append(message.ToolCalls, ToolCall{})
	}
	target := &message.ToolCalls[index]

	if fragment.ID != "" {
		target.ID = fragment.ID
	}
	if fragment.Type != "" {
		target.Type = fragment.Type
	}
	if fragment.Function.Name != "" {
		target.Function.Name = fragment.Function.Name
	}
	target.Function.Arguments += fragment.Function.Arguments
}

// finalizeChatResponse repairs tool-call argument JSON assembled from
// fragments. A stream that ends early leaves arguments cut off mid-token;
// repairing here means consumers always see well-formed JSON. Arguments
// that fail to repair are left as received.
func finalizeChatResponse(acc ChatCompletionResponse) ChatCompletionResponse {
	for i := range acc.Choices {
		message := acc.Choices[i].Message
		if message == nil {
			continue
		}
		for j := range message.ToolCalls {
			args := message.ToolCalls[j].Function.Arguments
			if args == "" {
				continue
			}
			if repaired, err := parse.RepairJSON(args); err == nil {
				message.ToolCalls[j].Function.Arguments = repaired
			}
		}
	}
	return acc
}

// ParseToolCallArguments decodes a tool call's argument JSON into T,
// repairing truncated or malformed fragments along the way.
//
// Example:
//
//	type weatherArgs struct {
//	    City string `json:"city"`
//	}
//	args, err := openai.ParseToolCallArguments[weatherArgs](response.ToolCalls()[0])
func ParseToolCallArguments[T any](call ToolCall) (T, error) {
	return parse.StringAs[T](call.Function.Arguments)
}
