package kit

import (
	"github.com/voximplant/kit-functions-sdk-sub000/core/reply"
	"github.com/voximplant/kit-functions-sdk-sub000/core/state"
	"github.com/voximplant/kit-functions-sdk-sub000/observability"
)

// CallResponse is the reply body for in-call invocations. The field names
// are a wire contract with the platform and must not change.
type CallResponse struct {
	Variables map[string]string `json:"VARIABLES"`
	Skills    []state.Skill     `json:"SKILLS"`
	Tags      []int             `json:"TAGS"`
}

// MessageResponse is the reply body for message and avatar invocations.
type MessageResponse struct {
	Text      string            `json:"text"`
	Payload   []map[string]any  `json:"payload"`
	Variables map[string]string `json:"variables"`
}

// GetResponseBody assembles the reply for the invocation. Called once,
// after all mutations:
//
//   - in_call_function yields *CallResponse
//   - incoming_message and avatar_function yield *MessageResponse
//   - webhook (and anything unrecognized) yields nil; the platform treats
//     the absent body as a valid empty reply
//
// The returned structures share nothing with internal state.
func (k *Kit) GetResponseBody() any {
	kind := k.classified.Kind
	observability.RecordResponse(string(kind))

	switch {
	case kind.IsCall():
		return &CallResponse{
			Variables: k.variables.Stringified(),
			Skills:    k.skills.Snapshot(),
			Tags:      k.tags.Values(),
		}
	case kind.IsMessage():
		payload := k.message.Serialize(reply.SerializeOptions{
			Skills:      k.skills.Snapshot(),
			Tags:        k.tags.Values(),
			ReplaceTags: k.tags.Replaced(),
			Priority:    k.priority.Get(),
		})
		return &MessageResponse{
			Text:      k.message.Text(),
			Payload:   payload,
			Variables: k.variables.Stringified(),
		}
	default:
		return nil
	}
}
