// Package envelope provides the inbound context envelope and its
// classification into a single EventKind per invocation.
//
// Classification is the only place event-type strings are compared; every
// kind-gated accessor downstream switches on the EventKind value instead.
package envelope

// EventKind represents the trigger shape of an invocation - exactly one per
// envelope.
type EventKind string

const (
	// KindWebhook is the fallback kind for absent or unrecognized event types.
	KindWebhook EventKind = "webhook"
	// KindInCallFunction indicates a voice call trigger.
	KindInCallFunction EventKind = "in_call_function"
	// KindIncomingMessage indicates a text-channel message trigger.
	KindIncomingMessage EventKind = "incoming_message"
	// KindAvatarFunction indicates an AI-avatar callback trigger.
	KindAvatarFunction EventKind = "avatar_function"
)

// IsMessage reports whether the kind produces a message-shaped reply.
// Avatar callbacks reuse the message reply path for their outbound message.
func (k EventKind) IsMessage() bool {
	return k == KindIncomingMessage || k == KindAvatarFunction
}

// IsCall reports whether the kind produces a call-shaped reply.
func (k EventKind) IsCall() bool {
	return k == KindInCallFunction
}

// classifyEventType maps the raw event-type header value to an EventKind.
// Anything unrecognized degrades to KindWebhook.
func classifyEventType(raw string) EventKind {
	switch EventKind(raw) {
	case KindInCallFunction:
		return KindInCallFunction
	case KindIncomingMessage:
		return KindIncomingMessage
	case KindAvatarFunction:
		return KindAvatarFunction
	default:
		return KindWebhook
	}
}
