package reply

import (
	"github.com/voximplant/kit-functions-sdk-sub000/core/envelope"
	"github.com/voximplant/kit-functions-sdk-sub000/core/state"
	"github.com/voximplant/kit-functions-sdk-sub000/core/typeutil"
)

// QueueTarget identifies a queue-transfer destination. At least one of the
// two fields must be set.
type QueueTarget struct {
	QueueID   *int    `json:"queue_id"`
	QueueName *string `json:"queue_name"`
}

// UserTarget identifies a user-transfer destination. At least one of the
// two fields must be set.
type UserTarget struct {
	UserID    *int    `json:"user_id"`
	UserEmail *string `json:"user_email"`
}

// Message is the reply message state machine. All mutations are synchronous,
// touch only the message's own state, and are all-or-nothing: a validation
// failure is reported through the returned error and leaves the payload
// untouched.
//
// Invariants upheld by construction:
//   - at most one cmd item per distinct command name (toggle, not append)
//   - transfer_to_queue and transfer_to_user are mutually exclusive
type Message struct {
	kind         envelope.EventKind
	text         string
	conversation map[string]any
	payload      payload
	// customData is the side list merged into the payload at serialization.
	customData payload
}

// NewMessage creates the state machine for the given event kind. The
// conversation sub-object is cloned from the inbound message when present.
// Message and avatar kinds get the properties marker inserted up front.
func NewMessage(kind envelope.EventKind, conversation map[string]any) *Message {
	m := &Message{
		kind:         kind,
		conversation: typeutil.DeepCopyMap(conversation),
	}
	if kind.IsMessage() {
		m.payload.append(Item{
			Type:   ItemProperties,
			Fields: map[string]any{"message_type": "text"},
		})
	}
	return m
}

// SetText sets the reply text. Valid for message and call kinds.
func (m *Message) SetText(text string) error {
	if !m.kind.IsMessage() && !m.kind.IsCall() {
		return state.NewValidationError("event_kind", "reply text requires a message or call event")
	}
	m.text = text
	return nil
}

// Text returns the current reply text.
func (m *Message) Text() string {
	return m.text
}

// Conversation returns a deep copy of the cloned conversation, or nil.
func (m *Message) Conversation() map[string]any {
	return typeutil.DeepCopyMap(m.conversation)
}

// FinishRequest ensures exactly one finish_request command exists. Calling
// it again is a no-op, not a duplicate.
func (m *Message) FinishRequest() error {
	if !m.kind.IsMessage() {
		return state.NewValidationError("event_kind", "finish_request requires a message or avatar event")
	}
	m.payload.ensure(Item{Type: ItemCmd, Name: CmdFinishRequest})
	return nil
}

// CancelFinishRequest removes the finish_request command if present. It
// never fails; removing nothing is still success.
func (m *Message) CancelFinishRequest() {
	m.payload.remove(ItemCmd, CmdFinishRequest)
}

// TransferToQueue activates a queue transfer, replacing any previous queue
// transfer and cancelling any active user transfer. The target is
// normalized to integer-or-null id and string-or-null name; a target with
// neither is rejected.
func (m *Message) TransferToQueue(target QueueTarget) error {
	if !m.kind.IsMessage() {
		return state.NewValidationError("event_kind", "transfer_to_queue requires a message or avatar event")
	}
	queue := map[string]any{"queue_id": nil, "queue_name": nil}
	if target.QueueID != nil {
		queue["queue_id"] = *target.QueueID
	}
	if target.QueueName != nil {
		queue["queue_name"] = *target.QueueName
	}
	if queue["queue_id"] == nil && queue["queue_name"] == nil {
		return state.NewValidationError("queue", "queue_id or queue_name is required")
	}
	m.CancelTransferToUser()
	m.payload.upsert(Item{
		Type:   ItemCmd,
		Name:   CmdTransferToQueue,
		Fields: map[string]any{"queue": queue},
	})
	return nil
}

// CancelTransferToQueue removes the queue-transfer command if present.
func (m *Message) CancelTransferToQueue() {
	m.payload.remove(ItemCmd, CmdTransferToQueue)
}

// TransferToUser activates a user transfer, symmetric to TransferToQueue.
func (m *Message) TransferToUser(target UserTarget) error {
	if !m.kind.IsMessage() {
		return state.NewValidationError("event_kind", "transfer_to_user requires a message or avatar event")
	}
	user := map[string]any{"user_id": nil, "user_email": nil}
	if target.UserID != nil {
		user["user_id"] = *target.UserID
	}
	if target.UserEmail != nil {
		user["user_email"] = *target.UserEmail
	}
	if user["user_id"] == nil && user["user_email"] == nil {
		return state.NewValidationError("user", "user_id or user_email is required")
	}
	m.CancelTransferToQueue()
	m.payload.upsert(Item{
		Type:   ItemCmd,
		Name:   CmdTransferToUser,
		Fields: map[string]any{"user": user},
	})
	return nil
}

// CancelTransferToUser removes the user-transfer command if present.
func (m *Message) CancelTransferToUser() {
	m.payload.remove(ItemCmd, CmdTransferToUser)
}

// EnsureTagBinding guarantees a bind_tags command exists. The tag array and
// replace flag are attached at serialization time, not here.
func (m *Message) EnsureTagBinding() {
	m.payload.ensure(Item{Type: ItemCmd, Name: CmdBindTags})
}

// AddPhoto appends a photo item. Photos are the one variant where
// duplicates are allowed.
func (m *Message) AddPhoto(url string) error {
	if !m.kind.IsMessage() && !m.kind.IsCall() {
		return state.NewValidationError("event_kind", "photo requires a message or call event")
	}
	m.payload.append(Item{
		Type:   ItemPhoto,
		Fields: map[string]any{"url": url},
	})
	return nil
}

// SetCustomData upserts a named custom-data entry into the side list. The
// data must be defined and JSON-serializable; it is stored pre-encoded so a
// later mutation of the caller's value cannot leak in.
func (m *Message) SetCustomData(name string, data any) error {
	if name == "" {
		return state.NewValidationError("name", "must be a non-empty string")
	}
	if data == nil {
		return state.NewValidationError("data", "must be defined")
	}
	encoded, ok := encodeCustomData(data)
	if !ok {
		return state.NewValidationError("data", "must be JSON-serializable")
	}
	m.customData.upsert(Item{
		Type:   ItemCustomData,
		Name:   name,
		Fields: map[string]any{"data": encoded},
	})
	return nil
}

// SetWebChatInlineButtons replaces the single web-chat button block, or
// removes it when buttons is empty. See ValidateInlineButtons for the
// per-button rules.
func (m *Message) SetWebChatInlineButtons(buttons []InlineButton) error {
	if !m.kind.IsMessage() {
		return state.NewValidationError("event_kind", "inline buttons require a message or avatar event")
	}
	if err := ValidateInlineButtons(buttons); err != nil {
		return err
	}
	if len(buttons) == 0 {
		m.payload.remove(ItemWebChatInlineButtons, "")
		return nil
	}
	serialized := make([]any, 0, len(buttons))
	for _, b := range buttons {
		entry := map[string]any{"type": b.Type, "text": b.Text}
		if b.Data != "" {
			entry["data"] = b.Data
		}
		serialized = append(serialized, entry)
	}
	m.payload.upsert(Item{
		Type:   ItemWebChatInlineButtons,
		Fields: map[string]any{"buttons": serialized},
	})
	return nil
}

// SerializeOptions carries the container snapshots the payload commands are
// enriched with just before serialization.
type SerializeOptions struct {
	Skills      []state.Skill
	Tags        []int
	ReplaceTags bool
	Priority    int
}

// Serialize renders the payload in insertion order, enriching the transfer
// and tag-binding commands and appending pending custom-data items. The
// result shares no structure with the message state.
func (m *Message) Serialize(opts SerializeOptions) []map[string]any {
	skills := opts.Skills
	if skills == nil {
		skills = []state.Skill{}
	}
	tags := opts.Tags
	if tags == nil {
		tags = []int{}
	}
	out := m.payload.serialize(func(item Item) map[string]any {
		if item.Type != ItemCmd {
			return nil
		}
		switch item.Name {
		case CmdTransferToQueue:
			return map[string]any{
				"skills":   serializeSkills(skills),
				"priority": opts.Priority,
			}
		case CmdBindTags:
			return map[string]any{
				"tags":    serializeTags(tags),
				"replace": opts.ReplaceTags,
			}
		default:
			return nil
		}
	})
	out = append(out, m.customData.serialize(nil)...)
	return out
}

func serializeSkills(skills []state.Skill) []any {
	out := make([]any, 0, len(skills))
	for _, s := range skills {
		out = append(out, map[string]any{"skill_id": s.SkillID, "level": s.Level})
	}
	return out
}

func serializeTags(tags []int) []any {
	out := make([]any, 0, len(tags))
	for _, t := range tags {
		out = append(out, t)
	}
	return out
}
