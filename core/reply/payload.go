// Package reply provides the reply message state machine: an ordered payload
// of tagged items mutated by idempotent command toggles and serialized into
// the platform's message reply shape.
package reply

import (
	"github.com/voximplant/kit-functions-sdk-sub000/core/typeutil"
)

// ItemType tags a payload item variant.
type ItemType string

const (
	// ItemProperties is the fixed marker item inserted once for message and
	// avatar kinds.
	ItemProperties ItemType = "properties"
	// ItemCmd is a routing command; sub-tagged by command name.
	ItemCmd ItemType = "cmd"
	// ItemPhoto is a photo attachment. Photos are appended, never upserted.
	ItemPhoto ItemType = "photo"
	// ItemWebChatInlineButtons is the single web-chat button block.
	ItemWebChatInlineButtons ItemType = "webchat_inline_buttons"
	// ItemCustomData is a named custom-data entry.
	ItemCustomData ItemType = "custom_data"
)

// Command names carried by ItemCmd items. At most one item per distinct
// name exists in the payload at any time.
const (
	CmdFinishRequest   = "finish_request"
	CmdTransferToQueue = "transfer_to_queue"
	CmdTransferToUser  = "transfer_to_user"
	CmdBindTags        = "bind_tags"
)

// Item is one entry of the ordered payload. Name is set for cmd and
// custom-data items and empty otherwise. Fields carries the variant-specific
// data and is merged next to "type"/"name" on serialization.
type Item struct {
	Type   ItemType
	Name   string
	Fields map[string]any
}

// payload is an ordered item sequence upholding the at-most-one-per-
// (type,name) invariant for every type except photos.
type payload struct {
	items []Item
}

// find returns the index of the item matching (typ, name), or -1.
func (p *payload) find(typ ItemType, name string) int {
	for i := range p.items {
		if p.items[i].Type == typ && p.items[i].Name == name {
			return i
		}
	}
	return -1
}

// upsert replaces the existing (typ, name) item in place, preserving its
// position, or appends a new one.
func (p *payload) upsert(item Item) {
	if i := p.find(item.Type, item.Name); i >= 0 {
		p.items[i] = item
		return
	}
	p.items = append(p.items, item)
}

// ensure inserts the item only when no (typ, name) match exists. Reports
// whether an insert happened.
func (p *payload) ensure(item Item) bool {
	if p.find(item.Type, item.Name) >= 0 {
		return false
	}
	p.items = append(p.items, item)
	return true
}

// remove deletes the (typ, name) item. Reports whether anything was removed.
func (p *payload) remove(typ ItemType, name string) bool {
	i := p.find(typ, name)
	if i < 0 {
		return false
	}
	p.items = append(p.items[:i], p.items[i+1:]...)
	return true
}

// append adds an item without the uniqueness check. Used for photos only.
func (p *payload) append(item Item) {
	p.items = append(p.items, item)
}

// serialize renders every item as its wire map, deep-copying field values so
// the returned payload shares nothing with internal state.
func (p *payload) serialize(enrich func(Item) map[string]any) []map[string]any {
	out := make([]map[string]any, 0, len(p.items))
	for _, item := range p.items {
		m := map[string]any{"type": string(item.Type)}
		if item.Name != "" {
			m["name"] = item.Name
		}
		for k, v := range item.Fields {
			m[k] = typeutil.DeepCopyValue(v)
		}
		if enrich != nil {
			for k, v := range enrich(item) {
				m[k] = v
			}
		}
		out = append(out, m)
	}
	return out
}
