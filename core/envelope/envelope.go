package envelope

import (
	"github.com/voximplant/kit-functions-sdk-sub000/core/typeutil"
)

// Recognized request header keys. All are optional except that the event-type
// header drives classification; an absent event-type header means webhook.
const (
	HeaderEventType        = "x-kit-event-type"
	HeaderAccessToken      = "x-kit-access-token"
	HeaderAPIURL           = "x-kit-api-url"
	HeaderDomain           = "x-kit-domain"
	HeaderFunctionID       = "x-kit-function-id"
	HeaderSessionAccessURL = "x-kit-session-access-url"
)

// MissingContextError is the single fatal error of the core: the inbound
// context lacks a request, a body, or headers entirely. Everything else in
// the SDK reports failure through return values, never through errors.
type MissingContextError struct {
	Field string
}

func (e *MissingContextError) Error() string {
	return "context envelope is missing " + e.Field
}

// NewMissingContextError creates a new MissingContextError.
func NewMissingContextError(field string) *MissingContextError {
	return &MissingContextError{Field: field}
}

// Request is the raw inbound request: headers plus a decoded JSON body.
type Request struct {
	Headers map[string]string `json:"headers"`
	Body    map[string]any    `json:"body"`
}

// Context is the raw invocation context as handed over by the platform.
type Context struct {
	Request *Request `json:"request"`
}

// AvatarReply is the normalized voice-avatar callback payload. Absent
// optional fields stay nil.
type AvatarReply struct {
	IsFinal      bool   `json:"is_final"`
	Response     any    `json:"response"`
	CustomData   any    `json:"custom_data"`
	CurrentState string `json:"current_state"`
	NextState    string `json:"next_state"`
}

// Classified is the immutable result of classifying a Context: the event
// kind, the header-derived platform coordinates, and the kind-specific seed
// data for the mutable per-invocation state.
type Classified struct {
	Kind EventKind

	AccessToken      string
	APIURL           string
	Domain           string
	FunctionID       string
	SessionAccessURL string

	// Call-kind sub-objects (nil for other kinds).
	CallData    map[string]any
	CallHeaders map[string]any

	// Message-kind sub-objects (nil for other kinds).
	IncomingMessage map[string]any

	// Avatar-kind sub-object (nil for other kinds).
	AvatarReply *AvatarReply

	// Seeds for the per-invocation containers.
	VariablesSeed map[string]any
	SkillsSeed    []any
	TagsSeed      []int
}

// Classify validates and classifies a raw context. It is the only operation
// in the core that can fail fatally: a nil context, missing request, missing
// body, or missing headers aborts the invocation.
func Classify(ctx *Context) (*Classified, error) {
	if ctx == nil || ctx.Request == nil {
		return nil, NewMissingContextError("request")
	}
	if ctx.Request.Headers == nil {
		return nil, NewMissingContextError("request.headers")
	}
	if ctx.Request.Body == nil {
		return nil, NewMissingContextError("request.body")
	}

	headers := ctx.Request.Headers
	body := ctx.Request.Body

	c := &Classified{
		Kind:             classifyEventType(headers[HeaderEventType]),
		AccessToken:      headers[HeaderAccessToken],
		APIURL:           headers[HeaderAPIURL],
		Domain:           headers[HeaderDomain],
		FunctionID:       headers[HeaderFunctionID],
		SessionAccessURL: headers[HeaderSessionAccessURL],
		VariablesSeed:    map[string]any{},
	}

	switch c.Kind {
	case KindInCallFunction:
		c.CallData, _ = typeutil.GetNestedMap(body, "CALL")
		c.CallHeaders, _ = typeutil.GetNestedMap(body, "HEADERS")
		if vars, ok := typeutil.GetNestedMap(body, "VARIABLES"); ok {
			c.VariablesSeed = vars
		}
		if skills, ok := typeutil.GetNestedValue(body, "SKILLS"); ok {
			c.SkillsSeed, _ = typeutil.SafeSlice(skills)
		}
		if tags, ok := typeutil.GetNestedValue(body, "TAGS"); ok {
			c.TagsSeed, _ = typeutil.SafeIntSlice(tags)
		}

	case KindIncomingMessage:
		c.IncomingMessage = body
		if vars, ok := typeutil.GetNestedMap(body,
			"conversation", "custom_data", "request_data", "variables"); ok {
			c.VariablesSeed = vars
		}
		if tags, ok := typeutil.GetNestedValue(body,
			"conversation", "custom_data", "request_data", "tags"); ok {
			c.TagsSeed, _ = typeutil.SafeIntSlice(tags)
		}

	case KindAvatarFunction:
		c.AvatarReply = normalizeAvatarReply(body)
	}

	return c, nil
}

// normalizeAvatarReply shapes the avatar callback body into the fixed
// AvatarReply form. The callback nests the reply under "avatar_reply" when
// present; otherwise the body itself carries the fields. Absent optional
// fields default to nil / empty.
func normalizeAvatarReply(body map[string]any) *AvatarReply {
	src := body
	if nested, ok := typeutil.GetNestedMap(body, "avatar_reply"); ok {
		src = nested
	}
	reply := &AvatarReply{}
	if v, ok := typeutil.SafeBool(src["is_final"]); ok {
		reply.IsFinal = v
	}
	if v, ok := src["response"]; ok {
		reply.Response = v
	}
	if v, ok := src["custom_data"]; ok {
		reply.CustomData = v
	}
	reply.CurrentState = typeutil.SafeStringDefault(src["current_state"], "")
	reply.NextState = typeutil.SafeStringDefault(src["next_state"], "")
	return reply
}
