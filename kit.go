// Package kit is the per-invocation facade over the function runtime's
// request context. One Kit instance is created per invocation, mutated by
// the function body, and asked exactly once for the reply body; nothing
// survives across invocations.
package kit

import (
	"github.com/voximplant/kit-functions-sdk-sub000/api"
	"github.com/voximplant/kit-functions-sdk-sub000/avatar"
	"github.com/voximplant/kit-functions-sdk-sub000/config"
	"github.com/voximplant/kit-functions-sdk-sub000/core/envelope"
	"github.com/voximplant/kit-functions-sdk-sub000/core/reply"
	"github.com/voximplant/kit-functions-sdk-sub000/core/state"
	"github.com/voximplant/kit-functions-sdk-sub000/core/typeutil"
	"github.com/voximplant/kit-functions-sdk-sub000/db"
	"github.com/voximplant/kit-functions-sdk-sub000/logging"
)

// Environment variable names consumed through the injected config provider.
const (
	EnvAvatarAPIURL    = "KIT_AVATAR_API_URL"
	EnvAvatarAccountID = "KIT_AVATAR_ACCOUNT_ID"
	EnvAvatarLogin     = "KIT_AVATAR_LOGIN"
	EnvAvatarPassword  = "KIT_AVATAR_PASSWORD"
)

// Kit is the invocation facade. All mutation methods report validation
// failures through their boolean result and log the offending field; none
// of them panic or return errors. The only fatal failure of the whole core
// is a malformed context at construction.
type Kit struct {
	classified *envelope.Classified
	logger     logging.Logger
	env        config.Provider

	variables *state.VariableStore
	skills    *state.SkillList
	tags      *state.TagSet
	priority  state.Priority
	message   *reply.Message

	apiClient    api.Requester
	dbManager    *db.Manager
	avatarClient *avatar.Client
}

// Option configures a Kit at construction.
type Option func(*options)

type options struct {
	logger    logging.Logger
	env       config.Provider
	apiClient api.Requester
	storage   db.Storage
	avatar    *avatar.Client
}

// WithLogger sets the logger used for validation and collaborator failures.
func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithConfig sets the environment accessor.
func WithConfig(p config.Provider) Option {
	return func(o *options) { o.env = p }
}

// WithAPIClient overrides the platform API collaborator. Test hook and
// escape hatch for custom transports.
func WithAPIClient(c api.Requester) Option {
	return func(o *options) { o.apiClient = c }
}

// WithStorage overrides the key-value storage backend (e.g. RedisStorage
// for local development).
func WithStorage(s db.Storage) Option {
	return func(o *options) { o.storage = s }
}

// WithAvatarClient overrides the avatar-session collaborator.
func WithAvatarClient(c *avatar.Client) Option {
	return func(o *options) { o.avatar = c }
}

// NewKit classifies the raw invocation context and builds the per-invocation
// state. This is the single fatal path of the core: a nil context or one
// without request, body, or headers returns an error and no Kit.
func NewKit(ctx *envelope.Context, opts ...Option) (*Kit, error) {
	classified, err := envelope.Classify(ctx)
	if err != nil {
		return nil, err
	}

	o := &options{
		logger: logging.Nop(),
		env:    config.OSEnv{},
	}
	for _, opt := range opts {
		opt(o)
	}

	k := &Kit{
		classified: classified,
		logger:     o.logger,
		env:        o.env,
		variables:  state.NewVariableStore(classified.VariablesSeed),
		skills:     state.NewSkillList(classified.SkillsSeed),
		tags:       state.NewTagSet(classified.TagsSeed),
		message:    reply.NewMessage(classified.Kind, conversationOf(classified)),
	}

	k.apiClient = o.apiClient
	if k.apiClient == nil {
		k.apiClient = api.NewClient(
			classified.APIURL, classified.Domain, classified.AccessToken,
			api.WithLogger(k.logger),
		)
	}

	storage := o.storage
	if storage == nil {
		storage = db.NewAPIStorage(k.apiClient)
	}
	k.dbManager = db.NewManager(storage, k.scopeNames(), k.logger)

	k.avatarClient = o.avatar
	if k.avatarClient == nil {
		k.avatarClient = k.buildAvatarClient()
	}

	return k, nil
}

// EventKind returns the classified event kind.
func (k *Kit) EventKind() envelope.EventKind {
	return k.classified.Kind
}

// GetEnvVariable resolves a named environment variable through the injected
// config provider. Empty names never resolve.
func (k *Kit) GetEnvVariable(name string) (string, bool) {
	return k.env.GetEnvVariable(name)
}

// =============================================================================
// VARIABLES
// =============================================================================

// SetVariable stores a variable. Rejects an empty name.
func (k *Kit) SetVariable(name string, value any) bool {
	if name == "" {
		k.logger.Warn("set_variable_rejected", "field", "name", "reason", "empty")
		return false
	}
	k.variables.Set(name, value)
	return true
}

// GetVariable returns the variable value, or nil when absent.
func (k *Kit) GetVariable(name string) any {
	v, ok := k.variables.Get(name)
	if !ok {
		return nil
	}
	return typeutil.DeepCopyValue(v)
}

// DeleteVariable removes a variable. Returns false when absent.
func (k *Kit) DeleteVariable(name string) bool {
	return k.variables.Delete(name)
}

// GetVariables returns a deep copy of the variable map.
func (k *Kit) GetVariables() map[string]any {
	return k.variables.Snapshot()
}

// =============================================================================
// SKILLS
// =============================================================================

// SetSkill upserts a skill by id. The whole call is rejected when the id is
// negative or the level falls outside 1..5.
func (k *Kit) SetSkill(skill state.Skill) bool {
	if err := k.skills.Upsert(skill); err != nil {
		k.logValidation("set_skill_rejected", err)
		return false
	}
	return true
}

// RemoveSkill removes the skill with the given id. Returns false when no
// such skill exists.
func (k *Kit) RemoveSkill(id int) bool {
	return k.skills.Remove(id)
}

// GetSkills returns a copy of the skill list.
func (k *Kit) GetSkills() []state.Skill {
	return k.skills.Snapshot()
}

// =============================================================================
// TAGS
// =============================================================================

// AddTags unions tags into the tag set. Negative values are filtered out;
// the call is rejected when nothing valid remains.
func (k *Kit) AddTags(tags []int) bool {
	if tags == nil {
		k.logger.Warn("add_tags_rejected", "field", "tags", "reason", "not an array")
		return false
	}
	if k.tags.Add(tags) == 0 {
		k.logger.Warn("add_tags_rejected", "field", "tags", "reason", "no valid tags")
		return false
	}
	k.ensureTagBinding()
	return true
}

// ReplaceTags discards the prior tag set and installs the valid tags.
func (k *Kit) ReplaceTags(tags []int) bool {
	if tags == nil {
		k.logger.Warn("replace_tags_rejected", "field", "tags", "reason", "not an array")
		return false
	}
	k.tags.Replace(tags)
	k.ensureTagBinding()
	return true
}

// GetTags returns the deduplicated tags in first-occurrence order.
func (k *Kit) GetTags() []int {
	return k.tags.Values()
}

func (k *Kit) ensureTagBinding() {
	if k.classified.Kind.IsMessage() {
		k.message.EnsureTagBinding()
	}
}

// =============================================================================
// PRIORITY
// =============================================================================

// SetPriority sets the queue-transfer priority. Values outside [0,10] are
// rejected and the prior value is retained.
func (k *Kit) SetPriority(value int) bool {
	if !k.priority.Set(value) {
		k.logger.Warn("set_priority_rejected", "field", "priority", "value", value)
		return false
	}
	return true
}

// GetPriority returns the current priority.
func (k *Kit) GetPriority() int {
	return k.priority.Get()
}

// =============================================================================
// KIND-GATED ACCESSORS
// =============================================================================

// GetCallData returns a deep copy of the call data, or nil for non-call
// kinds.
func (k *Kit) GetCallData() map[string]any {
	return typeutil.DeepCopyMap(k.classified.CallData)
}

// GetCallHeaders returns a deep copy of the call SIP headers, or nil for
// non-call kinds.
func (k *Kit) GetCallHeaders() map[string]any {
	return typeutil.DeepCopyMap(k.classified.CallHeaders)
}

// GetIncomingMessage returns a deep copy of the inbound message body, or
// nil for non-message kinds.
func (k *Kit) GetIncomingMessage() map[string]any {
	return typeutil.DeepCopyMap(k.classified.IncomingMessage)
}

// GetAvatarReply returns a copy of the normalized avatar reply, or nil for
// non-avatar kinds.
func (k *Kit) GetAvatarReply() *envelope.AvatarReply {
	if k.classified.AvatarReply == nil {
		return nil
	}
	copied := *k.classified.AvatarReply
	copied.Response = typeutil.DeepCopyValue(copied.Response)
	copied.CustomData = typeutil.DeepCopyValue(copied.CustomData)
	return &copied
}

// logValidation logs a rejected mutation with the invalid field attached.
func (k *Kit) logValidation(msg string, err error) {
	if verr, ok := err.(*state.ValidationError); ok {
		k.logger.Warn(msg, "field", verr.Field, "reason", verr.Reason)
		return
	}
	k.logger.Warn(msg, "error", err)
}

// conversationOf extracts the conversation sub-object cloned into the reply
// message, or nil when the inbound body carries none.
func conversationOf(c *envelope.Classified) map[string]any {
	if c.IncomingMessage == nil {
		return nil
	}
	conversation, _ := typeutil.GetNestedMap(c.IncomingMessage, "conversation")
	return conversation
}
