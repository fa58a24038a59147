package kit

import (
	"context"

	"github.com/voximplant/kit-functions-sdk-sub000/avatar"
	"github.com/voximplant/kit-functions-sdk-sub000/core/typeutil"
	"github.com/voximplant/kit-functions-sdk-sub000/db"
)

// Platform dictionary endpoint for tag-name resolution.
const pathGetAccountTags = "/v2/tags/get"

// TagInfo is a tag id resolved to its account-level name.
type TagInfo struct {
	ID   int    `json:"id"`
	Name string `json:"tag_name"`
}

// =============================================================================
// API PROXY
// =============================================================================

// ApiProxy performs a generic platform API passthrough. A rejection carrying
// a response body surfaces that body through *api.Error; any other failure
// is returned as-is.
func (k *Kit) ApiProxy(ctx context.Context, path string, data map[string]any) (map[string]any, error) {
	return k.apiClient.Request(ctx, path, data)
}

// GetTagsWithNames resolves the currently bound tag ids to their account
// names through the platform dictionary. Ids the dictionary does not know
// keep an empty name.
func (k *Kit) GetTagsWithNames(ctx context.Context) ([]TagInfo, error) {
	ids := k.tags.Values()
	if len(ids) == 0 {
		return []TagInfo{}, nil
	}
	resp, err := k.apiClient.Request(ctx, pathGetAccountTags, map[string]any{})
	if err != nil {
		return nil, err
	}
	names := map[int]string{}
	entries, _ := typeutil.SafeSlice(resp["result"])
	for _, raw := range entries {
		entry, ok := typeutil.SafeMapStringAny(raw)
		if !ok {
			continue
		}
		id, ok := typeutil.SafeInt(entry["id"])
		if !ok {
			continue
		}
		names[id] = typeutil.SafeStringDefault(entry["tag_name"], "")
	}
	out := make([]TagInfo, 0, len(ids))
	for _, id := range ids {
		out = append(out, TagInfo{ID: id, Name: names[id]})
	}
	return out, nil
}

// =============================================================================
// KEY-VALUE DATABASE
// =============================================================================

// scopeNames resolves the remote scope names available to this invocation.
func (k *Kit) scopeNames() map[db.Scope]string {
	names := map[db.Scope]string{
		db.ScopeFunction: db.FunctionScopeName(k.classified.FunctionID),
		db.ScopeGlobal:   db.GlobalScopeName(k.classified.Domain),
	}
	if k.classified.Kind.IsMessage() && k.classified.IncomingMessage != nil {
		if id, ok := typeutil.GetNestedValue(k.classified.IncomingMessage, "conversation", "uuid"); ok {
			if s, ok := typeutil.SafeString(id); ok {
				names[db.ScopeConversation] = db.ConversationScopeName(s)
			}
		}
	}
	return names
}

// LoadDatabases fetches all available scopes with a fan-out-then-join. A
// scope that fails to fetch starts empty; only context cancellation is
// returned as an error.
func (k *Kit) LoadDatabases(ctx context.Context) error {
	return k.dbManager.Load(ctx)
}

// DBGet returns the value stored under name in the scope.
func (k *Kit) DBGet(name string, scope db.Scope) (string, bool) {
	return k.dbManager.Get(name, scope)
}

// DBSet stores a value under name in the scope. Returns false when the
// scope is not available for this invocation.
func (k *Kit) DBSet(name, value string, scope db.Scope) bool {
	return k.dbManager.Set(name, value, scope)
}

// DBGetAll returns a copy of the whole scope, or nil when unavailable.
func (k *Kit) DBGetAll(scope db.Scope) map[string]string {
	return k.dbManager.GetAll(scope)
}

// DBCommit writes all scopes back to storage as one put-all batch.
func (k *Kit) DBCommit(ctx context.Context) error {
	return k.dbManager.Commit(ctx)
}

// =============================================================================
// AVATAR SESSION
// =============================================================================

// buildAvatarClient constructs the avatar collaborator from the injected
// environment. Credentials stay optional: the client fails at login, not at
// construction, when they are absent.
func (k *Kit) buildAvatarClient() *avatar.Client {
	baseURL, _ := k.env.GetEnvVariable(EnvAvatarAPIURL)
	accountID, _ := k.env.GetEnvVariable(EnvAvatarAccountID)
	login, _ := k.env.GetEnvVariable(EnvAvatarLogin)
	password, _ := k.env.GetEnvVariable(EnvAvatarPassword)
	return avatar.NewClient(baseURL, avatar.Credentials{
		AccountID: accountID,
		Login:     login,
		Password:  password,
	}, avatar.WithLogger(k.logger))
}

// SetAvatarApiUrl points the avatar collaborator at a different endpoint.
func (k *Kit) SetAvatarApiUrl(url string) {
	k.avatarClient.SetBaseURL(url)
}

// SendMessageToAvatar posts a message into the avatar conversation. Login
// happens transparently; a cached bearer token is reused while unexpired.
func (k *Kit) SendMessageToAvatar(ctx context.Context, conversationID string, message map[string]any) error {
	return k.avatarClient.SendMessage(ctx, conversationID, message)
}
