package kit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voximplant/kit-functions-sdk-sub000/config"
	"github.com/voximplant/kit-functions-sdk-sub000/core/envelope"
	"github.com/voximplant/kit-functions-sdk-sub000/db"
)

// fakeRequester plays back canned API responses.
type fakeRequester struct {
	lastPath string
	lastData map[string]any
	response map[string]any
	err      error
}

func (f *fakeRequester) Request(_ context.Context, path string, data map[string]any) (map[string]any, error) {
	f.lastPath = path
	f.lastData = data
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

// fakeStorage is an in-memory db.Storage.
type fakeStorage struct {
	scopes map[string]map[string]string
	puts   []db.Item
}

func (f *fakeStorage) FetchAll(_ context.Context, scopeName string) (map[string]string, error) {
	if s, ok := f.scopes[scopeName]; ok {
		return s, nil
	}
	return nil, errors.New("unknown scope")
}

func (f *fakeStorage) PutAll(_ context.Context, items []db.Item) error {
	f.puts = append(f.puts, items...)
	return nil
}

func newCollabKit(t *testing.T, kind envelope.EventKind, body map[string]any, opts ...Option) *Kit {
	t.Helper()
	if body == nil {
		body = map[string]any{}
	}
	headers := map[string]string{
		envelope.HeaderFunctionID: "42",
		envelope.HeaderDomain:     "acme",
	}
	if kind != envelope.KindWebhook {
		headers[envelope.HeaderEventType] = string(kind)
	}
	k, err := NewKit(&envelope.Context{Request: &envelope.Request{
		Headers: headers,
		Body:    body,
	}}, opts...)
	require.NoError(t, err)
	return k
}

// =============================================================================
// API PROXY
// =============================================================================

func TestApiProxyPassthrough(t *testing.T) {
	// The facade forwards path and data untouched.
	requester := &fakeRequester{response: map[string]any{"result": "ok"}}
	k := newCollabKit(t, envelope.KindWebhook, nil, WithAPIClient(requester))

	resp, err := k.ApiProxy(context.Background(), "/v2/queues/get", map[string]any{"id": 1})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp["result"])
	assert.Equal(t, "/v2/queues/get", requester.lastPath)
}

func TestGetTagsWithNames(t *testing.T) {
	// Bound tag ids resolve through the dictionary; unknown ids keep "".
	requester := &fakeRequester{response: map[string]any{
		"result": []any{
			map[string]any{"id": float64(3), "tag_name": "vip"},
		},
	}}
	k := newCollabKit(t, envelope.KindIncomingMessage, nil, WithAPIClient(requester))
	require.True(t, k.AddTags([]int{3, 8}))

	tags, err := k.GetTagsWithNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []TagInfo{{ID: 3, Name: "vip"}, {ID: 8, Name: ""}}, tags)
}

func TestGetTagsWithNamesNoTags(t *testing.T) {
	// No bound tags short-circuits without touching the API.
	requester := &fakeRequester{err: errors.New("should not be called")}
	k := newCollabKit(t, envelope.KindIncomingMessage, nil, WithAPIClient(requester))

	tags, err := k.GetTagsWithNames(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tags)
	assert.Empty(t, requester.lastPath)
}

// =============================================================================
// KEY-VALUE DATABASE
// =============================================================================

func TestDBFlowThroughFacade(t *testing.T) {
	// Load, read, write, and commit against the scoped store.
	storage := &fakeStorage{scopes: map[string]map[string]string{
		"function_42":    {"counter": "3"},
		"accountdb_acme": {},
	}}
	k := newCollabKit(t, envelope.KindWebhook, nil, WithStorage(storage))

	require.NoError(t, k.LoadDatabases(context.Background()))

	v, ok := k.DBGet("counter", db.ScopeFunction)
	require.True(t, ok)
	assert.Equal(t, "3", v)

	require.True(t, k.DBSet("counter", "4", db.ScopeFunction))
	require.NoError(t, k.DBCommit(context.Background()))

	require.Len(t, storage.puts, 1)
	assert.Equal(t, db.Item{Key: "counter", Value: "4", ScopeName: "function_42"}, storage.puts[0])
}

func TestConversationScopeOnlyForMessages(t *testing.T) {
	// A message with a conversation UUID gains the conversation scope; a
	// webhook never does.
	body := map[string]any{
		"conversation": map[string]any{"uuid": "b3b05d7a-0001-4ad6-9373-6b9a66f737a1"},
	}
	storage := &fakeStorage{scopes: map[string]map[string]string{}}

	k := newCollabKit(t, envelope.KindIncomingMessage, body, WithStorage(storage))
	assert.True(t, k.DBSet("k", "v", db.ScopeConversation))

	k = newCollabKit(t, envelope.KindWebhook, nil, WithStorage(storage))
	assert.False(t, k.DBSet("k", "v", db.ScopeConversation))
}

// =============================================================================
// ENVIRONMENT
// =============================================================================

func TestGetEnvVariableThroughProvider(t *testing.T) {
	// The injected provider is the only environment source.
	k := newCollabKit(t, envelope.KindWebhook, nil,
		WithConfig(config.Static{"MY_VAR": "7"}))

	v, ok := k.GetEnvVariable("MY_VAR")
	require.True(t, ok)
	assert.Equal(t, "7", v)

	_, ok = k.GetEnvVariable("OTHER")
	assert.False(t, ok)
	_, ok = k.GetEnvVariable("")
	assert.False(t, ok)
}
