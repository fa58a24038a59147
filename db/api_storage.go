package db

import (
	"context"

	"github.com/voximplant/kit-functions-sdk-sub000/api"
	"github.com/voximplant/kit-functions-sdk-sub000/core/typeutil"
)

// Platform key-value endpoints.
const (
	pathGetAllKeys = "/v2/kv/get_all_keys"
	pathPutAllKeys = "/v2/kv/put_all_keys"
)

// APIStorage implements Storage over the platform API proxy.
type APIStorage struct {
	requester api.Requester
}

// NewAPIStorage creates a Storage backed by the platform API.
func NewAPIStorage(requester api.Requester) *APIStorage {
	return &APIStorage{requester: requester}
}

// FetchAll fetches every key of the named scope. The response carries the
// entries under "result" as a list of {key, value} objects.
func (s *APIStorage) FetchAll(ctx context.Context, scopeName string) (map[string]string, error) {
	resp, err := s.requester.Request(ctx, pathGetAllKeys, map[string]any{"scope": scopeName})
	if err != nil {
		return nil, err
	}
	out := map[string]string{}
	entries, _ := typeutil.SafeSlice(resp["result"])
	for _, raw := range entries {
		entry, ok := typeutil.SafeMapStringAny(raw)
		if !ok {
			continue
		}
		key, ok := typeutil.SafeString(entry["key"])
		if !ok || key == "" {
			continue
		}
		out[key] = typeutil.Stringify(entry["value"])
	}
	return out, nil
}

// PutAll writes the batch in one request.
func (s *APIStorage) PutAll(ctx context.Context, items []Item) error {
	keys := make([]any, 0, len(items))
	for _, item := range items {
		keys = append(keys, map[string]any{
			"key":   item.Key,
			"value": item.Value,
			"scope": item.ScopeName,
		})
	}
	_, err := s.requester.Request(ctx, pathPutAllKeys, map[string]any{"keys": keys})
	return err
}
