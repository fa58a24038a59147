// Package db provides the scoped key-value collaborator: three named scopes
// per invocation, loaded with a fan-out-then-join at startup and committed
// as a put-all batch. The remote storage engine itself is out of scope and
// is consumed through the Storage interface.
package db

import (
	"context"

	"github.com/google/uuid"
)

// Scope identifies one of the three key-value scopes.
type Scope string

const (
	// ScopeFunction is keyed per deployed function.
	ScopeFunction Scope = "function"
	// ScopeGlobal is keyed per account domain.
	ScopeGlobal Scope = "global"
	// ScopeConversation is keyed per conversation; only present for message
	// invocations that carry a conversation UUID.
	ScopeConversation Scope = "conversation"
)

// Item is one key-value entry of a put-all batch.
type Item struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	ScopeName string `json:"scope"`
}

// Storage is the narrow remote collaborator contract.
type Storage interface {
	// FetchAll returns every key of the named scope.
	FetchAll(ctx context.Context, scopeName string) (map[string]string, error)
	// PutAll writes the batch atomically per scope.
	PutAll(ctx context.Context, items []Item) error
}

// FunctionScopeName builds the remote scope name for a function scope.
func FunctionScopeName(functionID string) string {
	if functionID == "" {
		return ""
	}
	return "function_" + functionID
}

// GlobalScopeName builds the remote scope name for the account-wide scope.
func GlobalScopeName(domain string) string {
	if domain == "" {
		return ""
	}
	return "accountdb_" + domain
}

// ConversationScopeName builds the remote scope name for a conversation
// scope. Returns "" unless id is a valid UUID.
func ConversationScopeName(id string) string {
	if _, err := uuid.Parse(id); err != nil {
		return ""
	}
	return "conversation_" + id
}
