package domain

import "context"

// ItemRepository provides access to recycle items.
type ItemRepository interface {
	ListItems(ctx context.Context) ([]RecycleItem, error)
	// GetItemDocument returns the recycled object rendered as YAML text.
	GetItemDocument(ctx context.Context, name string) (string, error)
	// RestoreItem recreates the recycled object and returns the server message.
	RestoreItem(ctx context.Context, name string) (string, error)
}

// PolicyRepository provides access to recycle policies.
type PolicyRepository interface {
	ListPolicies(ctx context.Context) ([]RecyclePolicy, error)
	CreatePolicy(ctx context.Context, spec PolicySpec) (string, error)
	DeletePolicy(ctx context.Context, name string) (string, error)
}

// RecycleGateway is the single port to the recycle-bin backend.
// Implementations perform no retries; every failure is returned as an *APIError.
type RecycleGateway interface {
	ItemRepository
	PolicyRepository
}
