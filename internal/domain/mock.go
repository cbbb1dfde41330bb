package domain

import "context"

// MockGateway implements RecycleGateway for testing.
type MockGateway struct {
	Items    []RecycleItem
	Policies []RecyclePolicy
	Document string

	RestoreMessage string
	CreateMessage  string
	DeleteMessage  string

	// Overrides, used instead of the canned data when set
	ListItemsFunc func(call int) ([]RecycleItem, error)

	// Error injection
	ListItemsErr    error
	GetDocumentErr  error
	RestoreErr      error
	ListPoliciesErr error
	CreateErr       error
	DeleteErr       error

	// Call tracking
	ListItemsCalls    int
	ListPoliciesCalls int
	DocumentCalls     int
	RestoreCalls      int
	CreateCalls       int
	DeleteCalls       int
	RestoredItem      string
	CreatedSpec       *PolicySpec
	DeletedPolicy     string
}

// Compile-time check.
var _ RecycleGateway = (*MockGateway)(nil)

func (m *MockGateway) ListItems(_ context.Context) ([]RecycleItem, error) {
	m.ListItemsCalls++
	if m.ListItemsFunc != nil {
		return m.ListItemsFunc(m.ListItemsCalls)
	}
	if m.ListItemsErr != nil {
		return nil, m.ListItemsErr
	}
	return m.Items, nil
}

func (m *MockGateway) GetItemDocument(_ context.Context, _ string) (string, error) {
	m.DocumentCalls++
	if m.GetDocumentErr != nil {
		return "", m.GetDocumentErr
	}
	return m.Document, nil
}

func (m *MockGateway) RestoreItem(_ context.Context, name string) (string, error) {
	m.RestoreCalls++
	m.RestoredItem = name
	if m.RestoreErr != nil {
		return "", m.RestoreErr
	}
	return m.RestoreMessage, nil
}

func (m *MockGateway) ListPolicies(_ context.Context) ([]RecyclePolicy, error) {
	m.ListPoliciesCalls++
	if m.ListPoliciesErr != nil {
		return nil, m.ListPoliciesErr
	}
	return m.Policies, nil
}

func (m *MockGateway) CreatePolicy(_ context.Context, spec PolicySpec) (string, error) {
	m.CreateCalls++
	m.CreatedSpec = &spec
	if m.CreateErr != nil {
		return "", m.CreateErr
	}
	return m.CreateMessage, nil
}

func (m *MockGateway) DeletePolicy(_ context.Context, name string) (string, error) {
	m.DeleteCalls++
	m.DeletedPolicy = name
	if m.DeleteErr != nil {
		return "", m.DeleteErr
	}
	return m.DeleteMessage, nil
}
