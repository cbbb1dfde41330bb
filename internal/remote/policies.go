package remote

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/wcrum/krb-tui/internal/domain"
)

type policyListResponse struct {
	Policies []domain.RecyclePolicy `json:"policies"`
}

// ListPolicies returns all recycle policies.
func (c *Client) ListPolicies(ctx context.Context) ([]domain.RecyclePolicy, error) {
	var resp policyListResponse
	if err := c.getJSON(ctx, "/recycle-policies", &resp); err != nil {
		return nil, err
	}
	if resp.Policies == nil {
		return []domain.RecyclePolicy{}, nil
	}
	return resp.Policies, nil
}

// CreatePolicy creates a policy. Name and resource must be set.
func (c *Client) CreatePolicy(ctx context.Context, spec domain.PolicySpec) (string, error) {
	if err := requireName("policy", spec.Name); err != nil {
		return "", err
	}
	if strings.TrimSpace(spec.Resource) == "" {
		return "", &domain.APIError{Type: domain.ErrValidation, Message: "policy resource is required"}
	}
	if spec.Namespaces == nil {
		spec.Namespaces = []string{}
	}
	return c.sendForMessage(ctx, http.MethodPost, "/recycle-policies", spec)
}

// DeletePolicy deletes a policy by name.
func (c *Client) DeletePolicy(ctx context.Context, name string) (string, error) {
	if err := requireName("policy", name); err != nil {
		return "", err
	}
	return c.sendForMessage(ctx, http.MethodDelete, "/recycle-policies/"+url.PathEscape(name), nil)
}
