package remote

import (
	"context"
	"net/http"
	"net/url"

	"github.com/wcrum/krb-tui/internal/domain"
)

type itemListResponse struct {
	Items []domain.RecycleItem `json:"items"`
}

// ListItems returns the current recycle bin snapshot.
func (c *Client) ListItems(ctx context.Context) ([]domain.RecycleItem, error) {
	var resp itemListResponse
	if err := c.getJSON(ctx, "/recycle-items", &resp); err != nil {
		return nil, err
	}
	if resp.Items == nil {
		return []domain.RecycleItem{}, nil
	}
	return resp.Items, nil
}

// GetItemDocument returns the recycled object as YAML text.
func (c *Client) GetItemDocument(ctx context.Context, name string) (string, error) {
	if err := requireName("recycle item", name); err != nil {
		return "", err
	}
	data, err := c.do(ctx, http.MethodGet, "/recycle-items/"+url.PathEscape(name), url.Values{"format": {"yaml"}}, nil)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// RestoreItem recreates the recycled object.
func (c *Client) RestoreItem(ctx context.Context, name string) (string, error) {
	if err := requireName("recycle item", name); err != nil {
		return "", err
	}
	return c.sendForMessage(ctx, http.MethodPost, "/recycle-items/"+url.PathEscape(name)+"/restore", nil)
}
