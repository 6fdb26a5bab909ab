package client

import (
	"context"
	"net/url"

	domain "github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/entity"
)

// AddressClient manages the user's saved addresses. The single-default
// invariant is enforced server-side; this client only ships payloads.
type AddressClient struct {
	c *Client
}

func NewAddressClient(c *Client) *AddressClient {
	return &AddressClient{c: c}
}

type AddressInput struct {
	UserID    string `json:"userId"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state,omitempty"`
	Zip       string `json:"zip"`
	IsDefault bool   `json:"isDefault"`
}

func (ac *AddressClient) List(ctx context.Context, userID string) ([]domain.Address, error) {
	var resp []wireAddress
	path := "/api/addresses?userId=" + url.QueryEscape(userID)
	if err := ac.c.do(ctx, "GET", path, nil, &resp); err != nil {
		return nil, err
	}
	out := make([]domain.Address, 0, len(resp))
	for _, a := range resp {
		out = append(out, a.toDomain())
	}
	return out, nil
}

func (ac *AddressClient) Add(ctx context.Context, in AddressInput) (domain.Address, error) {
	var resp wireAddress
	if err := ac.c.do(ctx, "POST", "/api/addresses", in, &resp); err != nil {
		return domain.Address{}, err
	}
	return resp.toDomain(), nil
}

func (ac *AddressClient) Update(ctx context.Context, id string, in AddressInput) (domain.Address, error) {
	var resp wireAddress
	if err := ac.c.do(ctx, "PUT", "/api/addresses/"+url.PathEscape(id), in, &resp); err != nil {
		return domain.Address{}, err
	}
	return resp.toDomain(), nil
}

func (ac *AddressClient) Delete(ctx context.Context, id string) error {
	return ac.c.do(ctx, "DELETE", "/api/addresses/"+url.PathEscape(id), nil, nil)
}
