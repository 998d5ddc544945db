package backend

import (
	"context"
	"fmt"
	"net/http"

	"ilanver/pkg/types"
)

func (c *Client) Me(ctx context.Context) (*types.User, error) {
	var out userDTO
	if err := c.doJSON(ctx, http.MethodGet, "/api/users/me", nil, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to fetch account: %w", err)
	}
	return out.toDomain(), nil
}

func (c *Client) UpdateMe(ctx context.Context, update types.UserUpdate) (*types.User, error) {
	var out userDTO
	if err := c.doJSON(ctx, http.MethodPut, "/api/users/me", nil, update, &out); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return out.toDomain(), nil
}

// MyListings returns the listings owned by the signed-in user.
func (c *Client) MyListings(ctx context.Context) ([]types.Listing, error) {
	var out []listingDTO
	if err := c.doJSON(ctx, http.MethodGet, "/api/users/me/listings", nil, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to fetch own listings: %w", err)
	}
	return listingsToDomain(out), nil
}
