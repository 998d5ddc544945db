package backend

import (
	"context"
	"net/http"
	"net/url"

	"ilanver/pkg/types"
)

// The location lookups feed the cascading pickers. A failed lookup is logged
// and returns an empty list so the picker simply shows no options.

func (c *Client) Provinces(ctx context.Context) []types.Location {
	return c.locations(ctx, "/api/location/provinces")
}

func (c *Client) Districts(ctx context.Context, provinceID string) []types.Location {
	return c.locations(ctx, "/api/location/"+url.PathEscape(provinceID)+"/districts")
}

func (c *Client) Subdistricts(ctx context.Context, districtID string) []types.Location {
	return c.locations(ctx, "/api/location/"+url.PathEscape(districtID)+"/subdistricts")
}

func (c *Client) Neighborhoods(ctx context.Context, parentID string) []types.Location {
	return c.locations(ctx, "/api/location/"+url.PathEscape(parentID)+"/neighborhoods")
}

func (c *Client) locations(ctx context.Context, path string) []types.Location {
	var out []locationDTO
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		c.entry(ctx, "locations").WithError(err).WithField("path", path).Warn("location lookup failed")
		return []types.Location{}
	}

	locations := make([]types.Location, 0, len(out))
	for _, l := range out {
		locations = append(locations, types.Location{ID: l.ID, Name: l.Name})
	}
	return locations
}
