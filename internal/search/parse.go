package search

import (
	"net/url"
	"strings"

	"ilanver/pkg/types"
)

// Parse restores the filters behind a search results URL so the search form
// can be shown pre-filled. Building the returned filters yields the same
// parameters again.
func Parse(endpoint string, params url.Values) (types.SearchFilters, types.CategoryDetails, error) {
	category, ok := types.CategoryForEndpoint(endpoint)
	if !ok {
		return types.SearchFilters{}, nil, types.ErrUnknownCategory
	}

	filters := types.SearchFilters{
		Category:      category.Alias(),
		Subtype:       params.Get(paramSubtype),
		ListingType:   types.ListingIntent(params.Get(paramListingType)),
		DistrictNames: params[paramDistrict],
		Neighborhoods: params[paramNeighborhood],
		Price: types.PriceRange{
			Min: params.Get(paramMinPrice),
			Max: params.Get(paramMaxPrice),
		},
	}
	if city := params.Get(paramCity); city != "" {
		filters.CityNames = []string{city}
	}

	schema := types.SchemaFor(category)
	record := types.DetailRecord{
		Category: category,
		Subtype:  filters.Subtype,
		Values:   map[string]string{},
		Lists:    map[string][]string{},
		Features: map[string]bool{},
	}

	for _, name := range schema.Numbers {
		if v := params.Get(MinParam(name)); v != "" {
			record.Values[name+"Min"] = v
		}
		if v := params.Get(MaxParam(name)); v != "" {
			record.Values[name+"Max"] = v
		}
	}

	for _, choice := range schema.Choices {
		raw := params[choice.Name]
		if schema.ListMode == types.ListJoined {
			raw = splitJoined(raw)
		}
		if items := nonBlank(raw); len(items) > 0 {
			record.Lists[choice.Name] = items
		}
	}

	switch schema.FeatureMode {
	case types.FeatureJoined:
		for _, f := range splitJoined(params[types.CategoryFeaturesParam]) {
			if schema.HasFeature(f) {
				record.Features[f] = true
			}
		}
	default:
		for _, f := range schema.Features {
			if params.Get(f) == "true" {
				record.Features[f] = true
			}
		}
	}

	return filters, types.CategoryDetails{category: record}, nil
}

func splitJoined(values []string) []string {
	var out []string
	for _, v := range values {
		out = append(out, strings.Split(v, ",")...)
	}
	return out
}
