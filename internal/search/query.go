package search

import (
	"net/url"
	"strconv"
	"strings"

	"ilanver/pkg/types"
)

const (
	paramCity         = "city"
	paramDistrict     = "district"
	paramNeighborhood = "neighborhood"
	paramMinPrice     = "minPrice"
	paramMaxPrice     = "maxPrice"
	paramListingType  = "listingType"
	paramSubtype      = "subtype"
)

// Query is a serialized search: the backend collection to search and the
// flat parameter set to send it.
type Query struct {
	Category types.Category
	Endpoint string
	Params   url.Values
}

// Path is the navigation path of the search results page for the query.
func (q Query) Path() string {
	path := "/search/" + q.Endpoint
	if encoded := q.Params.Encode(); encoded != "" {
		path += "?" + encoded
	}
	return path
}

// Build serializes the filters. selected is the raw category or subtype
// string picked in the form; when blank the filters' own category and
// subtype are classified instead. Only the details record of the resolved
// category is consulted.
func Build(filters types.SearchFilters, details types.CategoryDetails, selected string) Query {
	raw := firstNonBlank(selected, filters.Category, filters.Subtype)
	category := types.ClassifyCategory(raw)

	params := url.Values{}
	appendCommon(params, filters)
	appendCategory(params, types.SchemaFor(category), details.For(category))

	return Query{
		Category: category,
		Endpoint: category.Endpoint(),
		Params:   params,
	}
}

func appendCommon(params url.Values, filters types.SearchFilters) {
	// The backend filters on a single city.
	for _, city := range filters.CityNames {
		if city = strings.TrimSpace(city); city != "" {
			params.Set(paramCity, city)
			break
		}
	}

	for _, district := range filters.DistrictNames {
		if district = strings.TrimSpace(district); district != "" {
			params.Add(paramDistrict, district)
		}
	}

	for _, neighborhood := range filters.Neighborhoods {
		if neighborhood = strings.TrimSpace(neighborhood); neighborhood != "" {
			params.Add(paramNeighborhood, neighborhood)
		}
	}

	if present(filters.Price.Min) {
		params.Set(paramMinPrice, strings.TrimSpace(filters.Price.Min))
	}
	if present(filters.Price.Max) {
		params.Set(paramMaxPrice, strings.TrimSpace(filters.Price.Max))
	}

	if filters.ListingType != "" {
		params.Set(paramListingType, string(filters.ListingType))
	}

	if subtype := strings.TrimSpace(filters.Subtype); subtype != "" {
		params.Set(paramSubtype, subtype)
	}
}

func appendCategory(params url.Values, schema types.CategorySchema, record types.DetailRecord) {
	for _, name := range schema.Numbers {
		if v := record.Value(name + "Min"); present(v) {
			params.Set(MinParam(name), strings.TrimSpace(v))
		}
		if v := record.Value(name + "Max"); present(v) {
			params.Set(MaxParam(name), strings.TrimSpace(v))
		}
	}

	for _, choice := range schema.Choices {
		items := nonBlank(record.List(choice.Name))
		if len(items) == 0 {
			continue
		}

		switch schema.ListMode {
		case types.ListJoined:
			params.Set(choice.Name, strings.Join(items, ","))
		default:
			for _, item := range items {
				params.Add(choice.Name, item)
			}
		}
	}

	var joined []string
	for _, feature := range schema.Features {
		if !record.HasFeature(feature) {
			continue
		}

		switch schema.FeatureMode {
		case types.FeatureJoined:
			joined = append(joined, feature)
		default:
			params.Add(feature, "true")
		}
	}
	if len(joined) > 0 {
		params.Set(types.CategoryFeaturesParam, strings.Join(joined, ","))
	}
}

// MinParam is the lower-bound parameter of a numeric field: netArea -> minNetArea.
func MinParam(field string) string {
	return "min" + upperFirst(field)
}

// MaxParam is the upper-bound parameter of a numeric field.
func MaxParam(field string) string {
	return "max" + upperFirst(field)
}

// present treats blank input and zero as absent.
func present(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return false
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil && f == 0 {
		return false
	}
	return true
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func nonBlank(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
