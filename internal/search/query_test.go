package search

import (
	"net/url"
	"testing"

	"ilanver/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_EndpointClassification(t *testing.T) {
	cases := map[string]string{
		"":            "house",
		"VILLA":       "house",
		"KONUT":       "house",
		"MUSTAKIL_EV": "house",
		"Müstakil Ev": "house",
		"yazlık":      "house",
		"ECZANE":      "commercial",
		"DUKKAN":      "commercial",
		"OFIS":        "office",
		"PLAZA_KATI":  "office",
		"ARSA":        "land",
		"TARLA":       "land",
		"DEPO":        "industrial",
		"SANAYI":      "industrial",
		"OTOPARK":     "service",
		"HIZMET":      "service",
		"SHIPYARD":    "house",
	}

	for in, want := range cases {
		q := Build(types.SearchFilters{}, nil, in)
		assert.Equal(t, want, q.Endpoint, "input %q", in)
	}
}

func TestBuild_LandExample(t *testing.T) {
	filters := types.SearchFilters{
		Category: "ARSA",
		Price:    types.PriceRange{Min: "100000", Max: ""},
	}
	details := types.CategoryDetails{
		types.CategoryLand: {Values: map[string]string{"netAreaMin": "500"}},
	}

	q := Build(filters, details, filters.Category)

	assert.Equal(t, "land", q.Endpoint)
	assert.Equal(t, types.CategoryLand, q.Category)
	assert.Equal(t, "100000", q.Params.Get("minPrice"))
	assert.Equal(t, "500", q.Params.Get("minNetArea"))
	assert.NotContains(t, q.Params, "maxPrice")
	assert.NotContains(t, q.Params, "maxNetArea")
}

func TestBuild_CommonParams(t *testing.T) {
	filters := types.SearchFilters{
		Category:      "KONUT",
		Subtype:       "DAIRE",
		ListingType:   types.ListingIntentRent,
		CityNames:     []string{"İstanbul", "Ankara"},
		DistrictNames: []string{"Kadıköy", "", "Beşiktaş"},
		Neighborhoods: []string{"Moda"},
		Price:         types.PriceRange{Min: "0", Max: "45000"},
	}

	q := Build(filters, nil, "")

	assert.Equal(t, []string{"İstanbul"}, q.Params["city"])
	assert.Equal(t, []string{"Kadıköy", "Beşiktaş"}, q.Params["district"])
	assert.Equal(t, []string{"Moda"}, q.Params["neighborhood"])
	assert.NotContains(t, q.Params, "minPrice")
	assert.Equal(t, "45000", q.Params.Get("maxPrice"))
	assert.Equal(t, "RENT", q.Params.Get("listingType"))
	assert.Equal(t, "DAIRE", q.Params.Get("subtype"))
}

func TestBuild_HousingRepeatsListsAndBareFeatures(t *testing.T) {
	details := types.CategoryDetails{
		types.CategoryHousing: {
			Values: map[string]string{"grossAreaMin": "80", "grossAreaMax": "0", "netAreaMax": " "},
			Lists:  map[string][]string{"rooms": {"2+1", "3+1"}, "heating": {"DOGALGAZ_KOMBI"}},
			Features: map[string]bool{
				"balcony":  true,
				"elevator": true,
				"pool":     false,
			},
		},
	}

	q := Build(types.SearchFilters{Category: "KONUT"}, details, "")

	assert.Equal(t, "80", q.Params.Get("minGrossArea"))
	assert.NotContains(t, q.Params, "maxGrossArea")
	assert.NotContains(t, q.Params, "maxNetArea")
	assert.Equal(t, []string{"2+1", "3+1"}, q.Params["rooms"])
	assert.Equal(t, []string{"DOGALGAZ_KOMBI"}, q.Params["heating"])
	assert.Equal(t, "true", q.Params.Get("balcony"))
	assert.Equal(t, "true", q.Params.Get("elevator"))
	assert.NotContains(t, q.Params, "pool")
	assert.NotContains(t, q.Params, types.CategoryFeaturesParam)
}

func TestBuild_CommercialJoinsListsAndFeatures(t *testing.T) {
	details := types.CategoryDetails{
		types.CategoryCommercial: {
			Lists:    map[string][]string{"floor": {"ZEMIN", "1"}},
			Features: map[string]bool{"wc": true, "showcase": true, "alarm": false},
		},
	}

	q := Build(types.SearchFilters{}, details, "ECZANE")

	assert.Equal(t, "commercial", q.Endpoint)
	assert.Equal(t, []string{"ZEMIN,1"}, q.Params["floor"])
	assert.Equal(t, []string{"showcase,wc"}, q.Params[types.CategoryFeaturesParam])
	assert.NotContains(t, q.Params, "wc")
}

func TestBuild_OnlyActiveCategoryDetailsConsulted(t *testing.T) {
	details := types.CategoryDetails{
		types.CategoryHousing: {Values: map[string]string{"grossAreaMin": "100"}},
		types.CategoryLand:    {Values: map[string]string{"netAreaMin": "500"}},
	}

	q := Build(types.SearchFilters{}, details, "ARSA")

	assert.Equal(t, "500", q.Params.Get("minNetArea"))
	assert.NotContains(t, q.Params, "minGrossArea")
}

func TestBuild_Idempotent(t *testing.T) {
	filters := types.SearchFilters{
		Category:      "OFIS",
		CityNames:     []string{"İzmir"},
		DistrictNames: []string{"Konak", "Bornova"},
		Price:         types.PriceRange{Min: "1000", Max: "9000"},
	}
	details := types.CategoryDetails{
		types.CategoryOffice: {
			Values:   map[string]string{"netAreaMin": "50", "roomCountMax": "8"},
			Lists:    map[string][]string{"floor": {"2", "3"}},
			Features: map[string]bool{"parking": true, "reception": true},
		},
	}

	first := Build(filters, details, "")
	second := Build(filters, details, "")

	assert.Equal(t, first, second)
	assert.Equal(t, first.Params.Encode(), second.Params.Encode())
}

func TestQueryPath(t *testing.T) {
	q := Query{Endpoint: "land", Params: url.Values{"minPrice": {"100000"}, "minNetArea": {"500"}}}
	assert.Equal(t, "/search/land?minNetArea=500&minPrice=100000", q.Path())

	empty := Query{Endpoint: "house", Params: url.Values{}}
	assert.Equal(t, "/search/house", empty.Path())
}

func TestParse_RoundTrip(t *testing.T) {
	inputs := []struct {
		filters types.SearchFilters
		details types.CategoryDetails
	}{
		{
			filters: types.SearchFilters{Category: "KONUT", Subtype: "VILLA", CityNames: []string{"Muğla"}, Price: types.PriceRange{Max: "9000000"}},
			details: types.CategoryDetails{types.CategoryHousing: {
				Values:   map[string]string{"grossAreaMin": "200"},
				Lists:    map[string][]string{"rooms": {"4+1", "5+1"}},
				Features: map[string]bool{"pool": true, "garden": true},
			}},
		},
		{
			filters: types.SearchFilters{Category: "SANAYI", DistrictNames: []string{"Gebze"}, ListingType: types.ListingIntentSale},
			details: types.CategoryDetails{types.CategoryIndustrial: {
				Values:   map[string]string{"closedAreaMin": "1500", "ceilingHeightMax": "12"},
				Lists:    map[string][]string{"groundType": {"BETON", "EPOKSI"}},
				Features: map[string]bool{"crane": true, "loadingRamp": true},
			}},
		},
	}

	for _, in := range inputs {
		q := Build(in.filters, in.details, "")

		filters, details, err := Parse(q.Endpoint, q.Params)
		require.NoError(t, err)

		again := Build(filters, details, "")
		assert.Equal(t, q, again)
	}
}

func TestParse_UnknownEndpoint(t *testing.T) {
	_, _, err := Parse("castle", url.Values{})
	assert.ErrorIs(t, err, types.ErrUnknownCategory)
}
