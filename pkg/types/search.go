package types

// PriceRange keeps the raw form input; blank and zero bounds are absent.
type PriceRange struct {
	Min string `form:"min" json:"min"`
	Max string `form:"max" json:"max"`
}

// SearchFilters are the common filters of the search form.
type SearchFilters struct {
	Category        string        `form:"category" json:"category"`
	Subtype         string        `form:"subtype" json:"subtype"`
	ListingType     ListingIntent `form:"listing_type" json:"listingType"`
	CityNames       []string      `form:"city" json:"cityNames"`
	CityIDs         []string      `form:"city_id" json:"cityIds"`
	DistrictNames   []string      `form:"district" json:"districtNames"`
	DistrictIDs     []string      `form:"district_id" json:"districtIds"`
	NeighborhoodIDs []string      `form:"neighborhood_id" json:"neighborhoodIds"`
	Neighborhoods   []string      `form:"neighborhood" json:"neighborhoodNames"`
	Price           PriceRange    `form:"price" json:"price"`
}
