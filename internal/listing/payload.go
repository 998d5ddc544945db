package listing

import (
	"strconv"

	"ilanver/pkg/types"
)

// Payload serializes the draft into the create-listing request body. Only the
// active category's details are sent, nested under "<category>Details".
// Photos are not part of the body; they are uploaded separately.
func Payload(draft *types.ListingDraft) map[string]any {
	body := map[string]any{
		"title":          draft.Title,
		"description":    draft.Description,
		"price":          draft.Price,
		"category":       string(draft.Category),
		"subtype":        draft.Subtype,
		"listingType":    string(draft.Intent),
		"provinceId":     draft.Location.ProvinceID,
		"province":       draft.Location.ProvinceName,
		"districtId":     draft.Location.DistrictID,
		"district":       draft.Location.DistrictName,
		"neighborhoodId": draft.Location.NeighborhoodID,
		"neighborhood":   draft.Location.NeighborhoodName,
	}

	if draft.Location.Latitude != nil && draft.Location.Longitude != nil {
		body["latitude"] = *draft.Location.Latitude
		body["longitude"] = *draft.Location.Longitude
	}

	if draft.Category.Valid() {
		body[draft.Category.DetailsKey()] = detailsBody(types.SchemaFor(draft.Category), draft.ActiveDetails(), draft.Subtype)
	}

	return body
}

func detailsBody(schema types.CategorySchema, record types.DetailRecord, subtype string) map[string]any {
	out := map[string]any{"subtype": subtype}

	for _, name := range schema.Numbers {
		if v := record.Value(name); v != "" {
			out[name] = number(v)
		}
	}

	for _, choice := range schema.Choices {
		if v := record.Value(choice.Name); v != "" {
			out[choice.Name] = v
		}
	}

	for _, f := range schema.Features {
		out[f] = record.HasFeature(f)
	}

	return out
}

// number sends whole numbers as integers and anything else as a float.
// Values are validated when the details step is saved.
func number(v string) any {
	if i, err := strconv.ParseInt(v, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	return v
}
