package types

import (
	"fmt"
	"strings"

	"github.com/gosimple/slug"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category is the top-level property type of a listing.
type Category string

const (
	CategoryHousing    Category = "HOUSING"
	CategoryOffice     Category = "OFFICE"
	CategoryCommercial Category = "COMMERCIAL"
	CategoryIndustrial Category = "INDUSTRIAL"
	CategoryLand       Category = "LAND"
	CategoryService    Category = "SERVICE"
)

// Categories lists every category in keyword-matching order.
var Categories = []Category{
	CategoryHousing,
	CategoryOffice,
	CategoryCommercial,
	CategoryLand,
	CategoryIndustrial,
	CategoryService,
}

var categoryAliases = map[Category]string{
	CategoryHousing:    "KONUT",
	CategoryOffice:     "OFIS",
	CategoryCommercial: "TICARI",
	CategoryIndustrial: "SANAYI",
	CategoryLand:       "ARSA",
	CategoryService:    "HIZMET",
}

var categoryLabels = map[Category]string{
	CategoryHousing:    "Konut",
	CategoryOffice:     "Ofis",
	CategoryCommercial: "Ticari",
	CategoryIndustrial: "Sanayi",
	CategoryLand:       "Arsa",
	CategoryService:    "Hizmet",
}

var categoryEndpoints = map[Category]string{
	CategoryHousing:    "house",
	CategoryOffice:     "office",
	CategoryCommercial: "commercial",
	CategoryIndustrial: "industrial",
	CategoryLand:       "land",
	CategoryService:    "service",
}

func (c Category) Valid() bool {
	_, ok := categoryAliases[c]
	return ok
}

// Alias is the Turkish keyword the backend uses for the category.
func (c Category) Alias() string {
	return categoryAliases[c]
}

func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// Endpoint is the backend search collection for the category. Unknown
// categories search the house collection.
func (c Category) Endpoint() string {
	if e, ok := categoryEndpoints[c]; ok {
		return e
	}
	return categoryEndpoints[CategoryHousing]
}

// PayloadName is the lowercase category name used in outbound payload keys.
func (c Category) PayloadName() string {
	return strings.ToLower(string(c))
}

// DetailsKey is the payload key the category's details are nested under.
func (c Category) DetailsKey() string {
	return c.PayloadName() + "Details"
}

// CategoryForEndpoint is the inverse of Category.Endpoint.
func CategoryForEndpoint(endpoint string) (Category, bool) {
	for _, c := range Categories {
		if categoryEndpoints[c] == endpoint {
			return c, true
		}
	}
	return "", false
}

// ParseCategory accepts the category name or its Turkish alias in any case.
func ParseCategory(s string) (Category, error) {
	key := NormalizeKeyword(s)
	for _, c := range Categories {
		if key == string(c) || key == categoryAliases[c] {
			return c, nil
		}
	}
	return "", ErrUnknownCategory
}

// ClassifyCategory resolves a free-form category or subtype string. Each
// category's keyword set (name, alias and subtypes) is matched exactly in
// Categories order; empty or unknown input resolves to housing.
func ClassifyCategory(s string) Category {
	key := NormalizeKeyword(s)
	if key == "" {
		return CategoryHousing
	}

	for _, c := range Categories {
		for _, kw := range Keywords(c) {
			if kw == key {
				return c
			}
		}
	}

	return CategoryHousing
}

// Keywords returns the closed keyword set of a category.
func Keywords(c Category) []string {
	schema := SchemaFor(c)
	out := make([]string, 0, len(schema.Subtypes)+2)
	out = append(out, string(c), categoryAliases[c])
	out = append(out, schema.Subtypes...)
	return out
}

// NormalizeKeyword folds "Müstakil Ev", "mustakil-ev" and "MUSTAKIL_EV" to
// the same keyword.
func NormalizeKeyword(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	s = slug.MakeLang(s, "tr")
	s = strings.ReplaceAll(s, "-", "_")
	return strings.ToUpper(s)
}

// HasSubtype reports whether subtype belongs to the category's vocabulary.
func (c Category) HasSubtype(subtype string) bool {
	for _, st := range SchemaFor(c).Subtypes {
		if st == subtype {
			return true
		}
	}
	return false
}

// CheckSubtype returns ErrSubtypeMismatch when subtype is not one of the
// category's subtypes.
func (c Category) CheckSubtype(subtype string) error {
	if !c.HasSubtype(subtype) {
		return fmt.Errorf("%w: %q is not a %s subtype", ErrSubtypeMismatch, subtype, c)
	}
	return nil
}

var turkishTitle = cases.Title(language.Turkish)

// HumanizeCode renders a vocabulary code such as MUSTAKIL_EV for display.
func HumanizeCode(code string) string {
	if l, ok := codeLabels[code]; ok {
		return l
	}
	words := strings.ReplaceAll(strings.ToLower(code), "_", " ")
	return turkishTitle.String(words)
}
