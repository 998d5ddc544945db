package types

// DetailRecord is the category-specific bag of optional attributes of a
// property. In a listing draft Values holds one entry per answered field; as
// a search filter Values holds <name>Min/<name>Max ranges and Lists holds the
// selected options of each choice field.
type DetailRecord struct {
	Category Category            `json:"category"`
	Subtype  string              `json:"subtype"`
	Values   map[string]string   `json:"values,omitempty"`
	Lists    map[string][]string `json:"lists,omitempty"`
	Features map[string]bool     `json:"features,omitempty"`
}

// IsEmpty reports whether the record has never been initialized.
func (d DetailRecord) IsEmpty() bool {
	return d.Category == "" && d.Subtype == "" && len(d.Values) == 0 && len(d.Lists) == 0 && len(d.Features) == 0
}

func (d DetailRecord) Clone() DetailRecord {
	out := DetailRecord{
		Category: d.Category,
		Subtype:  d.Subtype,
	}

	if d.Values != nil {
		out.Values = make(map[string]string, len(d.Values))
		for k, v := range d.Values {
			out.Values[k] = v
		}
	}

	if d.Lists != nil {
		out.Lists = make(map[string][]string, len(d.Lists))
		for k, v := range d.Lists {
			out.Lists[k] = append([]string(nil), v...)
		}
	}

	if d.Features != nil {
		out.Features = make(map[string]bool, len(d.Features))
		for k, v := range d.Features {
			out.Features[k] = v
		}
	}

	return out
}

// Value returns a value field, or "" when unset.
func (d DetailRecord) Value(name string) string {
	if d.Values == nil {
		return ""
	}
	return d.Values[name]
}

// List returns the selected options of a choice field.
func (d DetailRecord) List(name string) []string {
	if d.Lists == nil {
		return nil
	}
	return d.Lists[name]
}

func (d DetailRecord) HasFeature(name string) bool {
	return d.Features != nil && d.Features[name]
}

// Selected reports whether option is selected in the named list.
func (d DetailRecord) Selected(name, option string) bool {
	return containsString(d.List(name), option)
}

// CategoryDetails holds one detail record per category. Every category keeps
// its own record, so moving between categories never loses answers.
type CategoryDetails map[Category]DetailRecord

// For returns the record of a category, or an empty record.
func (c CategoryDetails) For(category Category) DetailRecord {
	if c == nil {
		return DetailRecord{}
	}
	return c[category]
}

func (c CategoryDetails) Clone() CategoryDetails {
	if c == nil {
		return nil
	}
	out := make(CategoryDetails, len(c))
	for k, v := range c {
		out[k] = v.Clone()
	}
	return out
}
