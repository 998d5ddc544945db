// Package dispatch selects the detail record of the active category.
//
// A draft keeps one record per category. Selecting a category with a subtype
// initializes that category's record the first time, with every feature flag
// of the category set to false. Records of other categories are left alone, so
// switching back restores earlier answers.
package dispatch

import (
	"ilanver/pkg/types"
)

// Setter replaces the record of the slot it was obtained for.
type Setter func(types.DetailRecord)

func noopSetter(types.DetailRecord) {}

type Dispatcher struct {
	slots *types.CategoryDetails
}

// New returns a dispatcher over slots, allocating the map if needed.
func New(slots *types.CategoryDetails) *Dispatcher {
	if *slots == nil {
		*slots = make(types.CategoryDetails)
	}
	return &Dispatcher{slots: slots}
}

// InitialRecord is the record a category starts with: every feature flag
// false, no values, and the chosen subtype.
func InitialRecord(category types.Category, subtype string) types.DetailRecord {
	schema := types.SchemaFor(category)

	features := make(map[string]bool, len(schema.Features))
	for _, f := range schema.Features {
		features[f] = false
	}

	return types.DetailRecord{
		Category: category,
		Subtype:  subtype,
		Values:   map[string]string{},
		Lists:    map[string][]string{},
		Features: features,
	}
}

// Select makes category the active slot. An empty slot is initialized when a
// subtype is given; an existing slot only takes the new subtype.
func (d *Dispatcher) Select(category types.Category, subtype string) {
	if !category.Valid() || subtype == "" {
		return
	}

	record, ok := (*d.slots)[category]
	if !ok || record.IsEmpty() {
		(*d.slots)[category] = InitialRecord(category, subtype)
		return
	}

	if record.Subtype != subtype {
		record.Subtype = subtype
		(*d.slots)[category] = record
	}
}

// Active returns a copy of the category's record and a setter bound to its
// slot. Unknown categories get an empty record and a no-op setter.
func (d *Dispatcher) Active(category types.Category) (types.DetailRecord, Setter) {
	if !category.Valid() {
		return types.DetailRecord{}, noopSetter
	}

	setter := func(record types.DetailRecord) {
		record.Category = category
		(*d.slots)[category] = record.Clone()
	}

	return (*d.slots)[category].Clone(), setter
}

// Update applies fn to the category's record in place. It reports false for
// unknown categories.
func (d *Dispatcher) Update(category types.Category, fn func(*types.DetailRecord)) bool {
	record, set := d.Active(category)
	if !category.Valid() {
		return false
	}

	fn(&record)
	set(record)
	return true
}
