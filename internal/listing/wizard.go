package listing

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"ilanver/internal/dispatch"
	"ilanver/pkg/types"
)

// Steps are the wizard steps in order.
var Steps = []types.WizardStep{
	types.StepType,
	types.StepDetails,
	types.StepLocation,
	types.StepInfo,
	types.StepPhotos,
	types.StepReview,
	types.StepConfirmation,
}

var stepTitles = map[types.WizardStep]string{
	types.StepType:         "Emlak Tipi",
	types.StepDetails:      "Özellikler",
	types.StepLocation:     "Konum",
	types.StepInfo:         "İlan Bilgileri",
	types.StepPhotos:       "Fotoğraflar",
	types.StepReview:       "Önizleme",
	types.StepConfirmation: "Tamamlandı",
}

func StepTitle(step types.WizardStep) string {
	return stepTitles[step]
}

// NextStep returns the step after step, or step itself when it is the last.
func NextStep(step types.WizardStep) types.WizardStep {
	for i, s := range Steps {
		if s == step && i+1 < len(Steps) {
			return Steps[i+1]
		}
	}
	return step
}

// PrevStep returns the step before step, or step itself when it is the first.
func PrevStep(step types.WizardStep) types.WizardStep {
	for i, s := range Steps {
		if s == step && i > 0 {
			return Steps[i-1]
		}
	}
	return step
}

// FieldErrors maps form field names to user-facing messages.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+f[k])
	}
	return strings.Join(parts, "; ")
}

// SetPropertyType records the type step. The subtype always belongs to the
// category it is chosen with, and the details of every category are kept.
func SetPropertyType(draft *types.ListingDraft, category types.Category, subtype string, intent types.ListingIntent) FieldErrors {
	errs := FieldErrors{}

	if !category.Valid() {
		errs["category"] = "Emlak tipini seçin."
	}
	switch {
	case subtype == "":
		errs["subtype"] = "Alt tipi seçin."
	case category.Valid():
		if err := category.CheckSubtype(subtype); err != nil {
			errs["subtype"] = "Seçilen alt tip bu kategoriye ait değil."
		}
	}
	if !intent.Valid() {
		errs["listing_type"] = "Satılık veya kiralık seçin."
	}
	if len(errs) > 0 {
		return errs
	}

	draft.Category = category
	draft.Subtype = subtype
	draft.Intent = intent

	dispatch.New(&draft.Details).Select(category, subtype)
	return nil
}

// DetailInput is the decoded details form of the active category.
type DetailInput struct {
	Values   map[string]string `form:"values"`
	Features map[string]bool   `form:"features"`
}

// ApplyDetails writes the details form onto the active category's record.
// Fields outside the category's vocabulary are dropped and every feature of
// the vocabulary is written, unchecked ones as false.
func ApplyDetails(draft *types.ListingDraft, input DetailInput) FieldErrors {
	schema := types.SchemaFor(draft.Category)
	errs := FieldErrors{}

	values := map[string]string{}
	for _, name := range schema.Numbers {
		raw := strings.TrimSpace(input.Values[name])
		if raw == "" {
			continue
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || f < 0 {
			errs["values["+name+"]"] = "Geçerli bir sayı girin."
			continue
		}
		values[name] = raw
	}

	for _, choice := range schema.Choices {
		raw := strings.TrimSpace(input.Values[choice.Name])
		if raw == "" {
			continue
		}
		if !choice.Allows(raw) {
			errs["values["+choice.Name+"]"] = "Listeden bir seçenek seçin."
			continue
		}
		values[choice.Name] = raw
	}

	if len(errs) > 0 {
		return errs
	}

	features := make(map[string]bool, len(schema.Features))
	for _, f := range schema.Features {
		features[f] = input.Features[f]
	}

	ok := dispatch.New(&draft.Details).Update(draft.Category, func(r *types.DetailRecord) {
		r.Subtype = draft.Subtype
		r.Values = values
		r.Features = features
	})
	if !ok {
		return FieldErrors{"category": "Önce emlak tipini seçin."}
	}

	return nil
}

// SetLocation records the location step.
func SetLocation(draft *types.ListingDraft, location types.DraftLocation) FieldErrors {
	if errs := structErrors(location); len(errs) > 0 {
		return errs
	}
	draft.Location = location
	return nil
}

// SetInfo records the title, description and price step.
func SetInfo(draft *types.ListingDraft, info types.DraftInfo) FieldErrors {
	info.Title = strings.TrimSpace(info.Title)
	info.Description = strings.TrimSpace(info.Description)

	if errs := structErrors(info); len(errs) > 0 {
		return errs
	}
	draft.DraftInfo = info
	return nil
}

// CanAdvance reports whether the draft may leave step. Leaving the photos
// step needs at least one photo once a property type is chosen.
func CanAdvance(draft *types.ListingDraft, step types.WizardStep) error {
	switch step {
	case types.StepType:
		if !draft.Category.Valid() || draft.Category.CheckSubtype(draft.Subtype) != nil || !draft.Intent.Valid() {
			return incomplete(step)
		}
	case types.StepDetails:
		if draft.ActiveDetails().IsEmpty() {
			return incomplete(step)
		}
	case types.StepLocation:
		if len(structErrors(draft.Location)) > 0 {
			return incomplete(step)
		}
	case types.StepInfo:
		if len(structErrors(draft.DraftInfo)) > 0 {
			return incomplete(step)
		}
	case types.StepPhotos:
		if draft.Category != "" && len(draft.Photos) == 0 {
			return types.ErrPhotosRequired
		}
	case types.StepReview:
		for _, s := range Steps {
			if s == types.StepReview {
				break
			}
			if err := CanAdvance(draft, s); err != nil {
				return err
			}
		}
	}
	return nil
}

// FirstIncomplete returns the first step the draft cannot leave yet, or the
// review step when everything before it is done.
func FirstIncomplete(draft *types.ListingDraft) types.WizardStep {
	for _, s := range Steps {
		if s == types.StepReview {
			break
		}
		if CanAdvance(draft, s) != nil {
			return s
		}
	}
	return types.StepReview
}

// CompleteStep marks step done and moves the draft to the next step.
func CompleteStep(draft *types.ListingDraft, step types.WizardStep) error {
	if err := CanAdvance(draft, step); err != nil {
		return err
	}

	if !draft.StepCompleted(step) {
		draft.CompletedSteps = append(draft.CompletedSteps, step)
	}
	draft.CurrentStep = NextStep(step)
	draft.UpdatedAt = time.Now()
	return nil
}

func incomplete(step types.WizardStep) error {
	return fmt.Errorf("%w: %s", types.ErrStepIncomplete, step)
}
