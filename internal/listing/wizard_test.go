package listing

import (
	"testing"

	"ilanver/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeDraft() *types.ListingDraft {
	draft := &types.ListingDraft{ID: "draft1", UserID: "user1", CurrentStep: types.StepType}

	if errs := SetPropertyType(draft, types.CategoryHousing, "DAIRE", types.ListingIntentSale); errs != nil {
		panic(errs)
	}
	if errs := ApplyDetails(draft, DetailInput{
		Values:   map[string]string{"grossArea": "120", "rooms": "3+1"},
		Features: map[string]bool{"balcony": true},
	}); errs != nil {
		panic(errs)
	}
	draft.Location = types.DraftLocation{
		ProvinceID: "34", ProvinceName: "İstanbul",
		DistrictID: "1", DistrictName: "Kadıköy",
		NeighborhoodID: "7", NeighborhoodName: "Moda",
	}
	draft.DraftInfo = types.DraftInfo{Title: "Deniz manzaralı daire", Description: "Metroya yakın.", Price: 4500000}
	draft.Photos = []*types.Photo{
		{ID: "p1", FileName: "a.jpg", ContentType: "image/jpeg", SizeBytes: 1024, StorageKey: "k1", IsMain: true},
	}
	return draft
}

func TestStepOrder(t *testing.T) {
	assert.Equal(t, types.StepDetails, NextStep(types.StepType))
	assert.Equal(t, types.StepReview, NextStep(types.StepPhotos))
	assert.Equal(t, types.StepConfirmation, NextStep(types.StepConfirmation))
	assert.Equal(t, types.StepType, PrevStep(types.StepType))
	assert.Equal(t, types.StepInfo, PrevStep(types.StepPhotos))
	assert.Equal(t, "Fotoğraflar", StepTitle(types.StepPhotos))
}

func TestSetPropertyType_Validation(t *testing.T) {
	draft := &types.ListingDraft{}

	errs := SetPropertyType(draft, types.CategoryHousing, "ECZANE", types.ListingIntentSale)
	assert.Contains(t, errs, "subtype")
	assert.Empty(t, draft.Category)

	errs = SetPropertyType(draft, "CASTLE", "", "")
	assert.Contains(t, errs, "category")
	assert.Contains(t, errs, "subtype")
	assert.Contains(t, errs, "listing_type")
}

func TestSetPropertyType_InitializesSlotAndKeepsOthers(t *testing.T) {
	draft := &types.ListingDraft{}

	require.Nil(t, SetPropertyType(draft, types.CategoryHousing, "VILLA", types.ListingIntentSale))
	record := draft.ActiveDetails()
	assert.Equal(t, "VILLA", record.Subtype)
	assert.Len(t, record.Features, len(types.SchemaFor(types.CategoryHousing).Features))

	require.Nil(t, ApplyDetails(draft, DetailInput{Values: map[string]string{"grossArea": "300"}}))

	require.Nil(t, SetPropertyType(draft, types.CategoryLand, "TARLA", types.ListingIntentSale))
	assert.Equal(t, "TARLA", draft.Subtype)
	assert.Empty(t, draft.ActiveDetails().Values)

	require.Nil(t, SetPropertyType(draft, types.CategoryHousing, "VILLA", types.ListingIntentSale))
	assert.Equal(t, "300", draft.ActiveDetails().Value("grossArea"))
}

func TestApplyDetails(t *testing.T) {
	draft := &types.ListingDraft{}
	require.Nil(t, SetPropertyType(draft, types.CategoryHousing, "DAIRE", types.ListingIntentRent))

	errs := ApplyDetails(draft, DetailInput{
		Values: map[string]string{
			"grossArea": "-5",
			"rooms":     "12+4",
		},
	})
	assert.Contains(t, errs, "values[grossArea]")
	assert.Contains(t, errs, "values[rooms]")

	errs = ApplyDetails(draft, DetailInput{
		Values: map[string]string{
			"grossArea": " 95 ",
			"rooms":     "2+1",
			"unknown":   "x",
		},
		Features: map[string]bool{"elevator": true, "crane": true},
	})
	require.Nil(t, errs)

	record := draft.ActiveDetails()
	assert.Equal(t, "95", record.Value("grossArea"))
	assert.Equal(t, "2+1", record.Value("rooms"))
	assert.NotContains(t, record.Values, "unknown")
	assert.True(t, record.HasFeature("elevator"))
	assert.NotContains(t, record.Features, "crane")

	feature, ok := record.Features["pool"]
	assert.True(t, ok)
	assert.False(t, feature)
}

func TestApplyDetails_NoCategory(t *testing.T) {
	errs := ApplyDetails(&types.ListingDraft{}, DetailInput{})
	assert.Contains(t, errs, "category")
}

func TestSetInfoAndLocation(t *testing.T) {
	draft := &types.ListingDraft{}

	errs := SetInfo(draft, types.DraftInfo{Title: "  ab ", Price: 0})
	assert.Contains(t, errs, "title")
	assert.Contains(t, errs, "description")
	assert.Contains(t, errs, "price")

	require.Nil(t, SetInfo(draft, types.DraftInfo{Title: " Geniş ofis ", Description: "Merkezde", Price: 10}))
	assert.Equal(t, "Geniş ofis", draft.Title)

	errs = SetLocation(draft, types.DraftLocation{ProvinceID: "6", ProvinceName: "Ankara"})
	assert.Contains(t, errs, "district_id")
	assert.Contains(t, errs, "neighborhood_name")

	badLat := 123.0
	errs = SetLocation(draft, types.DraftLocation{
		ProvinceID: "6", ProvinceName: "Ankara", DistrictID: "2", DistrictName: "Çankaya",
		NeighborhoodID: "3", NeighborhoodName: "Kızılay", Latitude: &badLat,
	})
	assert.Contains(t, errs, "latitude")
}

func TestCanAdvance_PhotosRequiredWithCategory(t *testing.T) {
	draft := completeDraft()
	draft.Photos = nil

	assert.ErrorIs(t, CanAdvance(draft, types.StepPhotos), types.ErrPhotosRequired)
	assert.ErrorIs(t, CanAdvance(draft, types.StepReview), types.ErrPhotosRequired)
	assert.Equal(t, types.StepPhotos, FirstIncomplete(draft))

	noCategory := &types.ListingDraft{}
	assert.NoError(t, CanAdvance(noCategory, types.StepPhotos))
}

func TestCanAdvance_ReviewNeedsEveryStep(t *testing.T) {
	draft := completeDraft()
	assert.NoError(t, CanAdvance(draft, types.StepReview))
	assert.Equal(t, types.StepReview, FirstIncomplete(draft))

	draft.Title = ""
	assert.ErrorIs(t, CanAdvance(draft, types.StepReview), types.ErrStepIncomplete)
	assert.Equal(t, types.StepInfo, FirstIncomplete(draft))
}

func TestCompleteStep(t *testing.T) {
	draft := completeDraft()

	require.NoError(t, CompleteStep(draft, types.StepType))
	require.NoError(t, CompleteStep(draft, types.StepType))
	assert.Equal(t, []types.WizardStep{types.StepType}, draft.CompletedSteps)
	assert.Equal(t, types.StepDetails, draft.CurrentStep)

	draft.Photos = nil
	assert.ErrorIs(t, CompleteStep(draft, types.StepPhotos), types.ErrPhotosRequired)
	assert.False(t, draft.StepCompleted(types.StepPhotos))
}
