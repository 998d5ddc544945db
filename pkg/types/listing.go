package types

import (
	"io"
	"time"
)

type ListingIntent string

const (
	ListingIntentSale ListingIntent = "SALE"
	ListingIntentRent ListingIntent = "RENT"
)

func (i ListingIntent) Valid() bool {
	return i == ListingIntentSale || i == ListingIntentRent
}

func (i ListingIntent) Label() string {
	switch i {
	case ListingIntentSale:
		return "Satılık"
	case ListingIntentRent:
		return "Kiralık"
	}
	return ""
}

type WizardStep string

const (
	StepType         WizardStep = "type"
	StepDetails      WizardStep = "details"
	StepLocation     WizardStep = "location"
	StepInfo         WizardStep = "info"
	StepPhotos       WizardStep = "photos"
	StepReview       WizardStep = "review"
	StepConfirmation WizardStep = "confirmation"
)

// Photo is an attachment of a listing draft. StorageKey is the staging
// handle of the file.
type Photo struct {
	ID          string    `json:"id"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	SizeBytes   int64     `json:"sizeBytes"`
	StorageKey  string    `json:"storageKey"`
	PreviewURL  string    `json:"previewUrl"`
	IsMain      bool      `json:"isMain"`
	AddedAt     time.Time `json:"addedAt"`
}

type DraftLocation struct {
	ProvinceID       string   `form:"province_id" validate:"required" json:"provinceId"`
	ProvinceName     string   `form:"province_name" validate:"required" json:"province"`
	DistrictID       string   `form:"district_id" validate:"required" json:"districtId"`
	DistrictName     string   `form:"district_name" validate:"required" json:"district"`
	NeighborhoodID   string   `form:"neighborhood_id" validate:"required" json:"neighborhoodId"`
	NeighborhoodName string   `form:"neighborhood_name" validate:"required" json:"neighborhood"`
	Latitude         *float64 `form:"latitude" validate:"omitempty,latitude" json:"latitude,omitempty"`
	Longitude        *float64 `form:"longitude" validate:"omitempty,longitude" json:"longitude,omitempty"`
}

type DraftInfo struct {
	Title       string `form:"title" validate:"required,min=5,max=120" json:"title"`
	Description string `form:"description" validate:"required,max=5000" json:"description"`
	Price       int64  `form:"price" validate:"required,gt=0" json:"price"`
}

// ListingDraft is a listing being built in the creation wizard.
type ListingDraft struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`

	Category Category      `json:"category"`
	Subtype  string        `json:"subtype"`
	Intent   ListingIntent `json:"listingType"`

	DraftInfo
	Location DraftLocation `json:"location"`

	Details CategoryDetails `json:"details"`
	Photos  []*Photo        `json:"photos"`

	// ListingID is set once the listing exists but its photos still have to
	// be uploaded.
	ListingID string `json:"listingId,omitempty"`

	CurrentStep    WizardStep   `json:"currentStep"`
	CompletedSteps []WizardStep `json:"completedSteps"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ActiveDetails returns the detail record of the selected category.
func (d *ListingDraft) ActiveDetails() DetailRecord {
	return d.Details.For(d.Category)
}

func (d *ListingDraft) StepCompleted(step WizardStep) bool {
	for _, s := range d.CompletedSteps {
		if s == step {
			return true
		}
	}
	return false
}

// MainPhoto returns the cover photo, or nil when there are no photos.
func (d *ListingDraft) MainPhoto() *Photo {
	if len(d.Photos) == 0 {
		return nil
	}
	return d.Photos[0]
}

func (d *ListingDraft) Clone() *ListingDraft {
	out := *d
	out.Details = d.Details.Clone()
	out.Location.Latitude = cloneFloat(d.Location.Latitude)
	out.Location.Longitude = cloneFloat(d.Location.Longitude)

	out.Photos = make([]*Photo, len(d.Photos))
	for i, p := range d.Photos {
		cp := *p
		out.Photos[i] = &cp
	}

	out.CompletedSteps = append([]WizardStep(nil), d.CompletedSteps...)
	return &out
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

// PhotoUpload is one file part of the photo upload request.
type PhotoUpload struct {
	FileName    string
	ContentType string
	Body        io.Reader
}

// Listing is a published listing as returned by the backend.
type Listing struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Price        int64          `json:"price"`
	Currency     string         `json:"currency"`
	Category     Category       `json:"category"`
	Subtype      string         `json:"subtype"`
	ListingType  ListingIntent  `json:"listingType"`
	City         string         `json:"city"`
	District     string         `json:"district"`
	Neighborhood string         `json:"neighborhood"`
	Latitude     *float64       `json:"latitude,omitempty"`
	Longitude    *float64       `json:"longitude,omitempty"`
	Photos       []ListingPhoto `json:"photos"`
	Details      map[string]any `json:"details"`
	OwnerID      string         `json:"ownerId"`
	OwnerName    string         `json:"ownerName"`
	CreatedAt    time.Time      `json:"createdAt"`
}

type ListingPhoto struct {
	URL    string `json:"url"`
	IsMain bool   `json:"isMain"`
}

// CoverURL is the main photo of the listing, or "".
func (l Listing) CoverURL() string {
	for _, p := range l.Photos {
		if p.IsMain {
			return p.URL
		}
	}
	if len(l.Photos) > 0 {
		return l.Photos[0].URL
	}
	return ""
}
