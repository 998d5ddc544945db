package types

type NavbarData struct {
	IsAuthenticated bool
	UserID          string
	UserEmail       string
}

type NavbarDataSetter interface {
	SetNavbarData(data NavbarData)
}

type BasePageData struct {
	Title  string
	Navbar NavbarData
	Notice string
	Error  string
}

func (d *BasePageData) SetNavbarData(data NavbarData) {
	d.Navbar = data
}

// FlashSetter takes the notice and error passed along a redirect.
type FlashSetter interface {
	SetFlash(notice, err string)
}

// SetFlash keeps messages already set by the handler.
func (d *BasePageData) SetFlash(notice, err string) {
	if d.Notice == "" {
		d.Notice = notice
	}
	if d.Error == "" {
		d.Error = err
	}
}

type HomePageData struct {
	BasePageData
	Categories []Category
	Recent     []Listing
}

// SearchPageData backs both the search form and the results page.
type SearchPageData struct {
	BasePageData
	Categories []Category
	Category   Category
	Schema     CategorySchema
	Filters    SearchFilters
	Details    DetailRecord
	Provinces  []Location
	Endpoint   string
	Results    []Listing
	Searched   bool
}

type ListingDetailPageData struct {
	BasePageData
	Listing *Listing
	Schema  CategorySchema
}

type WizardStepView struct {
	Step      WizardStep
	Title     string
	Completed bool
	Current   bool
}

type WizardPageData struct {
	BasePageData
	Draft       *ListingDraft
	Step        WizardStep
	Steps       []WizardStepView
	Categories  []Category
	Schema      CategorySchema
	Details     DetailRecord
	Provinces   []Location
	FieldErrors map[string]string
	// Rejected maps photo IDs that failed the submission check to a message.
	Rejected  map[string]string
	MaxPhotos int
	ListingID string
}

type WizardIndexPageData struct {
	BasePageData
	Drafts []*ListingDraft
}

type LoginPageData struct {
	BasePageData
	Email string
}

type MessagesPageData struct {
	BasePageData
	Conversations []Conversation
}

type ConversationPageData struct {
	BasePageData
	ConversationID string
	Messages       []Message
	FieldErrors    map[string]string
}

type AccountPageData struct {
	BasePageData
	User        *User
	Listings    []Listing
	Drafts      []*ListingDraft
	Form        UserUpdate
	FieldErrors map[string]string
}
