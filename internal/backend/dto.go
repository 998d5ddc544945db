package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"ilanver/pkg/types"
)

// flexibleID accepts IDs sent either as JSON strings or numbers.
type flexibleID string

func (f *flexibleID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexibleID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id is neither string nor number: %w", err)
	}
	*f = flexibleID(n.String())
	return nil
}

type createListingResponse struct {
	ID flexibleID `json:"id"`
}

type listingDTO struct {
	ID          flexibleID         `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Price       int64              `json:"price"`
	Currency    string             `json:"currency"`
	Category    string             `json:"category"`
	Subtype     string             `json:"subtype"`
	ListingType string             `json:"listingType"`
	Location    listingLocationDTO `json:"location"`
	Photos      []listingPhotoDTO  `json:"photos"`
	Details     map[string]any     `json:"details"`
	Owner       listingOwnerDTO    `json:"owner"`
	CreatedAt   time.Time          `json:"createdAt"`
}

type listingLocationDTO struct {
	City         string   `json:"city"`
	District     string   `json:"district"`
	Neighborhood string   `json:"neighborhood"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
}

type listingPhotoDTO struct {
	URL    string `json:"url"`
	IsMain bool   `json:"isMain"`
}

type listingOwnerDTO struct {
	ID   flexibleID `json:"id"`
	Name string     `json:"name"`
}

func (d listingDTO) toDomain() types.Listing {
	currency := d.Currency
	if currency == "" {
		currency = "TRY"
	}

	category, _ := types.ParseCategory(d.Category)

	photos := make([]types.ListingPhoto, 0, len(d.Photos))
	for _, p := range d.Photos {
		photos = append(photos, types.ListingPhoto{URL: p.URL, IsMain: p.IsMain})
	}

	return types.Listing{
		ID:           string(d.ID),
		Title:        d.Title,
		Description:  d.Description,
		Price:        d.Price,
		Currency:     currency,
		Category:     category,
		Subtype:      d.Subtype,
		ListingType:  types.ListingIntent(d.ListingType),
		City:         d.Location.City,
		District:     d.Location.District,
		Neighborhood: d.Location.Neighborhood,
		Latitude:     d.Location.Latitude,
		Longitude:    d.Location.Longitude,
		Photos:       photos,
		Details:      d.Details,
		OwnerID:      string(d.Owner.ID),
		OwnerName:    d.Owner.Name,
		CreatedAt:    d.CreatedAt,
	}
}

func listingsToDomain(in []listingDTO) []types.Listing {
	out := make([]types.Listing, 0, len(in))
	for _, d := range in {
		out = append(out, d.toDomain())
	}
	return out
}

type locationDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type conversationDTO struct {
	ID           flexibleID `json:"id"`
	ListingID    flexibleID `json:"listingId"`
	ListingTitle string     `json:"listingTitle"`
	OtherParty   string     `json:"otherParty"`
	LastMessage  string     `json:"lastMessage"`
	UnreadCount  int        `json:"unreadCount"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (d conversationDTO) toDomain() types.Conversation {
	return types.Conversation{
		ID:           string(d.ID),
		ListingID:    string(d.ListingID),
		ListingTitle: d.ListingTitle,
		OtherParty:   d.OtherParty,
		LastMessage:  d.LastMessage,
		UnreadCount:  d.UnreadCount,
		UpdatedAt:    d.UpdatedAt,
	}
}

type messageDTO struct {
	ID             flexibleID `json:"id"`
	ConversationID flexibleID `json:"conversationId"`
	SenderID       flexibleID `json:"senderId"`
	SenderName     string     `json:"senderName"`
	Body           string     `json:"body"`
	SentAt         time.Time  `json:"sentAt"`
}

func (d messageDTO) toDomain() types.Message {
	return types.Message{
		ID:             string(d.ID),
		ConversationID: string(d.ConversationID),
		SenderID:       string(d.SenderID),
		SenderName:     d.SenderName,
		Body:           d.Body,
		SentAt:         d.SentAt,
	}
}

type userDTO struct {
	ID        flexibleID `json:"id"`
	Email     string     `json:"email"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Phone     string     `json:"phone"`
	AvatarURL string     `json:"avatarUrl"`
	CreatedAt time.Time  `json:"createdAt"`
}

func (d userDTO) toDomain() *types.User {
	return &types.User{
		ID:        string(d.ID),
		Email:     d.Email,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Phone:     d.Phone,
		AvatarURL: d.AvatarURL,
		CreatedAt: d.CreatedAt,
	}
}
