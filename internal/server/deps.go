package server

import (
	"context"
	"io"
	"net/url"

	"ilanver/internal/listing"
	"ilanver/pkg/types"

	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
)

// Backend is the part of the listing REST API the pages use.
type Backend interface {
	listing.ListingAPI

	SearchListings(ctx context.Context, endpoint string, params url.Values) []types.Listing
	Listing(ctx context.Context, id string) (*types.Listing, error)

	Provinces(ctx context.Context) []types.Location
	Districts(ctx context.Context, provinceID string) []types.Location
	Subdistricts(ctx context.Context, districtID string) []types.Location
	Neighborhoods(ctx context.Context, parentID string) []types.Location

	Conversations(ctx context.Context) ([]types.Conversation, error)
	Messages(ctx context.Context, conversationID string) ([]types.Message, error)
	SendMessage(ctx context.Context, conversationID string, msg types.NewMessage) (*types.Message, error)

	Me(ctx context.Context) (*types.User, error)
	UpdateMe(ctx context.Context, update types.UserUpdate) (*types.User, error)
	MyListings(ctx context.Context) ([]types.Listing, error)
}

// PhotoStager holds wizard photos until the listing is submitted.
type PhotoStager interface {
	listing.PhotoSource

	Put(ctx context.Context, key, contentType string, size int64, body io.Reader) error
	PreviewURL(ctx context.Context, key string) (string, error)
}

type CognitoAPI interface {
	InitiateAuth(ctx context.Context, params *cognitoidentityprovider.InitiateAuthInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.InitiateAuthOutput, error)
}

// Identity is the user an access token was issued to.
type Identity struct {
	UserID string
	Email  string
}

type TokenVerifier interface {
	Verify(ctx context.Context, accessToken string) (*Identity, error)
}
