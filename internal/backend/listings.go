package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"ilanver/pkg/types"

	"github.com/sirupsen/logrus"
)

// CreateListing posts the serialized draft and returns the new listing's ID.
func (c *Client) CreateListing(ctx context.Context, body map[string]any) (string, error) {
	var out createListingResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/listings", nil, body, &out); err != nil {
		return "", err
	}

	if out.ID == "" {
		return "", fmt.Errorf("create listing response has no id")
	}

	c.entry(ctx, "CreateListing").WithField("listing_id", out.ID).Info("listing created")
	return string(out.ID), nil
}

// UploadPhotos sends every photo as a "photos" part in order, with the first
// one marked as the main photo.
func (c *Client) UploadPhotos(ctx context.Context, listingID string, photos []types.PhotoUpload) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for _, p := range photos {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="photos"; filename="%s"`, escapeQuotes(p.FileName)))
		if p.ContentType != "" {
			header.Set("Content-Type", p.ContentType)
		}

		part, err := mw.CreatePart(header)
		if err != nil {
			return fmt.Errorf("failed to create photo part: %w", err)
		}
		if _, err := io.Copy(part, p.Body); err != nil {
			return fmt.Errorf("failed to write photo %s: %w", p.FileName, err)
		}
	}

	if err := mw.WriteField("mainIndex", "0"); err != nil {
		return fmt.Errorf("failed to write mainIndex: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("failed to close multipart body: %w", err)
	}

	path := "/api/listings/" + url.PathEscape(listingID) + "/photos"
	resp, err := c.doRequest(ctx, http.MethodPost, path, nil, mw.FormDataContentType(), &buf)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	c.entry(ctx, "UploadPhotos").WithFields(logrus.Fields{
		"listing_id":  listingID,
		"photo_count": len(photos),
	}).Info("listing photos uploaded")
	return nil
}

// SearchListings queries one backend collection. Failures are logged and
// yield an empty result.
func (c *Client) SearchListings(ctx context.Context, endpoint string, params url.Values) []types.Listing {
	logger := c.entry(ctx, "SearchListings").WithField("endpoint", endpoint)

	var out []listingDTO
	if err := c.doJSON(ctx, http.MethodGet, "/api/listings/"+url.PathEscape(endpoint), params, nil, &out); err != nil {
		logger.WithError(err).Warn("listing search failed")
		return []types.Listing{}
	}

	return listingsToDomain(out)
}

func (c *Client) Listing(ctx context.Context, id string) (*types.Listing, error) {
	var out listingDTO
	err := c.doJSON(ctx, http.MethodGet, "/api/listings/"+url.PathEscape(id), nil, nil, &out)
	if IsStatus(err, http.StatusNotFound) {
		return nil, types.ErrListingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listing %s: %w", id, err)
	}

	listing := out.toDomain()
	return &listing, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
