package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"ilanver/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return New(logger, srv.URL+"/", 5*time.Second)
}

func TestCreateListing(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/listings", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "req-1", r.Header.Get("X-Request-ID"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Daire", body["title"])
		assert.Contains(t, body, "housingDetails")

		_, _ = w.Write([]byte(`{"id": 42}`))
	})

	ctx := WithRequestID(WithToken(context.Background(), "tok"), "req-1")
	id, err := client.CreateListing(ctx, map[string]any{
		"title":          "Daire",
		"housingDetails": map[string]any{"subtype": "DAIRE"},
	})

	require.NoError(t, err)
	assert.Equal(t, "42", id)
}

func TestCreateListing_ErrorStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "validation failed", http.StatusUnprocessableEntity)
	})

	_, err := client.CreateListing(context.Background(), map[string]any{})
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusUnprocessableEntity))
	assert.Contains(t, err.Error(), "validation failed")
}

func TestUploadPhotos(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/listings/L-9/photos", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "0", r.FormValue("mainIndex"))
		files := r.MultipartForm.File["photos"]
		require.Len(t, files, 2)
		assert.Equal(t, "kapak.jpg", files[0].Filename)
		assert.Equal(t, "image/jpeg", files[0].Header.Get("Content-Type"))
		assert.Equal(t, "salon.png", files[1].Filename)

		f, err := files[1].Open()
		require.NoError(t, err)
		defer f.Close()
		b, _ := io.ReadAll(f)
		assert.Equal(t, "png-bytes", string(b))

		w.WriteHeader(http.StatusCreated)
	})

	err := client.UploadPhotos(context.Background(), "L-9", []types.PhotoUpload{
		{FileName: "kapak.jpg", ContentType: "image/jpeg", Body: strings.NewReader("jpg-bytes")},
		{FileName: "salon.png", ContentType: "image/png", Body: strings.NewReader("png-bytes")},
	})
	assert.NoError(t, err)
}

func TestSearchListings(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/listings/land", r.URL.Path)
		assert.Equal(t, "500", r.URL.Query().Get("minNetArea"))

		_, _ = w.Write([]byte(`[{"id":"a1","title":"Tarla","price":100000,"category":"ARSA",
			"location":{"city":"Muğla","district":"Bodrum"},
			"photos":[{"url":"http://img/1.jpg","isMain":true}],
			"owner":{"id":7,"name":"Ali"}}]`))
	})

	results := client.SearchListings(context.Background(), "land", url.Values{"minNetArea": {"500"}})
	require.Len(t, results, 1)
	assert.Equal(t, "a1", results[0].ID)
	assert.Equal(t, types.CategoryLand, results[0].Category)
	assert.Equal(t, "TRY", results[0].Currency)
	assert.Equal(t, "Bodrum", results[0].District)
	assert.Equal(t, "7", results[0].OwnerID)
	assert.Equal(t, "http://img/1.jpg", results[0].CoverURL())
}

func TestSearchListings_FailureIsEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	results := client.SearchListings(context.Background(), "house", nil)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestListing_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := client.Listing(context.Background(), "missing")
	assert.ErrorIs(t, err, types.ErrListingNotFound)
}

func TestLocations(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/location/provinces":
			_, _ = w.Write([]byte(`[{"id":34,"name":"İstanbul"},{"id":6,"name":"Ankara"}]`))
		case "/api/location/34/districts":
			_, _ = w.Write([]byte(`[{"id":1,"name":"Kadıköy"}]`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	})

	ctx := context.Background()
	assert.Equal(t, []types.Location{{ID: 34, Name: "İstanbul"}, {ID: 6, Name: "Ankara"}}, client.Provinces(ctx))
	assert.Equal(t, []types.Location{{ID: 1, Name: "Kadıköy"}}, client.Districts(ctx, "34"))
	assert.Equal(t, []types.Location{}, client.Neighborhoods(ctx, "1"))
	assert.Equal(t, []types.Location{}, client.Subdistricts(ctx, "1"))
}

func TestMessages(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/messages":
			_, _ = w.Write([]byte(`[{"id":"c1","listingTitle":"Villa","unreadCount":2}]`))
		case r.Method == http.MethodGet && r.URL.Path == "/api/messages/c1":
			_, _ = w.Write([]byte(`[{"id":1,"conversationId":"c1","body":"Merhaba"}]`))
		case r.Method == http.MethodPost && r.URL.Path == "/api/messages/c1":
			var in types.NewMessage
			require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			_, _ = w.Write([]byte(`{"id":2,"conversationId":"c1","body":"` + in.Body + `"}`))
		default:
			http.NotFound(w, r)
		}
	})

	ctx := context.Background()

	convs, err := client.Conversations(ctx)
	require.NoError(t, err)
	require.Len(t, convs, 1)
	assert.Equal(t, 2, convs[0].UnreadCount)

	msgs, err := client.Messages(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "1", msgs[0].ID)

	sent, err := client.SendMessage(ctx, "c1", types.NewMessage{Body: "Hala satılık mı?"})
	require.NoError(t, err)
	assert.Equal(t, "Hala satılık mı?", sent.Body)

	_, err = client.Messages(ctx, "gone")
	assert.ErrorIs(t, err, types.ErrConversationGone)
}

func TestUsers(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/users/me":
			_, _ = w.Write([]byte(`{"id":"u1","email":"a@b.com","firstName":"Ayşe"}`))
		case r.Method == http.MethodPut && r.URL.Path == "/api/users/me":
			var in types.UserUpdate
			require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			_, _ = w.Write([]byte(`{"id":"u1","firstName":"` + in.FirstName + `","lastName":"` + in.LastName + `"}`))
		case r.URL.Path == "/api/users/me/listings":
			_, _ = w.Write([]byte(`[{"id":"x"}]`))
		}
	})

	ctx := context.Background()

	me, err := client.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ayşe", me.DisplayName())

	updated, err := client.UpdateMe(ctx, types.UserUpdate{FirstName: "Ayşe", LastName: "Kaya"})
	require.NoError(t, err)
	assert.Equal(t, "Ayşe Kaya", updated.DisplayName())

	mine, err := client.MyListings(ctx)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}
