package listing

import (
	"bytes"
	"io"
	"testing"

	"ilanver/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestInspectPhoto(t *testing.T) {
	body := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{1}, 5000)...)

	photo, err := InspectPhoto("kapak.png", int64(len(body)), bytes.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, "image/png", photo.ContentType)

	all, err := io.ReadAll(photo.Body)
	require.NoError(t, err)
	assert.Equal(t, body, all)
}

func TestInspectPhoto_ShortFile(t *testing.T) {
	photo, err := InspectPhoto("notes.txt", 5, bytes.NewReader([]byte("hello")))
	require.NoError(t, err)
	assert.ErrorIs(t, CheckSelection(photo, 1024), types.ErrPhotoType)
}

func TestCheckSelection(t *testing.T) {
	assert.NoError(t, CheckSelection(SelectedPhoto{ContentType: "image/gif", SizeBytes: 9 << 20}, 10<<20))
	assert.ErrorIs(t, CheckSelection(SelectedPhoto{ContentType: "image/jpeg", SizeBytes: 11 << 20}, 10<<20), types.ErrPhotoTooLarge)
	assert.ErrorIs(t, CheckSelection(SelectedPhoto{ContentType: "application/pdf", SizeBytes: 10}, 10<<20), types.ErrPhotoType)
}

func TestCheckSubmission(t *testing.T) {
	assert.NoError(t, CheckSubmission(&types.Photo{ContentType: "image/webp", SizeBytes: 4 << 20}, 5<<20))
	assert.ErrorIs(t, CheckSubmission(&types.Photo{ContentType: "image/gif", SizeBytes: 10}, 5<<20), types.ErrPhotoType)
	assert.ErrorIs(t, CheckSubmission(&types.Photo{ContentType: "image/jpeg", SizeBytes: 6 << 20}, 5<<20), types.ErrPhotoTooLarge)
}

func TestPhotoMessage(t *testing.T) {
	assert.Equal(t, "Fotoğraf boyutu 5 MB sınırını aşıyor.", PhotoMessage(types.ErrPhotoTooLarge, 5<<20))
	assert.Equal(t, MsgPhotosRequired, PhotoMessage(types.ErrPhotosRequired, 0))
}

func TestValidateStruct_UsesFormNames(t *testing.T) {
	errs := ValidateStruct(types.UserUpdate{FirstName: "Ayşe", Phone: "05551234567"})
	assert.Contains(t, errs, "last_name")
	assert.Contains(t, errs, "phone")
	assert.NotContains(t, errs, "first_name")

	assert.Nil(t, ValidateStruct(types.UserUpdate{FirstName: "Ayşe", LastName: "Yılmaz", Phone: "+905551234567"}))
}
