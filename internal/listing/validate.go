package listing

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"ilanver/pkg/types"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
)

// SniffLen is how many leading bytes of a file are needed to detect its type.
const SniffLen = 3072

var submitTypes = []string{"image/jpeg", "image/png", "image/webp"}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

var validationMessages = map[string]string{
	"required":  "Bu alan zorunludur.",
	"min":       "Değer çok kısa.",
	"max":       "Değer çok uzun.",
	"gt":        "Sıfırdan büyük bir değer girin.",
	"latitude":  "Geçerli bir enlem girin.",
	"longitude": "Geçerli bir boylam girin.",
	"e164":      "Telefonu +905xxxxxxxxx biçiminde girin.",
}

// ValidateStruct runs the validate tags of v and returns messages keyed by
// the form name of each failing field.
func ValidateStruct(v any) FieldErrors {
	return structErrors(v)
}

func structErrors(v any) FieldErrors {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"": err.Error()}
	}

	out := FieldErrors{}
	for _, fe := range verrs {
		msg, ok := validationMessages[fe.Tag()]
		if !ok {
			msg = "Geçersiz değer."
		}
		out[fe.Field()] = msg
	}
	return out
}

// SelectedPhoto is a file picked in the photos step, read far enough to
// detect its type.
type SelectedPhoto struct {
	FileName    string
	ContentType string
	SizeBytes   int64
	Body        io.Reader
}

// InspectPhoto detects the type of a picked file from its leading bytes. The
// returned photo streams the whole file again.
func InspectPhoto(fileName string, size int64, r io.Reader) (SelectedPhoto, error) {
	head := make([]byte, SniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return SelectedPhoto{}, fmt.Errorf("failed to read photo: %w", err)
	}
	head = head[:n]

	return SelectedPhoto{
		FileName:    fileName,
		ContentType: mimetype.Detect(head).String(),
		SizeBytes:   size,
		Body:        io.MultiReader(bytes.NewReader(head), r),
	}, nil
}

// CheckSelection accepts any image up to maxBytes when a file is attached.
func CheckSelection(photo SelectedPhoto, maxBytes int64) error {
	if maxBytes > 0 && photo.SizeBytes > maxBytes {
		return types.ErrPhotoTooLarge
	}
	if !strings.HasPrefix(baseType(photo.ContentType), "image/") {
		return types.ErrPhotoType
	}
	return nil
}

// CheckSubmission is the stricter check applied when the listing is sent:
// JPEG, PNG or WebP up to maxBytes.
func CheckSubmission(photo *types.Photo, maxBytes int64) error {
	if maxBytes > 0 && photo.SizeBytes > maxBytes {
		return types.ErrPhotoTooLarge
	}
	ct := baseType(photo.ContentType)
	for _, allowed := range submitTypes {
		if ct == allowed {
			return nil
		}
	}
	return types.ErrPhotoType
}

// PhotoMessage is the user-facing text of a photo check failure.
func PhotoMessage(err error, maxBytes int64) string {
	switch {
	case errors.Is(err, types.ErrPhotoTooLarge):
		return fmt.Sprintf("Fotoğraf boyutu %d MB sınırını aşıyor.", maxBytes/(1024*1024))
	case errors.Is(err, types.ErrPhotoType):
		return "Yalnızca JPEG, PNG veya WebP fotoğraflar yüklenebilir."
	case errors.Is(err, types.ErrPhotoLimit):
		return "Daha fazla fotoğraf eklenemez."
	case errors.Is(err, types.ErrPhotosRequired):
		return MsgPhotosRequired
	}
	return "Fotoğraf eklenemedi."
}

func baseType(ct string) string {
	base, _, _ := strings.Cut(ct, ";")
	return strings.ToLower(strings.TrimSpace(base))
}
