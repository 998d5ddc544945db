package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockS3 struct{ mock.Mock }

func (m *MockS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func (m *MockS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.GetObjectOutput), args.Error(1)
}

func (m *MockS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.DeleteObjectOutput), args.Error(1)
}

type MockPresigner struct{ mock.Mock }

func (m *MockPresigner) PresignGetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	opts := s3.PresignOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	args := m.Called(ctx, in, opts.Expires)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*v4.PresignedHTTPRequest), args.Error(1)
}

func keyIs(key string) func(*string) bool {
	return func(k *string) bool { return aws.ToString(k) == key }
}

func TestPhotoKey(t *testing.T) {
	assert.Equal(t, "drafts/d1/p1.jpg", PhotoKey("d1", "p1", "Ev Fotoğrafı.JPG"))
	assert.Equal(t, "drafts/d1/p2", PhotoKey("d1", "p2", "noext"))
}

func TestPut(t *testing.T) {
	ctx := context.Background()
	client := new(MockS3)
	client.On("PutObject", ctx, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return keyIs("drafts/d1/p1.png")(in.Key) &&
			aws.ToString(in.Bucket) == "photos" &&
			aws.ToString(in.ContentType) == "image/png" &&
			aws.ToInt64(in.ContentLength) == 3
	})).Return(&s3.PutObjectOutput{}, nil)

	store := NewPhotoStorage(client, new(MockPresigner), "photos", time.Minute)
	require.NoError(t, store.Put(ctx, "drafts/d1/p1.png", "image/png", 3, strings.NewReader("abc")))
	client.AssertExpectations(t)
}

func TestOpenAndDelete(t *testing.T) {
	ctx := context.Background()
	client := new(MockS3)
	client.On("GetObject", ctx, mock.Anything).Return(&s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader("data"))}, nil)
	client.On("DeleteObject", ctx, mock.Anything).Return(nil, errors.New("denied"))

	store := NewPhotoStorage(client, new(MockPresigner), "photos", time.Minute)

	body, err := store.Open(ctx, "k")
	require.NoError(t, err)
	b, _ := io.ReadAll(body)
	assert.Equal(t, "data", string(b))

	assert.Error(t, store.Delete(ctx, "k"))
	assert.NoError(t, store.Delete(ctx, " "))
	client.AssertNumberOfCalls(t, "DeleteObject", 1)
}

func TestPreviewURL(t *testing.T) {
	ctx := context.Background()
	presigner := new(MockPresigner)
	presigner.On("PresignGetObject", ctx, mock.Anything, 15*time.Minute).
		Return(&v4.PresignedHTTPRequest{URL: "https://s3/signed"}, nil)

	store := NewPhotoStorage(new(MockS3), presigner, "photos", 15*time.Minute)

	u, err := store.PreviewURL(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "https://s3/signed", u)
}
