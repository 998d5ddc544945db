// Package storage stages wizard photos in S3 until the listing is submitted.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type Presigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

type PhotoStorage struct {
	client     S3API
	presigner  Presigner
	bucket     string
	previewTTL time.Duration
}

func NewPhotoStorage(client S3API, presigner Presigner, bucket string, previewTTL time.Duration) *PhotoStorage {
	return &PhotoStorage{
		client:     client,
		presigner:  presigner,
		bucket:     bucket,
		previewTTL: previewTTL,
	}
}

// PhotoKey is the staging key of a draft photo. Only the extension of the
// uploaded file name is kept.
func PhotoKey(draftID, photoID, fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	return fmt.Sprintf("drafts/%s/%s%s", draftID, photoID, ext)
}

func (p *PhotoStorage) Put(ctx context.Context, key, contentType string, size int64, body io.Reader) error {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}

	if _, err := p.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("failed to stage photo %s: %w", key, err)
	}
	return nil
}

func (p *PhotoStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := p.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read staged photo %s: %w", key, err)
	}
	return out.Body, nil
}

func (p *PhotoStorage) Delete(ctx context.Context, key string) error {
	if strings.TrimSpace(key) == "" {
		return nil
	}

	_, err := p.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete staged photo %s: %w", key, err)
	}
	return nil
}

// PreviewURL is a presigned GET URL the wizard shows as the thumbnail.
func (p *PhotoStorage) PreviewURL(ctx context.Context, key string) (string, error) {
	req, err := p.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(p.previewTTL))
	if err != nil {
		return "", fmt.Errorf("failed to presign photo %s: %w", key, err)
	}
	return req.URL, nil
}
