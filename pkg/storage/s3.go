package storage

import (
	"context"
	"log"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// ObjectStorage removes backing media objects. Uploads happen directly from
// the client to the store; the server only ever deletes by key.
type ObjectStorage interface {
	DeleteObject(ctx context.Context, key string) error
}

// S3Storage implements ObjectStorage against an S3 bucket
type S3Storage struct {
	client *s3.S3
	bucket string
}

// NewS3Storage creates an S3-backed object storage client
func NewS3Storage(region, bucket string) (*S3Storage, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, err
	}
	return &S3Storage{client: s3.New(sess), bucket: bucket}, nil
}

// DeleteObject deletes the object stored under key
func (s *S3Storage) DeleteObject(ctx context.Context, key string) error {
	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

// NoopStorage is used when no bucket is configured; deletions are logged and
// left to external cleanup.
type NoopStorage struct{}

func (NoopStorage) DeleteObject(_ context.Context, key string) error {
	log.Printf("No object storage configured, skipping deletion of %s", key)
	return nil
}
