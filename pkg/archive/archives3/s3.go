// Package archives3 archives raw messages in an S3 bucket.
package archives3

import (
	"bytes"
	"context"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/postwave/postwave/pkg/errx"
)

// S3Store writes each message as one object, prefix/key.
type S3Store struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3Store creates the store.
func NewS3Store(client *s3.Client, bucket, prefix string) *S3Store {
	return &S3Store{client: client, bucket: bucket, prefix: prefix}
}

// Store uploads one message blob.
func (s *S3Store) Store(ctx context.Context, key string, data []byte) error {
	objectKey := key
	if s.prefix != "" {
		objectKey = path.Join(s.prefix, key)
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("message/rfc822"),
	})
	if err != nil {
		return errx.Wrap(err, "failed to archive message to s3", errx.TypeExternal).
			WithDetail("key", objectKey)
	}
	return nil
}
