// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package verify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/turath/rdm-ops/internal/storage"
	"github.com/turath/rdm-ops/pkg/types"
)

// S3Verifier reads objects straight from the S3/MinIO backend, bypassing
// the platform API, so stored bytes can be compared against what the API
// reports.
type S3Verifier struct {
	client *s3.Client
}

// NewS3Verifier builds a verifier for the configured object store.
func NewS3Verifier(ctx context.Context, cfg types.StorageConfig) (*S3Verifier, error) {
	client, err := storage.NewS3Client(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &S3Verifier{client: client}, nil
}

// StatObject returns the stored object size, or -1 when the backend does
// not report one.
func (v *S3Verifier) StatObject(ctx context.Context, bucket, key string) (int64, error) {
	out, err := v.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return -1, fmt.Errorf("stat s3://%s/%s: %w", bucket, key, err)
	}
	if out.ContentLength == nil {
		return -1, nil
	}
	return *out.ContentLength, nil
}

// StreamObject downloads the object and digests it.
func (v *S3Verifier) StreamObject(ctx context.Context, bucket, key string) (types.Digested, error) {
	out, err := v.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return types.Digested{}, fmt.Errorf("get s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	d, err := Digest(out.Body)
	if err != nil {
		return types.Digested{}, fmt.Errorf("digesting s3://%s/%s: %w", bucket, key, err)
	}
	return d, nil
}
