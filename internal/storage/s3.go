// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package storage sets up and checks the S3/MinIO backend behind the
// platform's default files location.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/turath/rdm-ops/pkg/types"
)

// NewS3Client builds an S3 client for the configured object store.
// Static credentials take precedence; otherwise the default AWS
// credential chain applies. MinIO needs a custom endpoint and path-style
// addressing.
func NewS3Client(ctx context.Context, cfg types.StorageConfig) (*s3.Client, error) {
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.ForcePathStyle
	}), nil
}

// EnsureBucket checks that the bucket exists and creates it when absent.
// Returns true when the bucket was created.
func EnsureBucket(ctx context.Context, client *s3.Client, bucket string) (bool, error) {
	if bucket == "" {
		return false, fmt.Errorf("bucket name is required")
	}

	_, err := client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)})
	if err == nil {
		return false, nil
	}

	var notFound *s3types.NotFound
	if !errors.As(err, &notFound) {
		return false, fmt.Errorf("checking bucket %s: %w", bucket, err)
	}

	if _, err := client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(bucket)}); err != nil {
		return false, fmt.Errorf("creating bucket %s: %w", bucket, err)
	}
	return true, nil
}
