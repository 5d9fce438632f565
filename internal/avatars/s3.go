// Package avatars stores generated avatars and original photos in an
// S3-compatible bucket so the local store only has to hold a short URL.
// The quota-recovery path in internal/storage strips embedded photo
// payloads; uploading them here first makes that loss recoverable.
package avatars

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type Config struct {
	Bucket       string
	Region       string
	BaseEndpoint string
	RootUser     string
	RootPassword string
}

type Store struct {
	client *s3.Client
	bucket string
	base   string
}

// New builds a Store against an S3-compatible endpoint using static
// credentials, matching how the rest of the deployment configures object
// storage.
func New(ctx context.Context, cfg Config) (*Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.RootUser, cfg.RootPassword, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("s3 config error: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
		o.UsePathStyle = true
	})

	return &Store{
		client: client,
		bucket: cfg.Bucket,
		base:   strings.TrimRight(cfg.BaseEndpoint, "/"),
	}, nil
}

// Put uploads data under key and returns a stable URL for it. Repeated
// uploads to the same key overwrite.
func (s *Store) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("avatar upload error: %w", err)
	}
	return fmt.Sprintf("%s/%s/%s", s.base, s.bucket, key), nil
}
