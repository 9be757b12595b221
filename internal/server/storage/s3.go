// Package storage hands out presigned object-storage URLs for post cover
// images. Clients upload and download the bytes directly; the server only
// signs.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	sc "github.com/dmitrijs2005/gophblog/internal/server/config"
	"github.com/google/uuid"
)

// DefaultPresignExpiry is how long a presigned URL stays usable.
const DefaultPresignExpiry = 15 * time.Minute

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// S3Store presigns PUT and GET requests against one bucket of an
// S3-compatible service (AWS or MinIO).
type S3Store struct {
	presign *s3.PresignClient
	bucket  string
	expiry  time.Duration
}

// NewS3Store builds the presign client from static credentials in cfg. A
// non-empty S3BaseEndpoint switches to path-style addressing, which MinIO
// requires.
func NewS3Store(ctx context.Context, cfg *sc.Config) (*S3Store, error) {
	if cfg.S3Bucket == "" {
		return nil, errors.New("storage: bucket is not configured")
	}

	awsCfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(cfg.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{
		presign: s3.NewPresignClient(client),
		bucket:  cfg.S3Bucket,
		expiry:  DefaultPresignExpiry,
	}, nil
}

// NewObjectKey returns a fresh key for a cover image of postID. Keys are
// never reused so a stale GET URL cannot serve a replaced image.
func NewObjectKey(postID string) string {
	d := time.Now().UTC()
	return fmt.Sprintf("posts/%s/%d/%02d/%s", postID, d.Year(), d.Month(), uuid.New())
}

// PresignPut returns a URL the client can PUT the object body to.
func (s *S3Store) PresignPut(ctx context.Context, key string) (string, error) {
	req, err := presignPutObject(s.presign, ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.expiry))
	if err != nil {
		return "", fmt.Errorf("presign put: %w", err)
	}
	return req.URL, nil
}

// PresignGet returns a URL the object can be downloaded from.
func (s *S3Store) PresignGet(ctx context.Context, key string) (string, error) {
	req, err := presignGetObject(s.presign, ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.expiry))
	if err != nil {
		return "", fmt.Errorf("presign get: %w", err)
	}
	return req.URL, nil
}
