package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"

	"github.com/Ilaiyarasan2005/Read-Haven/internal/pkg/crypto"
)

// S3Config holds the settings for an S3-compatible blob backend.
type S3Config struct {
	// Endpoint overrides the AWS endpoint, e.g. for MinIO.
	Endpoint string

	// Region is the bucket region.
	Region string

	// Bucket is the bucket holding all blobs.
	Bucket string

	// AccessKeyID and SecretAccessKey are static credentials.
	AccessKeyID     string
	SecretAccessKey string

	// UsePathStyle forces path-style addressing, required by most
	// S3-compatible servers.
	UsePathStyle bool
}

// S3Backend stores blobs in an S3-compatible object store, keyed by the
// same sharded hash paths the filesystem backend uses.
type S3Backend struct {
	client *s3.Client
	bucket string
	logger zerolog.Logger
}

// NewS3Backend creates an S3 backend for the configured bucket.
func NewS3Backend(ctx context.Context, cfg S3Config, logger zerolog.Logger) (*S3Backend, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load S3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return &S3Backend{
		client: client,
		bucket: cfg.Bucket,
		logger: logger.With().Str("storage", "s3").Logger(),
	}, nil
}

// Store buffers the content to compute its hash, then uploads it under the
// hash-derived key. Uploads are size-capped by the handler layer, so
// buffering in memory is acceptable.
func (b *S3Backend) Store(ctx context.Context, reader io.Reader) (string, int64, error) {
	hr := crypto.NewHashReader(reader)
	var buf bytes.Buffer
	size, err := io.Copy(&buf, hr)
	if err != nil {
		return "", 0, fmt.Errorf("failed to read blob: %w", err)
	}

	contentHash := hr.SHA256()
	key := computePath("", contentHash)

	exists, err := b.Exists(ctx, contentHash)
	if err != nil {
		return "", 0, err
	}
	if exists {
		return contentHash, size, nil
	}

	_, err = b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(buf.Bytes()),
	})
	if err != nil {
		return "", 0, fmt.Errorf("failed to upload blob: %w", err)
	}

	b.logger.Debug().
		Str("content_hash", contentHash).
		Int64("size", size).
		Msg("blob stored")

	return contentHash, size, nil
}

// Retrieve streams the blob from the bucket.
func (b *S3Backend) Retrieve(ctx context.Context, contentHash string) (io.ReadCloser, error) {
	if !ValidateHash(contentHash) {
		return nil, ErrInvalidHash
	}

	out, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(computePath("", contentHash)),
	})
	if err != nil {
		if isS3NotFound(err) {
			return nil, ErrBlobNotFound
		}
		return nil, fmt.Errorf("failed to get blob: %w", err)
	}
	return out.Body, nil
}

// Delete removes the blob from the bucket.
func (b *S3Backend) Delete(ctx context.Context, contentHash string) error {
	if !ValidateHash(contentHash) {
		return ErrInvalidHash
	}

	exists, err := b.Exists(ctx, contentHash)
	if err != nil {
		return err
	}
	if !exists {
		return ErrBlobNotFound
	}

	_, err = b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(computePath("", contentHash)),
	})
	if err != nil {
		return fmt.Errorf("failed to delete blob: %w", err)
	}

	b.logger.Debug().Str("content_hash", contentHash).Msg("blob deleted")
	return nil
}

// Exists reports whether the blob is stored in the bucket.
func (b *S3Backend) Exists(ctx context.Context, contentHash string) (bool, error) {
	if !ValidateHash(contentHash) {
		return false, ErrInvalidHash
	}

	_, err := b.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(computePath("", contentHash)),
	})
	if err != nil {
		if isS3NotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to head blob: %w", err)
	}
	return true, nil
}

// GetSize returns the blob size in bytes.
func (b *S3Backend) GetSize(ctx context.Context, contentHash string) (int64, error) {
	if !ValidateHash(contentHash) {
		return 0, ErrInvalidHash
	}

	out, err := b.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(computePath("", contentHash)),
	})
	if err != nil {
		if isS3NotFound(err) {
			return 0, ErrBlobNotFound
		}
		return 0, fmt.Errorf("failed to head blob: %w", err)
	}
	return aws.ToInt64(out.ContentLength), nil
}

// isS3NotFound reports whether the error is a missing-key response.
func isS3NotFound(err error) bool {
	var notFound *types.NotFound
	var noSuchKey *types.NoSuchKey
	return errors.As(err, &notFound) || errors.As(err, &noSuchKey)
}
