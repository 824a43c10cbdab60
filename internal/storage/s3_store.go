package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// s3Store implements ImageStore on an S3 bucket. Assets live under the
// same namespace prefix used by the disk store.
type s3Store struct {
	client *s3.Client
	bucket string
	logger zerolog.Logger
}

// NewS3Store creates an S3-backed ImageStore.
func NewS3Store(ctx context.Context, bucket, region string, logger zerolog.Logger) (ImageStore, error) {
	logger = logger.With().Str("store", "s3-image").Logger()

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(cfg)

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Msg("S3 image store initialised")

	return &s3Store{
		client: client,
		bucket: bucket,
		logger: logger,
	}, nil
}

// Validate checks the upload against the store's acceptance policy.
func (s *s3Store) Validate(upload *Upload) error {
	return ValidateUpload(upload)
}

// Save uploads the payload under a generated unique key and returns the
// asset reference (the key without the namespace prefix).
func (s *s3Store) Save(ctx context.Context, upload *Upload) (string, error) {
	if err := s.Validate(upload); err != nil {
		return "", err
	}

	name := uuid.New().String() + filepath.Ext(upload.Filename)
	key := Namespace + "/" + name

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          upload.Content,
		ContentLength: aws.Int64(upload.Size),
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("bucket", s.bucket).
			Str("key", key).
			Msg("failed to put object to S3")
		return "", fmt.Errorf("failed to put object to S3 (bucket=%s, key=%s): %w", s.bucket, key, err)
	}

	s.logger.Debug().
		Str("asset", name).
		Int64("size", upload.Size).
		Msg("asset saved to S3")

	return name, nil
}

// Delete removes the named asset. S3 deletes are idempotent, so a missing
// object is detected with a head request first to keep the contract that a
// missing asset surfaces as an error wrapping fs.ErrNotExist.
func (s *s3Store) Delete(ctx context.Context, ref string) error {
	if ref == "" || ref != filepath.Base(ref) {
		return fmt.Errorf("invalid asset reference %q", ref)
	}

	key := Namespace + "/" + ref

	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return fmt.Errorf("asset %s: %w", ref, fs.ErrNotExist)
		}
		s.logger.Error().
			Err(err).
			Str("bucket", s.bucket).
			Str("key", key).
			Msg("failed to head object in S3")
		return fmt.Errorf("failed to head object in S3 (bucket=%s, key=%s): %w", s.bucket, key, err)
	}

	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		s.logger.Error().
			Err(err).
			Str("bucket", s.bucket).
			Str("key", key).
			Msg("failed to delete object from S3")
		return fmt.Errorf("failed to delete object from S3 (bucket=%s, key=%s): %w", s.bucket, key, err)
	}

	s.logger.Debug().Str("asset", ref).Msg("asset deleted from S3")
	return nil
}
