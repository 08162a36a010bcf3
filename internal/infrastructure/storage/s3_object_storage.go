// Package storage implements object storage on top of the AWS S3 SDK v2.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"

	"orders_etl/internal/usecase/interfaces"
)

var _ interfaces.IObjectStorage = (*S3ObjectStorage)(nil)

// S3ObjectStorage reads and writes whole objects. It works with AWS S3 and
// with S3-compatible stores (MinIO, LocalStack) through WithEndpoint.
type S3ObjectStorage struct {
	client *s3.Client
	logger *zap.Logger
}

type s3Settings struct {
	endpoint  string
	pathStyle bool
	logger    *zap.Logger
}

type S3ObjectStorageOption func(*s3Settings)

func WithEndpoint(endpoint string) S3ObjectStorageOption {
	return func(s *s3Settings) {
		s.endpoint = endpoint
	}
}

// WithPathStyle addresses buckets as http://host/bucket/key, which MinIO and
// LocalStack require.
func WithPathStyle(enabled bool) S3ObjectStorageOption {
	return func(s *s3Settings) {
		s.pathStyle = enabled
	}
}

func WithLogger(logger *zap.Logger) S3ObjectStorageOption {
	return func(s *s3Settings) {
		s.logger = logger
	}
}

func NewS3ObjectStorage(awsCfg aws.Config, opts ...S3ObjectStorageOption) *S3ObjectStorage {
	settings := &s3Settings{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(settings)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = settings.pathStyle
		if settings.endpoint != "" {
			o.BaseEndpoint = aws.String(settings.endpoint)
			// S3-compatible stores do not all accept the default CRC32 trailers.
			o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
			o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
		}
	})

	return &S3ObjectStorage{client: client, logger: settings.logger}
}

func (s *S3ObjectStorage) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: s3://%s/%s", interfaces.ErrObjectNotFound, bucket, key)
		}
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}
	s.logger.Debug("object read",
		zap.String("bucket", bucket),
		zap.String("key", key),
		zap.Int("bytes", len(data)),
	)
	return data, nil
}

func (s *S3ObjectStorage) Put(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("failed to put object: %w", err)
	}
	s.logger.Debug("object written",
		zap.String("bucket", bucket),
		zap.String("key", key),
		zap.Int("bytes", len(data)),
	)
	return nil
}

// isNotFound reports a missing key or bucket. GetObject does not model
// NoSuchBucket, so that one only surfaces as a generic API error code.
func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NoSuchBucket":
			return true
		}
	}
	return false
}
