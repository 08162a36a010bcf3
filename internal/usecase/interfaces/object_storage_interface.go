package interfaces

import (
	"context"
	"errors"
)

// ErrObjectNotFound is returned by Get when the bucket or key does not exist.
var ErrObjectNotFound = errors.New("object not found")

// IObjectStorage abstracts the object store holding both the raw order
// documents and the processed Parquet datasets (S3 in production).
//
//go:generate mockgen -source=object_storage_interface.go -destination=mocks/mock_object_storage_interface.go -package=mock_interfaces

type IObjectStorage interface {
	Get(ctx context.Context, bucket, key string) ([]byte, error)
	Put(ctx context.Context, bucket, key string, data []byte, contentType string) error
}
