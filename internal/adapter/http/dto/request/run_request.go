package request

import (
	"errors"
	"strings"

	"orders_etl/internal/domain/entities"
)

var ErrInvalidRunInput = errors.New("either bucket and key or an s3:// uri is required")

// RunRequest starts one flatten run. The input is given either as bucket and
// key, or as a single s3://bucket/key URI.
type RunRequest struct {
	Bucket string `json:"bucket" example:"raw-orders"`
	Key    string `json:"key" example:"orders/2025-03-01.json"`
	URI    string `json:"uri" example:"s3://raw-orders/orders/2025-03-01.json"`
}

func (r RunRequest) ToInvocation(requestID string) (entities.Invocation, error) {
	bucket, key := strings.TrimSpace(r.Bucket), r.Key
	if uri := strings.TrimSpace(r.URI); uri != "" && bucket == "" && strings.TrimSpace(key) == "" {
		bucket, key = splitS3URI(uri)
	}
	if bucket == "" || strings.TrimSpace(key) == "" {
		return entities.Invocation{}, ErrInvalidRunInput
	}
	return entities.Invocation{Bucket: bucket, Key: key, RequestID: requestID}, nil
}

func splitS3URI(uri string) (string, string) {
	rest, ok := strings.CutPrefix(uri, "s3://")
	if !ok {
		return "", ""
	}
	bucket, key, _ := strings.Cut(rest, "/")
	return bucket, key
}
