// Package lambda adapts S3 event notifications to the flatten use case.
package lambda

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"orders_etl/internal/domain/entities"
	"orders_etl/internal/usecase"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"go.uber.org/zap"
)

var ErrInvalidEvent = errors.New("event has no S3 records")

type Handler struct {
	usecase usecase.IFlattenOrdersUseCase
	logger  *zap.Logger
}

func NewHandler(uc usecase.IFlattenOrdersUseCase, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{usecase: uc, logger: logger}
}

// Handle processes the first record of the notification. S3 sends keys
// URL-encoded with spaces as "+", so the key is decoded before reading.
func (h *Handler) Handle(ctx context.Context, event events.S3Event) (entities.FlattenResult, error) {
	if len(event.Records) == 0 {
		return entities.FlattenResult{}, ErrInvalidEvent
	}
	if len(event.Records) > 1 {
		h.logger.Warn("only the first record is processed", zap.Int("records", len(event.Records)))
	}

	rec := event.Records[0].S3
	inv := entities.Invocation{
		Bucket:    rec.Bucket.Name,
		Key:       decodeKey(rec.Object.Key),
		RequestID: requestID(ctx),
	}
	return h.usecase.Run(ctx, inv)
}

// decodeKey undoes the notification's form encoding. A malformed escape is
// kept literally instead of failing the whole event.
func decodeKey(raw string) string {
	if key, err := url.QueryUnescape(raw); err == nil {
		return key
	}
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		switch c := raw[i]; {
		case c == '+':
			b.WriteByte(' ')
		case c == '%' && i+2 < len(raw) && isHex(raw[i+1]) && isHex(raw[i+2]):
			b.WriteByte(unhex(raw[i+1])<<4 | unhex(raw[i+2]))
			i += 2
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func unhex(c byte) byte {
	switch {
	case c <= '9':
		return c - '0'
	case c <= 'F':
		return c - 'A' + 10
	default:
		return c - 'a' + 10
	}
}

func requestID(ctx context.Context) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		return lc.AwsRequestID
	}
	return ""
}
