package storage

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orders_etl/internal/usecase/interfaces"
)

// fakeS3 serves path-style GetObject and PutObject from memory.
type fakeS3 struct {
	mu           sync.Mutex
	objects      map[string][]byte
	contentTypes map[string]string
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, contentTypes: map[string]string{}}
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	name := strings.TrimPrefix(r.URL.Path, "/")
	switch r.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.objects[name] = body
		f.contentTypes[name] = r.Header.Get("Content-Type")
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		data, ok := f.objects[name]
		if !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`)
			return
		}
		w.Header().Set("Content-Type", f.contentTypes[name])
		_, _ = w.Write(data)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newTestStorage(t *testing.T, handler http.Handler) *S3ObjectStorage {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	awsCfg := aws.Config{
		Region:      "us-east-1",
		Credentials: credentials.NewStaticCredentialsProvider("test", "test", ""),
	}
	return NewS3ObjectStorage(awsCfg, WithEndpoint(srv.URL), WithPathStyle(true))
}

func TestS3ObjectStorageRoundTrip(t *testing.T) {
	fake := newFakeS3()
	s := newTestStorage(t, fake)
	ctx := context.Background()

	key := "processed/store_sales/fact_orders/order_year=2025/order_month=1/part-x.parquet"
	require.NoError(t, s.Put(ctx, "lake", key, []byte("PAR1data"), "application/vnd.apache.parquet"))

	fake.mu.Lock()
	assert.Equal(t, []byte("PAR1data"), fake.objects["lake/"+key])
	assert.Equal(t, "application/vnd.apache.parquet", fake.contentTypes["lake/"+key])
	fake.mu.Unlock()

	got, err := s.Get(ctx, "lake", key)
	require.NoError(t, err)
	assert.Equal(t, []byte("PAR1data"), got)
}

func TestS3ObjectStorageGetMissing(t *testing.T) {
	s := newTestStorage(t, newFakeS3())

	_, err := s.Get(context.Background(), "raw", "orders/missing.json")
	require.Error(t, err)
	assert.True(t, errors.Is(err, interfaces.ErrObjectNotFound), "got %v", err)
}

func TestS3ObjectStorageGetMissingBucket(t *testing.T) {
	s := newTestStorage(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchBucket</Code><Message>The specified bucket does not exist</Message><BucketName>gone</BucketName></Error>`)
	}))

	_, err := s.Get(context.Background(), "gone", "orders/2025-01-05.json")
	require.Error(t, err)
	assert.True(t, errors.Is(err, interfaces.ErrObjectNotFound), "got %v", err)
}

func TestS3ObjectStorageServerError(t *testing.T) {
	s := newTestStorage(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>AccessDenied</Code><Message>denied</Message></Error>`)
	}))

	err := s.Put(context.Background(), "lake", "k", []byte("x"), "")
	require.Error(t, err)
	assert.False(t, errors.Is(err, interfaces.ErrObjectNotFound))
}
