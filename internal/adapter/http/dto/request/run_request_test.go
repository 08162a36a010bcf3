package request

import (
	"errors"
	"testing"
)

func TestRunRequest_ToInvocation(t *testing.T) {
	t.Run("bucket and key", func(t *testing.T) {
		inv, err := RunRequest{Bucket: " raw ", Key: "orders/a.json"}.ToInvocation("req-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if inv.Bucket != "raw" || inv.Key != "orders/a.json" || inv.RequestID != "req-1" {
			t.Fatalf("unexpected invocation: %+v", inv)
		}
	})

	t.Run("key is kept verbatim", func(t *testing.T) {
		inv, err := RunRequest{Bucket: "raw", Key: "orders/a.json "}.ToInvocation("req-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if inv.Key != "orders/a.json " {
			t.Fatalf("unexpected key: %q", inv.Key)
		}
	})

	t.Run("s3 uri", func(t *testing.T) {
		inv, err := RunRequest{URI: "s3://raw/orders/2025/a.json"}.ToInvocation("req-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if inv.Bucket != "raw" || inv.Key != "orders/2025/a.json" {
			t.Fatalf("unexpected invocation: %+v", inv)
		}
	})

	t.Run("invalid inputs", func(t *testing.T) {
		for _, r := range []RunRequest{
			{},
			{Bucket: "raw"},
			{Key: "a.json"},
			{Bucket: "raw", Key: "  "},
			{URI: "https://raw/a.json"},
			{URI: "s3://raw"},
		} {
			if _, err := r.ToInvocation("req"); !errors.Is(err, ErrInvalidRunInput) {
				t.Fatalf("expected ErrInvalidRunInput for %+v, got %v", r, err)
			}
		}
	})
}
