package entities

import (
	"fmt"
	"regexp"
	"time"
)

var invocationIDPattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,128}$`)

// IsValidInvocationID reports whether id is safe to embed in an object key
// as a single path segment.
func IsValidInvocationID(id string) bool {
	return invocationIDPattern.MatchString(id) && id != "." && id != ".."
}

// Invocation identifies one source object and the caller-provided id that
// keeps output file names unique (the Lambda request id, or a UUID locally).
type Invocation struct {
	Bucket    string
	Key       string
	RequestID string
}

// URI renders the input as s3://bucket/key.
func (i Invocation) URI() string {
	return fmt.Sprintf("s3://%s/%s", i.Bucket, i.Key)
}

const (
	ResultStatusOK = "ok"

	MessageNoOrders = "No orders found"
)

type OutputPrefixes struct {
	FactOrders     string `json:"fact_orders_prefix"`
	FactOrderItems string `json:"fact_order_items_prefix"`
}

type RowCounts struct {
	FactOrders     int `json:"fact_orders"`
	FactOrderItems int `json:"fact_order_items"`
}

// FlattenResult is what one invocation reports back to its trigger.
type FlattenResult struct {
	Status       string          `json:"status"`
	Message      string          `json:"message,omitempty"`
	Input        string          `json:"input"`
	OutputBucket string          `json:"output_bucket,omitempty"`
	Outputs      *OutputPrefixes `json:"outputs,omitempty"`
	Rows         RowCounts       `json:"rows"`
	RunID        string          `json:"run_id,omitempty"`
	Files        []string        `json:"files,omitempty"`
}

// RunStatus is the audit outcome of an invocation.
type RunStatus string

const (
	RunStatusSucceeded RunStatus = "succeeded"
	RunStatusNoop      RunStatus = "noop"
)

// Run is the optional audit entry persisted in DynamoDB after an invocation.
//
// Storage model (DynamoDB):
//   - PK: id (the run id, "<UTC timestamp>-<invocation id>")

type Run struct {
	ID           string    `json:"id"`
	RequestID    string    `json:"request_id"`
	Input        string    `json:"input"`
	OutputBucket string    `json:"output_bucket"`
	Partitions   []string  `json:"partitions"`
	Files        []string  `json:"files"`
	Rows         RowCounts `json:"rows"`
	Status       RunStatus `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}
