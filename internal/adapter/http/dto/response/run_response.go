package response

import (
	"time"

	"orders_etl/internal/domain/entities"
)

type RowCountsResponse struct {
	FactOrders     int `json:"fact_orders"`
	FactOrderItems int `json:"fact_order_items"`
}

type OutputsResponse struct {
	FactOrdersPrefix     string `json:"fact_orders_prefix"`
	FactOrderItemsPrefix string `json:"fact_order_items_prefix"`
}

// RunResultResponse is the body of POST /v1/runs.
type RunResultResponse struct {
	Status       string            `json:"status"`
	Message      string            `json:"message,omitempty"`
	Input        string            `json:"input"`
	OutputBucket string            `json:"output_bucket,omitempty"`
	Outputs      *OutputsResponse  `json:"outputs,omitempty"`
	Rows         RowCountsResponse `json:"rows"`
	RunID        string            `json:"run_id,omitempty"`
	Files        []string          `json:"files,omitempty"`
}

func FromFlattenResult(r entities.FlattenResult) RunResultResponse {
	res := RunResultResponse{
		Status:       r.Status,
		Message:      r.Message,
		Input:        r.Input,
		OutputBucket: r.OutputBucket,
		Rows:         fromRowCounts(r.Rows),
		RunID:        r.RunID,
		Files:        r.Files,
	}
	if r.Outputs != nil {
		res.Outputs = &OutputsResponse{
			FactOrdersPrefix:     r.Outputs.FactOrders,
			FactOrderItemsPrefix: r.Outputs.FactOrderItems,
		}
	}
	return res
}

// RunResponse is the body of GET /v1/runs/{run_id}.
type RunResponse struct {
	RunID        string            `json:"run_id"`
	RequestID    string            `json:"request_id"`
	Input        string            `json:"input"`
	OutputBucket string            `json:"output_bucket"`
	Partitions   []string          `json:"partitions"`
	Files        []string          `json:"files"`
	Rows         RowCountsResponse `json:"rows"`
	Status       string            `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
}

func FromRun(r entities.Run) RunResponse {
	partitions := r.Partitions
	if partitions == nil {
		partitions = []string{}
	}
	files := r.Files
	if files == nil {
		files = []string{}
	}
	return RunResponse{
		RunID:        r.ID,
		RequestID:    r.RequestID,
		Input:        r.Input,
		OutputBucket: r.OutputBucket,
		Partitions:   partitions,
		Files:        files,
		Rows:         fromRowCounts(r.Rows),
		Status:       string(r.Status),
		CreatedAt:    r.CreatedAt,
	}
}

func fromRowCounts(c entities.RowCounts) RowCountsResponse {
	return RowCountsResponse{FactOrders: c.FactOrders, FactOrderItems: c.FactOrderItems}
}
