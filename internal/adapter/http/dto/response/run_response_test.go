package response

import (
	"testing"
	"time"

	"orders_etl/internal/domain/entities"
)

func TestFromFlattenResult(t *testing.T) {
	t.Run("completed run", func(t *testing.T) {
		res := FromFlattenResult(entities.FlattenResult{
			Status:       entities.ResultStatusOK,
			Input:        "s3://raw/a.json",
			OutputBucket: "raw",
			Outputs: &entities.OutputPrefixes{
				FactOrders:     "s3://raw/processed/store_sales/fact_orders/",
				FactOrderItems: "s3://raw/processed/store_sales/fact_order_items/",
			},
			Rows:  entities.RowCounts{FactOrders: 2, FactOrderItems: 5},
			RunID: "20250301T101500-req",
		})
		if res.Outputs == nil || res.Outputs.FactOrderItemsPrefix != "s3://raw/processed/store_sales/fact_order_items/" {
			t.Fatalf("unexpected outputs: %+v", res.Outputs)
		}
		if res.Rows.FactOrders != 2 || res.Rows.FactOrderItems != 5 || res.RunID != "20250301T101500-req" {
			t.Fatalf("unexpected mapped fields: %+v", res)
		}
	})

	t.Run("no orders", func(t *testing.T) {
		res := FromFlattenResult(entities.FlattenResult{
			Status:  entities.ResultStatusOK,
			Message: entities.MessageNoOrders,
			Input:   "s3://raw/a.json",
		})
		if res.Outputs != nil || res.Message != "No orders found" {
			t.Fatalf("unexpected no-op response: %+v", res)
		}
	})
}

func TestFromRun(t *testing.T) {
	now := time.Now().UTC()
	res := FromRun(entities.Run{
		ID:        "run-1",
		RequestID: "req",
		Status:    entities.RunStatusNoop,
		CreatedAt: now,
	})
	if res.RunID != "run-1" || res.Status != "noop" || !res.CreatedAt.Equal(now) {
		t.Fatalf("unexpected mapped fields: %+v", res)
	}
	if res.Files == nil || res.Partitions == nil {
		t.Fatalf("expected empty lists instead of null: %+v", res)
	}
}
