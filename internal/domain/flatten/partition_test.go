package flatten

import (
	"reflect"
	"testing"

	"orders_etl/internal/domain/entities"
)

func TestPartitionKeys(t *testing.T) {
	res, err := Flatten(mustDecode(t, `[
		{"order_id": 1, "order_timestamp": "2025-02-10T00:00:00Z"},
		{"order_id": 2, "order_timestamp": "2025-01-10T00:00:00Z"},
		{"order_id": 3, "order_timestamp": "2025-02-20T00:00:00Z"}
	]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := PartitionKeys(res.FactOrders)
	want := []entities.Partition{{Year: 2025, Month: 2}, {Year: 2025, Month: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got[0].Path() != "order_year=2025/order_month=2" {
		t.Fatalf("unexpected path %q", got[0].Path())
	}
}

func TestSlicePartition(t *testing.T) {
	res, err := Flatten(mustDecode(t, twoMonthsDoc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	jan := entities.Partition{Year: 2025, Month: 1}
	feb := entities.Partition{Year: 2025, Month: 2}

	t.Run("partition columns are dropped from schema and rows", func(t *testing.T) {
		for _, tbl := range []entities.Table{res.FactOrders, res.FactOrderItems} {
			slice := SlicePartition(tbl, jan)
			for _, c := range slice.Columns {
				if c == "order_year" || c == "order_month" {
					t.Fatalf("partition column %q left in schema %v", c, slice.Columns)
				}
			}
			for _, row := range slice.Rows {
				if row.Has("order_year") || row.Has("order_month") {
					t.Fatalf("partition column left in row %v", row.Keys())
				}
			}
		}
	})

	t.Run("source tables are not mutated", func(t *testing.T) {
		_ = SlicePartition(res.FactOrders, jan)
		if !res.FactOrders.Rows[0].Has("order_year") || !res.FactOrders.HasColumn("order_month") {
			t.Fatalf("slicing must not modify the source table")
		}
	})

	t.Run("rows are split by partition", func(t *testing.T) {
		if n := SlicePartition(res.FactOrders, jan).Len(); n != 1 {
			t.Fatalf("expected 1 January order, got %d", n)
		}
		if n := SlicePartition(res.FactOrders, feb).Len(); n != 1 {
			t.Fatalf("expected 1 February order, got %d", n)
		}
		if n := SlicePartition(res.FactOrderItems, jan).Len(); n != 2 {
			t.Fatalf("expected 2 January items, got %d", n)
		}
		if n := SlicePartition(res.FactOrderItems, feb).Len(); n != 0 {
			t.Fatalf("expected no February items, got %d", n)
		}
	})
}
