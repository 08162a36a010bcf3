package flatten

import "orders_etl/internal/domain/entities"

// Result is the flattened form of one batch.
type Result struct {
	FactOrders     entities.Table
	FactOrderItems entities.Table
	Dropped        int
}

// Flatten runs the whole transformation on decoded orders.
func Flatten(orders []*entities.Record) (Result, error) {
	b, err := PrepareOrders(orders)
	if err != nil {
		return Result{}, err
	}
	return Result{
		FactOrders:     BuildFactOrders(b),
		FactOrderItems: ExplodeItems(b),
		Dropped:        b.Dropped,
	}, nil
}

// PartitionKeys lists the distinct (order_year, order_month) pairs of the
// fact_orders table in first-appearance order.
func PartitionKeys(facts entities.Table) []entities.Partition {
	var out []entities.Partition
	seen := map[entities.Partition]struct{}{}
	for _, row := range facts.Rows {
		y, _ := row.Get(entities.ColumnOrderYear)
		m, _ := row.Get(entities.ColumnOrderMonth)
		yi, ok := y.(int64)
		if !ok {
			continue
		}
		mi, ok := m.(int64)
		if !ok {
			continue
		}
		p := entities.Partition{Year: yi, Month: mi}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// SlicePartition keeps the rows of t that belong to p and removes the
// partition columns, which are encoded in the object path instead.
func SlicePartition(t entities.Table, p entities.Partition) entities.Table {
	return t.Filter(p.Matches).DropColumns(entities.PartitionColumns...)
}
