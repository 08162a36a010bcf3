package flatten

import (
	"math"

	"orders_etl/internal/domain/entities"
)

// itemContextColumns are carried from the order onto every line item.
var itemContextColumns = []string{
	entities.ColumnOrderID,
	entities.ColumnOrderTimestamp,
	entities.ColumnOrderDate,
	entities.ColumnOrderYear,
	entities.ColumnOrderMonth,
}

// ExplodeItems emits one row per element of each order's items array.
//
// Orders with a missing, null, empty or non-array items value contribute no
// rows, and array elements that are not objects are skipped. When no order in
// the batch has an items field the result is an empty table.
func ExplodeItems(b Batch) entities.Table {
	if !b.hasColumn(entities.ColumnItems) {
		return entities.Table{}
	}

	t := entities.Table{Columns: append([]string(nil), itemContextColumns...)}
	for _, o := range b.Orders {
		v, _ := o.Source.Get(entities.ColumnItems)
		list, ok := v.([]any)
		if !ok {
			continue
		}
		for _, el := range list {
			item, ok := el.(*entities.Record)
			if !ok {
				continue
			}
			row := entities.NewRecord()
			flattenInto(row, "", item, t.AddColumn)
			// order context wins over same-named item fields so that the
			// partition columns always agree with the parent order
			if id, ok := o.Source.Get(entities.ColumnOrderID); ok {
				row.Set(entities.ColumnOrderID, id)
			} else {
				row.Delete(entities.ColumnOrderID)
			}
			row.Set(entities.ColumnOrderTimestamp, o.Timestamp)
			row.Set(entities.ColumnOrderDate, o.Date())
			row.Set(entities.ColumnOrderYear, o.Year())
			row.Set(entities.ColumnOrderMonth, o.Month())
			t.Rows = append(t.Rows, row)
		}
	}

	if len(t.Rows) == 0 {
		return t
	}

	hasQty := t.HasColumn(entities.ColumnQuantity)
	hasPrice := t.HasColumn(entities.ColumnUnitPrice)
	if hasQty {
		coerceColumn(t.Rows, entities.ColumnQuantity)
	}
	if hasPrice {
		coerceColumn(t.Rows, entities.ColumnUnitPrice)
	}
	if hasQty && hasPrice {
		t.AddColumn(entities.ColumnLineTotal)
		for _, row := range t.Rows {
			if lt, ok := lineTotal(row); ok {
				row.Set(entities.ColumnLineTotal, lt)
			}
		}
	}
	return t
}

// lineTotal is quantity*unit_price rounded to cents, present only when both
// inputs are numbers.
func lineTotal(row *entities.Record) (float64, bool) {
	q, _ := row.Get(entities.ColumnQuantity)
	p, _ := row.Get(entities.ColumnUnitPrice)
	if q == nil || p == nil {
		return 0, false
	}
	v := asFloat(q) * asFloat(p)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return round2(v), true
}
