package flatten

import (
	"errors"
	"time"

	"orders_etl/internal/domain/entities"
)

var ErrMissingRequiredFields = errors.New("missing required fields: order_id and/or order_timestamp")

const (
	customerPrefix = entities.ColumnCustomer + "_"
	paymentPrefix  = entities.ColumnPayment + "_"
)

// DatedOrder is a source order whose order_timestamp resolved to a UTC instant.
type DatedOrder struct {
	Source    *entities.Record
	Timestamp time.Time
}

func (o DatedOrder) Date() string {
	return o.Timestamp.Format(time.DateOnly)
}

func (o DatedOrder) Year() int64 {
	return int64(o.Timestamp.Year())
}

func (o DatedOrder) Month() int64 {
	return int64(o.Timestamp.Month())
}

// Batch is the validated input of one invocation.
type Batch struct {
	// Columns is the union of top-level keys over the whole input, including
	// orders that were later dropped, in first-appearance order.
	Columns []string
	Orders  []DatedOrder
	// Dropped counts orders excluded for an unparseable order_timestamp.
	Dropped int
}

func (b Batch) hasColumn(name string) bool {
	for _, c := range b.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// PrepareOrders checks that the batch declares order_id and order_timestamp,
// normalizes every timestamp and drops the orders that cannot be dated.
// The required-field check is on the batch as a whole: a single order lacking
// order_id is kept with a null id.
func PrepareOrders(orders []*entities.Record) (Batch, error) {
	b := Batch{}
	seen := map[string]struct{}{}
	for _, o := range orders {
		for _, k := range o.Keys() {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				b.Columns = append(b.Columns, k)
			}
		}
	}
	if !b.hasColumn(entities.ColumnOrderID) || !b.hasColumn(entities.ColumnOrderTimestamp) {
		return Batch{}, ErrMissingRequiredFields
	}

	raw := make([]any, len(orders))
	for i, o := range orders {
		raw[i], _ = o.Get(entities.ColumnOrderTimestamp)
	}
	stamps := NormalizeTimestamps(raw)

	b.Orders = make([]DatedOrder, 0, len(orders))
	for i, o := range orders {
		if !stamps[i].Valid {
			b.Dropped++
			continue
		}
		b.Orders = append(b.Orders, DatedOrder{Source: o, Timestamp: stamps[i].Time})
	}
	return b, nil
}

// BuildFactOrders produces one row per dated order: the scalar source columns,
// the derived date columns, then customer_* and payment_* expansions.
func BuildFactOrders(b Batch) entities.Table {
	t := entities.Table{}
	for _, c := range b.Columns {
		switch c {
		case entities.ColumnCustomer, entities.ColumnPayment, entities.ColumnItems:
			continue
		}
		t.AddColumn(c)
	}
	t.AddColumn(entities.ColumnOrderDate)
	t.AddColumn(entities.ColumnOrderYear)
	t.AddColumn(entities.ColumnOrderMonth)

	t.Rows = make([]*entities.Record, 0, len(b.Orders))
	for _, o := range b.Orders {
		row := entities.NewRecord()
		for _, c := range t.Columns {
			if v, ok := o.Source.Get(c); ok {
				row.Set(c, v)
			}
		}
		row.Set(entities.ColumnOrderTimestamp, o.Timestamp)
		row.Set(entities.ColumnOrderDate, o.Date())
		row.Set(entities.ColumnOrderYear, o.Year())
		row.Set(entities.ColumnOrderMonth, o.Month())
		t.Rows = append(t.Rows, row)
	}

	// Expanded after the base columns so customer_* precede payment_* in the
	// column list, matching the row-wise concatenation of the three blocks.
	for _, nested := range []struct{ field, prefix string }{
		{entities.ColumnCustomer, customerPrefix},
		{entities.ColumnPayment, paymentPrefix},
	} {
		if !b.hasColumn(nested.field) {
			continue
		}
		for i, o := range b.Orders {
			v, _ := o.Source.Get(nested.field)
			obj, ok := v.(*entities.Record)
			if !ok {
				continue
			}
			flattenInto(t.Rows[i], nested.prefix, obj, t.AddColumn)
		}
	}

	if t.HasColumn(entities.ColumnOrderTotal) {
		coerceColumn(t.Rows, entities.ColumnOrderTotal)
	}
	return t
}

// flattenInto copies src into dst under prefix, descending into nested
// objects with "_" between the key segments. onColumn sees every column name
// written.
func flattenInto(dst *entities.Record, prefix string, src *entities.Record, onColumn func(string)) {
	for _, k := range src.Keys() {
		v, _ := src.Get(k)
		name := prefix + k
		if nested, ok := v.(*entities.Record); ok {
			flattenInto(dst, name+"_", nested, onColumn)
			continue
		}
		dst.Set(name, v)
		onColumn(name)
	}
}
