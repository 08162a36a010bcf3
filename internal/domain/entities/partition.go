package entities

import "fmt"

const (
	ColumnOrderID        = "order_id"
	ColumnOrderTimestamp = "order_timestamp"
	ColumnOrderDate      = "order_date"
	ColumnOrderYear      = "order_year"
	ColumnOrderMonth     = "order_month"
	ColumnOrderTotal     = "order_total"
	ColumnCustomer       = "customer"
	ColumnPayment        = "payment"
	ColumnItems          = "items"
	ColumnQuantity       = "quantity"
	ColumnUnitPrice      = "unit_price"
	ColumnLineTotal      = "line_total"
)

// PartitionColumns live only in the Hive-style object path. They must never be
// part of a written file's schema, otherwise Athena/Glue see the column twice.
var PartitionColumns = []string{ColumnOrderYear, ColumnOrderMonth}

// Dataset names double as the folder under the processed prefix.
const (
	DatasetFactOrders     = "fact_orders"
	DatasetFactOrderItems = "fact_order_items"
)

// Partition is the (order_year, order_month) storage discriminator.
type Partition struct {
	Year  int64 `json:"order_year"`
	Month int64 `json:"order_month"`
}

// Path renders the Hive-style segment, e.g. "order_year=2025/order_month=1".
func (p Partition) Path() string {
	return fmt.Sprintf("%s=%d/%s=%d", ColumnOrderYear, p.Year, ColumnOrderMonth, p.Month)
}

// Matches reports whether row carries this partition's year and month.
func (p Partition) Matches(row *Record) bool {
	y, ok := row.Get(ColumnOrderYear)
	if !ok {
		return false
	}
	m, ok := row.Get(ColumnOrderMonth)
	if !ok {
		return false
	}
	yi, ok := y.(int64)
	if !ok {
		return false
	}
	mi, ok := m.(int64)
	if !ok {
		return false
	}
	return yi == p.Year && mi == p.Month
}
