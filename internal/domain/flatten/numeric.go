package flatten

import (
	"math"
	"strconv"
	"strings"

	"orders_etl/internal/domain/entities"

	"github.com/spf13/cast"
)

// toNumeric coerces a field to a number. Integers stay int64, everything else
// numeric becomes float64; ok is false for values that are not numbers.
func toNumeric(v any) (any, bool) {
	switch t := v.(type) {
	case nil:
		return nil, false
	case int64:
		return t, true
	case float64:
		return t, true
	case bool:
		if t {
			return int64(1), true
		}
		return int64(0), true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil, false
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, true
		}
		f, err := cast.ToFloat64E(s)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, false
		}
		return f, true
	default:
		return nil, false
	}
}

func asFloat(v any) float64 {
	return cast.ToFloat64(v)
}

// round2 rounds to two decimals using the exact binary value of f, so
// 3*2.005 (stored as 6.01499...) rounds to 6.01.
func round2(f float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(f, 'f', 2, 64), 64)
	if err != nil {
		return f
	}
	return r
}

// coerceColumn replaces the named field in every row with its numeric form,
// or with null when it cannot be read as a number. Rows lacking the field
// are left alone.
func coerceColumn(rows []*entities.Record, column string) {
	for _, row := range rows {
		v, ok := row.Get(column)
		if !ok {
			continue
		}
		n, ok := toNumeric(v)
		if !ok {
			row.Set(column, nil)
			continue
		}
		row.Set(column, n)
	}
}
