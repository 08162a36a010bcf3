package columnar

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"

	"orders_etl/internal/domain/entities"
)

type physicalType int

const (
	typeString physicalType = iota
	typeBool
	typeInt64
	typeDouble
	typeTimestamp
)

// column is one Parquet leaf derived from a table column.
type column struct {
	source string
	name   string
	kind   physicalType
}

func (c column) tag() string {
	var typ string
	switch c.kind {
	case typeBool:
		typ = "type=BOOLEAN"
	case typeInt64:
		typ = "type=INT64"
	case typeDouble:
		typ = "type=DOUBLE"
	case typeTimestamp:
		typ = "type=INT64, convertedtype=TIMESTAMP_MICROS"
	default:
		typ = "type=BYTE_ARRAY, convertedtype=UTF8"
	}
	return "name=" + c.name + ", " + typ + ", repetitiontype=OPTIONAL"
}

type schemaField struct {
	Tag    string        `json:"Tag"`
	Fields []schemaField `json:"Fields,omitempty"`
}

// inferColumns picks one physical type per column from the values present in
// the table. Columns that only hold nulls, or mix incompatible kinds, are
// written as UTF8.
func inferColumns(t entities.Table) []column {
	cols := make([]column, 0, len(t.Columns))
	taken := map[string]struct{}{}
	for _, name := range t.Columns {
		cols = append(cols, column{
			source: name,
			name:   uniqueName(sanitizeName(name), taken),
			kind:   inferKind(t.Rows, name),
		})
	}
	return cols
}

func inferKind(rows []*entities.Record, name string) physicalType {
	var bools, ints, floats, times, others int
	for _, row := range rows {
		v, _ := row.Get(name)
		switch v := v.(type) {
		case nil:
		case bool:
			bools++
		case int64:
			ints++
		case float64:
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			floats++
		case time.Time:
			times++
		default:
			others++
		}
	}

	total := bools + ints + floats + times + others
	switch {
	case total == 0 || others > 0:
		return typeString
	case bools == total:
		return typeBool
	case ints == total:
		return typeInt64
	case ints+floats == total:
		return typeDouble
	case times == total:
		return typeTimestamp
	default:
		return typeString
	}
}

// sanitizeName keeps [A-Za-z0-9_] and replaces everything else with "_".
func sanitizeName(name string) string {
	if name == "" {
		return "_"
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// uniqueName suffixes name until it does not collide with a taken one. The
// writer addresses fields by their name with the first letter upper-cased,
// so "id" and "Id" collide.
func uniqueName(name string, taken map[string]struct{}) string {
	candidate := name
	for i := 2; ; i++ {
		key := strings.ToUpper(candidate[:1]) + candidate[1:]
		if _, ok := taken[key]; !ok {
			taken[key] = struct{}{}
			return candidate
		}
		candidate = name + "_" + strconv.Itoa(i)
	}
}

func schemaJSON(cols []column) (string, error) {
	root := schemaField{Tag: "name=parquet_go_root, repetitiontype=REQUIRED"}
	for _, c := range cols {
		root.Fields = append(root.Fields, schemaField{Tag: c.tag()})
	}
	b, err := json.Marshal(root)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// rowJSON renders one row as the JSON object the writer expects. Missing keys
// and values that do not fit the column type are written as null.
func rowJSON(row *entities.Record, cols []column) (string, error) {
	out := make(map[string]any, len(cols))
	for _, c := range cols {
		v, _ := row.Get(c.source)
		out[c.name] = convertValue(v, c.kind)
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func convertValue(v any, kind physicalType) any {
	if v == nil {
		return nil
	}
	switch kind {
	case typeBool, typeInt64:
		return v
	case typeDouble:
		f := cast.ToFloat64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		return f
	case typeTimestamp:
		if ts, ok := v.(time.Time); ok {
			return ts.UnixMicro()
		}
		return nil
	default:
		return stringValue(v)
	}
}

func stringValue(v any) any {
	switch v := v.(type) {
	case string:
		return v
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano)
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case *entities.Record, []any:
		b, err := json.Marshal(v)
		if err != nil {
			return nil
		}
		return string(b)
	default:
		s, err := cast.ToStringE(v)
		if err != nil {
			return nil
		}
		return s
	}
}
