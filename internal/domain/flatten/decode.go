// Package flatten turns a batch of nested order documents into the flat
// fact_orders and fact_order_items tables and splits them by partition.
package flatten

import (
	"bytes"
	"errors"
	"fmt"

	"orders_etl/internal/domain/entities"

	"github.com/valyala/fastjson"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var (
	ErrMalformedJSON      = errors.New("input is not valid JSON")
	ErrInvalidOrderRecord = errors.New("order record is not a JSON object")
)

// DecodeOrders parses the source document. Object key order and integer
// precision are preserved, so nanosecond epochs survive intact.
//
// A top-level value that is not an array, or an empty array, yields no orders
// and no error: the caller treats both as a no-op. A leading UTF-8 byte
// order mark is ignored.
func DecodeOrders(raw []byte) ([]*entities.Record, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	var p fastjson.Parser
	doc, err := p.ParseBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	if doc.Type() != fastjson.TypeArray {
		return nil, nil
	}

	elems, err := doc.Array()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}

	orders := make([]*entities.Record, 0, len(elems))
	for i, el := range elems {
		if el.Type() != fastjson.TypeObject {
			return nil, fmt.Errorf("%w: index %d has type %s", ErrInvalidOrderRecord, i, el.Type())
		}
		v, err := convertValue(el)
		if err != nil {
			return nil, fmt.Errorf("%w: index %d: %v", ErrMalformedJSON, i, err)
		}
		orders = append(orders, v.(*entities.Record))
	}
	return orders, nil
}

func convertValue(v *fastjson.Value) (any, error) {
	switch v.Type() {
	case fastjson.TypeNull:
		return nil, nil
	case fastjson.TypeTrue:
		return true, nil
	case fastjson.TypeFalse:
		return false, nil
	case fastjson.TypeString:
		b, err := v.StringBytes()
		if err != nil {
			return nil, err
		}
		return string(b), nil
	case fastjson.TypeNumber:
		if n, err := v.Int64(); err == nil {
			return n, nil
		}
		return v.Float64()
	case fastjson.TypeArray:
		elems, err := v.Array()
		if err != nil {
			return nil, err
		}
		out := make([]any, 0, len(elems))
		for _, el := range elems {
			cv, err := convertValue(el)
			if err != nil {
				return nil, err
			}
			out = append(out, cv)
		}
		return out, nil
	case fastjson.TypeObject:
		obj, err := v.Object()
		if err != nil {
			return nil, err
		}
		rec := entities.NewRecord()
		var visitErr error
		obj.Visit(func(key []byte, fv *fastjson.Value) {
			if visitErr != nil {
				return
			}
			cv, err := convertValue(fv)
			if err != nil {
				visitErr = err
				return
			}
			rec.Set(string(key), cv)
		})
		if visitErr != nil {
			return nil, visitErr
		}
		return rec, nil
	default:
		return nil, fmt.Errorf("unsupported JSON type %s", v.Type())
	}
}
