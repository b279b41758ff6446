package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// ErrNotList is returned when a payload that should hold a list of records
// is some other JSON value.
var ErrNotList = errors.New("record payload is not a list")

// row gives tolerant positional access to a decoded record.
type row []any

func (r row) at(i int) any {
	if i < 0 || i >= len(r) {
		return nil
	}
	return r[i]
}

func (r row) str(i int) string {
	v := r.at(i)
	if v == nil {
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return s
}

func (r row) float(i int) float64 {
	v := r.at(i)
	if s, ok := v.(string); ok {
		v = strings.TrimSpace(s)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func (r row) int(i int) int {
	return int(r.float(i))
}

func (r row) time(i int) time.Time {
	v := r.at(i)
	if v == nil || v == "" {
		return time.Time{}
	}
	t, err := cast.ToTimeE(v)
	if err != nil {
		return time.Time{}
	}
	return t
}

// DecodeProducts decodes a JSON list of positional product records. Entries
// that are not lists are skipped. A null or empty payload yields no products.
func DecodeProducts(data []byte) ([]Product, error) {
	rows, err := decodeRows(data)
	if err != nil {
		return nil, err
	}
	out := make([]Product, 0, len(rows))
	for _, r := range rows {
		out = append(out, DecodeProduct(r))
	}
	return out, nil
}

// DecodeOrders decodes a JSON list of positional order records.
func DecodeOrders(data []byte) ([]Order, error) {
	rows, err := decodeRows(data)
	if err != nil {
		return nil, err
	}
	out := make([]Order, 0, len(rows))
	for _, r := range rows {
		out = append(out, DecodeOrder(r))
	}
	return out, nil
}

func decodeRows(data []byte) ([][]any, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, ErrNotList
	}
	rows := make([][]any, 0, len(raw))
	for _, item := range raw {
		var fields []any
		if err := json.Unmarshal(item, &fields); err != nil || fields == nil {
			continue
		}
		rows = append(rows, fields)
	}
	return rows, nil
}
