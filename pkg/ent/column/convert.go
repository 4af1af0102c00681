package column

import (
	"fmt"
	"strconv"
	"time"
)

// FromAny builds a column from values returned by database drivers.
//
// The kind is chosen from the non-nil values: any string makes a string
// column, otherwise any float makes a float column, otherwise the column
// is an integer column. A slice of nils gives an Unknown column. Nil
// values become nulls.
func FromAny(vals []any) (Column, error) {
	norm := make([]any, len(vals))
	var hasStr, hasFloat, hasInt bool
	for i, v := range vals {
		nv, err := normalize(v)
		if err != nil {
			return Column{}, fmt.Errorf("row %d: %w", i, err)
		}
		norm[i] = nv
		switch nv.(type) {
		case string:
			hasStr = true
		case float64:
			hasFloat = true
		case int64:
			hasInt = true
		}
	}

	var nulls []bool
	markNull := func(i int) {
		if nulls == nil {
			nulls = make([]bool, len(norm))
		}
		nulls[i] = true
	}

	var res Column
	switch {
	case hasStr:
		strs := make([]string, len(norm))
		for i, v := range norm {
			switch t := v.(type) {
			case nil:
				markNull(i)
			case string:
				strs[i] = t
			case float64:
				strs[i] = strconv.FormatFloat(t, 'g', -1, 64)
			case int64:
				strs[i] = strconv.FormatInt(t, 10)
			}
		}
		res = NewString(strs)
	case hasFloat:
		floats := make([]float64, len(norm))
		for i, v := range norm {
			switch t := v.(type) {
			case nil:
				markNull(i)
			case float64:
				floats[i] = t
			case int64:
				floats[i] = float64(t)
			}
		}
		res = NewFloat(floats)
	case hasInt:
		ints := make([]int64, len(norm))
		for i, v := range norm {
			switch t := v.(type) {
			case nil:
				markNull(i)
			case int64:
				ints[i] = t
			}
		}
		res = NewInt(ints)
	default:
		return Nulls(len(norm)), nil
	}
	res.nulls = nulls
	return res, nil
}

// normalize reduces a driver value to nil, string, float64 or int64.
func normalize(v any) (any, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case string:
		return t, nil
	case []byte:
		return string(t), nil
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int:
		return int64(t), nil
	case int8:
		return int64(t), nil
	case int16:
		return int64(t), nil
	case int32:
		return int64(t), nil
	case int64:
		return t, nil
	case uint8:
		return int64(t), nil
	case uint16:
		return int64(t), nil
	case uint32:
		return int64(t), nil
	case uint64:
		return int64(t), nil
	case uint:
		return int64(t), nil
	case bool:
		if t {
			return int64(1), nil
		}
		return int64(0), nil
	case time.Time:
		return t.Format(time.RFC3339Nano), nil
	case fmt.Stringer:
		return t.String(), nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}
