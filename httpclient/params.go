package httpclient

import (
	"fmt"
	"math"
	"net/url"
	"reflect"
	"strconv"
	"time"
)

// timestampFormat renders times as millisecond-precision, Z-suffixed ISO-8601
// after conversion to UTC.
const timestampFormat = "2006-01-02T15:04:05.000Z07:00"

// NormalizeParams converts a loosely typed parameter map into query values.
// Booleans become "0"/"1", times are normalized to UTC ISO-8601 with
// millisecond precision, slices expand into repeated key=value pairs and nil
// values are dropped entirely. Non-finite numbers are rejected.
func NormalizeParams(params map[string]any) (url.Values, error) {
	values := url.Values{}
	for key, value := range params {
		normalized, err := normalizeParamValue(key, value)
		if err != nil {
			return nil, err
		}
		for _, v := range normalized {
			values.Add(key, v)
		}
	}
	return values, nil
}

func normalizeParamValue(key string, value any) ([]string, error) {
	if value == nil {
		return nil, nil
	}

	switch v := value.(type) {
	case bool:
		if v {
			return []string{"1"}, nil
		}
		return []string{"0"}, nil
	case time.Time:
		return []string{v.UTC().Format(timestampFormat)}, nil
	case string:
		return []string{v}, nil
	case float32:
		return normalizeFloat(key, float64(v))
	case float64:
		return normalizeFloat(key, v)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return []string{fmt.Sprintf("%d", v)}, nil
	case time.Duration:
		return []string{strconv.FormatInt(int64(v/time.Second), 10)}, nil
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return nil, nil
		}
		return normalizeParamValue(key, rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		var out []string
		for i := 0; i < rv.Len(); i++ {
			normalized, err := normalizeParamValue(key, rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			out = append(out, normalized...)
		}
		return out, nil
	default:
		return []string{fmt.Sprintf("%v", value)}, nil
	}
}

func normalizeFloat(key string, v float64) ([]string, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, NewValidationError("non-finite numbers are not allowed", key)
	}
	return []string{strconv.FormatFloat(v, 'f', -1, 64)}, nil
}
