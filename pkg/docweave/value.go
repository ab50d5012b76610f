package docweave

import (
	"fmt"
	"reflect"
	"strconv"
)

// isTruthy computes conditional truthiness: nil is false, booleans are
// themselves, numeric zero is false, empty strings, sequences and
// mappings are false, anything else resolves to true.
func isTruthy(val interface{}) bool {
	if val == nil {
		return false
	}

	switch v := val.(type) {
	case bool:
		return v
	case int, int8, int16, int32, int64:
		return reflect.ValueOf(v).Int() != 0
	case uint, uint8, uint16, uint32, uint64:
		return reflect.ValueOf(v).Uint() != 0
	case float32, float64:
		return reflect.ValueOf(v).Float() != 0
	case string:
		return v != ""
	case []interface{}:
		return len(v) > 0
	case map[string]interface{}:
		return len(v) > 0
	case TemplateData:
		return len(v) > 0
	}

	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return false
		}
		return isTruthy(rv.Elem().Interface())
	default:
		return true
	}
}

// sequenceItems converts a resolved loop value to an ordered item
// slice. Only slices and arrays qualify; strings and maps do not carry
// a defined iteration order for document expansion and are rejected.
func sequenceItems(val interface{}) ([]interface{}, bool) {
	if val == nil {
		return nil, false
	}

	if items, ok := val.([]interface{}); ok {
		return items, true
	}

	rv := reflect.ValueOf(val)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}

	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}

	items := make([]interface{}, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}

// FormatValue converts a resolved value to its textual form. Floats
// use the shortest representation that survives a round trip, so
// 999.00 renders as "999" and 19.99 stays "19.99".
func FormatValue(value interface{}) string {
	if value == nil {
		return ""
	}

	switch v := value.(type) {
	case string:
		return v
	case int, int8, int16, int32, int64:
		return fmt.Sprintf("%d", v)
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', 10, 32)
	case float64:
		return strconv.FormatFloat(v, 'g', 15, 64)
	case bool:
		return strconv.FormatBool(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
