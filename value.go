package bridgez

import (
	"fmt"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
)

// attributeValue converts an OpenTracing tag or log field value into its
// native OpenTelemetry attribute representation. Types the attribute
// model supports (bool, signed integers, floats, strings) keep their
// type; everything else degrades to its string rendering. Total - no
// value is ever rejected.
func attributeValue(value interface{}) attribute.Value {
	switch v := value.(type) {
	case bool:
		return attribute.BoolValue(v)
	case int:
		return attribute.Int64Value(int64(v))
	case int8:
		return attribute.Int64Value(int64(v))
	case int16:
		return attribute.Int64Value(int64(v))
	case int32:
		return attribute.Int64Value(int64(v))
	case int64:
		return attribute.Int64Value(v)
	case uint:
		return attribute.StringValue(strconv.FormatUint(uint64(v), 10))
	case uint8:
		return attribute.Int64Value(int64(v))
	case uint16:
		return attribute.Int64Value(int64(v))
	case uint32:
		return attribute.Int64Value(int64(v))
	case uint64:
		// No unsigned attribute kind exists; render as decimal rather
		// than truncate large values into int64.
		return attribute.StringValue(strconv.FormatUint(v, 10))
	case float32:
		return attribute.Float64Value(float64(v))
	case float64:
		return attribute.Float64Value(v)
	case string:
		return attribute.StringValue(v)
	case nil:
		return attribute.StringValue("")
	case error:
		return attribute.StringValue(v.Error())
	case fmt.Stringer:
		return attribute.StringValue(v.String())
	default:
		return attribute.StringValue(fmt.Sprint(v))
	}
}

// stringValue renders an OpenTracing tag or log field value as a plain
// string: booleans as the "true"/"false" literals, numerics as decimal
// text, strings as themselves, nil as empty. Used wherever a value is
// compared against a reserved literal or embedded as an event name.
func stringValue(value interface{}) string {
	switch v := value.(type) {
	case bool:
		if v {
			return "true"
		}
		return "false"
	case int:
		return strconv.FormatInt(int64(v), 10)
	case int8:
		return strconv.FormatInt(int64(v), 10)
	case int16:
		return strconv.FormatInt(int64(v), 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint8:
		return strconv.FormatUint(uint64(v), 10)
	case uint16:
		return strconv.FormatUint(uint64(v), 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return v
	case nil:
		return ""
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
