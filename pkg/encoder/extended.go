package encoder

import (
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Extended marshals props after normalizing common server-side types: times
// are ISO-8601 with millisecond precision, durations use the ISO-8601
// duration form, and UUIDs and decimals are emitted as strings.
var Extended Encoder = Func(func(v any) ([]byte, error) {
	return json.Marshal(normalize(v))
})

func normalize(v any) any {
	switch value := v.(type) {
	case nil:
		return nil
	case time.Time:
		return FormatTime(value)
	case *time.Time:
		if value == nil {
			return nil
		}
		return FormatTime(*value)
	case time.Duration:
		return FormatDuration(value)
	case uuid.UUID:
		return value.String()
	case decimal.Decimal:
		return value.String()
	case json.Marshaler:
		return value
	case map[string]any:
		out := make(map[string]any, len(value))
		for key, item := range value {
			out[key] = normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(value))
		for i, item := range value {
			out[i] = normalize(item)
		}
		return out
	}

	rv := reflect.ValueOf(v)
	if (rv.Kind() == reflect.Map || rv.Kind() == reflect.Slice) && rv.IsNil() {
		return nil
	}
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return v
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = normalize(iter.Value().Interface())
		}
		return out
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return v
		}
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = normalize(rv.Index(i).Interface())
		}
		return out
	}
	return v
}

// FormatTime renders t as ISO-8601. Microseconds are truncated to
// milliseconds and a zero offset becomes "Z".
func FormatTime(t time.Time) string {
	out := t.Format("2006-01-02T15:04:05")
	if micro := t.Nanosecond() / int(time.Microsecond); micro != 0 {
		out += fmt.Sprintf(".%03d", micro/1000)
	}
	if _, offset := t.Zone(); offset == 0 {
		return out + "Z"
	}
	return out + t.Format("-07:00")
}

// FormatDuration renders d as an ISO-8601 duration, e.g. "P1DT02H03M04S".
func FormatDuration(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}

	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	d -= minutes * time.Minute
	seconds := d / time.Second
	d -= seconds * time.Second
	micro := d / time.Microsecond

	fraction := ""
	if micro != 0 {
		fraction = fmt.Sprintf(".%06d", int64(micro))
	}
	return fmt.Sprintf("%sP%dDT%02dH%02dM%02d%sS", sign, int64(days), int64(hours), int64(minutes), int64(seconds), fraction)
}
