package widget

import (
	"bytes"
	"html"
	"reflect"
	"strings"
)

var jsonHTMLReplacer = strings.NewReplacer(
	"<", `\u003c`,
	">", `\u003e`,
	"&", `\u0026`,
	"\u2028", `\u2028`,
	"\u2029", `\u2029`,
)

// EscapeJSON makes an encoded JSON document safe to place inside an HTML
// element or script body. The characters it rewrites can only appear inside
// JSON strings, where the \u form decodes to the same value, so no "</"
// sequence survives.
func EscapeJSON(payload []byte) []byte {
	if !bytes.ContainsAny(payload, "<>&\u2028\u2029") {
		return payload
	}
	return []byte(jsonHTMLReplacer.Replace(string(payload)))
}

var jsStringReplacer = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
)

// EscapeJSString escapes s for a single-quoted JavaScript string literal.
// Apply it after EscapeJSON so the literal evaluates back to the JSON text.
func EscapeJSString(s string) string {
	return jsStringReplacer.Replace(s)
}

// EscapeLeaves returns a copy of v where every string leaf of nested maps and
// slices is HTML-escaped. Container shapes and non-string leaves are kept.
func EscapeLeaves(v any) any {
	switch value := v.(type) {
	case nil:
		return nil
	case string:
		return html.EscapeString(value)
	case map[string]any:
		out := make(map[string]any, len(value))
		for key, item := range value {
			out[key] = EscapeLeaves(item)
		}
		return out
	case []any:
		out := make([]any, len(value))
		for i, item := range value {
			out[i] = EscapeLeaves(item)
		}
		return out
	case []string:
		out := make([]string, len(value))
		for i, item := range value {
			out[i] = html.EscapeString(item)
		}
		return out
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String || rv.IsNil() {
			return v
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = EscapeLeaves(iter.Value().Interface())
		}
		return out
	case reflect.Slice:
		if rv.IsNil() || rv.Type().Elem().Kind() == reflect.Uint8 {
			return v
		}
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = EscapeLeaves(rv.Index(i).Interface())
		}
		return out
	}
	return v
}
