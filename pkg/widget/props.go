package widget

import (
	"fmt"
	"reflect"
)

// MergePolicy decides which source wins when props and keyword arguments
// share a key.
type MergePolicy int

const (
	// KwargsOverride applies keyword arguments on top of the props mapping.
	KwargsOverride MergePolicy = iota
	// PropsOverride applies the props mapping on top of keyword arguments.
	PropsOverride
)

func (p MergePolicy) String() string {
	switch p {
	case KwargsOverride:
		return "kwargs-override"
	case PropsOverride:
		return "props-override"
	default:
		return fmt.Sprintf("MergePolicy(%d)", int(p))
	}
}

// MergeProps combines props and kwargs into a new mapping. Neither input is
// modified.
func MergeProps(props, kwargs map[string]any, policy MergePolicy) map[string]any {
	merged := make(map[string]any, len(props)+len(kwargs))
	base, top := props, kwargs
	if policy == PropsOverride {
		base, top = kwargs, props
	}
	for key, value := range base {
		merged[key] = value
	}
	for key, value := range top {
		merged[key] = value
	}
	return merged
}

// PropsFrom converts a host template value into a props mapping. Named map
// types and maps with non-interface values are copied into map[string]any;
// nil yields an empty mapping.
func PropsFrom(v any) (map[string]any, error) {
	switch value := v.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		out := make(map[string]any, len(value))
		for key, item := range value {
			out[key] = item
		}
		return out, nil
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return map[string]any{}, nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("%w: got %T", ErrInvalidProps, v)
	}

	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, nil
}
