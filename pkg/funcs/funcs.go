// Package funcs exposes the widget renderer to html/template.
//
//	{{ reactWidget "Chart" "id" "sales" "props" .Props "color" "red" }}
//	{{ reactRender "Counter" "props" (dict "count" 1) }}
//	{{ reactComponent "Sidebar" "open" true }}
//
// The first argument names the component. The rest are key/value pairs: "id"
// sets the mount id, "props" supplies the props mapping and every other pair
// becomes a keyword argument. Argument errors surface when the template
// executes.
package funcs

import (
	"errors"
	"fmt"
	"html/template"

	"github.com/goliatone/go-reactmount/pkg/widget"
)

// Function names installed by FuncMap.
const (
	FuncRender    = "reactRender"
	FuncWidget    = "reactWidget"
	FuncComponent = "reactComponent"
	FuncDict      = "dict"
)

const (
	keyID    = "id"
	keyProps = "props"
)

// ErrOddArguments is returned when key/value arguments do not pair up.
var ErrOddArguments = errors.New("funcs: odd number of key/value arguments")

// FuncMap returns the helpers bound to r. A nil renderer means
// widget.Default().
func FuncMap(r *widget.Renderer) template.FuncMap {
	if r == nil {
		r = widget.Default()
	}
	return template.FuncMap{
		FuncRender:    helper(r, widget.VariantInline),
		FuncWidget:    helper(r, widget.VariantWidget),
		FuncComponent: helper(r, widget.VariantLoader),
		FuncDict:      Dict,
	}
}

// Dict builds a mapping from key/value pairs.
func Dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, ErrOddArguments
	}
	out := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("funcs: key at position %d must be a string, got %T", i, pairs[i])
		}
		out[key] = pairs[i+1]
	}
	return out, nil
}

func helper(r *widget.Renderer, variant widget.Variant) func(string, ...any) (template.HTML, error) {
	return func(component string, pairs ...any) (template.HTML, error) {
		req, err := request(component, pairs)
		if err != nil {
			return "", err
		}
		frag, err := r.RenderVariant(variant, req)
		if err != nil {
			return "", err
		}
		return frag.HTML(), nil
	}
}

func request(component string, pairs []any) (widget.Request, error) {
	req := widget.Request{Component: component}

	args, err := Dict(pairs...)
	if err != nil {
		return req, err
	}

	if raw, ok := args[keyID]; ok {
		delete(args, keyID)
		id, ok := raw.(string)
		if !ok {
			return req, fmt.Errorf("funcs: %q must be a string, got %T", keyID, raw)
		}
		req.ID = id
	}
	if raw, ok := args[keyProps]; ok {
		delete(args, keyProps)
		props, err := widget.PropsFrom(raw)
		if err != nil {
			return req, err
		}
		req.Props = props
	}
	if len(args) > 0 {
		req.Kwargs = args
	}
	return req, nil
}
