// Package tags registers the widget template tags with pongo2:
//
//	{% render_react "Counter" props %}
//	{% react_widget "Counter" html_id="counter" props=props step=2 %}
//	{% react_component "Counter" id="counter" step=2 %}
//	{% react "Panel" title="Hello" %}<p>children</p>{% endreact %}
//
// Argument errors are reported when the template is compiled. The renderer
// used at execution time is read from the context key ContextKey and falls
// back to widget.Default().
package tags

import (
	"fmt"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-reactmount/pkg/widget"
)

// ContextKey is the template context key holding the *widget.Renderer.
const ContextKey = "reactmount_renderer"

// Tag names.
const (
	TagRenderReact    = "render_react"
	TagReactWidget    = "react_widget"
	TagReactComponent = "react_component"
	TagReact          = "react"
	TagEndReact       = "endreact"
)

const (
	paramComponent = "component_name"
	paramHTMLID    = "html_id"
	paramProps     = "props"
)

type signature struct {
	name    string
	variant widget.Variant
	// params bind positionally in order or by keyword. The first one is
	// always the component name.
	params []string
	// positional caps how many params may be passed positionally.
	positional int
	kwargs     bool
	block      bool
}

var signatures = []signature{
	{
		name:       TagRenderReact,
		variant:    widget.VariantInline,
		params:     []string{paramComponent, paramProps},
		positional: 2,
	},
	{
		name:       TagReactWidget,
		variant:    widget.VariantWidget,
		params:     []string{paramComponent, paramHTMLID, paramProps},
		positional: 3,
		kwargs:     true,
	},
	{
		name:       TagReactComponent,
		variant:    widget.VariantLoader,
		params:     []string{"comp"},
		positional: 1,
		kwargs:     true,
	},
	{
		name:       TagReact,
		variant:    widget.VariantBlock,
		params:     []string{"component", paramHTMLID, paramProps},
		positional: 1,
		kwargs:     true,
		block:      true,
	},
}

var (
	registerOnce sync.Once
	registerErr  error
)

// Register adds the tags to pongo2's global tag table. It is safe to call
// more than once; only the first call registers.
func Register() error {
	registerOnce.Do(func() {
		for i := range signatures {
			sig := signatures[i]
			if err := pongo2.RegisterTag(sig.name, sig.parse); err != nil {
				registerErr = fmt.Errorf("tags: register %q: %w", sig.name, err)
				return
			}
		}
	})
	return registerErr
}

// Names lists the registered tag names.
func Names() []string {
	names := make([]string, 0, len(signatures))
	for _, sig := range signatures {
		names = append(names, sig.name)
	}
	return names
}

// RendererFrom returns the renderer stored in the execution context, or the
// default renderer.
func RendererFrom(ctx *pongo2.ExecutionContext) *widget.Renderer {
	if ctx != nil {
		for _, scope := range []pongo2.Context{ctx.Private, ctx.Public} {
			if r, ok := scope[ContextKey].(*widget.Renderer); ok && r != nil {
				return r
			}
		}
	}
	return widget.Default()
}
