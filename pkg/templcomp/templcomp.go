// Package templcomp wraps widget fragments as templ components.
package templcomp

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/goliatone/go-reactmount/pkg/widget"
)

// Widget renders req with the renderer's configured variant.
func Widget(r *widget.Renderer, req widget.Request) templ.Component {
	if r == nil {
		r = widget.Default()
	}
	return WidgetVariant(r, r.Variant(), req)
}

// WidgetVariant renders req with the given variant. The id is resolved on
// each render, so a component reused on a page gets a fresh id unless req
// names one.
func WidgetVariant(r *widget.Renderer, variant widget.Variant, req widget.Request) templ.Component {
	if r == nil {
		r = widget.Default()
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		frag, err := r.RenderVariant(variant, req)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, frag.String())
		return err
	})
}

// Block renders req as a block widget whose children are the output of
// children.
func Block(r *widget.Renderer, req widget.Request, children templ.Component) templ.Component {
	if r == nil {
		r = widget.Default()
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		local := req
		if children != nil {
			body, err := templ.ToGoHTML(ctx, children)
			if err != nil {
				return err
			}
			local.Children = string(body)
		}
		return WidgetVariant(r, widget.VariantBlock, local).Render(ctx, w)
	})
}
