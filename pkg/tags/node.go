package tags

import (
	"bytes"
	"fmt"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-reactmount/pkg/widget"
)

type widgetNode struct {
	sig     signature
	start   *pongo2.Token
	bound   map[string]pongo2.IEvaluator
	kwargs  []kwarg
	wrapper *pongo2.NodeWrapper
}

func (n *widgetNode) Execute(ctx *pongo2.ExecutionContext, writer pongo2.TemplateWriter) *pongo2.Error {
	req, perr := n.request(ctx)
	if perr != nil {
		return perr
	}

	if n.wrapper != nil {
		var children bytes.Buffer
		if err := n.wrapper.Execute(ctx, &children); err != nil {
			return err
		}
		req.Children = children.String()
	}

	frag, err := RendererFrom(ctx).RenderVariant(n.sig.variant, req)
	if err != nil {
		return n.executionError(ctx, err)
	}
	if _, err := writer.WriteString(frag.String()); err != nil {
		return n.executionError(ctx, err)
	}
	return nil
}

func (n *widgetNode) request(ctx *pongo2.ExecutionContext) (widget.Request, *pongo2.Error) {
	var req widget.Request

	component, perr := n.evaluate(ctx, n.sig.params[0])
	if perr != nil {
		return req, perr
	}
	if component != nil && !component.IsNil() {
		req.Component = component.String()
	}

	id, perr := n.evaluate(ctx, paramHTMLID)
	if perr != nil {
		return req, perr
	}
	if id != nil && !id.IsNil() {
		req.ID = id.String()
	}

	props, perr := n.evaluate(ctx, paramProps)
	if perr != nil {
		return req, perr
	}
	if props != nil {
		mapping, err := widget.PropsFrom(props.Interface())
		if err != nil {
			return req, n.executionError(ctx, err)
		}
		req.Props = mapping
	}

	if len(n.kwargs) > 0 {
		req.Kwargs = make(map[string]any, len(n.kwargs))
		for _, kw := range n.kwargs {
			value, err := kw.expr.Evaluate(ctx)
			if err != nil {
				return req, err
			}
			req.Kwargs[kw.name] = value.Interface()
		}
	}
	return req, nil
}

func (n *widgetNode) evaluate(ctx *pongo2.ExecutionContext, param string) (*pongo2.Value, *pongo2.Error) {
	expr, ok := n.bound[param]
	if !ok {
		return nil, nil
	}
	return expr.Evaluate(ctx)
}

func (n *widgetNode) executionError(ctx *pongo2.ExecutionContext, err error) *pongo2.Error {
	perr := ctx.OrigError(fmt.Errorf("%s: %w", n.sig.name, err), n.start)
	perr.Sender = "tag:" + n.sig.name
	return perr
}
