package tags

import (
	"fmt"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-reactmount/pkg/widget"
)

type kwarg struct {
	name string
	expr pongo2.IEvaluator
}

func (sig signature) parse(doc *pongo2.Parser, start *pongo2.Token, arguments *pongo2.Parser) (pongo2.INodeTag, *pongo2.Error) {
	node := &widgetNode{
		sig:   sig,
		start: start,
		bound: make(map[string]pongo2.IEvaluator, len(sig.params)),
	}

	if arguments.Remaining() == 0 {
		return nil, syntaxError(arguments, start, sig.name, nil,
			"'%s' takes at least one argument, a React component name.", sig.name)
	}

	positional := 0
	seenKeyword := false
	for arguments.Remaining() > 0 {
		if arguments.PeekTypeN(0, pongo2.TokenIdentifier) != nil && arguments.PeekN(1, pongo2.TokenSymbol, "=") != nil {
			nameToken := arguments.Current()
			arguments.ConsumeN(2)
			expr, err := arguments.ParseExpression()
			if err != nil {
				return nil, err
			}
			seenKeyword = true
			if perr := node.bindKeyword(arguments, nameToken, expr); perr != nil {
				return nil, perr
			}
			continue
		}

		token := arguments.Current()
		if seenKeyword {
			return nil, syntaxError(arguments, token, sig.name, nil,
				"'%s' received a positional argument after keyword arguments: %q", sig.name, token.Val)
		}
		if positional >= sig.positional {
			if sig.block {
				return nil, syntaxError(arguments, token, sig.name, nil,
					"'%s' received an invalid token: %q", sig.name, token.Val)
			}
			return nil, syntaxError(arguments, token, sig.name, nil,
				"'%s' received too many positional arguments", sig.name)
		}

		before := arguments.Remaining()
		expr, err := arguments.ParseExpression()
		if err != nil {
			return nil, err
		}
		if positional == 0 && token.Typ == pongo2.TokenString && before-arguments.Remaining() == 1 {
			if verr := widget.ValidateComponent(token.Val); verr != nil {
				return nil, syntaxError(arguments, token, sig.name, verr, "%v", verr)
			}
		}
		node.bound[sig.params[positional]] = expr
		positional++
	}

	if _, ok := node.bound[sig.params[0]]; !ok {
		return nil, syntaxError(arguments, start, sig.name, nil,
			"'%s' takes at least one argument, a React component name.", sig.name)
	}

	if sig.block {
		wrapper, endargs, err := doc.WrapUntilTag(TagEndReact)
		if err != nil {
			return nil, err
		}
		if endargs.Count() > 0 {
			return nil, syntaxError(endargs, nil, sig.name, nil, "'%s' takes no arguments.", TagEndReact)
		}
		node.wrapper = wrapper
	}

	return node, nil
}

func (n *widgetNode) bindKeyword(arguments *pongo2.Parser, nameToken *pongo2.Token, expr pongo2.IEvaluator) *pongo2.Error {
	name := nameToken.Val
	for _, param := range n.sig.params {
		if param != name {
			continue
		}
		if _, exists := n.bound[name]; exists {
			return syntaxError(arguments, nameToken, n.sig.name, nil,
				"'%s' received multiple values for keyword argument '%s'", n.sig.name, name)
		}
		n.bound[name] = expr
		return nil
	}

	if !n.sig.kwargs {
		return syntaxError(arguments, nameToken, n.sig.name, nil,
			"'%s' received unexpected keyword argument '%s'", n.sig.name, name)
	}
	for _, existing := range n.kwargs {
		if existing.name == name {
			return syntaxError(arguments, nameToken, n.sig.name, nil,
				"'%s' received multiple values for keyword argument '%s'", n.sig.name, name)
		}
	}
	n.kwargs = append(n.kwargs, kwarg{name: name, expr: expr})
	return nil
}

// syntaxError builds a compile-time error whose OrigError wraps
// widget.ErrSyntax (and cause, when given).
func syntaxError(p *pongo2.Parser, token *pongo2.Token, tag string, cause error, format string, args ...any) *pongo2.Error {
	msg := fmt.Sprintf(format, args...)
	perr := p.Error(msg, token)
	perr.Sender = "tag:" + tag
	if cause != nil {
		perr.OrigError = fmt.Errorf("%w: %w", widget.ErrSyntax, cause)
	} else {
		perr.OrigError = fmt.Errorf("%w: %s", widget.ErrSyntax, msg)
	}
	return perr
}
