// Package reactmount embeds client-side React widgets in server-rendered
// HTML. Each render emits a container element, the serialized props and a
// bootstrap script calling init/render on the browser component registry.
//
// Quick start:
//
//	r, err := reactmount.New(config.Default())
//	frag, err := r.Render(reactmount.Request{Component: "Counter", Props: props})
//
// Template engines are wired through NewEngine (pongo2 tags), pkg/funcs
// (html/template) and pkg/templcomp (templ).
package reactmount

import (
	"fmt"

	"github.com/goliatone/go-reactmount/pkg/config"
	"github.com/goliatone/go-reactmount/pkg/encoder"
	"github.com/goliatone/go-reactmount/pkg/render/template/gotemplate"
	"github.com/goliatone/go-reactmount/pkg/widget"
)

// Request aliases widget.Request for callers using the root package only.
type Request = widget.Request

// Fragment aliases widget.Fragment.
type Fragment = widget.Fragment

// Settings aliases config.Settings.
type Settings = config.Settings

// Option configures New and NewEngine.
type Option func(*options)

type options struct {
	encoders *encoder.Registry
	widget   []widget.Option
}

// WithEncoders resolves Settings.JSONEncoder through encoders instead of the
// built-in registry.
func WithEncoders(encoders *encoder.Registry) Option {
	return func(o *options) {
		o.encoders = encoders
	}
}

// WithWidgetOptions appends renderer options applied after the settings.
func WithWidgetOptions(opts ...widget.Option) Option {
	return func(o *options) {
		o.widget = append(o.widget, opts...)
	}
}

// New checks settings and builds a renderer from them.
func New(settings Settings, opts ...Option) (*widget.Renderer, error) {
	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	widgetOpts, err := settings.Options(cfg.encoders)
	if err != nil {
		return nil, fmt.Errorf("reactmount: %w", err)
	}
	renderer, err := widget.New(append(widgetOpts, cfg.widget...)...)
	if err != nil {
		return nil, fmt.Errorf("reactmount: %w", err)
	}
	return renderer, nil
}

// NewEngine builds a pongo2 engine whose widget tags render with a renderer
// built from settings.
func NewEngine(settings Settings, engineOpts []gotemplate.Option, opts ...Option) (*gotemplate.Engine, error) {
	renderer, err := New(settings, opts...)
	if err != nil {
		return nil, err
	}
	all := append([]gotemplate.Option{}, engineOpts...)
	all = append(all, gotemplate.WithWidgetRenderer(renderer))
	return gotemplate.New(all...)
}

// Render renders req with the default renderer.
func Render(req Request) (Fragment, error) {
	return widget.Default().Render(req)
}
