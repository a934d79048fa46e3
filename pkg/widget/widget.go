// Package widget renders mount points for client-side widgets: a container
// element, the serialized props, and the bootstrap script that calls
// init/render on the browser registry entry named after the component.
package widget

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-reactmount/pkg/encoder"
)

const (
	// DefaultRegistry is the browser global holding the component entries.
	DefaultRegistry = "window.reactComponents"
	// DefaultIDProp is the prop key carrying the mount id.
	DefaultIDProp = "html_id"
	// ChildrenProp is the prop key carrying rendered block content.
	ChildrenProp = "children"
)

var (
	identifierPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)
	registryPattern   = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*(\.[A-Za-z_$][A-Za-z0-9_$]*)*$`)
)

// Request is a single render call.
type Request struct {
	// Component names the registry entry. It is emitted unescaped as a
	// property access, so it must be a JavaScript identifier.
	Component string
	// ID is the mount id. When empty the id is taken from the props or
	// generated.
	ID string
	// Props is the explicit properties mapping.
	Props map[string]any
	// Kwargs holds keyword arguments merged with Props.
	Kwargs map[string]any
	// Children is rendered markup passed to the widget as the children prop.
	Children string
}

// Option customises the renderer configuration.
type Option func(*config)

type config struct {
	encoder      encoder.Encoder
	registry     string
	variant      Variant
	idProp       string
	newID        func() string
	escapeLeaves bool
	children     *bluemonday.Policy
}

// WithEncoder overrides the props serializer.
func WithEncoder(enc encoder.Encoder) Option {
	return func(cfg *config) {
		if enc != nil {
			cfg.encoder = enc
		}
	}
}

// WithRegistry sets the browser expression holding the component entries
// (e.g. "window.widgets").
func WithRegistry(registry string) Option {
	return func(cfg *config) {
		cfg.registry = strings.TrimSpace(registry)
	}
}

// WithVariant sets the variant used by Render.
func WithVariant(variant Variant) Option {
	return func(cfg *config) {
		cfg.variant = variant
	}
}

// WithIDProp changes the prop key that carries the mount id. VariantLoader
// always uses LoaderIDProp.
func WithIDProp(key string) Option {
	return func(cfg *config) {
		cfg.idProp = strings.TrimSpace(key)
	}
}

// WithIDGenerator replaces the random id source.
func WithIDGenerator(fn func() string) Option {
	return func(cfg *config) {
		if fn != nil {
			cfg.newID = fn
		}
	}
}

// WithEscapedStrings HTML-escapes every string leaf of the props before
// serialization.
func WithEscapedStrings(enabled bool) Option {
	return func(cfg *config) {
		cfg.escapeLeaves = enabled
	}
}

// WithChildrenPolicy sanitizes block children with the given policy.
func WithChildrenPolicy(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		cfg.children = policy
	}
}

// Renderer turns render requests into HTML fragments. It holds no mutable
// state and is safe for concurrent use.
type Renderer struct {
	encoder      encoder.Encoder
	registry     string
	variant      Variant
	idProp       string
	newID        func() string
	escapeLeaves bool
	children     *bluemonday.Policy
}

// New constructs a renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		encoder:  encoder.Extended,
		registry: DefaultRegistry,
		variant:  VariantWidget,
		idProp:   DefaultIDProp,
		newID:    uuid.NewString,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if !ValidRegistry(cfg.registry) {
		return nil, fmt.Errorf("widget: registry %q is not a JavaScript property path", cfg.registry)
	}
	if cfg.idProp == "" {
		return nil, fmt.Errorf("widget: id prop key required")
	}
	if _, ok := variantSpecs[cfg.variant]; !ok {
		return nil, fmt.Errorf("widget: unknown variant %s", cfg.variant)
	}

	return &Renderer{
		encoder:      cfg.encoder,
		registry:     cfg.registry,
		variant:      cfg.variant,
		idProp:       cfg.idProp,
		newID:        cfg.newID,
		escapeLeaves: cfg.escapeLeaves,
		children:     cfg.children,
	}, nil
}

// MustNew is New that panics on error.
func MustNew(options ...Option) *Renderer {
	r, err := New(options...)
	if err != nil {
		panic(err)
	}
	return r
}

var defaultRenderer = MustNew()

// Default returns the renderer built with default options.
func Default() *Renderer {
	return defaultRenderer
}

// Variant reports the variant used by Render.
func (r *Renderer) Variant() Variant {
	return r.variant
}

// Registry reports the browser registry expression.
func (r *Renderer) Registry() string {
	return r.registry
}

// ValidRegistry reports whether expr is a dotted JavaScript property path.
func ValidRegistry(expr string) bool {
	return registryPattern.MatchString(expr)
}

// ValidateComponent checks that name can be emitted as a property access on
// the registry.
func ValidateComponent(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrMissingComponent
	}
	if !identifierPattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidComponent, name)
	}
	return nil
}

// Render renders req with the renderer's variant.
func (r *Renderer) Render(req Request) (Fragment, error) {
	return r.RenderVariant(r.variant, req)
}

// RenderVariant renders req with the given variant.
func (r *Renderer) RenderVariant(variant Variant, req Request) (Fragment, error) {
	spec, ok := variantSpecs[variant]
	if !ok {
		return "", fmt.Errorf("widget: unknown variant %s", variant)
	}
	if err := ValidateComponent(req.Component); err != nil {
		return "", err
	}

	idProp := r.idProp
	if spec.idProp != "" {
		idProp = spec.idProp
	}

	props := MergeProps(req.Props, req.Kwargs, spec.merge)
	id := r.resolveID(spec, idProp, req, props)

	if r.escapeLeaves {
		props = EscapeLeaves(props).(map[string]any)
	}
	props[idProp] = id
	if req.Children != "" {
		children := req.Children
		if r.children != nil {
			children = r.children.Sanitize(children)
		}
		props[ChildrenProp] = children
	}

	payload, err := r.encoder.Encode(props)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSerialize, err)
	}
	payload = EscapeJSON(payload)

	switch {
	case spec.payload:
		return r.payloadFragment(req.Component, id, payload), nil
	case spec.nameID:
		return r.loaderFragment(req.Component, id, payload), nil
	default:
		return r.inlineFragment(req.Component, id, payload), nil
	}
}

// EncodeProps serializes v with the renderer's encoder and escapes the result
// for embedding in an HTML element or script body.
func (r *Renderer) EncodeProps(v any) (string, error) {
	payload, err := r.encoder.Encode(v)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSerialize, err)
	}
	return string(EscapeJSON(payload)), nil
}

func (r *Renderer) resolveID(spec variantSpec, idProp string, req Request, props map[string]any) string {
	if id := strings.TrimSpace(req.ID); id != "" {
		return id
	}
	if id := propID(props[idProp]); id != "" {
		return id
	}
	if spec.nameID {
		return req.Component
	}
	return r.newID()
}

// propID returns the trimmed id carried in a props value. Non-string values
// are formatted with fmt.Sprint.
func propID(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(id)
	default:
		return strings.TrimSpace(fmt.Sprint(id))
	}
}
