package widget

import "errors"

var (
	// ErrSyntax marks errors raised while compiling a template that uses the
	// widget tags. Engine integrations wrap their compile errors with it.
	ErrSyntax = errors.New("widget: template syntax error")

	// ErrMissingComponent is returned when no component name was supplied.
	ErrMissingComponent = errors.New("widget: component name is required")

	// ErrInvalidComponent is returned for component names that cannot be
	// emitted as a JavaScript property access.
	ErrInvalidComponent = errors.New("widget: invalid component name")

	// ErrInvalidProps is returned when the props argument is not a mapping.
	ErrInvalidProps = errors.New("widget: props must be a mapping with string keys")

	// ErrSerialize wraps encoder failures.
	ErrSerialize = errors.New("widget: props are not serializable")
)
