package template

import (
	"io"
)

// TemplateRenderer is the engine seam used by the facade and the CLI. Any
// engine that can render named templates and template strings fits.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}

// Compiler is implemented by engines that can parse a template without
// executing it, surfacing syntax errors early.
type Compiler interface {
	Compile(templateContent string) error
	CompileTemplate(name string) error
}
