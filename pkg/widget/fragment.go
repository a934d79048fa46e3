package widget

import (
	"html/template"

	"github.com/google/safehtml"
	"github.com/google/safehtml/uncheckedconversions"
)

// Fragment is rendered widget markup. Every dynamic part has already been
// escaped for its context, so it can be marked safe for any host engine.
type Fragment string

// String returns the raw markup.
func (f Fragment) String() string {
	return string(f)
}

// HTML marks the fragment safe for html/template.
func (f Fragment) HTML() template.HTML {
	return template.HTML(f)
}

// SafeHTML marks the fragment safe for github.com/google/safehtml consumers.
func (f Fragment) SafeHTML() safehtml.HTML {
	return uncheckedconversions.HTMLFromStringKnownToSatisfyTypeContract(string(f))
}
