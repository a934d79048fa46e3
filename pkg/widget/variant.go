package widget

import (
	"fmt"
	"strings"
)

// Variant selects one of the helper shapes: how the props are embedded, how
// props and kwargs merge, and how a missing id is filled in.
type Variant int

const (
	// VariantWidget emits a JSON payload element next to the mount point and
	// lets keyword arguments override props.
	VariantWidget Variant = iota
	// VariantInline embeds the props as a single-quoted JS string literal.
	VariantInline
	// VariantBlock is VariantWidget with props overriding keyword arguments,
	// used by block tags that pass their rendered body as children.
	VariantBlock
	// VariantLoader is the legacy inline form: the id defaults to the
	// component name and is stored under the "id" prop.
	VariantLoader
)

// LoaderIDProp is the prop key VariantLoader stores the id under.
const LoaderIDProp = "id"

type variantSpec struct {
	name    string
	aliases []string
	payload bool
	merge   MergePolicy
	idProp  string
	nameID  bool
}

var variantSpecs = map[Variant]variantSpec{
	VariantWidget: {name: "widget", aliases: []string{"react_widget", "payload"}, payload: true, merge: KwargsOverride},
	VariantInline: {name: "inline", aliases: []string{"render_react"}, merge: KwargsOverride},
	VariantBlock:  {name: "block", aliases: []string{"react"}, payload: true, merge: PropsOverride},
	VariantLoader: {name: "loader", aliases: []string{"react_component"}, merge: KwargsOverride, idProp: LoaderIDProp, nameID: true},
}

func (v Variant) String() string {
	if spec, ok := variantSpecs[v]; ok {
		return spec.name
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// Merge reports the merge policy the variant applies.
func (v Variant) Merge() MergePolicy {
	return variantSpecs[v].merge
}

// ParseVariant resolves a variant by name or by the template tag it backs.
func ParseVariant(name string) (Variant, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for variant, spec := range variantSpecs {
		if spec.name == key {
			return variant, nil
		}
		for _, alias := range spec.aliases {
			if alias == key {
				return variant, nil
			}
		}
	}
	return 0, fmt.Errorf("widget: unknown variant %q", name)
}
