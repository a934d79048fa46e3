package widget

import (
	"html"
	"strings"
	"text/template"
)

// PayloadSuffix is appended to the mount id to form the payload element id.
const PayloadSuffix = "-props"

func (r *Renderer) inlineFragment(component, id string, payload []byte) Fragment {
	entry := r.registry + "." + component
	literal := EscapeJSString(string(payload))

	var b strings.Builder
	b.WriteString(`<div id="`)
	b.WriteString(html.EscapeString(id))
	b.WriteString("\"></div>\n")
	b.WriteString("<script type=\"text/javascript\">\n")
	b.WriteString("  " + entry + ".init('" + literal + "');\n")
	b.WriteString("  " + entry + ".render();\n")
	b.WriteString("</script>")
	return Fragment(b.String())
}

func (r *Renderer) loaderFragment(component, id string, payload []byte) Fragment {
	entry := r.registry + "." + component

	var b strings.Builder
	b.WriteString("<div id='")
	b.WriteString(html.EscapeString(id))
	b.WriteString("'></div><script type='text/javascript'>")
	b.WriteString(entry + ".init('" + EscapeJSString(string(payload)) + "');")
	b.WriteString(entry + ".render()")
	b.WriteString("</script>")
	return Fragment(b.String())
}

func (r *Renderer) payloadFragment(component, id string, payload []byte) Fragment {
	entry := r.registry + "." + component
	payloadID := id + PayloadSuffix

	var b strings.Builder
	b.WriteString(`<div id="`)
	b.WriteString(html.EscapeString(id))
	b.WriteString("\"></div>\n")
	b.WriteString(`<script id="`)
	b.WriteString(html.EscapeString(payloadID))
	b.WriteString(`" type="application/json">`)
	b.Write(payload)
	b.WriteString("</script>\n")
	b.WriteString("<script type=\"text/javascript\">\n")
	b.WriteString("  " + entry + ".init(document.getElementById('" + template.JSEscapeString(payloadID) + "').textContent);\n")
	b.WriteString("  " + entry + ".render();\n")
	b.WriteString("</script>")
	return Fragment(b.String())
}
