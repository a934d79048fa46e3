package testsupport

import (
	"encoding/json"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

// Mount describes the parts of a rendered widget fragment that tests assert
// on. Scripts holds the text of every script element in document order.
type Mount struct {
	ID       string
	Scripts  []string
	Payloads map[string]string
}

// ParseMount parses markup with the HTML5 algorithm and collects the first
// div id, every script body, and the bodies of application/json scripts keyed
// by their id.
func ParseMount(t *testing.T, markup string) Mount {
	t.Helper()

	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("parse markup: %v", err)
	}

	mount := Mount{Payloads: make(map[string]string)}
	walk(doc, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		switch n.Data {
		case "div":
			if mount.ID == "" {
				mount.ID = attr(n, "id")
			}
		case "script":
			body := text(n)
			mount.Scripts = append(mount.Scripts, body)
			if attr(n, "type") == "application/json" {
				mount.Payloads[attr(n, "id")] = body
			}
		}
	})
	return mount
}

// Payload decodes the JSON payload element with the given id.
func (m Mount) Payload(t *testing.T, id string) map[string]any {
	t.Helper()

	raw, ok := m.Payloads[id]
	if !ok {
		t.Fatalf("payload %q not found (have %d payloads)", id, len(m.Payloads))
	}
	return DecodeJSON(t, raw)
}

// DecodeJSON unmarshals raw into a generic mapping.
func DecodeJSON(t *testing.T, raw string) map[string]any {
	t.Helper()

	var out map[string]any
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		t.Fatalf("decode payload %q: %v", raw, err)
	}
	return out
}

// Between returns the text between the first start marker and the following
// end marker.
func Between(t *testing.T, s, start, end string) string {
	t.Helper()

	i := strings.Index(s, start)
	if i < 0 {
		t.Fatalf("%q not found in %q", start, s)
	}
	rest := s[i+len(start):]
	j := strings.Index(rest, end)
	if j < 0 {
		t.Fatalf("%q not found after %q", end, start)
	}
	return rest[:j]
}

// UnescapeJSString reverses backslash escapes of a single-quoted JS literal.
func UnescapeJSString(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func text(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
