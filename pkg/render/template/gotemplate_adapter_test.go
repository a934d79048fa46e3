package template_test

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/flosch/pongo2/v6"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-reactmount/pkg/encoder"
	"github.com/goliatone/go-reactmount/pkg/render/template/gotemplate"
	"github.com/goliatone/go-reactmount/pkg/testsupport"
	"github.com/goliatone/go-reactmount/pkg/widget"
)

//go:embed testdata/templates/*.tpl
var embeddedTemplates embed.FS

func TestGoTemplateEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})

	golden := filepath.Join("testdata", "hello.golden")
	if testsupport.WriteMaybeGolden(t, golden, []byte(result)) {
		return
	}
	want := testsupport.MustReadGoldenString(t, golden)
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("render template mismatch writer\nwant: %q\n got: %q", want, written)
	}
}

func TestGoTemplateEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-global", nil, w)
	})

	golden := filepath.Join("testdata", "use-global.golden")
	if testsupport.WriteMaybeGolden(t, golden, []byte(result)) {
		return
	}
	want := testsupport.MustReadGoldenString(t, golden)
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("render template mismatch writer\nwant: %q\n got: %q", want, written)
	}
}

func TestGoTemplateEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		if input == nil {
			return "", nil
		}
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-filter", map[string]any{"name": "Ada"}, w)
	})

	golden := filepath.Join("testdata", "use-filter.golden")
	if testsupport.WriteMaybeGolden(t, golden, []byte(result)) {
		return
	}
	want := testsupport.MustReadGoldenString(t, golden)
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("render template mismatch writer\nwant: %q\n got: %q", want, written)
	}
}

func TestGoTemplateEngine_WidgetTags(t *testing.T) {
	renderer, err := widget.New(widget.WithIDGenerator(testsupport.FixedID("unused")))
	if err != nil {
		t.Fatalf("widget.New: %v", err)
	}
	engine := newEngine(t, gotemplate.WithWidgetRenderer(renderer))
	if engine.WidgetRenderer() != renderer {
		t.Fatalf("engine did not keep the configured renderer")
	}

	out, err := engine.RenderTemplate("dashboard", map[string]any{
		"props": map[string]any{"count": 5, "step": 1},
		"title": "  Totals & more  ",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	mount := testsupport.ParseMount(t, out)
	counter := mount.Payload(t, "counter"+widget.PayloadSuffix)
	wantCounter := map[string]any{"count": float64(5), "step": float64(2), "html_id": "counter"}
	if diff := cmp.Diff(wantCounter, counter); diff != "" {
		t.Fatalf("counter payload mismatch (-want +got):\n%s", diff)
	}

	panel := mount.Payload(t, "panel"+widget.PayloadSuffix)
	if got := panel[widget.ChildrenProp]; got != "<p>Totals &amp; more</p>" {
		t.Fatalf("panel children = %q", got)
	}
	if strings.Contains(out, "unused") {
		t.Fatalf("explicit ids should not consult the generator:\n%s", out)
	}
}

func TestGoTemplateEngine_RenderStringDetectsContent(t *testing.T) {
	engine := newEngine(t, gotemplate.WithWidgetRenderer(
		widget.MustNew(widget.WithIDGenerator(testsupport.FixedID("inline-1"))),
	))

	out, err := engine.Render(`{% render_react "Clock" %}`, nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := testsupport.ParseMount(t, out).ID; got != "inline-1" {
		t.Fatalf("container id = %q", got)
	}
}

func TestGoTemplateEngine_Compile(t *testing.T) {
	engine := newEngine(t)

	if err := engine.Compile(`{% react_widget "Counter" step=1 %}`); err != nil {
		t.Fatalf("compile valid template: %v", err)
	}

	err := engine.Compile(`{% react_widget "Counter" html_id="a" html_id="b" %}`)
	assertSyntaxError(t, err)

	if err := engine.CompileTemplate("hello"); err != nil {
		t.Fatalf("compile hello: %v", err)
	}
	assertSyntaxError(t, engine.CompileTemplate("broken"))
}

func TestGoTemplateEngine_ReactProps(t *testing.T) {
	engine := newEngine(t)

	out, err := engine.RenderString(`<script>var p = {{ react_props(props) }};</script>`, map[string]any{
		"props": map[string]any{"note": "</script>"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `<script>var p = {"note":"\u003c/script\u003e"};</script>`
	if out != want {
		t.Fatalf("react_props mismatch\nwant: %q\n got: %q", want, out)
	}
}

func TestGoTemplateEngine_ReactPropsUsesEngineEncoder(t *testing.T) {
	custom := encoder.Func(func(any) ([]byte, error) {
		return []byte(`"CUSTOM"`), nil
	})
	engine := newEngine(t, gotemplate.WithWidgetRenderer(widget.MustNew(widget.WithEncoder(custom))))

	out, err := engine.RenderString(`{{ react_props(data) }}`, map[string]any{"data": map[string]any{"a": 1}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != `"CUSTOM"` {
		t.Fatalf("react_props ignored the engine encoder: %q", out)
	}

	plain := newEngine(t)
	out, err = plain.RenderString(`{{ react_props(data) }}`, map[string]any{"data": map[string]any{"a": 1}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != `{"a":1}` {
		t.Fatalf("default engine react_props = %q", out)
	}
}

func TestGoTemplateEngine_PropsMatchRenderer(t *testing.T) {
	renderer := widget.MustNew()
	engine := newEngine(t, gotemplate.WithWidgetRenderer(renderer))

	props := map[string]any{
		"at":   time.Date(2024, 1, 2, 3, 4, 5, 123456000, time.UTC),
		"wait": 90 * time.Minute,
		"big":  int64(1<<53 + 1),
		"tags": []any{"a", int64(1<<53 + 3)},
	}

	out, err := engine.RenderString(`{% react_widget "Clock" html_id="clock" props=props %}`, map[string]any{"props": props})
	if err != nil {
		t.Fatalf("engine render: %v", err)
	}
	want, err := renderer.RenderVariant(widget.VariantWidget, widget.Request{
		Component: "Clock",
		ID:        "clock",
		Props:     props,
	})
	if err != nil {
		t.Fatalf("renderer render: %v", err)
	}
	if diff := cmp.Diff(want.String(), out); diff != "" {
		t.Fatalf("engine output differs from renderer (-want +got):\n%s", diff)
	}
	for _, fragment := range []string{`"at":"2024-01-02T03:04:05.123Z"`, `"wait":"P0DT01H30M00S"`, `"big":9007199254740993`} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %s in output:\n%s", fragment, out)
		}
	}
}

func TestGoTemplateEngine_StructData(t *testing.T) {
	engine := newEngine(t)

	type page struct {
		Title string `json:"title"`
	}
	out, err := engine.RenderString(`{{ page.title }}`, map[string]any{"page": page{Title: "Sales"}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "Sales" {
		t.Fatalf("struct field by json name = %q", out)
	}
}

func TestGoTemplateEngine_SerializeError(t *testing.T) {
	engine := newEngine(t)

	_, err := engine.RenderString(`{% react_widget "Clock" props=props %}`, map[string]any{
		"props": map[string]any{"ch": make(chan int)},
	})
	if !errors.Is(err, widget.ErrSerialize) {
		t.Fatalf("expected ErrSerialize, got %v", err)
	}
	var perr *pongo2.Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected *pongo2.Error in chain, got %T", err)
	}
}

func TestGoTemplateEngine_RequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without base dir or fs")
	}
}

func assertSyntaxError(t *testing.T, err error) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected compile error")
	}
	var perr *pongo2.Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected *pongo2.Error in chain, got %T: %v", err, err)
	}
	if !errors.Is(perr.OrigError, widget.ErrSyntax) {
		t.Fatalf("expected ErrSyntax, got %v", perr.OrigError)
	}
}

func newEngine(t *testing.T, options ...gotemplate.Option) *gotemplate.Engine {
	t.Helper()

	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}

	engine, err := gotemplate.New(append([]gotemplate.Option{gotemplate.WithFS(templatesFS)}, options...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}
