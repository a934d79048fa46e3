package reactmount

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-reactmount/pkg/config"
	"github.com/goliatone/go-reactmount/pkg/encoder"
	"github.com/goliatone/go-reactmount/pkg/render/template/gotemplate"
	"github.com/goliatone/go-reactmount/pkg/testsupport"
	"github.com/goliatone/go-reactmount/pkg/widget"
)

func TestNew_AppliesSettings(t *testing.T) {
	settings := config.Default()
	settings.Variant = "loader"
	settings.Registry = "window.app.widgets"

	renderer, err := New(settings)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	frag, err := renderer.Render(Request{Component: "Nav"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `<div id='Nav'></div><script type='text/javascript'>window.app.widgets.Nav.init('{\"id\":\"Nav\"}');window.app.widgets.Nav.render()</script>`
	if frag.String() != want {
		t.Fatalf("fragment mismatch\nwant: %s\n got: %s", want, frag)
	}
}

func TestNew_RejectsBadSettings(t *testing.T) {
	settings := config.Default()
	settings.JSONEncoder = "myapp.CustomEncoder"

	_, err := New(settings)
	if err == nil || !strings.Contains(err.Error(), config.IssueUnknownEncoder) {
		t.Fatalf("expected %s issue, got %v", config.IssueUnknownEncoder, err)
	}

	encoders := encoder.NewRegistry()
	encoders.MustRegister("myapp.CustomEncoder", encoder.Func(func(any) ([]byte, error) {
		return nil, errors.New("boom")
	}))
	renderer, err := New(settings, WithEncoders(encoders))
	if err != nil {
		t.Fatalf("new with custom registry: %v", err)
	}
	if _, err := renderer.Render(Request{Component: "X"}); !errors.Is(err, widget.ErrSerialize) {
		t.Fatalf("expected custom encoder to be used, got %v", err)
	}
}

func TestNewEngine(t *testing.T) {
	fsys := fstest.MapFS{
		"page.tpl": {Data: []byte(`{% react_widget "Counter" count=3 %}`)},
	}
	engine, err := NewEngine(config.Default(),
		[]gotemplate.Option{gotemplate.WithFS(fsys)},
		WithWidgetOptions(widget.WithIDGenerator(testsupport.FixedID("e1"))),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	out, err := engine.RenderTemplate("page", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	payload := testsupport.ParseMount(t, out).Payload(t, "e1"+widget.PayloadSuffix)
	if payload["count"] != float64(3) || payload["html_id"] != "e1" {
		t.Fatalf("unexpected payload: %v", payload)
	}
}

func TestRender_Default(t *testing.T) {
	frag, err := Render(Request{Component: "Clock", ID: "clock"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := testsupport.ParseMount(t, frag.String()).ID; got != "clock" {
		t.Fatalf("container id = %q", got)
	}
}
