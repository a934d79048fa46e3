package devserver_test

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/goliatone/go-reactmount/internal/devserver"
	"github.com/goliatone/go-reactmount/pkg/render/template/gotemplate"
	"github.com/goliatone/go-reactmount/pkg/testsupport"
	"github.com/goliatone/go-reactmount/pkg/widget"
)

func TestServer_Template(t *testing.T) {
	srv := newServer(t)

	rec := do(t, srv, http.MethodGet, "/dash?title=Sales", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	payload := testsupport.ParseMount(t, rec.Body.String()).Payload(t, "chart"+widget.PayloadSuffix)
	if payload["title"] != "Sales" {
		t.Fatalf("query not passed to template: %v", payload)
	}
}

func TestServer_Index(t *testing.T) {
	rec := do(t, newServer(t), http.MethodGet, "/", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "home") {
		t.Fatalf("unexpected index response %d: %s", rec.Code, rec.Body)
	}
}

func TestServer_MissingTemplate(t *testing.T) {
	rec := do(t, newServer(t), http.MethodGet, "/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestServer_TemplateError(t *testing.T) {
	rec := do(t, newServer(t), http.MethodGet, "/broken", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestServer_Runtime(t *testing.T) {
	rec := do(t, newServer(t), http.MethodGet, "/runtime/app.js", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "// runtime" {
		t.Fatalf("unexpected runtime response %d: %q", rec.Code, rec.Body)
	}
}

func TestServer_RenderEndpoint(t *testing.T) {
	srv := newServer(t)

	rec := do(t, srv, http.MethodPost, "/render", `{"component":"Clock","id":"c","variant":"inline","props":{"tz":"UTC"}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), "window.reactComponents.Clock.init('") {
		t.Fatalf("expected inline fragment:\n%s", rec.Body)
	}

	cases := []struct {
		body string
		code int
	}{
		{body: `{"component":"bad-name"}`, code: http.StatusUnprocessableEntity},
		{body: `{"component":"Clock","variant":"carousel"}`, code: http.StatusBadRequest},
		{body: `{"component":"Clock","extra":1}`, code: http.StatusBadRequest},
	}
	for _, tc := range cases {
		if rec := do(t, srv, http.MethodPost, "/render", tc.body); rec.Code != tc.code {
			t.Fatalf("%s: status = %d, want %d", tc.body, rec.Code, tc.code)
		}
	}
}

func TestServer_Healthz(t *testing.T) {
	if rec := do(t, newServer(t), http.MethodGet, "/healthz", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestWatch_ReportsWrites(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	changed := make(chan string, 4)
	done := make(chan error, 1)
	go func() {
		done <- devserver.Watch(ctx, dir, ".tpl", func(name string) { changed <- name })
	}()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "page.tpl"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case name := <-changed:
		if name != "page.tpl" {
			t.Fatalf("changed = %q", name)
		}
	case <-ctx.Done():
		t.Fatalf("timed out waiting for change")
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("watch returned %v", err)
	}
}

func newServer(t *testing.T) *devserver.Server {
	t.Helper()

	templates := fstest.MapFS{
		"index.tpl":  {Data: []byte(`<h1>home</h1>`)},
		"dash.tpl":   {Data: []byte(`{% react_widget "Chart" html_id="chart" title=query.title %}`)},
		"broken.tpl": {Data: []byte(`{% render_react %}`)},
	}
	engine, err := gotemplate.New(gotemplate.WithFS(templates))
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	return devserver.New(engine,
		devserver.WithTemplatesFS(templates, ".tpl"),
		devserver.WithRuntimeFS(fstest.MapFS{"app.js": {Data: []byte("// runtime")}}),
		devserver.WithLogger(log.New(io.Discard, "", 0)),
	)
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
