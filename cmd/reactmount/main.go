package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/goliatone/go-reactmount"
	"github.com/goliatone/go-reactmount/internal/devserver"
	"github.com/goliatone/go-reactmount/internal/prompt"
	"github.com/goliatone/go-reactmount/internal/propsfile"
	"github.com/goliatone/go-reactmount/pkg/config"
	"github.com/goliatone/go-reactmount/pkg/render/template/gotemplate"
	"github.com/goliatone/go-reactmount/pkg/widget"
)

const usage = `Usage: reactmount <command> [flags]

Commands:
  render    render one widget fragment
  template  render a template file that uses the widget tags
  check     report configuration issues
  serve     serve a template directory over HTTP
`

func main() {
	log.SetFlags(0)
	log.SetPrefix("reactmount: ")

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch os.Args[1] {
	case "render":
		err = runRender(ctx, os.Args[2:], os.Stdout)
	case "template":
		err = runTemplate(ctx, os.Args[2:], os.Stdout)
	case "check":
		err = runCheck(os.Args[2:], os.Stdout)
	case "serve":
		err = runServe(ctx, os.Args[2:])
	case "-h", "--help", "help":
		fmt.Fprint(os.Stdout, usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}

	var issues errIssues
	switch {
	case errors.As(err, &issues):
		os.Exit(1)
	case errors.Is(err, prompt.ErrAborted), errors.Is(err, context.Canceled):
		os.Exit(130)
	case err != nil:
		log.Fatal(err)
	}
}

// errIssues signals that check already printed its findings.
type errIssues int

func (e errIssues) Error() string {
	return fmt.Sprintf("%d configuration issue(s)", int(e))
}

func loadSettings(path string) (config.Settings, error) {
	if strings.TrimSpace(path) == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func runRender(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	settingsPath := fs.String("config", "", "settings file (YAML or JSON)")
	component := fs.String("component", "", "component name")
	id := fs.String("id", "", "mount id (generated when empty)")
	variant := fs.String("variant", "", "variant: widget, inline, block or loader (settings default when empty)")
	propsPath := fs.String("props", "", "props file (.json, .yaml, .yml, .msgpack)")
	children := fs.String("children", "", "children markup for the block variant")
	interactive := fs.Bool("interactive", false, "prompt for the request")
	if err := fs.Parse(args); err != nil {
		return err
	}

	settings, err := loadSettings(*settingsPath)
	if err != nil {
		return err
	}
	renderer, err := reactmount.New(settings)
	if err != nil {
		return err
	}

	answers := prompt.Answers{
		Request: widget.Request{
			Component: *component,
			ID:        *id,
			Children:  *children,
		},
		Variant: renderer.Variant(),
	}
	if *variant != "" {
		v, err := widget.ParseVariant(*variant)
		if err != nil {
			return err
		}
		answers.Variant = v
	}
	if *propsPath != "" {
		props, err := propsfile.Load(*propsPath)
		if err != nil {
			return err
		}
		answers.Request.Props = props
	}
	if *interactive {
		answers, err = prompt.Ask(ctx, prompt.Survey(), answers)
		if err != nil {
			return err
		}
	}

	frag, err := renderer.RenderVariant(answers.Variant, answers.Request)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, frag.String())
	return err
}

func runTemplate(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("template", flag.ContinueOnError)
	settingsPath := fs.String("config", "", "settings file (YAML or JSON)")
	dataPath := fs.String("data", "", "template data file (.json, .yaml, .yml, .msgpack)")
	output := fs.String("output", "", "output file (stdout if empty)")
	watch := fs.Bool("watch", false, "re-render when the template directory changes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("template: expected exactly one template path")
	}

	path := fs.Arg(0)
	dir, name := filepath.Dir(path), filepath.Base(path)
	ext := filepath.Ext(name)

	settings, err := loadSettings(*settingsPath)
	if err != nil {
		return err
	}
	engine, err := reactmount.NewEngine(settings, []gotemplate.Option{
		gotemplate.WithBaseDir(dir),
		gotemplate.WithExtension(ext),
	})
	if err != nil {
		return err
	}

	var data map[string]any
	if *dataPath != "" {
		if data, err = propsfile.Load(*dataPath); err != nil {
			return err
		}
	}

	render := func() error {
		rendered, err := engine.RenderTemplate(name, data)
		if err != nil {
			return err
		}
		if *output == "" {
			_, err = fmt.Fprintln(out, rendered)
			return err
		}
		if err := os.WriteFile(*output, []byte(rendered), 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		log.Printf("wrote %s", *output)
		return nil
	}

	if err := render(); err != nil {
		if !*watch {
			return err
		}
		log.Print(err)
	}
	if !*watch {
		return nil
	}

	log.Printf("watching %s", dir)
	return devserver.Watch(ctx, dir, ext, func(changed string) {
		engine.Reload()
		log.Printf("%s changed", changed)
		if err := render(); err != nil {
			log.Print(err)
		}
	})
}

func runCheck(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	settingsPath := fs.String("config", "", "settings file (YAML or JSON)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	settings, err := loadSettings(*settingsPath)
	if err != nil {
		return err
	}
	issues := config.Check(settings, nil)
	for _, issue := range issues {
		fmt.Fprintln(out, issue.String())
	}
	if len(issues) > 0 {
		return errIssues(len(issues))
	}
	fmt.Fprintln(out, "no issues")
	return nil
}

func runServe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	settingsPath := fs.String("config", "", "settings file (YAML or JSON)")
	dir := fs.String("dir", ".", "template directory")
	ext := fs.String("ext", ".tpl", "template extension")
	addr := fs.String("addr", ":8080", "listen address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	settings, err := loadSettings(*settingsPath)
	if err != nil {
		return err
	}
	renderer, err := reactmount.New(settings)
	if err != nil {
		return err
	}
	engine, err := gotemplate.New(
		gotemplate.WithBaseDir(*dir),
		gotemplate.WithExtension(*ext),
		gotemplate.WithWidgetRenderer(renderer),
	)
	if err != nil {
		return err
	}

	srv := devserver.New(engine,
		devserver.WithTemplatesFS(os.DirFS(*dir), *ext),
		devserver.WithRuntimeFS(reactmount.RuntimeAssetsFS()),
		devserver.WithWidgetRenderer(renderer),
		devserver.WithLogger(log.Default()),
	)

	go func() {
		err := devserver.Watch(ctx, *dir, *ext, func(name string) {
			srv.Reload(strings.TrimSuffix(name, *ext))
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("watch: %v", err)
		}
	}()

	httpServer := &http.Server{
		Addr:              *addr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	log.Printf("serving %s on http://localhost%s", *dir, *addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
