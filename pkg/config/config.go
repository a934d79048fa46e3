// Package config loads the settings that shape widget rendering and reports
// problems with them before any template is rendered.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-reactmount/pkg/encoder"
	"github.com/goliatone/go-reactmount/pkg/widget"
)

// Children sanitizer names accepted by Settings.SanitizeChildren.
const (
	SanitizeNone   = ""
	SanitizeUGC    = "ugc"
	SanitizeStrict = "strict"
)

// Settings mirrors the YAML settings file.
type Settings struct {
	// JSONEncoder names the props encoder in the encoder registry.
	JSONEncoder string `yaml:"json_encoder"`
	// Registry is the browser expression holding the component entries.
	Registry string `yaml:"registry"`
	// Variant is the variant used for plain Render calls.
	Variant string `yaml:"variant"`
	// IDProp is the prop key carrying the mount id.
	IDProp string `yaml:"id_prop"`
	// EscapeStrings HTML-escapes every string leaf before serialization.
	EscapeStrings bool `yaml:"escape_strings"`
	// SanitizeChildren selects a bluemonday policy for block children.
	SanitizeChildren string `yaml:"sanitize_children"`
}

// Default returns the settings used when no file is supplied.
func Default() Settings {
	return Settings{
		JSONEncoder: encoder.Default,
		Registry:    widget.DefaultRegistry,
		Variant:     widget.VariantWidget.String(),
		IDProp:      widget.DefaultIDProp,
	}
}

type settingsFile struct {
	JSONEncoder      any     `yaml:"json_encoder"`
	Registry         *string `yaml:"registry"`
	Variant          *string `yaml:"variant"`
	IDProp           *string `yaml:"id_prop"`
	EscapeStrings    *bool   `yaml:"escape_strings"`
	SanitizeChildren *string `yaml:"sanitize_children"`
}

// Parse decodes YAML (or JSON) settings on top of Default. Keys left out of
// the document keep their default values.
func Parse(data []byte) (Settings, error) {
	settings := Default()
	if len(strings.TrimSpace(string(data))) == 0 {
		return settings, nil
	}

	var doc settingsFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Settings{}, fmt.Errorf("config: parse settings: %w", err)
	}

	switch value := doc.JSONEncoder.(type) {
	case nil:
	case string:
		settings.JSONEncoder = strings.TrimSpace(value)
	default:
		return Settings{}, fmt.Errorf("config: json_encoder must be a string, got %T", value)
	}
	if doc.Registry != nil {
		settings.Registry = strings.TrimSpace(*doc.Registry)
	}
	if doc.Variant != nil {
		settings.Variant = strings.TrimSpace(*doc.Variant)
	}
	if doc.IDProp != nil {
		settings.IDProp = strings.TrimSpace(*doc.IDProp)
	}
	if doc.EscapeStrings != nil {
		settings.EscapeStrings = *doc.EscapeStrings
	}
	if doc.SanitizeChildren != nil {
		settings.SanitizeChildren = strings.ToLower(strings.TrimSpace(*doc.SanitizeChildren))
	}
	return settings, nil
}

// Load reads settings from a file on disk.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	settings, err := Parse(data)
	if err != nil {
		return Settings{}, fmt.Errorf("%w (file %s)", err, path)
	}
	return settings, nil
}

// LoadFS reads settings from name inside fsys.
func LoadFS(fsys fs.FS, name string) (Settings, error) {
	if fsys == nil {
		return Settings{}, errors.New("config: filesystem is nil")
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Settings{}, fmt.Errorf("config: read %s: %w", name, err)
	}
	settings, err := Parse(data)
	if err != nil {
		return Settings{}, fmt.Errorf("%w (file %s)", err, name)
	}
	return settings, nil
}

// ChildrenPolicy returns the bluemonday policy named by SanitizeChildren, or
// nil when children are passed through.
func (s Settings) ChildrenPolicy() (*bluemonday.Policy, error) {
	switch s.SanitizeChildren {
	case SanitizeNone:
		return nil, nil
	case SanitizeUGC:
		return bluemonday.UGCPolicy(), nil
	case SanitizeStrict:
		return bluemonday.StrictPolicy(), nil
	default:
		return nil, fmt.Errorf("config: unknown children sanitizer %q", s.SanitizeChildren)
	}
}

// Options translates the settings into widget options, resolving the encoder
// through encoders. A nil registry means the built-in encoders.
func (s Settings) Options(encoders *encoder.Registry) ([]widget.Option, error) {
	if encoders == nil {
		encoders = encoder.NewRegistry()
	}
	if err := Check(s, encoders).Err(); err != nil {
		return nil, err
	}

	enc, err := encoders.Get(s.JSONEncoder)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	variant, err := widget.ParseVariant(s.Variant)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	policy, err := s.ChildrenPolicy()
	if err != nil {
		return nil, err
	}

	return []widget.Option{
		widget.WithEncoder(enc),
		widget.WithRegistry(s.Registry),
		widget.WithVariant(variant),
		widget.WithIDProp(s.IDProp),
		widget.WithEscapedStrings(s.EscapeStrings),
		widget.WithChildrenPolicy(policy),
	}, nil
}
