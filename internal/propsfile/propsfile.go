// Package propsfile reads widget props from JSON, YAML or msgpack files.
package propsfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Format identifies a props file encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatMsgpack Format = "msgpack"
)

// FormatFor guesses the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".msgpack", ".mp":
		return FormatMsgpack, nil
	default:
		return "", fmt.Errorf("propsfile: unsupported extension %q", filepath.Ext(path))
	}
}

// Load reads a props file from disk.
func Load(path string) (map[string]any, error) {
	return LoadFS(os.DirFS(filepath.Dir(path)), filepath.Base(path))
}

// LoadFS reads name from fsys and decodes it according to its extension.
func LoadFS(fsys fs.FS, name string) (map[string]any, error) {
	format, err := FormatFor(name)
	if err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("propsfile: read %s: %w", name, err)
	}
	props, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%w (file %s)", err, name)
	}
	return props, nil
}

// Decode parses data as a props mapping. Empty input yields an empty map.
func Decode(data []byte, format Format) (map[string]any, error) {
	out := map[string]any{}
	if len(bytes.TrimSpace(data)) == 0 {
		return out, nil
	}

	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &out)
	case FormatYAML:
		err = yaml.Unmarshal(data, &out)
	case FormatMsgpack:
		err = msgpack.Unmarshal(data, &out)
	default:
		return nil, fmt.Errorf("propsfile: unknown format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("propsfile: decode %s: %w", format, err)
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}
