// Package prompt asks for a widget render request on the terminal.
package prompt

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goliatone/go-reactmount/pkg/widget"
)

var variantOptions = []widget.Variant{
	widget.VariantWidget,
	widget.VariantInline,
	widget.VariantBlock,
	widget.VariantLoader,
}

// Answers is the outcome of Ask.
type Answers struct {
	Request widget.Request
	Variant widget.Variant
}

// Ask walks the user through a render request. Values already present in
// defaults are offered as prompt defaults.
func Ask(ctx context.Context, d Driver, defaults Answers) (Answers, error) {
	out := Answers{Request: defaults.Request}

	component, err := d.Input(ctx, InputConfig{
		Message:   "Component name",
		Default:   defaults.Request.Component,
		Help:      "The registry entry, a JavaScript identifier such as Counter.",
		Validator: widget.ValidateComponent,
	})
	if err != nil {
		return Answers{}, err
	}
	out.Request.Component = strings.TrimSpace(component)
	if err := widget.ValidateComponent(out.Request.Component); err != nil {
		return Answers{}, err
	}

	id, err := d.Input(ctx, InputConfig{
		Message: "Mount id (blank to generate)",
		Default: defaults.Request.ID,
	})
	if err != nil {
		return Answers{}, err
	}
	out.Request.ID = strings.TrimSpace(id)

	names := make([]string, len(variantOptions))
	defaultIndex := 0
	for i, v := range variantOptions {
		names[i] = v.String()
		if v == defaults.Variant {
			defaultIndex = i
		}
	}
	idx, err := d.Select(ctx, SelectConfig{
		Message:      "Variant",
		Options:      names,
		DefaultIndex: defaultIndex,
	})
	if err != nil {
		return Answers{}, err
	}
	if idx < 0 || idx >= len(variantOptions) {
		return Answers{}, fmt.Errorf("prompt: variant selection %d out of range", idx)
	}
	out.Variant = variantOptions[idx]

	rawProps, err := d.TextArea(ctx, TextAreaConfig{
		Message: "Props (JSON object, blank for none)",
		Default: encodeDefault(defaults.Request.Props),
	})
	if err != nil {
		return Answers{}, err
	}
	if strings.TrimSpace(rawProps) != "" {
		props := map[string]any{}
		if err := json.Unmarshal([]byte(rawProps), &props); err != nil {
			return Answers{}, fmt.Errorf("prompt: props: %w", err)
		}
		out.Request.Props = props
	}

	for {
		more, err := d.Confirm(ctx, ConfirmConfig{Message: "Add a keyword argument?"})
		if err != nil {
			return Answers{}, err
		}
		if !more {
			break
		}
		key, err := d.Input(ctx, InputConfig{Message: "Keyword", Validator: requireValue})
		if err != nil {
			return Answers{}, err
		}
		value, err := d.Input(ctx, InputConfig{
			Message: "Value",
			Help:    "Parsed as JSON when valid, otherwise kept as a string.",
		})
		if err != nil {
			return Answers{}, err
		}
		if out.Request.Kwargs == nil {
			out.Request.Kwargs = map[string]any{}
		}
		out.Request.Kwargs[strings.TrimSpace(key)] = parseValue(value)
	}

	return out, nil
}

func requireValue(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("value is required")
	}
	return nil
}

func parseValue(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err == nil {
		return v
	}
	return raw
}

func encodeDefault(props map[string]any) string {
	if len(props) == 0 {
		return ""
	}
	data, err := json.Marshal(props)
	if err != nil {
		return ""
	}
	return string(data)
}
