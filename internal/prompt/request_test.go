package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-reactmount/pkg/widget"
)

type stubDriver struct {
	inputs     []string
	selectIdx  []int
	confirm    []bool
	textAreas  []string
	inputPos   int
	selectPos  int
	confirmPos int
	textPos    int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	if cfg.Validator != nil {
		if err := cfg.Validator(val); err != nil {
			return "", err
		}
	}
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, _ SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func TestAsk_FullFlow(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Chart", "sales", "color", `"red"`, "points", "3"},
		selectIdx: []int{1},
		textAreas: []string{`{"title": "Sales"}`},
		confirm:   []bool{true, true, false},
	}

	got, err := Ask(context.Background(), driver, Answers{})
	if err != nil {
		t.Fatalf("ask: %v", err)
	}

	want := Answers{
		Request: widget.Request{
			Component: "Chart",
			ID:        "sales",
			Props:     map[string]any{"title": "Sales"},
			Kwargs:    map[string]any{"color": "red", "points": float64(3)},
		},
		Variant: widget.VariantInline,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("answers mismatch (-want +got):\n%s", diff)
	}
}

func TestAsk_PlainStringValue(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Note", "", "body", "hello world"},
		selectIdx: []int{0},
		textAreas: []string{""},
		confirm:   []bool{true, false},
	}

	got, err := Ask(context.Background(), driver, Answers{})
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if got.Request.Kwargs["body"] != "hello world" || got.Request.Props != nil || got.Request.ID != "" {
		t.Fatalf("unexpected request: %+v", got.Request)
	}
}

func TestAsk_Errors(t *testing.T) {
	driver := &stubDriver{inputs: []string{"not-valid"}}
	if _, err := Ask(context.Background(), driver, Answers{}); !errors.Is(err, widget.ErrInvalidComponent) {
		t.Fatalf("expected ErrInvalidComponent, got %v", err)
	}

	driver = &stubDriver{
		inputs:    []string{"Chart", ""},
		selectIdx: []int{0},
		textAreas: []string{"[1]"},
	}
	if _, err := Ask(context.Background(), driver, Answers{}); err == nil {
		t.Fatalf("expected props decode error")
	}
}

func TestTranslateSurveyErr(t *testing.T) {
	other := errors.New("boom")
	if translateSurveyErr(other) != other {
		t.Fatalf("expected passthrough")
	}
}
