package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-reactmount/pkg/encoder"
	"github.com/goliatone/go-reactmount/pkg/widget"
)

// Issue identifiers reported by Check.
const (
	IssueUnknownEncoder   = "rm.E001"
	IssueInvalidRegistry  = "rm.E002"
	IssueUnknownVariant   = "rm.E003"
	IssueUnknownSanitizer = "rm.E004"
	IssueEmptyIDProp      = "rm.E005"
)

// Issue is a single configuration problem.
type Issue struct {
	ID   string
	Msg  string
	Hint string
}

func (i Issue) String() string {
	if i.Hint == "" {
		return fmt.Sprintf("%s: %s", i.ID, i.Msg)
	}
	return fmt.Sprintf("%s: %s (hint: %s)", i.ID, i.Msg, i.Hint)
}

// Issues is the result of Check.
type Issues []Issue

// Err joins the issues into one error, or returns nil when there are none.
func (is Issues) Err() error {
	if len(is) == 0 {
		return nil
	}
	errs := make([]error, 0, len(is))
	for _, issue := range is {
		errs = append(errs, errors.New(issue.String()))
	}
	return fmt.Errorf("config: %d issue(s): %w", len(is), errors.Join(errs...))
}

// Check validates settings. A nil encoders registry is replaced by the
// built-in one.
func Check(s Settings, encoders *encoder.Registry) Issues {
	if encoders == nil {
		encoders = encoder.NewRegistry()
	}

	var issues Issues
	if !encoders.Has(s.JSONEncoder) {
		issues = append(issues, Issue{
			ID:   IssueUnknownEncoder,
			Msg:  fmt.Sprintf("json_encoder %q is not registered", s.JSONEncoder),
			Hint: "available: " + strings.Join(encoders.List(), ", "),
		})
	}
	if !widget.ValidRegistry(s.Registry) {
		issues = append(issues, Issue{
			ID:   IssueInvalidRegistry,
			Msg:  fmt.Sprintf("registry %q is not a JavaScript property path", s.Registry),
			Hint: "use a dotted path such as " + widget.DefaultRegistry,
		})
	}
	if _, err := widget.ParseVariant(s.Variant); err != nil {
		issues = append(issues, Issue{
			ID:   IssueUnknownVariant,
			Msg:  fmt.Sprintf("variant %q is not known", s.Variant),
			Hint: "one of widget, inline, block, loader",
		})
	}
	if _, err := s.ChildrenPolicy(); err != nil {
		issues = append(issues, Issue{
			ID:   IssueUnknownSanitizer,
			Msg:  fmt.Sprintf("sanitize_children %q is not known", s.SanitizeChildren),
			Hint: "leave empty, or use ugc or strict",
		})
	}
	if strings.TrimSpace(s.IDProp) == "" {
		issues = append(issues, Issue{
			ID:  IssueEmptyIDProp,
			Msg: "id_prop must not be empty",
		})
	}
	return issues
}
