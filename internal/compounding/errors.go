package compounding

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Kind classifies an input error.
type Kind string

const (
	KindIncompleteInput Kind = "incomplete_input"
	KindInvalidValue    Kind = "invalid_value"
	KindModeConflict    Kind = "mode_conflict"
)

// Sentinel errors, one per kind, for use with errors.Is.
var (
	ErrIncompleteInput = errors.New("incomplete input")
	ErrInvalidValue    = errors.New("invalid value")
	ErrModeConflict    = errors.New("mode conflict")
)

// InputError describes every problem found in one set of inputs.
// Fields maps a field path (for example "components[1].density") to a
// human-readable reason.
type InputError struct {
	Kind   Kind
	Fields map[string]string
}

func (e *InputError) Error() string {
	keys := e.FieldNames()
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("%s: %s", e.sentinel(), strings.Join(parts, "; "))
}

// Is matches the sentinel error of the same kind.
func (e *InputError) Is(target error) bool {
	return target == e.sentinel()
}

// FieldNames returns the offending field paths in sorted order.
func (e *InputError) FieldNames() []string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (e *InputError) sentinel() error {
	switch e.Kind {
	case KindIncompleteInput:
		return ErrIncompleteInput
	case KindModeConflict:
		return ErrModeConflict
	default:
		return ErrInvalidValue
	}
}

// problems collects field errors by kind while validating.
type problems struct {
	missing  map[string]string
	invalid  map[string]string
	conflict map[string]string
}

func (p *problems) add(kind Kind, field, reason string) {
	var m *map[string]string
	switch kind {
	case KindIncompleteInput:
		m = &p.missing
	case KindModeConflict:
		m = &p.conflict
	default:
		m = &p.invalid
	}
	if *m == nil {
		*m = make(map[string]string)
	}
	(*m)[field] = reason
}

// err returns the highest-priority problem set as an error. Missing fields
// are reported before conflicts, and conflicts before invalid values, so a
// user is prompted for absent data first.
func (p *problems) err() error {
	switch {
	case len(p.missing) > 0:
		return &InputError{Kind: KindIncompleteInput, Fields: p.missing}
	case len(p.conflict) > 0:
		return &InputError{Kind: KindModeConflict, Fields: p.conflict}
	case len(p.invalid) > 0:
		return &InputError{Kind: KindInvalidValue, Fields: p.invalid}
	}
	return nil
}
