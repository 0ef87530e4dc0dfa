package apperrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// BaseField is the pseudo-field used for document-level (base-scoped) errors,
// i.e. cross-entity invariant violations that are not tied to a single input
// field.
const BaseField = "base"

// ValidationErrors maps input field names to human-readable messages. It is
// returned by core operations when an input or a business rule check fails;
// the operation aborts and no partial state persists.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ErrValidation.Error()
	}
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, v[k]))
	}
	return strings.Join(parts, "; ")
}

// Is makes ValidationErrors match ErrValidation, and additionally
// ErrConsistency when the only entry is base-scoped.
func (v ValidationErrors) Is(target error) bool {
	if target == ErrValidation {
		return true
	}
	if target == ErrConsistency {
		_, ok := v[BaseField]
		return ok
	}
	return false
}

// Add records a message for a field, keeping the first message if the field
// already has one.
func (v ValidationErrors) Add(field, message string) {
	if _, exists := v[field]; !exists {
		v[field] = message
	}
}

// NewFieldError builds a single field-scoped validation error.
func NewFieldError(field, message string) ValidationErrors {
	return ValidationErrors{field: message}
}

// NewBaseError builds a document-level consistency error.
func NewBaseError(message string) ValidationErrors {
	return ValidationErrors{BaseField: message}
}

// AsValidation extracts ValidationErrors from an error chain, if present.
func AsValidation(err error) (ValidationErrors, bool) {
	var v ValidationErrors
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
