package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUnauthorized means no authenticated user for an action requiring one.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden means the authenticated user does not own the resource.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound means the referenced product, comment or user is absent.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateSlug means the derived slug collides with an existing
	// product. Surfaced distinctly so callers can tell it apart from a
	// generic storage failure.
	ErrDuplicateSlug = errors.New("a product with this name already exists")
	// ErrSubmissionLimit means a free-tier user already has the maximum
	// number of products.
	ErrSubmissionLimit = errors.New("free submission limit reached")
)

// ValidationError carries per-field constraint violations from the
// submission/edit workflows.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
