package api

import (
	"errors"
	"fmt"
	"strings"
)

// FieldViolation tags a validation failure with the offending field so the
// presentation layer can render inline messages without parsing error text.
type FieldViolation struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, fmt.Sprintf("%s: %s", v.Field, v.Msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

type NotFoundError struct {
	Kind string
	Ref  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Ref)
}

// ConflictError means the server rejected a write because the entity changed
// underneath us (concurrent edit). The caller decides rollback; we never retry.
type ConflictError struct {
	Ref string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %s was modified concurrently", e.Ref)
}

type UnauthorizedError struct{}

func (e *UnauthorizedError) Error() string { return "unauthorized" }

type ForbiddenError struct {
	Ref string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("forbidden: %s", e.Ref)
}

// NetworkError wraps transport-level failures so callers can distinguish
// "the server said no" from "we never reached the server".
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error during %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c)
}

func IsValidation(err error) (*ValidationError, bool) {
	var v *ValidationError
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

func IsNetwork(err error) bool {
	var n *NetworkError
	return errors.As(err, &n)
}
