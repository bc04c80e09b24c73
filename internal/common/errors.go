// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
	"strings"
)

// Common application errors.
var (
	// Database errors.
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEntry = errors.New("duplicate entry")

	// Pipeline errors.
	ErrNoItems        = errors.New("no catalog items ingested")
	ErrNoLabels       = errors.New("no synthesized labels - run synthesize first")
	ErrPredictionFail = errors.New("lifespan prediction failed")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// SchemaError reports a required input column that is absent. Schema errors are
// fatal: the run must stop rather than guess a substitute column.
type SchemaError struct {
	Table     string
	Missing   string
	Available []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s table is missing required column %q (available columns: %s)",
		e.Table, e.Missing, strings.Join(e.Available, ", "))
}

// NewSchemaError creates a SchemaError for the given table and column.
func NewSchemaError(table, missing string, available []string) error {
	return &SchemaError{Table: table, Missing: missing, Available: available}
}
