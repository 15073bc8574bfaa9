package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation      = errors.New("invalid field")
	ErrDuplicatePerson = errors.New("person already exists in the address book")
	ErrPersonNotFound  = errors.New("person not found in the address book")
)

// ValidationError names the field that failed its format rule.
type ValidationError struct {
	Field string
	Value string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return fmt.Sprintf("%s: %s %q", ErrValidation.Error(), e.Field, e.Value)
	}
	return fmt.Sprintf("%s: %s %q: %s", ErrValidation.Error(), e.Field, e.Value, e.Msg)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalidField(field, value, msg string) error {
	return &ValidationError{Field: field, Value: value, Msg: msg}
}
