package kind

import (
	"fmt"
)

// UnknownKindError means a kind with no registered definition was referenced.
type UnknownKindError struct {
	Kind Kind
}

func (e UnknownKindError) Error() string {
	return fmt.Sprintf("unknown resource kind %q", e.Kind)
}

// UnknownFieldError means an override targets a field the schema does not declare.
type UnknownFieldError struct {
	Kind  Kind
	Field string
}

func (e UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q for %q", e.Field, e.Kind)
}

// MissingFieldError means a required field has neither a default nor an override.
type MissingFieldError struct {
	Kind  Kind
	Field string
}

func (e MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q for %q", e.Field, e.Kind)
}

// FieldValueError means an override value cannot be converted to the field's type.
type FieldValueError struct {
	Kind  Kind
	Field string
	Err   error
}

func (e FieldValueError) Error() string {
	return fmt.Sprintf("invalid value for field %q of %q: %v", e.Field, e.Kind, e.Err)
}

func (e FieldValueError) Unwrap() error {
	return e.Err
}

// InvalidConfigError means a resolved configuration failed the kind's own
// semantic validation (the Check hook), for example an out-of-range timeout.
type InvalidConfigError struct {
	Kind Kind
	Err  error
}

func (e InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid %q configuration: %v", e.Kind, e.Err)
}

func (e InvalidConfigError) Unwrap() error {
	return e.Err
}
