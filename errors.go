package locator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ========================================
// Core Error Values (Sentinel Errors)
// ========================================
// Base errors, wrapped in the typed errors below when returned. Match
// against these with errors.Is; match the typed errors with errors.As.

var (
	// Resolution errors.
	ErrNotRegistered = errors.New("service not registered")

	// Registration errors.
	ErrAlreadyRegistered = errors.New("service already registered")
	ErrFactoryNil        = errors.New("factory cannot be nil")
	ErrInstanceNil       = errors.New("instance cannot be nil")
	ErrConstructorNil    = errors.New("constructor cannot be nil")
	ErrTypeNil           = errors.New("service type cannot be nil")
	ErrNameEmpty         = errors.New("service name cannot be empty")
	ErrTagEmpty          = errors.New("tag cannot be empty")
)

var (
	_ error = LifetimeError{}
	_ error = AlreadyRegisteredError{}
	_ error = NotRegisteredError{}
	_ error = InvalidFactoryError{}
	_ error = InvalidConstructorError{}
	_ error = CircularDependencyError{}
	_ error = TypeMismatchError{}
)

// LifetimeError indicates an invalid lifetime value.
type LifetimeError struct {
	Value any
}

func (e LifetimeError) Error() string {
	return fmt.Sprintf("invalid lifetime: %v", e.Value)
}

// AlreadyRegisteredError indicates a type already has a singleton entry.
// Transient registrations silently overwrite; singleton registrations do not.
type AlreadyRegisteredError struct {
	ServiceType reflect.Type
}

func (e AlreadyRegisteredError) Error() string {
	return fmt.Sprintf("service %s already registered as singleton", formatType(e.ServiceType))
}

func (e AlreadyRegisteredError) Unwrap() error { return ErrAlreadyRegistered }

// NotRegisteredError indicates that a type, name, or tag has no entry.
// Exactly one of ServiceType, Name, or Tag identifies the missing key.
type NotRegisteredError struct {
	ServiceType reflect.Type
	Name        string
	Tag         string
}

func (e NotRegisteredError) Error() string {
	switch {
	case e.Name != "":
		return fmt.Sprintf("no service registered under name %q", e.Name)
	case e.Tag != "":
		return fmt.Sprintf("no services registered under tag %q", e.Tag)
	default:
		return fmt.Sprintf("service %s is not registered", formatType(e.ServiceType))
	}
}

func (e NotRegisteredError) Unwrap() error { return ErrNotRegistered }

// InvalidFactoryError indicates that a registered factory does not have the
// required shape, a niladic function returning exactly one value.
type InvalidFactoryError struct {
	FactoryType reflect.Type
}

func (e InvalidFactoryError) Error() string {
	return fmt.Sprintf("factory must be a func() T, got %s", formatType(e.FactoryType))
}

// InvalidConstructorError indicates that a value passed to
// RegisterConstructor is not a function returning exactly one value.
type InvalidConstructorError struct {
	ConstructorType reflect.Type
}

func (e InvalidConstructorError) Error() string {
	return fmt.Sprintf("constructor must be a function returning exactly one value, got %s", formatType(e.ConstructorType))
}

// CircularDependencyError indicates that constructor resolution re-entered a
// type that is already under construction in the same resolution.
type CircularDependencyError struct {
	ServiceType reflect.Type
	Chain       []reflect.Type
}

func (e CircularDependencyError) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("circular dependency detected for %s", formatType(e.ServiceType)))
	if len(e.Chain) > 0 {
		b.WriteString(": ")
		for i, t := range e.Chain {
			if i > 0 {
				b.WriteString(" -> ")
			}
			b.WriteString(formatType(t))
		}
		b.WriteString(" -> ")
		b.WriteString(formatType(e.ServiceType))
	}
	return b.String()
}

// TypeMismatchError indicates that a resolved value could not be asserted
// to the requested type. Named and tagged entries are untyped at
// registration time, so the mismatch only surfaces on resolution.
type TypeMismatchError struct {
	Expected reflect.Type
	Actual   reflect.Type
}

func (e TypeMismatchError) Error() string {
	return fmt.Sprintf("resolved value of type %s is not assignable to %s", formatType(e.Actual), formatType(e.Expected))
}

// formatType formats a reflect.Type for error messages.
func formatType(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind() {
	case reflect.Ptr:
		return "*" + formatType(t.Elem())
	case reflect.Slice:
		return "[]" + formatType(t.Elem())
	case reflect.Map:
		return fmt.Sprintf("map[%s]%s", formatType(t.Key()), formatType(t.Elem()))
	case reflect.Interface:
		if t.Name() == "" {
			return "interface{}"
		}
		return t.String()
	default:
		return t.String()
	}
}
