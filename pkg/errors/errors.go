// Package errors provides structured error handling for the Strata toolkit.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindIO indicates a file read or write error.
	KindIO
	// KindFormat indicates a document file decoding failure.
	KindFormat
	// KindConfig indicates invalid configuration or command arguments.
	KindConfig
	// KindRender indicates a compositing or encoding error.
	KindRender
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindFormat:
		return "format"
	case KindConfig:
		return "config"
	case KindRender:
		return "render"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// StrataError represents a structured error in the Strata toolkit.
type StrataError struct {
	// Op is the operation that failed (e.g., "docfile.Load").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Path is the document file involved, if applicable.
	Path string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *StrataError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s [%s] path=%s: %v", e.Op, e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *StrataError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "mirror.Synchronize").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// FormatError represents a failure to decode a document file field.
type FormatError struct {
	// Path is the file being decoded.
	Path string
	// Field is the document field that could not be decoded.
	Field string
	// Got is the offending value.
	Got any
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid %s in %s: %v", e.Field, e.Path, e.Got)
}

// ErrorHandler receives errors reported by the Strata toolkit.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *StrataError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
