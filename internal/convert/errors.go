// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"errors"
	"fmt"
)

// Sentinel kinds for conversion failures. Match with errors.Is.
var (
	ErrNotFound         = errors.New("file not found")
	ErrWrongExtension   = errors.New("not a " + SourceExt + " file")
	ErrInvalidDirectory = errors.New("invalid folder")
	ErrNoMatchingFiles  = errors.New("no " + SourceExt + " files found")
	ErrConversionIO     = errors.New("conversion failed")
)

// Error reports a failed conversion of Path. Kind is one of the sentinel
// errors above; Cause is the underlying error, if any.
type Error struct {
	Kind  error
	Path  string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%v: %s", e.Kind, e.Path)
	}
	return fmt.Sprintf("%v: %s: %v", e.Kind, e.Path, e.Cause)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func newError(kind error, path string, cause error) error {
	return &Error{Kind: kind, Path: path, Cause: cause}
}
