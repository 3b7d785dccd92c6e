package asset

import (
	"errors"
	"fmt"
)

// IdentifierNameError is a validation problem: the asset name cannot be
// used as a variable name.
type IdentifierNameError struct {
	Index int
	Name  string
}

func (e *IdentifierNameError) Error() string {
	return fmt.Sprintf("asset #%d: invalid \"name\" value %q", e.Index+1, e.Name)
}

// MissingFieldError is a validation problem: a required field is not set.
type MissingFieldError struct {
	Index int
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("asset #%d: missing %q", e.Index+1, e.Field)
}

// SourceReadError is returned by Build when an asset source cannot be read
// or parsed.
type SourceReadError struct {
	Spec Spec
	Path string
	Err  error
}

func (e *SourceReadError) Error() string {
	return fmt.Sprintf("%s: read %s: %v", e.Spec.Label(), e.Path, e.Err)
}

func (e *SourceReadError) Unwrap() error {
	return e.Err
}

// MalformedAssetError is returned by Build for an entry that is neither a
// version nor a text asset. Problems lists what Validate reports for it.
type MalformedAssetError struct {
	Spec     Spec
	Problems []error
}

func (e *MalformedAssetError) Error() string {
	return fmt.Sprintf("%s: malformed asset: %v", e.Spec.Label(), errors.Join(e.Problems...))
}

func (e *MalformedAssetError) Unwrap() []error {
	return e.Problems
}
