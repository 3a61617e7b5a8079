// Package analysiserr defines the error kinds this module can raise
// (spec.md §7). These are not types to branch on in detail — they are
// two flat kinds, surfaced synchronously from the query or build step
// that discovers the problem, and are not recoverable by the library
// itself. Callers use errors.Is/errors.As against the sentinels below.
package analysiserr

import (
	"errors"
	"fmt"
)

// ErrUnknownFunction is the sentinel errors.Is target for
// UnknownFunction errors: a query named a function absent from the
// analyzed module(s).
var ErrUnknownFunction = errors.New("unknown function")

// ErrUnsupportedIRFeature is the sentinel errors.Is target for
// UnsupportedIRFeature errors: the IR contains a construct this
// analyzer does not handle (a callbr terminator, a numeric-named
// global at a call site, or a pointer operand whose computed type is
// not a pointer-to-function).
var ErrUnsupportedIRFeature = errors.New("unsupported IR feature")

// UnknownFunction reports that Name is not a node in the analysis
// being queried.
type UnknownFunction struct {
	Name string
}

func (e *UnknownFunction) Error() string {
	return fmt.Sprintf("unknown function %q", e.Name)
}

func (e *UnknownFunction) Unwrap() error { return ErrUnknownFunction }

// NewUnknownFunction builds an UnknownFunction error for name.
func NewUnknownFunction(name string) error {
	return &UnknownFunction{Name: name}
}

// UnsupportedIRFeature reports an IR construct the analyzer refuses to
// handle. Feature is a short, stable description ("callbr terminator",
// "numeric-named call target", "non-function-pointer callee type", ...)
// suitable for inclusion in an error message; Context adds
// caller-specific detail (e.g. the function and block where the
// feature was found).
type UnsupportedIRFeature struct {
	Feature string
	Context string
}

func (e *UnsupportedIRFeature) Error() string {
	if e.Context == "" {
		return fmt.Sprintf("unsupported IR feature: %s", e.Feature)
	}
	return fmt.Sprintf("unsupported IR feature: %s (%s)", e.Feature, e.Context)
}

func (e *UnsupportedIRFeature) Unwrap() error { return ErrUnsupportedIRFeature }

// NewUnsupportedIRFeature builds an UnsupportedIRFeature error. context
// may be empty.
func NewUnsupportedIRFeature(feature, context string) error {
	return &UnsupportedIRFeature{Feature: feature, Context: context}
}
