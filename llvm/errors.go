// Copyright (C) 2026 the irkit authors. All rights reserved.
// SPDX-License-Identifier: MIT

package llvm

import (
	"errors"
	"fmt"

	"irkit/cstr"
	"irkit/native"
)

var (
	// ErrUseAfterDispose reports an operation on a disposed module. This is
	// a programmer error; it is never retried or recovered locally.
	ErrUseAfterDispose = errors.New("module used after dispose")

	// ErrAllocFailed reports that a native creation call returned the null
	// sentinel. The boundary offers no recovery path.
	ErrAllocFailed = errors.New("native allocation failed")

	// ErrNotFound matches every *NotFoundError via errors.Is.
	ErrNotFound = errors.New("not found")
)

// NotFoundError reports a lookup miss or first/last navigation on an empty
// collection. It is a routine, branchable outcome.
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("module declares no %ss", e.Kind)
	}
	return fmt.Sprintf("%s '%s' not found", e.Kind, e.Name)
}

// Is matches ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// VerifyError reports that a module failed structural validity checking.
// Message holds the native diagnostic verbatim.
type VerifyError struct {
	Message string
}

func (e *VerifyError) Error() string {
	return fmt.Sprintf("module verification failed: %s", e.Message)
}

// IOError reports a failed serialization or load. It is a routine outcome
// (bad path, disk full) distinct from programmer errors.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("'%s': %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// resolveValue translates the boundary's sentinel-pointer pattern: the null
// sentinel becomes a *NotFoundError, anything else a live weak reference.
func (m *Module) resolveValue(ref native.ValueRef, kind, name string) (*Value, error) {
	if ref == 0 {
		return nil, &NotFoundError{Kind: kind, Name: name}
	}
	return &Value{ref: ref, owner: m}, nil
}

// takeMessage decodes a caller-owned diagnostic buffer and releases it
// through the boundary exactly once. A nil buffer decodes to "".
func takeMessage(msg cstr.Buffer) string {
	defer native.DisposeMessage(msg)
	return cstr.GoString(msg)
}

// marshal runs fn with a NUL-terminated encoding of s, released on every
// exit path.
func marshal(s string, fn func(cstr.Buffer)) {
	_ = cstr.WithString(s, func(b cstr.Buffer) error {
		fn(b)
		return nil
	})
}
