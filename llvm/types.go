// Copyright (C) 2026 the irkit authors. All rights reserved.
// SPDX-License-Identifier: MIT

package llvm

import (
	"irkit/native"
)

// TypeRef is an opaque reference to a type description. Types are owned by
// the native arena; TypeRef never frees anything.
type TypeRef struct {
	ref native.TypeRef
}

// IsNil reports whether the reference is the null sentinel.
func (t TypeRef) IsNil() bool {
	return t.ref == 0
}

// VoidType returns the void type.
func VoidType() TypeRef {
	return TypeRef{ref: native.VoidType()}
}

// IntType returns an integer type of the given bit width.
func IntType(bits int) TypeRef {
	return TypeRef{ref: native.IntType(bits)}
}

// PointerType returns a pointer type to elem.
func PointerType(elem TypeRef) TypeRef {
	return TypeRef{ref: native.PointerType(elem.ref)}
}

// FunctionType returns a function type with the given return and parameter
// types.
func FunctionType(ret TypeRef, params ...TypeRef) TypeRef {
	refs := make([]native.TypeRef, 0, len(params))
	for _, p := range params {
		refs = append(refs, p.ref)
	}
	return TypeRef{ref: native.FunctionType(ret.ref, refs, false)}
}

// VariadicFunctionType is FunctionType with a trailing variadic marker.
func VariadicFunctionType(ret TypeRef, params ...TypeRef) TypeRef {
	refs := make([]native.TypeRef, 0, len(params))
	for _, p := range params {
		refs = append(refs, p.ref)
	}
	return TypeRef{ref: native.FunctionType(ret.ref, refs, true)}
}
