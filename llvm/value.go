// Copyright (C) 2026 the irkit authors. All rights reserved.
// SPDX-License-Identifier: MIT

package llvm

import (
	"irkit/cstr"
	"irkit/native"
)

// Value is a weak reference to a module-owned entity (global variable,
// function or alias). It is valid only while the owning module is live; the
// module owns the underlying storage, Value never frees it.
type Value struct {
	ref   native.ValueRef
	owner *Module
}

// Name returns the entity's symbol name.
func (v *Value) Name() (string, error) {
	if err := v.owner.live(); err != nil {
		return "", err
	}
	return cstr.GoString(native.GetValueName(v.ref)), nil
}

// BasicBlockCount returns the number of basic blocks of a function value.
// Zero means the function is a declaration without a body.
func (v *Value) BasicBlockCount() (int, error) {
	if err := v.owner.live(); err != nil {
		return 0, err
	}
	n := native.CountBasicBlocks(v.ref)
	if n < 0 {
		return 0, &NotFoundError{Kind: "function"}
	}
	return n, nil
}

// Same reports whether two references point at the same underlying entity.
func Same(a, b *Value) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ref == b.ref && a.owner == b.owner
}
