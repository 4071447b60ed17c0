// Copyright (C) 2026 the irkit authors. All rights reserved.
// SPDX-License-Identifier: MIT

package native

import (
	"github.com/llir/llvm/ir/types"

	"irkit/cstr"
)

// VoidType returns a handle to the void type.
func VoidType() TypeRef {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return reg.newType(types.Void)
}

// IntType returns a handle to an integer type of the given bit width.
func IntType(bits int) TypeRef {
	if bits <= 0 {
		return 0
	}
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return reg.newType(types.NewInt(uint64(bits)))
}

// PointerType returns a handle to a pointer to elem.
func PointerType(elem TypeRef) TypeRef {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	et := reg.typ(elem)
	if et == nil {
		return 0
	}
	return reg.newType(types.NewPointer(et))
}

// FunctionType returns a handle to a function type with the given return and
// parameter types.
func FunctionType(ret TypeRef, params []TypeRef, variadic bool) TypeRef {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	rt := reg.typ(ret)
	if rt == nil {
		return 0
	}
	pts := make([]types.Type, 0, len(params))
	for _, p := range params {
		pt := reg.typ(p)
		if pt == nil {
			return 0
		}
		pts = append(pts, pt)
	}
	sig := types.NewFunc(rt, pts...)
	sig.Variadic = variadic
	return reg.newType(sig)
}

// NamedStructType registers an opaque struct type definition under name in
// the module and returns its handle.
func NamedStructType(ref ModuleRef, name cstr.Buffer) TypeRef {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	e := reg.module(ref)
	if e == nil {
		return 0
	}
	st := types.NewStruct()
	st.Opaque = true
	e.mod.NewTypeDef(cstr.GoString(name), st)
	return reg.newType(st)
}
