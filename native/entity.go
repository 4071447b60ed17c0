// Copyright (C) 2026 the irkit authors. All rights reserved.
// SPDX-License-Identifier: MIT

package native

import (
	"github.com/jinzhu/copier"
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"

	"irkit/cstr"
)

// AddGlobal declares a global variable of the given content type and name.
func AddGlobal(ref ModuleRef, ty TypeRef, name cstr.Buffer) ValueRef {
	return AddGlobalInAddressSpace(ref, ty, name, 0)
}

// AddGlobalInAddressSpace declares a global variable in an explicit address
// space.
func AddGlobalInAddressSpace(ref ModuleRef, ty TypeRef, name cstr.Buffer, space int) ValueRef {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	e := reg.module(ref)
	contentType := reg.typ(ty)
	if e == nil || contentType == nil {
		return 0
	}

	g := e.mod.NewGlobal(cstr.GoString(name), contentType)
	if space != 0 {
		// clone the pointer type before retagging it; the original may be
		// shared with other entities
		ptr := new(types.PointerType)
		if err := copier.Copy(ptr, g.Typ); err != nil {
			return 0
		}
		ptr.AddrSpace = types.AddrSpace(space)
		g.AddrSpace = ptr.AddrSpace
		g.Typ = ptr
	}
	return reg.newValue(ref, e, g)
}

// GetNamedGlobal looks a global variable up by name. Returns the null
// sentinel when no such global exists.
func GetNamedGlobal(ref ModuleRef, name cstr.Buffer) ValueRef {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	e := reg.module(ref)
	if e == nil {
		return 0
	}
	want := cstr.GoString(name)
	for _, g := range e.mod.Globals {
		if g.Name() == want {
			return reg.newValue(ref, e, g)
		}
	}
	return 0
}

// GetFirstGlobal returns the first global of the module, or the null
// sentinel when the collection is empty.
func GetFirstGlobal(ref ModuleRef) ValueRef {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	e := reg.module(ref)
	if e == nil || len(e.mod.Globals) == 0 {
		return 0
	}
	return reg.newValue(ref, e, e.mod.Globals[0])
}

// GetLastGlobal returns the last global of the module, or the null sentinel
// when the collection is empty.
func GetLastGlobal(ref ModuleRef) ValueRef {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	e := reg.module(ref)
	if e == nil || len(e.mod.Globals) == 0 {
		return 0
	}
	return reg.newValue(ref, e, e.mod.Globals[len(e.mod.Globals)-1])
}

// GetNextGlobal advances the intrusive global sequence. Returns the null
// sentinel at the end of the sequence.
func GetNextGlobal(ref ModuleRef, cur ValueRef) ValueRef {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	e := reg.module(ref)
	v := reg.value(cur)
	if e == nil || v == nil || v.owner != ref {
		return 0
	}
	for i, g := range e.mod.Globals {
		if constant.Constant(g) == v.val && i+1 < len(e.mod.Globals) {
			return reg.newValue(ref, e, e.mod.Globals[i+1])
		}
	}
	return 0
}

// AddAlias creates a named alias for aliasee. The alias assumes ty when it
// resolves to a pointer type, otherwise the aliasee's own type is kept.
func AddAlias(ref ModuleRef, ty TypeRef, aliasee ValueRef, name cstr.Buffer) ValueRef {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	e := reg.module(ref)
	v := reg.value(aliasee)
	if e == nil || v == nil || v.owner != ref {
		return 0
	}

	a := e.mod.NewAlias(cstr.GoString(name), v.val)
	if ptr, ok := reg.typ(ty).(*types.PointerType); ok {
		a.Typ = ptr
	}
	return reg.newValue(ref, e, a)
}

// AddFunction adds a function of the given signature under name. The type
// must be a function type or the null sentinel is returned.
func AddFunction(ref ModuleRef, name cstr.Buffer, fnty TypeRef) ValueRef {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	e := reg.module(ref)
	sig, ok := reg.typ(fnty).(*types.FuncType)
	if e == nil || !ok {
		return 0
	}

	params := make([]*ir.Param, 0, len(sig.Params))
	for _, pt := range sig.Params {
		params = append(params, ir.NewParam("", pt))
	}
	f := e.mod.NewFunc(cstr.GoString(name), sig.RetType, params...)
	f.Sig.Variadic = sig.Variadic
	return reg.newValue(ref, e, f)
}

// GetNamedFunction looks a function up by name. Returns the null sentinel
// when no such function exists.
func GetNamedFunction(ref ModuleRef, name cstr.Buffer) ValueRef {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	e := reg.module(ref)
	if e == nil {
		return 0
	}
	want := cstr.GoString(name)
	for _, f := range e.mod.Funcs {
		if f.Name() == want {
			return reg.newValue(ref, e, f)
		}
	}
	return 0
}

// GetFirstFunction returns the first function of the module, or the null
// sentinel when the module declares no functions.
func GetFirstFunction(ref ModuleRef) ValueRef {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	e := reg.module(ref)
	if e == nil || len(e.mod.Funcs) == 0 {
		return 0
	}
	return reg.newValue(ref, e, e.mod.Funcs[0])
}

// GetLastFunction returns the last function of the module, or the null
// sentinel when the module declares no functions.
func GetLastFunction(ref ModuleRef) ValueRef {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	e := reg.module(ref)
	if e == nil || len(e.mod.Funcs) == 0 {
		return 0
	}
	return reg.newValue(ref, e, e.mod.Funcs[len(e.mod.Funcs)-1])
}

// GetNextFunction advances the intrusive function sequence. Returns the null
// sentinel at the end of the sequence.
func GetNextFunction(ref ModuleRef, cur ValueRef) ValueRef {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	e := reg.module(ref)
	v := reg.value(cur)
	if e == nil || v == nil || v.owner != ref {
		return 0
	}
	for i, f := range e.mod.Funcs {
		if constant.Constant(f) == v.val && i+1 < len(e.mod.Funcs) {
			return reg.newValue(ref, e, e.mod.Funcs[i+1])
		}
	}
	return 0
}

// GetTypeByName looks a type definition up by its registered name.
func GetTypeByName(ref ModuleRef, name cstr.Buffer) TypeRef {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	e := reg.module(ref)
	if e == nil {
		return 0
	}
	want := cstr.GoString(name)
	for _, t := range e.mod.TypeDefs {
		if t.Name() == want {
			return reg.newType(t)
		}
	}
	return 0
}

// GetValueName returns the symbol name of an entity. The buffer is
// module-owned; the caller must not free it.
func GetValueName(ref ValueRef) cstr.Buffer {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	v := reg.value(ref)
	if v == nil {
		return nil
	}
	type named interface{ Name() string }
	if n, ok := v.val.(named); ok {
		return ownedBuffer(n.Name())
	}
	return nil
}

// CountBasicBlocks returns the number of basic blocks of a function, or -1
// when the handle does not refer to a function.
func CountBasicBlocks(ref ValueRef) int {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	v := reg.value(ref)
	if v == nil {
		return -1
	}
	f, ok := v.val.(*ir.Func)
	if !ok {
		return -1
	}
	return len(f.Blocks)
}
