// Copyright (C) 2026 the irkit authors. All rights reserved.
// SPDX-License-Identifier: MIT

package native

import (
	"sync"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"

	"irkit/logger"
)

// ModuleRef is an opaque reference to a live module. 0 is the null sentinel.
type ModuleRef uint32

// ContextRef is an opaque reference to an allocation arena for modules.
// 0 refers to the global context.
type ContextRef uint32

// TypeRef is an opaque reference to a type. 0 is the null sentinel.
type TypeRef uint32

// ValueRef is an opaque reference to a module-owned entity (global variable,
// function or alias). 0 is the null sentinel.
type ValueRef uint32

// GlobalContext is the implicit arena used by modules created standalone.
const GlobalContext ContextRef = 0

type moduleEntry struct {
	mod    *ir.Module
	ctx    ContextRef
	values map[constant.Constant]ValueRef
	refs   []ValueRef
	valid  bool
}

type contextEntry struct {
	modules []ModuleRef
	valid   bool
}

type valueEntry struct {
	val   constant.Constant
	owner ModuleRef
	valid bool
}

type typeEntry struct {
	typ types.Type
}

// registry is the process-global handle table. Slots are slabs indexed by
// handle-1 with free lists for modules and values; types are arena-owned and
// never recycled, matching the foreign library's context-owned type storage.
type registry struct {
	mu sync.Mutex

	modules     []moduleEntry
	freeModules []ModuleRef

	contexts []contextEntry

	values     []valueEntry
	freeValues []ValueRef

	types []typeEntry
}

var reg registry

func (r *registry) newModule(mod *ir.Module, ctx ContextRef) ModuleRef {
	e := moduleEntry{
		mod:    mod,
		ctx:    ctx,
		values: make(map[constant.Constant]ValueRef),
		valid:  true,
	}

	var ref ModuleRef
	if n := len(r.freeModules); n > 0 {
		ref = r.freeModules[n-1]
		r.freeModules = r.freeModules[:n-1]
		r.modules[ref-1] = e
	} else {
		r.modules = append(r.modules, e)
		ref = ModuleRef(len(r.modules))
	}

	if ctx != GlobalContext {
		if c := r.context(ctx); c != nil {
			c.modules = append(c.modules, ref)
		}
	}
	return ref
}

// module resolves ref to its entry, or nil for the null sentinel, a stale
// handle, or a disposed module.
func (r *registry) module(ref ModuleRef) *moduleEntry {
	if ref == 0 || int(ref) > len(r.modules) {
		return nil
	}
	e := &r.modules[ref-1]
	if !e.valid {
		return nil
	}
	return e
}

// dropModule invalidates ref and every entity handle derived from it. The
// second drop of the same handle is a no-op.
func (r *registry) dropModule(ref ModuleRef) {
	e := r.module(ref)
	if e == nil {
		return
	}
	for _, vref := range e.refs {
		r.values[vref-1] = valueEntry{}
		r.freeValues = append(r.freeValues, vref)
	}
	r.modules[ref-1] = moduleEntry{}
	r.freeModules = append(r.freeModules, ref)
}

func (r *registry) newContext() ContextRef {
	r.contexts = append(r.contexts, contextEntry{valid: true})
	return ContextRef(len(r.contexts))
}

func (r *registry) context(ref ContextRef) *contextEntry {
	if ref == 0 || int(ref) > len(r.contexts) {
		return nil
	}
	e := &r.contexts[ref-1]
	if !e.valid {
		return nil
	}
	return e
}

// dropContext tears down the arena. Modules still live inside it are
// dangling per the lifetime contract; they are disposed here with a warning
// so that their handles at least fail fast instead of pointing into a dead
// arena.
func (r *registry) dropContext(ref ContextRef) {
	e := r.context(ref)
	if e == nil {
		return
	}
	for _, mref := range e.modules {
		if m := r.module(mref); m != nil {
			logger.Warnf("context %d disposed before module '%s'", ref, m.mod.SourceFilename)
			r.dropModule(mref)
		}
	}
	r.contexts[ref-1] = contextEntry{}
}

// newValue registers an entity handle owned by mod. Registering the same
// entity twice yields the same handle, so identity survives repeated
// lookups.
func (r *registry) newValue(mref ModuleRef, m *moduleEntry, val constant.Constant) ValueRef {
	if val == nil {
		return 0
	}
	if ref, ok := m.values[val]; ok {
		return ref
	}

	e := valueEntry{val: val, owner: mref, valid: true}
	var ref ValueRef
	if n := len(r.freeValues); n > 0 {
		ref = r.freeValues[n-1]
		r.freeValues = r.freeValues[:n-1]
		r.values[ref-1] = e
	} else {
		r.values = append(r.values, e)
		ref = ValueRef(len(r.values))
	}

	m.values[val] = ref
	m.refs = append(m.refs, ref)
	return ref
}

// value resolves ref, returning nil for sentinels, stale handles, and
// handles whose owning module has been disposed.
func (r *registry) value(ref ValueRef) *valueEntry {
	if ref == 0 || int(ref) > len(r.values) {
		return nil
	}
	e := &r.values[ref-1]
	if !e.valid {
		return nil
	}
	return e
}

func (r *registry) newType(t types.Type) TypeRef {
	if t == nil {
		return 0
	}
	r.types = append(r.types, typeEntry{typ: t})
	return TypeRef(len(r.types))
}

func (r *registry) typ(ref TypeRef) types.Type {
	if ref == 0 || int(ref) > len(r.types) {
		return nil
	}
	return r.types[ref-1].typ
}
