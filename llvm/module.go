// Copyright (C) 2026 the irkit authors. All rights reserved.
// SPDX-License-Identifier: MIT

package llvm

import (
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"

	"irkit/cstr"
	"irkit/logger"
	"irkit/native"
)

// Module is the main container for an IR unit. It wraps exactly one opaque
// native handle, alive from creation until Dispose.
type Module struct {
	ref      native.ModuleRef
	ctx      *Context
	disposed uint32
}

// NewModule creates a new, empty module in the global context. Every
// invocation must be paired with Dispose or the native handle leaks until
// the finalizer safety net runs.
func NewModule(name string) *Module {
	return NewModuleInContext(name, globalContext)
}

// NewModuleInContext creates a new, empty module inside ctx. The module must
// be disposed before ctx is.
func NewModuleInContext(name string, ctx *Context) *Module {
	var ref native.ModuleRef
	marshal(name, func(b cstr.Buffer) {
		ref = native.CreateModuleInContext(b, ctx.ref)
	})
	if ref == 0 {
		// no documented recovery path for a failed native allocation
		panic(ErrAllocFailed)
	}

	m := &Module{ref: ref, ctx: ctx}
	runtime.SetFinalizer(m, (*Module).Dispose)
	return m
}

// ParseFile loads a textual IR file into a fresh module in the global
// context.
func ParseFile(path string) (*Module, error) {
	var (
		ref native.ModuleRef
		msg cstr.Buffer
	)
	marshal(path, func(b cstr.Buffer) {
		ref, msg = native.ParseModuleFile(b)
	})
	if ref == 0 {
		return nil, &IOError{Path: path, Err: errors.New(takeMessage(msg))}
	}

	m := &Module{ref: ref, ctx: globalContext}
	runtime.SetFinalizer(m, (*Module).Dispose)
	return m, nil
}

// live is the handle guard; every operation passes through it first.
func (m *Module) live() error {
	if atomic.LoadUint32(&m.disposed) != 0 {
		return ErrUseAfterDispose
	}
	return nil
}

// Dispose destroys the module and invalidates every entity handle derived
// from it. Dispose is idempotent: the second and later calls are no-ops, so
// the finalizer may race an explicit call without double-freeing.
func (m *Module) Dispose() {
	if !atomic.CompareAndSwapUint32(&m.disposed, 0, 1) {
		return
	}
	runtime.SetFinalizer(m, nil)
	native.DisposeModule(m.ref)
}

// Context returns the context the module was created in.
func (m *Module) Context() *Context {
	return m.ctx
}

// Clone returns a deep copy of the module under a fresh handle in the same
// context.
func (m *Module) Clone() (*Module, error) {
	if err := m.live(); err != nil {
		return nil, err
	}
	ref := native.CloneModule(m.ref)
	if ref == 0 {
		return nil, ErrAllocFailed
	}

	c := &Module{ref: ref, ctx: m.ctx}
	runtime.SetFinalizer(c, (*Module).Dispose)
	return c, nil
}

// Verify checks the structural validity of the module. It returns nil when
// the module is valid and a *VerifyError carrying the native diagnostic
// otherwise. The native check always runs in return-status mode, never in
// abort-process mode.
func (m *Module) Verify() error {
	if err := m.live(); err != nil {
		return err
	}
	status, msg := native.VerifyModule(m.ref, native.ReturnStatusAction)
	if status == 0 {
		return nil
	}
	return &VerifyError{Message: takeMessage(msg)}
}

// DataLayout returns the module's data layout string.
func (m *Module) DataLayout() (string, error) {
	if err := m.live(); err != nil {
		return "", err
	}
	return cstr.GoString(native.GetDataLayout(m.ref)), nil
}

// SetDataLayout sets the module's data layout string.
func (m *Module) SetDataLayout(layout string) error {
	if err := m.live(); err != nil {
		return err
	}
	marshal(layout, func(b cstr.Buffer) {
		native.SetDataLayout(m.ref, b)
	})
	return nil
}

// Target returns the module's target triple.
func (m *Module) Target() (string, error) {
	if err := m.live(); err != nil {
		return "", err
	}
	return cstr.GoString(native.GetTarget(m.ref)), nil
}

// SetTarget sets the module's target triple.
func (m *Module) SetTarget(triple string) error {
	if err := m.live(); err != nil {
		return err
	}
	marshal(triple, func(b cstr.Buffer) {
		native.SetTarget(m.ref, b)
	})
	return nil
}

// SetInlineAsm replaces the module-level inline assembly. The property is
// write-only, mirroring the boundary.
func (m *Module) SetInlineAsm(asm string) error {
	if err := m.live(); err != nil {
		return err
	}
	marshal(asm, func(b cstr.Buffer) {
		native.SetModuleInlineAsm(m.ref, b)
	})
	return nil
}

// Identifier returns the module's name.
func (m *Module) Identifier() (string, error) {
	if err := m.live(); err != nil {
		return "", err
	}
	return cstr.GoString(native.GetModuleIdentifier(m.ref)), nil
}

// SetIdentifier renames the module.
func (m *Module) SetIdentifier(name string) error {
	if err := m.live(); err != nil {
		return err
	}
	marshal(name, func(b cstr.Buffer) {
		native.SetModuleIdentifier(m.ref, b)
	})
	return nil
}

// TypeByName looks a type definition up by its registered name.
func (m *Module) TypeByName(name string) (TypeRef, error) {
	if err := m.live(); err != nil {
		return TypeRef{}, err
	}
	var ref native.TypeRef
	marshal(name, func(b cstr.Buffer) {
		ref = native.GetTypeByName(m.ref, b)
	})
	if ref == 0 {
		return TypeRef{}, &NotFoundError{Kind: "type", Name: name}
	}
	return TypeRef{ref: ref}, nil
}

// CreateNamedStruct registers an opaque struct type definition under name.
func (m *Module) CreateNamedStruct(name string) (TypeRef, error) {
	if err := m.live(); err != nil {
		return TypeRef{}, err
	}
	var ref native.TypeRef
	marshal(name, func(b cstr.Buffer) {
		ref = native.NamedStructType(m.ref, b)
	})
	if ref == 0 {
		return TypeRef{}, ErrAllocFailed
	}
	return TypeRef{ref: ref}, nil
}

// AddGlobal declares a global variable of the given content type and name.
func (m *Module) AddGlobal(ty TypeRef, name string) (*Value, error) {
	return m.AddGlobalInAddressSpace(ty, name, 0)
}

// AddGlobalInAddressSpace declares a global variable in an explicit address
// space.
func (m *Module) AddGlobalInAddressSpace(ty TypeRef, name string, space int) (*Value, error) {
	if err := m.live(); err != nil {
		return nil, err
	}
	var ref native.ValueRef
	marshal(name, func(b cstr.Buffer) {
		ref = native.AddGlobalInAddressSpace(m.ref, ty.ref, b, space)
	})
	if ref == 0 {
		return nil, ErrAllocFailed
	}
	return &Value{ref: ref, owner: m}, nil
}

// NamedGlobal looks a global variable up by name.
func (m *Module) NamedGlobal(name string) (*Value, error) {
	if err := m.live(); err != nil {
		return nil, err
	}
	var ref native.ValueRef
	marshal(name, func(b cstr.Buffer) {
		ref = native.GetNamedGlobal(m.ref, b)
	})
	return m.resolveValue(ref, "global", name)
}

// FirstGlobal returns the first global variable of the module.
func (m *Module) FirstGlobal() (*Value, error) {
	if err := m.live(); err != nil {
		return nil, err
	}
	return m.resolveValue(native.GetFirstGlobal(m.ref), "global", "")
}

// LastGlobal returns the last global variable of the module.
func (m *Module) LastGlobal() (*Value, error) {
	if err := m.live(); err != nil {
		return nil, err
	}
	return m.resolveValue(native.GetLastGlobal(m.ref), "global", "")
}

// NextGlobal advances the intrusive global sequence from cur. A nil cur is
// reported as the end of the sequence.
func (m *Module) NextGlobal(cur *Value) (*Value, error) {
	if err := m.live(); err != nil {
		return nil, err
	}
	if cur == nil {
		return nil, &NotFoundError{Kind: "global"}
	}
	return m.resolveValue(native.GetNextGlobal(m.ref, cur.ref), "global", "")
}

// AddAlias creates a named alias of the given type for aliasee.
func (m *Module) AddAlias(ty TypeRef, aliasee *Value, name string) (*Value, error) {
	if err := m.live(); err != nil {
		return nil, err
	}
	if aliasee == nil {
		return nil, &NotFoundError{Kind: "aliasee"}
	}
	var ref native.ValueRef
	marshal(name, func(b cstr.Buffer) {
		ref = native.AddAlias(m.ref, ty.ref, aliasee.ref, b)
	})
	if ref == 0 {
		return nil, ErrAllocFailed
	}
	return &Value{ref: ref, owner: m}, nil
}

// AddFunction adds a function of the given signature under name.
func (m *Module) AddFunction(name string, ty TypeRef) (*Value, error) {
	if err := m.live(); err != nil {
		return nil, err
	}
	var ref native.ValueRef
	marshal(name, func(b cstr.Buffer) {
		ref = native.AddFunction(m.ref, b, ty.ref)
	})
	if ref == 0 {
		return nil, ErrAllocFailed
	}
	return &Value{ref: ref, owner: m}, nil
}

// NamedFunction looks a function up by name.
func (m *Module) NamedFunction(name string) (*Value, error) {
	if err := m.live(); err != nil {
		return nil, err
	}
	var ref native.ValueRef
	marshal(name, func(b cstr.Buffer) {
		ref = native.GetNamedFunction(m.ref, b)
	})
	return m.resolveValue(ref, "function", name)
}

// AddOrGetFunction returns the function registered under name, creating it
// with the given type when no such function exists. The boundary is
// synchronous, so the lookup and the creation cannot interleave with other
// operations on this module.
func (m *Module) AddOrGetFunction(name string, ty TypeRef) (*Value, error) {
	v, err := m.NamedFunction(name)
	switch {
	case err == nil:
		return v, nil
	case errors.Is(err, ErrNotFound):
		return m.AddFunction(name, ty)
	default:
		return nil, err
	}
}

// FirstFunction returns the first function of the module.
func (m *Module) FirstFunction() (*Value, error) {
	if err := m.live(); err != nil {
		return nil, err
	}
	return m.resolveValue(native.GetFirstFunction(m.ref), "function", "")
}

// LastFunction returns the last function of the module.
func (m *Module) LastFunction() (*Value, error) {
	if err := m.live(); err != nil {
		return nil, err
	}
	return m.resolveValue(native.GetLastFunction(m.ref), "function", "")
}

// NextFunction advances the intrusive function sequence from cur. A nil cur
// is reported as the end of the sequence.
func (m *Module) NextFunction(cur *Value) (*Value, error) {
	if err := m.live(); err != nil {
		return nil, err
	}
	if cur == nil {
		return nil, &NotFoundError{Kind: "function"}
	}
	return m.resolveValue(native.GetNextFunction(m.ref, cur.ref), "function", "")
}

// WriteToFile serializes the module to path. A failed write is a routine
// outcome reported as *IOError, never a panic.
func (m *Module) WriteToFile(path string) error {
	if err := m.live(); err != nil {
		return err
	}
	var status int
	marshal(path, func(b cstr.Buffer) {
		status = native.WriteBitcodeToFile(m.ref, b)
	})
	if status != 0 {
		return &IOError{Path: path, Err: fmt.Errorf("write failed (status %d)", status)}
	}
	return nil
}

// Dump writes a textual representation of the module to stderr.
func (m *Module) Dump() {
	if err := m.live(); err != nil {
		logger.Debugf("dump skipped: %v", err)
		return
	}
	native.DumpModule(m.ref)
}

// String renders the module's textual IR. A disposed module renders as the
// empty string.
func (m *Module) String() string {
	if err := m.live(); err != nil {
		return ""
	}
	return takeMessage(native.PrintModuleToString(m.ref))
}
