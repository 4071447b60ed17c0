// Copyright (C) 2026 the irkit authors. All rights reserved.
// SPDX-License-Identifier: MIT

package native

import (
	"os"

	"github.com/llir/llvm/asm"
	"github.com/llir/llvm/ir"

	"irkit/cstr"
	"irkit/logger"
	"irkit/tools"
)

// CreateModule creates a new, empty module in the global context. Every
// invocation must be paired with DisposeModule or the handle leaks.
func CreateModule(name cstr.Buffer) ModuleRef {
	return CreateModuleInContext(name, GlobalContext)
}

// CreateModuleInContext creates a new, empty module in a specific context.
// The module must be disposed before the context is.
func CreateModuleInContext(name cstr.Buffer, ctx ContextRef) ModuleRef {
	mod := ir.NewModule()
	mod.SourceFilename = cstr.GoString(name)

	reg.mu.Lock()
	defer reg.mu.Unlock()
	if ctx != GlobalContext && reg.context(ctx) == nil {
		return 0
	}
	return reg.newModule(mod, ctx)
}

// DisposeModule destroys a module instance and invalidates every entity
// handle derived from it. Disposing an already dead handle is a no-op.
func DisposeModule(ref ModuleRef) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.dropModule(ref)
}

// CloneModule returns a deep copy of the module under a fresh handle, in the
// same context as the source. The copy is made by round-tripping the textual
// IR, so the IR graph can stay cyclic while the clone shares no storage with
// the source. Returns the null sentinel on a dead handle or when the module
// does not round-trip.
func CloneModule(ref ModuleRef) ModuleRef {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	e := reg.module(ref)
	if e == nil {
		return 0
	}
	clone, err := asm.ParseString(e.mod.SourceFilename, e.mod.String())
	if err != nil {
		logger.Debugf("clone failed: %v", err)
		return 0
	}
	return reg.newModule(clone, e.ctx)
}

// ModuleContext returns the context a module was created in.
func ModuleContext(ref ModuleRef) ContextRef {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	e := reg.module(ref)
	if e == nil {
		return GlobalContext
	}
	return e.ctx
}

// ContextCreate creates a new isolated arena for modules.
func ContextCreate() ContextRef {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return reg.newContext()
}

// ContextDispose tears down a context. Modules still alive inside it are
// disposed with a warning; their handles must not be used afterwards.
func ContextDispose(ref ContextRef) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.dropContext(ref)
}

// GetDataLayout returns the data layout buffer of a module. The buffer is
// module-owned; the caller must not free it.
func GetDataLayout(ref ModuleRef) cstr.Buffer {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	e := reg.module(ref)
	if e == nil {
		return nil
	}
	return ownedBuffer(e.mod.DataLayout)
}

// SetDataLayout sets the data layout of a module.
func SetDataLayout(ref ModuleRef, layout cstr.Buffer) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if e := reg.module(ref); e != nil {
		e.mod.DataLayout = cstr.GoString(layout)
	}
}

// GetTarget returns the target triple buffer of a module. The buffer is
// module-owned; the caller must not free it.
func GetTarget(ref ModuleRef) cstr.Buffer {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	e := reg.module(ref)
	if e == nil {
		return nil
	}
	return ownedBuffer(e.mod.TargetTriple)
}

// SetTarget sets the target triple of a module.
func SetTarget(ref ModuleRef, triple cstr.Buffer) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if e := reg.module(ref); e != nil {
		e.mod.TargetTriple = cstr.GoString(triple)
	}
}

// SetModuleInlineAsm replaces the module-level inline assembly.
func SetModuleInlineAsm(ref ModuleRef, asms cstr.Buffer) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if e := reg.module(ref); e != nil {
		e.mod.ModuleAsms = []string{cstr.GoString(asms)}
	}
}

// GetModuleIdentifier returns the module's identifier buffer. The buffer is
// module-owned; the caller must not free it.
func GetModuleIdentifier(ref ModuleRef) cstr.Buffer {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	e := reg.module(ref)
	if e == nil {
		return nil
	}
	return ownedBuffer(e.mod.SourceFilename)
}

// SetModuleIdentifier renames the module.
func SetModuleIdentifier(ref ModuleRef, name cstr.Buffer) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if e := reg.module(ref); e != nil {
		e.mod.SourceFilename = cstr.GoString(name)
	}
}

// PrintModuleToString renders the module's textual IR. The caller owns the
// returned buffer and must release it with DisposeMessage.
func PrintModuleToString(ref ModuleRef) cstr.Buffer {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	e := reg.module(ref)
	if e == nil {
		return nil
	}
	return cstr.FromString(e.mod.String())
}

// DisposeMessage releases a caller-owned diagnostic or print buffer. It must
// be called exactly once per buffer.
func DisposeMessage(msg cstr.Buffer) {
	cstr.Free(msg)
}

// DumpModule writes a textual representation of the module to stderr.
func DumpModule(ref ModuleRef) {
	reg.mu.Lock()
	e := reg.module(ref)
	reg.mu.Unlock()

	if e == nil {
		return
	}
	if _, err := os.Stderr.WriteString(e.mod.String()); err != nil {
		logger.Warnf("dump failed: %v", err)
	}
}

// WriteBitcodeToFile serializes the module to path. Returns 0 on success and
// a nonzero status on write failure.
func WriteBitcodeToFile(ref ModuleRef, path cstr.Buffer) int {
	reg.mu.Lock()
	e := reg.module(ref)
	reg.mu.Unlock()

	if e == nil {
		return -1
	}
	if err := tools.Dump(e.mod, cstr.GoString(path)); err != nil {
		logger.Debugf("write failed: %v", err)
		return 1
	}
	return 0
}

// ParseModuleFile loads a textual IR file into a fresh module in the global
// context. On failure it returns the null sentinel and a caller-owned
// message buffer to be released with DisposeMessage.
func ParseModuleFile(path cstr.Buffer) (ModuleRef, cstr.Buffer) {
	fn := cstr.GoString(path)
	logger.Infof("Parse '%s'", fn)

	mod, err := asm.ParseFile(fn)
	if err != nil {
		return 0, cstr.FromString(err.Error())
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()
	return reg.newModule(mod, GlobalContext), nil
}

// ownedBuffer encodes a module-owned string as a NUL-terminated buffer that
// the caller only reads, never frees.
func ownedBuffer(s string) cstr.Buffer {
	b := make([]byte, 0, len(s)+1)
	b = append(b, s...)
	b = append(b, 0)
	return cstr.Buffer(b)
}
