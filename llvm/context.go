// Copyright (C) 2026 the irkit authors. All rights reserved.
// SPDX-License-Identifier: MIT

package llvm

import (
	"runtime"
	"sync/atomic"

	"irkit/native"
)

// Context is an isolated arena for modules. Modules created in a context
// must be disposed before the context is torn down.
type Context struct {
	ref      native.ContextRef
	disposed uint32
}

var globalContext = &Context{ref: native.GlobalContext}

// GlobalContext returns the implicit arena used by NewModule.
func GlobalContext() *Context {
	return globalContext
}

// NewContext creates a fresh arena. Pair it with Dispose.
func NewContext() *Context {
	c := &Context{ref: native.ContextCreate()}
	runtime.SetFinalizer(c, (*Context).Dispose)
	return c
}

// Dispose tears down the context. It is idempotent; the global context is
// never torn down.
func (c *Context) Dispose() {
	if c.ref == native.GlobalContext {
		return
	}
	if !atomic.CompareAndSwapUint32(&c.disposed, 0, 1) {
		return
	}
	runtime.SetFinalizer(c, nil)
	native.ContextDispose(c.ref)
}
