// Copyright (C) 2026 the irkit authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package llvm is a safe facade over the native module boundary. A Module
// owns exactly one opaque handle; it is created with NewModule or
// NewModuleInContext and released exactly once with Dispose. Entity handles
// (globals, functions, aliases, types) are weak references owned by their
// module and must not be used after the module is disposed.
//
// Routine misses (lookups, first/last on empty collections) are reported as
// *NotFoundError values matching ErrNotFound, so callers can branch without
// unwinding. Using a disposed module fails with ErrUseAfterDispose.
//
// A Module is not safe for concurrent use; callers that share one across
// goroutines must serialize access themselves. A finalizer disposes leaked
// modules as a safety net, but explicit Dispose is the contract.
package llvm
