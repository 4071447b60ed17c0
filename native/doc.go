// Copyright (C) 2026 the irkit authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package native is the module boundary: a C-style surface of opaque handles
// and NUL-terminated buffers over IR containers (backed by github.com/llir).
// Handles are process-global; handle 0 is the null sentinel. Lookups that
// miss and operations on dead handles return the null sentinel instead of
// failing, exactly like the foreign API this surface mirrors. Callers are
// expected to guard and translate those sentinels; package llvm does so.
//
// A single handle must not be used from two goroutines at once. The registry
// itself is locked only so that unrelated handles can be serviced in
// parallel.
package native
