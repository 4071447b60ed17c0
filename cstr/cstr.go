// Copyright (C) 2026 the irkit authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cstr converts Go strings to and from the NUL-terminated byte
// buffers expected by the native module boundary. Buffers handed to the
// boundary are pooled; acquire them with FromString and release them with
// Free, or use WithString for scoped acquisition.
package cstr

import (
	"bytes"
	"sync"
)

// Buffer is a NUL-terminated byte buffer crossing the boundary.
// A nil Buffer is the null-pointer sentinel.
type Buffer []byte

var pool = sync.Pool{
	New: func() any {
		b := make([]byte, 0, 64)
		return &b
	},
}

// FromString encodes s as a NUL-terminated buffer. The empty string yields
// a valid one-byte buffer holding only NUL, never nil, so that boundary
// calls expecting a buffer do not dereference null.
func FromString(s string) Buffer {
	bp := pool.Get().(*[]byte)
	b := append((*bp)[:0], s...)
	b = append(b, 0)
	*bp = b
	return Buffer(b)
}

// GoString decodes b up to its first NUL byte. A nil buffer decodes to "".
func GoString(b Buffer) string {
	if b == nil {
		return ""
	}
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return string(b[:i])
	}
	return string(b)
}

// Free returns b's storage to the pool. Passing nil is a no-op. The caller
// must not touch b afterwards.
func Free(b Buffer) {
	if b == nil {
		return
	}
	s := []byte(b)
	pool.Put(&s)
}

// WithString runs fn with a NUL-terminated encoding of s. The buffer is
// released on every exit path, including when fn reports an error.
func WithString(s string, fn func(Buffer) error) error {
	b := FromString(s)
	defer Free(b)
	return fn(b)
}
