// Copyright (C) 2026 the irkit authors. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"irkit/tools"
)

var testLLFiles = []string{
	"testdata/empty.ll",
	"testdata/counter.ll",
}

func TestInfoLLFiles(t *testing.T) {
	for _, fn := range testLLFiles {
		fn := fn
		t.Run(filepath.Base(fn), func(t *testing.T) {
			err := Info(fn)
			assert.Nil(t, err)
		})
	}
}

func TestInfoMissingFile(t *testing.T) {
	err := Info(filepath.Join(t.TempDir(), "missing.ll"))
	require.NotNil(t, err)
	assert.Equal(t, int(internalError), getErrorCode(err))
}

func TestVerifyLLFiles(t *testing.T) {
	err := Verify(testLLFiles)
	assert.Nil(t, err)
}

func TestVerifyMissingFile(t *testing.T) {
	err := Verify([]string{filepath.Join(t.TempDir(), "missing.ll")})
	require.NotNil(t, err)
	assert.Equal(t, int(internalError), getErrorCode(err))
}

func TestEmit(t *testing.T) {
	for _, fn := range testLLFiles {
		fn := fn
		t.Run(filepath.Base(fn), func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "out.ll")
			err := Emit(fn, out)
			require.Nil(t, err)
			assert.Nil(t, tools.FileExists(out))

			// the emitted module must round-trip through the verifier
			assert.Nil(t, Verify([]string{out}))
		})
	}
}

func TestBaseLL(t *testing.T) {
	assert.Equal(t, "foo", baseLL("foo.ll"))
	assert.Equal(t, "dir/foo", baseLL("dir/foo.ll"))
	assert.Equal(t, "foo.c", baseLL("foo.c"))
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, 0, getErrorCode(nil))
	assert.Equal(t, 2, getErrorCode(vfail(0, nil)))
	assert.Equal(t, 1, getErrorCode(verror(internalError, assert.AnError)))
	assert.Equal(t, -1, getErrorCode(assert.AnError))
}
