// Copyright (C) 2026 the irkit authors. All rights reserved.
// SPDX-License-Identifier: MIT

package llvm

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModule(t *testing.T, name string) *Module {
	t.Helper()
	m := NewModule(name)
	t.Cleanup(m.Dispose)
	return m
}

func TestCreateThenDispose(t *testing.T) {
	m := NewModule("m")
	m.Dispose()

	_, err := m.DataLayout()
	assert.ErrorIs(t, err, ErrUseAfterDispose)
	_, err = m.Target()
	assert.ErrorIs(t, err, ErrUseAfterDispose)
	assert.ErrorIs(t, m.SetTarget("x"), ErrUseAfterDispose)
	assert.ErrorIs(t, m.SetInlineAsm("nop"), ErrUseAfterDispose)
	assert.ErrorIs(t, m.Verify(), ErrUseAfterDispose)
	assert.ErrorIs(t, m.WriteToFile("out.ll"), ErrUseAfterDispose)
	_, err = m.NamedFunction("f")
	assert.ErrorIs(t, err, ErrUseAfterDispose)
	_, err = m.FirstGlobal()
	assert.ErrorIs(t, err, ErrUseAfterDispose)
	_, err = m.Clone()
	assert.ErrorIs(t, err, ErrUseAfterDispose)
	assert.Equal(t, "", m.String())
}

func TestDisposeIdempotence(t *testing.T) {
	m := NewModule("m")
	m.Dispose()
	assert.NotPanics(t, m.Dispose)

	// unrelated modules keep working after the double dispose
	other := newTestModule(t, "other")
	id, err := other.Identifier()
	require.Nil(t, err)
	assert.Equal(t, "other", id)
}

func TestDataLayoutRoundTrip(t *testing.T) {
	testCases := []string{
		"",
		"e-m:e-i64:64-f80:128-n8:16:32:64-S128",
	}
	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%q", tc), func(t *testing.T) {
			m := newTestModule(t, "m")
			require.Nil(t, m.SetDataLayout(tc))

			got, err := m.DataLayout()
			require.Nil(t, err)
			assert.Equal(t, tc, got)
		})
	}
}

func TestTargetRoundTrip(t *testing.T) {
	testCases := []string{
		"",
		"x86_64-unknown-linux-gnu",
		"riscv64-unknown-elf",
	}
	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%q", tc), func(t *testing.T) {
			m := newTestModule(t, "m")
			require.Nil(t, m.SetTarget(tc))

			got, err := m.Target()
			require.Nil(t, err)
			assert.Equal(t, tc, got)
		})
	}
}

func TestLookupMiss(t *testing.T) {
	m := newTestModule(t, "m")

	_, err := m.NamedFunction("doesNotExist")
	require.NotNil(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "function", nf.Kind)
	assert.Equal(t, "doesNotExist", nf.Name)
}

func TestLookupHit(t *testing.T) {
	m := newTestModule(t, "m")
	ty := FunctionType(VoidType())

	f, err := m.AddFunction("f", ty)
	require.Nil(t, err)

	got, err := m.NamedFunction("f")
	require.Nil(t, err)
	assert.True(t, Same(f, got))

	name, err := got.Name()
	require.Nil(t, err)
	assert.Equal(t, "f", name)
}

func TestAddOrGetFunctionIdempotence(t *testing.T) {
	m := newTestModule(t, "m")
	ty := FunctionType(VoidType())

	first, err := m.AddOrGetFunction("f", ty)
	require.Nil(t, err)
	second, err := m.AddOrGetFunction("f", ty)
	require.Nil(t, err)
	assert.True(t, Same(first, second))

	// no duplicate was created
	last, err := m.LastFunction()
	require.Nil(t, err)
	assert.True(t, Same(first, last))
	assert.Nil(t, m.Verify())
}

func TestEmptyCollectionNavigation(t *testing.T) {
	m := newTestModule(t, "m")

	_, err := m.FirstFunction()
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = m.LastFunction()
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = m.FirstGlobal()
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = m.LastGlobal()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNilNavigationInputs(t *testing.T) {
	m := newTestModule(t, "m")

	_, err := m.NextFunction(nil)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = m.NextGlobal(nil)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = m.AddAlias(PointerType(IntType(32)), nil, "a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGlobals(t *testing.T) {
	m := newTestModule(t, "m")

	g, err := m.AddGlobal(IntType(32), "counter")
	require.Nil(t, err)

	got, err := m.NamedGlobal("counter")
	require.Nil(t, err)
	assert.True(t, Same(g, got))

	first, err := m.FirstGlobal()
	require.Nil(t, err)
	last, err := m.LastGlobal()
	require.Nil(t, err)
	assert.True(t, Same(first, last))

	spaced, err := m.AddGlobalInAddressSpace(IntType(8), "buf", 3)
	require.Nil(t, err)
	name, err := spaced.Name()
	require.Nil(t, err)
	assert.Equal(t, "buf", name)
	assert.Contains(t, m.String(), "addrspace(3)")
}

func TestAddAlias(t *testing.T) {
	m := newTestModule(t, "m")

	ty := IntType(64)
	g, err := m.AddGlobal(ty, "g")
	require.Nil(t, err)

	a, err := m.AddAlias(PointerType(ty), g, "g_alias")
	require.Nil(t, err)

	name, err := a.Name()
	require.Nil(t, err)
	assert.Equal(t, "g_alias", name)
	assert.Nil(t, m.Verify())
}

func TestVerifyEmptyModule(t *testing.T) {
	m := newTestModule(t, "m")
	assert.Nil(t, m.Verify())
}

func TestVerifyInvalidModule(t *testing.T) {
	m := newTestModule(t, "m")
	ty := FunctionType(VoidType())

	_, err := m.AddFunction("f", ty)
	require.Nil(t, err)
	_, err = m.AddFunction("f", ty)
	require.Nil(t, err)

	err = m.Verify()
	require.NotNil(t, err)

	var verr *VerifyError
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Message)
	assert.Contains(t, verr.Message, "duplicate symbol '@f'")
}

func TestTypeByName(t *testing.T) {
	m := newTestModule(t, "m")

	_, err := m.TypeByName("pair")
	assert.ErrorIs(t, err, ErrNotFound)

	st, err := m.CreateNamedStruct("pair")
	require.Nil(t, err)
	assert.False(t, st.IsNil())

	got, err := m.TypeByName("pair")
	require.Nil(t, err)
	assert.False(t, got.IsNil())
}

func TestWriteToFile(t *testing.T) {
	m := newTestModule(t, "m")

	fn := filepath.Join(t.TempDir(), "m.ll")
	assert.Nil(t, m.WriteToFile(fn))
}

func TestWriteToFileBadPath(t *testing.T) {
	m := newTestModule(t, "m")

	fn := filepath.Join(t.TempDir(), "no", "such", "dir", "m.ll")
	err := m.WriteToFile(fn)
	require.NotNil(t, err)

	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, fn, ioErr.Path)
}

func TestCloneIndependence(t *testing.T) {
	m := newTestModule(t, "m")
	require.Nil(t, m.SetTarget("x86_64-unknown-linux-gnu"))

	c, err := m.Clone()
	require.Nil(t, err)
	defer c.Dispose()

	require.Nil(t, c.SetTarget("riscv64-unknown-elf"))

	src, err := m.Target()
	require.Nil(t, err)
	assert.Equal(t, "x86_64-unknown-linux-gnu", src)

	dup, err := c.Target()
	require.Nil(t, err)
	assert.Equal(t, "riscv64-unknown-elf", dup)
}

func TestCloneParsedModule(t *testing.T) {
	src := `define void @callee() {
entry:
	ret void
}

define void @main() {
entry:
	call void @callee()
	ret void
}
`
	fn := filepath.Join(t.TempDir(), "m.ll")
	require.Nil(t, os.WriteFile(fn, []byte(src), 0600))

	m, err := ParseFile(fn)
	require.Nil(t, err)
	defer m.Dispose()

	c, err := m.Clone()
	require.Nil(t, err)
	defer c.Dispose()

	assert.Nil(t, c.Verify())

	f, err := c.NamedFunction("main")
	require.Nil(t, err)
	blocks, err := f.BasicBlockCount()
	require.Nil(t, err)
	assert.Equal(t, 1, blocks)

	// clone entities survive disposing the source
	m.Dispose()
	_, err = c.NamedFunction("callee")
	assert.Nil(t, err)
}

func TestModuleInContext(t *testing.T) {
	ctx := NewContext()
	m := NewModuleInContext("m", ctx)

	assert.Equal(t, ctx, m.Context())

	m.Dispose()
	ctx.Dispose()
	assert.NotPanics(t, ctx.Dispose)
}

func TestStandaloneModuleContext(t *testing.T) {
	m := newTestModule(t, "m")
	assert.Equal(t, GlobalContext(), m.Context())
}

func TestIdentifierRoundTrip(t *testing.T) {
	m := newTestModule(t, "m")

	id, err := m.Identifier()
	require.Nil(t, err)
	assert.Equal(t, "m", id)

	require.Nil(t, m.SetIdentifier("renamed"))
	id, err = m.Identifier()
	require.Nil(t, err)
	assert.Equal(t, "renamed", id)
}

func TestSetInlineAsm(t *testing.T) {
	m := newTestModule(t, "m")
	require.Nil(t, m.SetInlineAsm(".globl start"))
	assert.Contains(t, m.String(), ".globl start")
}

func TestScenarioCreateVerifyWrite(t *testing.T) {
	m := newTestModule(t, "m")

	_, err := m.AddFunction("main", FunctionType(VoidType()))
	require.Nil(t, err)

	require.Nil(t, m.Verify())

	fn := filepath.Join(t.TempDir(), "m.bc")
	assert.Nil(t, m.WriteToFile(fn))
}

func TestParseFileRoundTrip(t *testing.T) {
	m := newTestModule(t, "m")
	_, err := m.AddFunction("main", FunctionType(VoidType()))
	require.Nil(t, err)

	fn := filepath.Join(t.TempDir(), "m.ll")
	require.Nil(t, m.WriteToFile(fn))

	parsed, err := ParseFile(fn)
	require.Nil(t, err)
	defer parsed.Dispose()

	_, err = parsed.NamedFunction("main")
	assert.Nil(t, err)
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.ll"))
	require.NotNil(t, err)

	var ioErr *IOError
	assert.ErrorAs(t, err, &ioErr)
}

func TestValueUseAfterDispose(t *testing.T) {
	m := NewModule("m")
	f, err := m.AddFunction("f", FunctionType(VoidType()))
	require.Nil(t, err)

	m.Dispose()

	_, err = f.Name()
	assert.ErrorIs(t, err, ErrUseAfterDispose)
	_, err = f.BasicBlockCount()
	assert.ErrorIs(t, err, ErrUseAfterDispose)
}
