// Copyright (C) 2026 the irkit authors. All rights reserved.
// SPDX-License-Identifier: MIT

package verify

import (
	"testing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyModuleIsValid(t *testing.T) {
	res := Module(ir.NewModule())
	assert.Equal(t, StatusOK, res.Status)
	assert.Empty(t, res.Message)
}

func TestNilModule(t *testing.T) {
	res := Module(nil)
	assert.Equal(t, StatusInvalid, res.Status)
}

func TestDeclarationsAreValid(t *testing.T) {
	m := ir.NewModule()
	m.NewFunc("main", types.Void)
	m.NewGlobal("g", types.I32)

	res := Module(m)
	assert.Equal(t, StatusOK, res.Status)
}

func TestDefinedFunctionIsValid(t *testing.T) {
	m := ir.NewModule()
	f := m.NewFunc("main", types.Void)
	entry := f.NewBlock("entry")
	entry.NewRet(nil)

	res := Module(m)
	assert.Equal(t, StatusOK, res.Status)
	assert.Empty(t, res.Message)
}

func TestBlockWithoutTerminator(t *testing.T) {
	m := ir.NewModule()
	f := m.NewFunc("main", types.Void)
	f.NewBlock("entry")

	res := Module(m)
	require.Equal(t, StatusInvalid, res.Status)
	assert.Contains(t, res.Message, "has no terminator")
	assert.Contains(t, res.Message, "main")
}

func TestCallToUndefinedValue(t *testing.T) {
	m := ir.NewModule()
	ghost := ir.NewFunc("ghost", types.Void)

	f := m.NewFunc("main", types.Void)
	entry := f.NewBlock("entry")
	entry.NewCall(ghost)
	entry.NewRet(nil)

	res := Module(m)
	require.Equal(t, StatusInvalid, res.Status)
	assert.Contains(t, res.Message, "references undefined value '@ghost'")
	assert.NotEmpty(t, res.Message)
}

func TestReturnOfUndefinedFunction(t *testing.T) {
	m := ir.NewModule()
	ghost := ir.NewFunc("ghost", types.Void)

	fnPtr := types.NewPointer(types.NewFunc(types.Void))
	f := m.NewFunc("main", fnPtr)
	entry := f.NewBlock("entry")
	entry.NewRet(ghost)

	res := Module(m)
	require.Equal(t, StatusInvalid, res.Status)
	assert.Contains(t, res.Message, "references undefined value '@ghost'")
}

func TestReturnOfDeclaredFunction(t *testing.T) {
	m := ir.NewModule()
	ext := m.NewFunc("ext", types.Void)

	fnPtr := types.NewPointer(types.NewFunc(types.Void))
	f := m.NewFunc("main", fnPtr)
	entry := f.NewBlock("entry")
	entry.NewRet(ext)

	res := Module(m)
	assert.Equal(t, StatusOK, res.Status)
}

func TestCallToDeclaredFunction(t *testing.T) {
	m := ir.NewModule()
	ext := m.NewFunc("ext", types.Void)

	f := m.NewFunc("main", types.Void)
	entry := f.NewBlock("entry")
	entry.NewCall(ext)
	entry.NewRet(nil)

	res := Module(m)
	assert.Equal(t, StatusOK, res.Status)
}

func TestDuplicateSymbols(t *testing.T) {
	m := ir.NewModule()
	m.NewFunc("f", types.Void)
	m.NewFunc("f", types.Void)

	res := Module(m)
	require.Equal(t, StatusInvalid, res.Status)
	assert.Contains(t, res.Message, "duplicate symbol '@f'")
}

func TestAliasWithoutAliasee(t *testing.T) {
	m := ir.NewModule()
	a := &ir.Alias{}
	a.SetName("a")
	m.Aliases = append(m.Aliases, a)

	res := Module(m)
	require.Equal(t, StatusInvalid, res.Status)
	assert.Contains(t, res.Message, "alias '@a' has no aliasee")
}

func TestFindingsAggregate(t *testing.T) {
	m := ir.NewModule()
	m.NewFunc("f", types.Void)
	m.NewFunc("f", types.Void)
	g := m.NewFunc("g", types.Void)
	g.NewBlock("entry")

	res := Module(m)
	require.Equal(t, StatusInvalid, res.Status)
	assert.Contains(t, res.Message, "duplicate symbol")
	assert.Contains(t, res.Message, "has no terminator")
}
