// Copyright (C) 2026 the irkit authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package verify performs structural validity checking of IR modules. It is
// invoked by the native boundary's verify operation and reports either OK or
// Invalid together with a diagnostic message listing every finding.
package verify

import (
	"fmt"
	"strings"

	"github.com/llir/llvm/ir"

	"irkit/logger"
)

// Status represents the outcome of a verification run.
type Status int

//go:generate go run golang.org/x/tools/cmd/stringer -type=Status
const (
	// StatusUndefined represents a run with outcome Undefined
	StatusUndefined Status = iota
	// StatusOK represents a run with outcome OK
	StatusOK
	// StatusInvalid represents a run with outcome Invalid
	StatusInvalid
)

// Result is a pair of Status and diagnostic message. Message is empty when
// the module is valid.
type Result struct {
	Status  Status
	Message string
}

// Module checks the structural validity of m. Findings are aggregated into
// Result.Message, one per line.
func Module(m *ir.Module) Result {
	if m == nil {
		return Result{Status: StatusInvalid, Message: "module is nil"}
	}
	logger.Debugf("Verify '%s'", m.SourceFilename)

	var findings []string
	findings = append(findings, dupSymbols(m)...)
	findings = append(findings, checkGlobals(m)...)
	findings = append(findings, checkAliases(m)...)
	findings = append(findings, checkFuncs(m)...)

	if len(findings) == 0 {
		return Result{Status: StatusOK}
	}
	return Result{
		Status:  StatusInvalid,
		Message: strings.Join(findings, "\n"),
	}
}

// dupSymbols reports global symbol names defined more than once across
// globals, functions and aliases.
func dupSymbols(m *ir.Module) []string {
	var (
		seen     = make(map[string]bool)
		findings []string
	)
	check := func(name string) {
		if name == "" {
			return
		}
		if seen[name] {
			findings = append(findings, fmt.Sprintf("duplicate symbol '@%s'", name))
		}
		seen[name] = true
	}
	for _, g := range m.Globals {
		check(g.Name())
	}
	for _, f := range m.Funcs {
		check(f.Name())
	}
	for _, a := range m.Aliases {
		check(a.Name())
	}
	return findings
}

func checkGlobals(m *ir.Module) []string {
	var findings []string
	for _, g := range m.Globals {
		if g.ContentType == nil {
			findings = append(findings, fmt.Sprintf("global '@%s' has no content type", g.Name()))
		}
	}
	return findings
}

func checkAliases(m *ir.Module) []string {
	var findings []string
	for _, a := range m.Aliases {
		if a.Aliasee == nil {
			findings = append(findings, fmt.Sprintf("alias '@%s' has no aliasee", a.Name()))
		}
	}
	return findings
}

func checkFuncs(m *ir.Module) []string {
	declared := make(map[*ir.Func]bool)
	for _, f := range m.Funcs {
		declared[f] = true
	}

	var findings []string
	for _, f := range m.Funcs {
		for _, b := range f.Blocks {
			if b.Term == nil {
				findings = append(findings,
					fmt.Sprintf("block '%s' in function '@%s' has no terminator", b.Name(), f.Name()))
			} else {
				findings = append(findings, checkTerm(f, b.Term, declared)...)
			}
			for _, inst := range b.Insts {
				findings = append(findings, checkInst(f, inst, declared)...)
			}
		}
	}
	return findings
}

// checkTerm inspects the terminators whose operands can reference module
// level values.
func checkTerm(f *ir.Func, term ir.Terminator, declared map[*ir.Func]bool) []string {
	switch term := term.(type) {
	case *ir.TermRet:
		callee, ok := term.X.(*ir.Func)
		if !ok {
			return nil
		}
		if !declared[callee] {
			return []string{fmt.Sprintf(
				"function '@%s' references undefined value '@%s'", f.Name(), callee.Name())}
		}
	default:
	}
	return nil
}

// checkInst inspects the instructions whose operands can reference module
// level values.
func checkInst(f *ir.Func, inst ir.Instruction, declared map[*ir.Func]bool) []string {
	switch inst := inst.(type) {
	case *ir.InstCall:
		callee, ok := inst.Callee.(*ir.Func)
		if !ok {
			return nil
		}
		if !declared[callee] {
			return []string{fmt.Sprintf(
				"function '@%s' references undefined value '@%s'", f.Name(), callee.Name())}
		}
	default:
	}
	return nil
}
