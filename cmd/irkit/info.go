// Copyright (C) 2026 the irkit authors. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"errors"

	"github.com/spf13/cobra"

	"irkit/llvm"
	"irkit/logger"
)

func init() {
	var infoCmd = cobra.Command{
		Use:   "info <input.ll ...>",
		Short: "Prints information about the input file(s).",
		Args:  IsArgsn,

		DisableFlagsInUseLine: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			for _, fn := range args {
				if err := Info(fn); err != nil {
					return err
				}
			}
			return nil
		},
	}

	rootCmd.AddCommand(&infoCmd)
}

// Info loads fn and prints a summary of the module.
func Info(fn string) error {
	logger.Debugf("Info %s", fn)

	m, err := llvm.ParseFile(fn)
	if err != nil {
		return verror(internalError, err)
	}
	defer m.Dispose()

	return printSummary(m, fn)
}

func printSummary(m *llvm.Module, fn string) error {
	ident, err := m.Identifier()
	if err != nil {
		return verror(internalError, err)
	}
	triple, err := m.Target()
	if err != nil {
		return verror(internalError, err)
	}
	layout, err := m.DataLayout()
	if err != nil {
		return verror(internalError, err)
	}

	defined, declared, err := countFunctions(m)
	if err != nil {
		return verror(internalError, err)
	}
	globals, err := countGlobals(m)
	if err != nil {
		return verror(internalError, err)
	}

	logger.Println("== SUMMARY ===================================")
	logger.Println()
	logger.Println("File")
	logger.Printf("  %s\n", fn)
	logger.Println()
	logger.Println("Module")
	logger.Printf("  Identifier    : %s\n", orNone(ident))
	logger.Printf("  Target triple : %s\n", orNone(triple))
	logger.Printf("  Data layout   : %s\n", orNone(layout))
	logger.Println()
	logger.Println("Entities")
	logger.Printf("  Globals       : %v\n", globals)
	logger.Printf("  Functions     : %v defined, %v declared\n", defined, declared)
	logger.Println()
	return nil
}

// countFunctions walks the intrusive function sequence once.
func countFunctions(m *llvm.Module) (defined, declared int, err error) {
	for v, err := m.FirstFunction(); ; v, err = m.NextFunction(v) {
		if errors.Is(err, llvm.ErrNotFound) {
			return defined, declared, nil
		}
		if err != nil {
			return 0, 0, err
		}
		blocks, err := v.BasicBlockCount()
		if err != nil {
			return 0, 0, err
		}
		if blocks > 0 {
			defined++
		} else {
			declared++
		}
	}
}

func countGlobals(m *llvm.Module) (int, error) {
	n := 0
	for v, err := m.FirstGlobal(); ; v, err = m.NextGlobal(v) {
		if errors.Is(err, llvm.ErrNotFound) {
			return n, nil
		}
		if err != nil {
			return 0, err
		}
		n++
	}
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
