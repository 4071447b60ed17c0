// Copyright (C) 2026 the irkit authors. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"irkit/llvm"
	"irkit/logger"
	"irkit/tools"
)

var emitFlags = struct {
	outputFn  string
	setTriple bool
	setLayout bool
}{}

func init() {
	var emitCmd = cobra.Command{
		Use:   "emit [flags] <input.ll>",
		Short: "Re-emits the input module in canonical form.",
		Args:  IsArgs1,

		DisableFlagsInUseLine: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			fn := args[0]
			out := emitFlags.outputFn
			if out == "" {
				out = baseLL(fn) + ".out.ll"
			}
			return Emit(fn, out)
		},
	}

	flags := emitCmd.PersistentFlags()
	flags.StringVarP(&emitFlags.outputFn, "output", "o", "", "output file")
	flags.BoolVar(&emitFlags.setTriple, "set-triple", false,
		"apply IRKIT_DEFAULT_TRIPLE to the output module")
	flags.BoolVar(&emitFlags.setLayout, "set-layout", false,
		"apply IRKIT_DEFAULT_LAYOUT to the output module")

	rootCmd.AddCommand(&emitCmd)
}

// Emit loads fn, applies the requested property overrides to a clone, and
// writes the clone to out. The source module is left untouched.
func Emit(fn, out string) error {
	logger.Debugf("Emit %s -> %s", fn, out)

	src, err := llvm.ParseFile(fn)
	if err != nil {
		return verror(internalError, err)
	}
	defer src.Dispose()

	dst, err := src.Clone()
	if err != nil {
		return verror(internalError, err)
	}
	defer dst.Dispose()

	if emitFlags.setTriple {
		if err := dst.SetTarget(tools.GetEnv("IRKIT_DEFAULT_TRIPLE")); err != nil {
			return verror(internalError, err)
		}
	}
	if emitFlags.setLayout {
		if err := dst.SetDataLayout(tools.GetEnv("IRKIT_DEFAULT_LAYOUT")); err != nil {
			return verror(internalError, err)
		}
	}

	if err := dst.WriteToFile(out); err != nil {
		return verror(internalError, fmt.Errorf("cannot write output: %v", err))
	}
	logger.Infof("Wrote '%s'", out)
	return nil
}
