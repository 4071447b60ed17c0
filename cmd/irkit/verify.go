// Copyright (C) 2026 the irkit authors. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"sync"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"irkit/llvm"
	"irkit/logger"
	"irkit/verify"
)

var (
	okColor   = color.New(color.FgGreen).SprintFunc()
	failColor = color.New(color.FgRed).SprintFunc()
)

func init() {
	var verifyCmd = cobra.Command{
		Use:   "verify <input.ll ...>",
		Short: "Checks the structural validity of the input modules.",
		Args:  IsArgsn,

		DisableFlagsInUseLine: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			return Verify(args)
		},
	}

	rootCmd.AddCommand(&verifyCmd)
}

// Verify loads and verifies every input file. Files are checked in parallel;
// each file gets its own module handle. Returns a check failure when any
// module is invalid.
func Verify(args []string) error {
	var (
		g        errgroup.Group
		mu       sync.Mutex
		messages = make(map[string]string)
	)

	for _, fn := range args {
		fn := fn
		g.Go(func() error {
			msg, err := verifyFile(fn)
			if err != nil {
				return err
			}
			mu.Lock()
			messages[fn] = msg
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return verror(internalError, err)
	}

	failed := false
	for _, fn := range args {
		msg := messages[fn]
		if msg == "" {
			logger.Printf("%s %s\n", okColor("  OK"), fn)
			continue
		}
		failed = true
		logger.Printf("%s %s\n", failColor("FAIL"), fn)
		logger.Println(msg)
	}
	if failed {
		return vfail(verify.StatusInvalid, fmt.Errorf("verification failed"))
	}
	return nil
}

// verifyFile returns the diagnostic for fn, empty when the module is valid.
func verifyFile(fn string) (string, error) {
	m, err := llvm.ParseFile(fn)
	if err != nil {
		return "", err
	}
	defer m.Dispose()

	err = m.Verify()
	if err == nil {
		return "", nil
	}
	var verr *llvm.VerifyError
	if errors.As(err, &verr) {
		return verr.Message, nil
	}
	return "", err
}
