// Copyright (C) 2026 the irkit authors. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"regexp"

	"github.com/spf13/cobra"
)

// IsArgsn ensures there are 1 or more arguments
func IsArgsn(_ *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("no input file specified")
	}
	return nil
}

// IsArgs1 ensures there is exactly one argument
func IsArgs1(_ *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("expected exactly one input file")
	}
	return nil
}

var reIsLL = regexp.MustCompile(`(.*)\.ll$`)

func baseLL(fn string) string {
	return reIsLL.ReplaceAllString(fn, "${1}")
}
