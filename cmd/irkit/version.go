// Copyright (C) 2026 the irkit authors. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/cobra"

	"irkit/logger"
)

var (
	name    = "irkit"
	version = "latest"
)

var versionCmd = cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		logger.Printf("%s %s\n", name, version)
	},
}

func init() {
	versionCmd.SetHelpFunc(func(command *cobra.Command, strings []string) {})
	rootCmd.AddCommand(&versionCmd)
}
