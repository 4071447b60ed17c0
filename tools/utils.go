// Copyright (C) 2026 the irkit authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package tools provides small file helpers and the environment-variable
// registry used by the irkit command line tool.
package tools

import (
	"fmt"
	"os"

	"irkit/logger"
)

const fileMode = 0600

// Touch creates a new temporary file with the given file pattern and returns
// its name.
func Touch(pattern string) (string, error) {
	tmp, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", err
	}
	if err := tmp.Close(); err != nil {
		logger.Warnf("error closing file: %v", err)
	}
	return tmp.Name(), nil
}

// FileExists returns nil if a file exists otherwise an error
func FileExists(fn string) error {
	if _, err := os.Stat(fn); os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", fn)
	}
	return nil
}

// CopyFile copies src into dst. Returns nil upon no error
func CopyFile(src, dst string) error {
	logger.Infof("copying file: '%s' -> '%s'", src, dst)
	input, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("could not read '%v': %v", src, err)
	}

	if err := os.WriteFile(dst, input, fileMode); err != nil {
		return fmt.Errorf("could not create '%v': %v", dst, err)
	}
	return nil
}

// Remove deletes a file.
func Remove(fn string) error {
	logger.Debugf("Remove file '%s'", fn)
	return os.Remove(fn)
}

// Dump writes the current state of the module to a file.
func Dump(m fmt.Stringer, fn string) error {
	logger.Debugf("Dump file '%s'", fn)
	out, err := os.OpenFile(fn,
		os.O_TRUNC|os.O_WRONLY|os.O_CREATE, fileMode)
	if err != nil {
		return err
	}
	defer func() {
		if err := out.Close(); err != nil {
			logger.Warnf("error closing file: %v", err)
		}
	}()
	_, err = fmt.Fprint(out, m)
	return err
}
