// Copyright (C) 2026 the irkit authors. All rights reserved.
// SPDX-License-Identifier: MIT

package native

import (
	"irkit/cstr"
	"irkit/logger"
	"irkit/verify"
)

// VerifierFailureAction selects what VerifyModule does when a module is
// structurally invalid.
type VerifierFailureAction int

const (
	// AbortProcessAction prints the diagnostic to stderr and aborts.
	AbortProcessAction VerifierFailureAction = iota
	// PrintMessageAction prints the diagnostic to stderr and returns status.
	PrintMessageAction
	// ReturnStatusAction only returns the status and diagnostic.
	ReturnStatusAction
)

// VerifyModule checks the structural validity of a module. It returns 0 and
// a nil buffer when the module is valid. On failure it returns a nonzero
// status and, in ReturnStatusAction mode, a caller-owned diagnostic buffer
// that must be released with DisposeMessage.
func VerifyModule(ref ModuleRef, action VerifierFailureAction) (int, cstr.Buffer) {
	reg.mu.Lock()
	e := reg.module(ref)
	reg.mu.Unlock()

	if e == nil {
		return -1, nil
	}

	res := verify.Module(e.mod)
	if res.Status == verify.StatusOK {
		return 0, nil
	}

	switch action {
	case AbortProcessAction:
		logger.Fatalf("invalid module:\n%s", res.Message)
		return 1, nil
	case PrintMessageAction:
		logger.Errorf("invalid module:\n%s", res.Message)
		return 1, nil
	default:
		return 1, cstr.FromString(res.Message)
	}
}
