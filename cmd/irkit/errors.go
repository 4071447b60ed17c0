// Copyright (C) 2026 the irkit authors. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"irkit/logger"
	"irkit/verify"
)

type errorType int

//go:generate go run golang.org/x/tools/cmd/stringer -type=errorType
const (
	checkFail     errorType = 2
	internalError errorType = 1
	noError       errorType = 0
)

type vError struct {
	typ    errorType
	status verify.Status
	err    error
}

func vfail(s verify.Status, err error) *vError {
	return &vError{
		typ:    checkFail,
		status: s,
		err:    err,
	}
}

func (e *vError) Error() string {
	switch e.typ {
	case checkFail:
		logger.Debugf("%v: %v", e.typ, e.status)
		return ""
	default:
		return e.err.Error()
	}
}

func (e *vError) Code() int {
	return int(e.typ)
}

func verror(typ errorType, err error) *vError {
	return &vError{
		typ: typ,
		err: err,
	}
}

func getErrorCode(err error) int {
	if err == nil {
		return 0
	}
	switch e := err.(type) {
	case *vError:
		return e.Code()
	default:
		return -1
	}
}

func getErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
