// Copyright (C) 2026 the irkit authors. All rights reserved.
// SPDX-License-Identifier: MIT

package tools

import (
	"os"
	"sort"
)

// Envvar describes one registered environment variable.
type Envvar struct {
	Name string
	Defv string
	Desc string
}

var envvars = make(map[string]Envvar)

// RegEnv registers an environment variable with a default value and a
// description shown in the command help.
func RegEnv(name, defv, desc string) {
	envvars[name] = Envvar{Name: name, Defv: defv, Desc: desc}
}

// GetEnv returns the value of a registered environment variable, falling
// back to its registered default when unset.
func GetEnv(name string) string {
	if v, has := os.LookupEnv(name); has {
		return v
	}
	return envvars[name].Defv
}

// GetEnvvars returns the registered environment variables sorted by name.
func GetEnvvars() []Envvar {
	evs := make([]Envvar, 0, len(envvars))
	for _, ev := range envvars {
		evs = append(evs, ev)
	}
	sort.Slice(evs, func(i, j int) bool { return evs[i].Name < evs[j].Name })
	return evs
}
