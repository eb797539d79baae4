// Package env contains helpers to interact with the environment
// variables relevant to git.
package env

import (
	"os"
	"strings"
)

// Env represents a set of environment variables
type Env struct {
	vars map[string]string
}

// NewFromOs returns an Env backed by the current process environment
func NewFromOs() *Env {
	return NewFromKVList(os.Environ())
}

// NewFromKVList returns an Env built from a list of "KEY=VALUE" strings,
// the same format as os.Environ()
func NewFromKVList(kvList []string) *Env {
	vars := make(map[string]string, len(kvList))
	for _, kv := range kvList {
		key, value, _ := strings.Cut(kv, "=")
		vars[key] = value
	}
	return &Env{vars: vars}
}

// Has returns whether the given key is set
func (e *Env) Has(key string) bool {
	_, ok := e.vars[key]
	return ok
}

// Get returns the value of the given key, or an empty string if unset
func (e *Env) Get(key string) string {
	return e.vars[key]
}
