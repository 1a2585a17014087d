package core

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Environment variables the shell maintains itself.
const (
	EnvPWD    = "PWD"
	EnvOldPWD = "OLDPWD"
)

// NewEnvFromList creates a new environment from a list of KEY=value pairs
// such as the one returned by os.Environ. Later duplicates win.
func NewEnvFromList(environ []string) *Env {
	out := &Env{}

	for _, e := range environ {
		split := strings.SplitN(e, "=", 2)
		key, value := split[0], ""
		if len(split) > 1 {
			value = split[1]
		}
		out.Setenv(key, value)
	}

	return out
}

// Env holds the variables of a shell session. Child processes receive a copy.
type Env struct {
	rw  sync.RWMutex
	env map[string]string
}

// Setenv sets the value of a variable.
func (m *Env) Setenv(key, value string) {
	m.rw.Lock()
	defer m.rw.Unlock()

	if m.env == nil {
		m.env = make(map[string]string)
	}
	m.env[key] = value
}

// LookupEnv gets the value of a variable and whether it was set.
func (m *Env) LookupEnv(key string) (string, bool) {
	m.rw.RLock()
	defer m.rw.RUnlock()

	val, ok := m.env[key]
	return val, ok
}

// Getenv gets the value of a variable, empty if unset.
func (m *Env) Getenv(key string) string {
	val, _ := m.LookupEnv(key)
	return val
}

// Environ returns the variables as KEY=value pairs sorted by key.
func (m *Env) Environ() []string {
	m.rw.RLock()
	defer m.rw.RUnlock()

	env := make([]string, 0, len(m.env))
	for k, v := range m.env {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(env)

	return env
}
