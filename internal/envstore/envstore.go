// Package envstore abstracts the environment that loaded values are merged
// into, so loading can be exercised without touching the real process
// environment.
//
// Neither implementation makes a check-then-set sequence atomic. Callers that
// load from several goroutines at once, or race an external writer, must
// serialize the merge themselves.
package envstore

import (
	"os"
	"sort"
	"strings"
	"sync"
)

// Store is a string-keyed environment.
type Store interface {
	Lookup(key string) (string, bool)
	Set(key, value string) error
}

// IsSet reports whether key holds a non-empty value. An empty value counts
// as unset, so a file may fill it in.
func IsSet(s Store, key string) bool {
	v, ok := s.Lookup(key)
	return ok && v != ""
}

// Get returns the value of key, or "" when it is absent.
func Get(s Store, key string) string {
	v, _ := s.Lookup(key)
	return v
}

// OS is the process environment.
type OS struct{}

func (OS) Lookup(key string) (string, bool) { return os.LookupEnv(key) }

func (OS) Set(key, value string) error { return os.Setenv(key, value) }

// Map is an in-memory Store safe for concurrent use.
type Map struct {
	mu   sync.RWMutex
	vars map[string]string
}

// NewMap returns a Map holding a copy of initial.
func NewMap(initial map[string]string) *Map {
	m := &Map{vars: make(map[string]string, len(initial))}
	for k, v := range initial {
		m.vars[k] = v
	}
	return m
}

// FromEnviron builds a Map from KEY=VALUE strings as returned by os.Environ.
// Entries without '=' are ignored.
func FromEnviron(environ []string) *Map {
	m := &Map{vars: make(map[string]string, len(environ))}
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		m.vars[k] = v
	}
	return m
}

func (m *Map) Lookup(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.vars[key]
	return v, ok
}

func (m *Map) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vars[key] = value
	return nil
}

// Snapshot returns a copy of the current contents.
func (m *Map) Snapshot() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, len(m.vars))
	for k, v := range m.vars {
		out[k] = v
	}
	return out
}

// Environ returns the contents as sorted KEY=VALUE strings, suitable for
// exec.Cmd.Env.
func (m *Map) Environ() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.vars))
	for k, v := range m.vars {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}
