package adapt

import (
	"strconv"
	"strings"

	"github.com/iancoleman/strcase"
)

// Scope hands out names that are unique within one generated method body:
// declared parameters, adaptation locals and lambda parameters. Java forbids
// a lambda parameter from redeclaring any of them.
type Scope struct {
	taken map[string]bool
}

// NewScope returns a scope in which names are already taken.
func NewScope(names ...string) *Scope {
	s := &Scope{taken: make(map[string]bool, len(names))}
	for _, n := range names {
		s.taken[n] = true
	}
	return s
}

// Fresh reserves and returns base, or base followed by the smallest
// positive number that is still free.
func (s *Scope) Fresh(base string) string {
	name := base
	for i := 1; s.taken[name]; i++ {
		name = base + strconv.Itoa(i)
	}
	s.taken[name] = true
	return name
}

// Taken reports whether name is reserved.
func (s *Scope) Taken(name string) bool {
	return s.taken[name]
}

// LocalName returns the base name of the local bound to an adapted
// parameter. Leading underscores are dropped first so the rest stays
// lowerCamel.
func LocalName(param string) string {
	return "_" + strcase.ToLowerCamel(strings.TrimLeft(param, "_"))
}
