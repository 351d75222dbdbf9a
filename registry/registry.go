// Package registry maps original types to their generated counterparts.
//
// The registry is built in two phases. A Builder collects every pair while
// the types under generation are discovered; it refuses lookups so that no
// classification can observe a partial mapping. Build freezes the pairs
// into an immutable Registry that is safe for concurrent reads.
package registry

import (
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/broady/shimgen/ir"
)

// Lookup answers registry queries. A lookup on an unfrozen registry fails
// with ir.ErrRegistryIncomplete.
type Lookup interface {
	// Generated returns the generated counterpart of an original type.
	Generated(orig ir.QualifiedName) (ir.QualifiedName, bool, error)

	// Original returns the original type a generated name wraps.
	Original(gen ir.QualifiedName) (ir.QualifiedName, bool, error)
}

// Builder accumulates registry entries during phase 1.
type Builder struct {
	forward map[ir.QualifiedName]ir.QualifiedName
	reverse map[ir.QualifiedName]ir.QualifiedName
	built   bool
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		forward: make(map[ir.QualifiedName]ir.QualifiedName),
		reverse: make(map[ir.QualifiedName]ir.QualifiedName),
	}
}

// Add records a pair. Adding the same pair twice is a no-op; conflicting
// pairs and additions after Build are errors.
func (b *Builder) Add(orig, gen ir.QualifiedName) error {
	if b.built {
		return errors.Newf("registry: add %s after build", orig)
	}
	if orig == "" || gen == "" {
		return errors.Mark(errors.Newf("registry: empty name in pair (%q, %q)", orig, gen), ir.ErrInvalidInput)
	}
	if prev, ok := b.forward[orig]; ok {
		if prev == gen {
			return nil
		}
		return errors.Mark(errors.Newf("registry: %s already maps to %s, not %s", orig, prev, gen), ir.ErrInvalidInput)
	}
	if prev, ok := b.reverse[gen]; ok {
		return errors.Mark(errors.Newf("registry: %s is already generated for %s", gen, prev), ir.ErrInvalidInput)
	}
	b.forward[orig] = gen
	b.reverse[gen] = orig
	return nil
}

// Generated always fails: the registry is not complete until Build.
func (b *Builder) Generated(orig ir.QualifiedName) (ir.QualifiedName, bool, error) {
	return "", false, ir.RegistryIncomplete(orig)
}

// Original always fails: the registry is not complete until Build.
func (b *Builder) Original(gen ir.QualifiedName) (ir.QualifiedName, bool, error) {
	return "", false, ir.RegistryIncomplete(gen)
}

// Build freezes the collected pairs. The builder cannot be used afterwards.
func (b *Builder) Build() *Registry {
	b.built = true
	r := &Registry{forward: b.forward, reverse: b.reverse}
	b.forward, b.reverse = nil, nil
	return r
}

// Registry is the frozen, read-only mapping used during phase 2.
type Registry struct {
	forward map[ir.QualifiedName]ir.QualifiedName
	reverse map[ir.QualifiedName]ir.QualifiedName
}

// FromAPI builds a registry from every type under generation and every
// external pair of api.
func FromAPI(api *ir.API) (*Registry, error) {
	b := NewBuilder()
	for _, e := range api.RegistryEntries() {
		if err := b.Add(e.Original, e.Generated); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}

// Generated returns the generated counterpart of orig.
func (r *Registry) Generated(orig ir.QualifiedName) (ir.QualifiedName, bool, error) {
	gen, ok := r.forward[orig]
	return gen, ok, nil
}

// Original returns the original type gen wraps.
func (r *Registry) Original(gen ir.QualifiedName) (ir.QualifiedName, bool, error) {
	orig, ok := r.reverse[gen]
	return orig, ok, nil
}

// Has reports whether orig has a generated counterpart.
func (r *Registry) Has(orig ir.QualifiedName) bool {
	_, ok := r.forward[orig]
	return ok
}

// Len returns the number of pairs.
func (r *Registry) Len() int {
	return len(r.forward)
}

// Entries returns every pair sorted by original name.
func (r *Registry) Entries() []ir.RegistryEntry {
	entries := make([]ir.RegistryEntry, 0, len(r.forward))
	for orig, gen := range r.forward {
		entries = append(entries, ir.RegistryEntry{Original: orig, Generated: gen})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Original < entries[j].Original })
	return entries
}
