package java

import (
	"sort"

	"github.com/broady/shimgen/ir"
)

// imports assigns simple names to the types a file references. The first
// type to claim a simple name keeps it; later types with the same simple
// name are written fully qualified.
type imports struct {
	pkg     string
	claimed map[string]ir.QualifiedName
	needed  map[ir.QualifiedName]bool
}

func newImports(self ir.QualifiedName) *imports {
	im := &imports{
		pkg:     self.Package(),
		claimed: make(map[string]ir.QualifiedName),
		needed:  make(map[ir.QualifiedName]bool),
	}
	im.claimed[self.Simple()] = self
	return im
}

// use returns the name q is written as.
func (im *imports) use(q ir.QualifiedName) string {
	pkg := q.Package()
	if pkg == "" {
		return string(q)
	}
	simple := q.Simple()
	if owner, ok := im.claimed[simple]; ok {
		if owner == q {
			return simple
		}
		return string(q)
	}
	im.claimed[simple] = q
	if pkg != "java.lang" && pkg != im.pkg {
		im.needed[q] = true
	}
	return simple
}

// list returns the import declarations in sorted order.
func (im *imports) list() []string {
	out := make([]string, 0, len(im.needed))
	for q := range im.needed {
		out = append(out, string(q))
	}
	sort.Strings(out)
	return out
}
