package ir

import "strings"

// DescriptorKind identifies the category of a type reference.
type DescriptorKind int

const (
	KindReference    DescriptorKind = iota // Class or interface, possibly parameterized
	KindPrimitive                          // boolean, int, long, ...
	KindArray                              // T[]
	KindVoid                               // void
	KindTypeVariable                       // T, K, V
)

// String returns the string representation of the descriptor kind.
func (k DescriptorKind) String() string {
	switch k {
	case KindReference:
		return "Reference"
	case KindPrimitive:
		return "Primitive"
	case KindArray:
		return "Array"
	case KindVoid:
		return "Void"
	case KindTypeVariable:
		return "TypeVariable"
	default:
		return "Unknown"
	}
}

// TypeRef is a fully resolved type reference as delivered by the upstream
// resolver. Generic arguments are resolved and ordered.
//
// A TypeRef is immutable once built: every phase shares the same pointers,
// and helpers that need a different type return a new TypeRef.
type TypeRef struct {
	Kind DescriptorKind

	// Name is the qualified name for references, the keyword for primitives
	// ("int", "boolean"), and the variable name for type variables.
	// Empty for arrays and void.
	Name QualifiedName

	// Args are the generic type arguments, empty for non-generic types.
	Args []*TypeRef

	// Elem is the component type of an array.
	Elem *TypeRef

	// Nullable is set when the resolver knows the value may be null.
	Nullable bool
}

// Ref returns a reference type with the given generic arguments.
func Ref(name QualifiedName, args ...*TypeRef) *TypeRef {
	return &TypeRef{Kind: KindReference, Name: name, Args: args}
}

// Primitive returns a primitive type such as "int".
func Primitive(name string) *TypeRef {
	return &TypeRef{Kind: KindPrimitive, Name: QualifiedName(name)}
}

// Void returns the void type.
func Void() *TypeRef {
	return &TypeRef{Kind: KindVoid}
}

// ArrayOf returns an array type of elem.
func ArrayOf(elem *TypeRef) *TypeRef {
	return &TypeRef{Kind: KindArray, Elem: elem}
}

// TypeVar returns a type variable reference.
func TypeVar(name string) *TypeRef {
	return &TypeRef{Kind: KindTypeVariable, Name: QualifiedName(name)}
}

// AsNullable returns a copy of t marked nullable.
func (t *TypeRef) AsNullable() *TypeRef {
	c := *t
	c.Nullable = true
	return &c
}

// Arg returns the i-th generic argument, or nil if there is none.
func (t *TypeRef) Arg(i int) *TypeRef {
	if t == nil || i < 0 || i >= len(t.Args) {
		return nil
	}
	return t.Args[i]
}

// Arity returns the number of generic arguments.
func (t *TypeRef) Arity() int {
	if t == nil {
		return 0
	}
	return len(t.Args)
}

// Is reports whether t is a reference to the named raw type.
func (t *TypeRef) Is(name QualifiedName) bool {
	return t != nil && t.Kind == KindReference && t.Name == name
}

// IsVoid reports whether t is the void keyword.
func (t *TypeRef) IsVoid() bool {
	return t != nil && t.Kind == KindVoid
}

// IsOpaque reports whether t can never have a generated counterpart:
// primitives, arrays, void and type variables.
func (t *TypeRef) IsOpaque() bool {
	return t != nil && t.Kind != KindReference
}

// WithName returns a copy of t pointing at a different raw type.
func (t *TypeRef) WithName(name QualifiedName) *TypeRef {
	c := *t
	c.Name = name
	return &c
}

// WithArgs returns a copy of t with different generic arguments.
func (t *TypeRef) WithArgs(args ...*TypeRef) *TypeRef {
	c := *t
	c.Args = args
	return &c
}

// Equal reports whether two references describe the same type.
// Nullability is ignored.
func (t *TypeRef) Equal(o *TypeRef) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.Kind != o.Kind || t.Name != o.Name || len(t.Args) != len(o.Args) {
		return false
	}
	if t.Kind == KindArray && !t.Elem.Equal(o.Elem) {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}

// String renders the type in the same syntax ParseType accepts.
func (t *TypeRef) String() string {
	if t == nil {
		return "<nil>"
	}
	var sb strings.Builder
	t.write(&sb)
	return sb.String()
}

func (t *TypeRef) write(sb *strings.Builder) {
	switch t.Kind {
	case KindVoid:
		sb.WriteString("void")
	case KindArray:
		t.Elem.write(sb)
		sb.WriteString("[]")
	default:
		sb.WriteString(string(t.Name))
		if len(t.Args) > 0 {
			sb.WriteByte('<')
			for i, a := range t.Args {
				if i > 0 {
					sb.WriteString(", ")
				}
				a.write(sb)
			}
			sb.WriteByte('>')
		}
	}
	if t.Nullable {
		sb.WriteByte('?')
	}
}
