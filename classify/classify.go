// Package classify assigns every type reference its structural role at the
// call boundary.
//
// Classification is a single ordered match: the first rule that applies
// wins. Shapes overlap in their raw generic form (a consumer and a callback
// are both single-argument interfaces), so the order is part of the
// contract and must not change.
package classify

import (
	"github.com/broady/shimgen/ir"
	"github.com/broady/shimgen/registry"
	"github.com/broady/shimgen/vocab"
)

// Classifier is safe for concurrent use once its registry is frozen.
type Classifier struct {
	vocab *vocab.Vocabulary
	reg   registry.Lookup
}

// New returns a classifier matching against v and resolving generated
// types through reg.
func New(v *vocab.Vocabulary, reg registry.Lookup) *Classifier {
	return &Classifier{vocab: v, reg: reg}
}

// Vocabulary returns the vocabulary the classifier matches against.
func (c *Classifier) Vocabulary() *vocab.Vocabulary {
	return c.vocab
}

// Classify returns the shape of t. It is total over well-formed references
// and deterministic. The only error is a registry lookup failure, which
// means the registry was consulted before it was built.
func (c *Classifier) Classify(t *ir.TypeRef) (ir.Shape, error) {
	if t == nil {
		return nil, ir.Gap(nil, "missing type")
	}
	if t.IsOpaque() {
		return &ir.Plain{Of: t}, nil
	}

	v := c.vocab
	switch {
	case t.Is(v.Callback):
		return &ir.Callback{Of: t, Item: t.Arg(0)}, nil
	case t.Is(v.List):
		return &ir.List{Of: t, Elem: t.Arg(0)}, nil
	case t.Is(v.Set):
		return &ir.Set{Of: t, Elem: t.Arg(0)}, nil
	case t.Is(v.Map):
		return &ir.Map{Of: t, Key: t.Arg(0), Value: t.Arg(1)}, nil
	case t.Is(v.Consumer):
		return &ir.Consumer{Of: t, Item: t.Arg(0)}, nil
	case t.Is(v.Supplier) && v.IsDeferred(t.Arg(0)):
		d := t.Arg(0)
		return &ir.SupplierOfDeferred{Of: t, Deferred: d, Item: d.Arg(0)}, nil
	case t.Is(v.Supplier):
		return &ir.Supplier{Of: t, Item: t.Arg(0)}, nil
	case t.Is(v.Function):
		return &ir.TransformFunction{Of: t, Input: t.Arg(0), Output: t.Arg(1)}, nil
	case t.Is(v.ReadStream):
		return &ir.StreamAsPublisher{Of: t, Elem: t.Arg(0)}, nil
	case v.IsDeferred(t):
		return &ir.DeferredValue{Of: t, Item: t.Arg(0)}, nil
	case t.Is(v.Runnable):
		return &ir.RunnableCallback{Of: t}, nil
	}

	gen, ok, err := c.reg.Generated(t.Name)
	if err != nil {
		return nil, err
	}
	if ok {
		return &ir.GeneratedAPI{Of: t, Generated: gen}, nil
	}
	return &ir.Plain{Of: t}, nil
}

// ClassifyParameter classifies a declared parameter. A push-based source is
// only bridged to a pull-based stream when the parameter surfaces as the
// publisher type; otherwise it is handled like any other type, which means
// unwrapping when the source type itself has a generated counterpart.
func (c *Classifier) ClassifyParameter(p ir.ParamDecl) (ir.Shape, error) {
	s, err := c.Classify(p.Type)
	if err != nil {
		return nil, err
	}
	if s.Tag() != ir.ShapeStreamAsPublisher || p.Surface == nil || p.Surface.Is(c.vocab.Publisher) {
		return s, nil
	}
	gen, ok, err := c.reg.Generated(p.Type.Name)
	if err != nil {
		return nil, err
	}
	if ok {
		return &ir.GeneratedAPI{Of: p.Type, Generated: gen}, nil
	}
	return &ir.Plain{Of: p.Type}, nil
}

// IsGenerated reports whether t classifies as GENERATED_API, returning the
// generated name when it does.
func (c *Classifier) IsGenerated(t *ir.TypeRef) (ir.QualifiedName, bool, error) {
	s, err := c.Classify(t)
	if err != nil {
		return "", false, err
	}
	if g, ok := s.(*ir.GeneratedAPI); ok {
		return g.Generated, true, nil
	}
	return "", false, nil
}
