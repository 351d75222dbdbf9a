// Package transform reshapes original methods into generated methods and
// assembles their declare-then-delegate bodies.
package transform

import (
	"github.com/broady/shimgen/adapt"
	"github.com/broady/shimgen/classify"
	"github.com/broady/shimgen/ir"
	"github.com/broady/shimgen/vocab"
)

// Transformer is safe for concurrent use once the classifier's registry is
// frozen. Every method is transformed independently.
type Transformer struct {
	c *classify.Classifier
	e *adapt.Engine
	v *vocab.Vocabulary
}

// New returns a transformer classifying through c.
func New(c *classify.Classifier) *Transformer {
	return &Transformer{c: c, e: adapt.New(c), v: c.Vocabulary()}
}

// Engine returns the adaptation engine used by the transformer.
func (t *Transformer) Engine() *adapt.Engine {
	return t.e
}

// Kind returns the rule set that reshapes m. A trailing callback takes
// precedence over a push-based source return.
func (t *Transformer) Kind(m *ir.MethodDecl) (ir.MethodKind, error) {
	if n := len(m.Params); n > 0 {
		s, err := t.c.Classify(m.Params[n-1].Type)
		if err != nil {
			return 0, err
		}
		if s.Tag() == ir.ShapeCallback {
			return ir.KindCallbackLastArg, nil
		}
	}
	if m.Returns != nil && !m.Returns.IsVoid() {
		s, err := t.c.Classify(m.Returns)
		if err != nil {
			return 0, err
		}
		if s.Tag() == ir.ShapeStreamAsPublisher {
			return ir.KindStreamProducer, nil
		}
	}
	return ir.KindStandard, nil
}

// Method transforms m and assembles its body.
func (t *Transformer) Method(owner *ir.TypeDecl, m *ir.MethodDecl) (*ir.Call, error) {
	md, err := t.Transform(owner, m)
	if err != nil {
		return nil, err
	}
	return t.Assemble(md)
}

// Transform computes the generated view of m. The result is never mutated
// afterwards.
func (t *Transformer) Transform(owner *ir.TypeDecl, m *ir.MethodDecl) (*ir.MethodDescriptor, error) {
	fail := func(err error, param string) error {
		return ir.Located(err, owner.Name, m.Name, param)
	}

	kind, err := t.Kind(m)
	if err != nil {
		return nil, fail(err, "")
	}

	md := &ir.MethodDescriptor{
		Name:           m.Name,
		Owner:          owner.Name,
		OriginalReturn: m.Returns,
		Kind:           kind,
		Static:         m.Static,
		Fluent:         m.Fluent,
		TypeParams:     m.TypeParams,
		Doc:            m.Doc,
	}

	params := m.Params
	if kind == ir.KindCallbackLastArg {
		last := params[len(params)-1]
		params = params[:len(params)-1]
		tc, err := t.trailing(last)
		if err != nil {
			return nil, fail(err, last.Name)
		}
		md.Trailing = tc
	}

	for _, p := range params {
		surface, err := t.c.SurfaceParameter(p)
		if err != nil {
			return nil, fail(err, p.Name)
		}
		md.Params = append(md.Params, ir.ParameterDescriptor{Name: p.Name, Surface: surface, Original: p.Type})
	}

	ret, err := t.generatedReturn(owner, md)
	if err != nil {
		return nil, fail(err, "")
	}
	md.GeneratedReturn = ret
	return md, nil
}

// trailing decides how the trailing callback p is replaced.
func (t *Transformer) trailing(p ir.ParamDecl) (*ir.TrailingCallback, error) {
	item := p.Type.Arg(0)
	if item == nil {
		return nil, ir.Gap(p.Type, "trailing callback matches none of the deferred, runnable or consumer forms")
	}
	tc := &ir.TrailingCallback{
		Original: ir.ParameterDescriptor{Name: p.Name, Surface: p.Type, Original: p.Type},
	}

	switch {
	case t.v.IsDeferred(item):
		u := item.Arg(0)
		if u == nil {
			return nil, ir.Gap(item, "deferred callback result without a type argument")
		}
		if t.v.IsDeferred(u) {
			return nil, ir.Unsupported(item, "deferred value of a deferred value")
		}
		_, ret, err := t.e.CompletionItems(item, u, &ir.This{}, adapt.NewScope())
		if err != nil {
			return nil, err
		}
		tc.Form = ir.TrailingDeferred
		tc.Item = u
		tc.Replacement = ir.ParameterDescriptor{
			Name:     p.Name,
			Surface:  ir.Ref(t.v.Consumer, ret.Arg(0)),
			Original: p.Type,
		}

	case t.v.IsVoid(item):
		tc.Form = ir.TrailingRunnable
		tc.Replacement = ir.ParameterDescriptor{Name: p.Name, Surface: ir.Ref(t.v.Runnable), Original: p.Type}

	default:
		surface, err := t.c.Surface(p.Type)
		if err != nil {
			return nil, err
		}
		tc.Form = ir.TrailingConsumer
		tc.Item = item
		tc.Replacement = ir.ParameterDescriptor{Name: p.Name, Surface: surface, Original: p.Type}
	}

	if tc.Item != nil {
		gen, ok, err := t.c.IsGenerated(tc.Item)
		if err != nil {
			return nil, err
		}
		if ok {
			tc.Generated = gen
		}
	}
	return tc, nil
}

// generatedReturn computes the generated return type. A deferred trailing
// callback turns the method into one returning the deferred abstraction;
// fluent methods return the wrapper.
func (t *Transformer) generatedReturn(owner *ir.TypeDecl, md *ir.MethodDescriptor) (*ir.TypeRef, error) {
	if md.Trailing != nil && md.Trailing.Form == ir.TrailingDeferred {
		return ir.Ref(t.v.Deferred, md.Trailing.Replacement.Surface.Arg(0)), nil
	}
	if md.Fluent && !md.Static {
		return selfType(owner), nil
	}
	_, ret, err := t.e.AdaptReturn(md.OriginalReturn, &ir.This{}, adapt.NewScope())
	return ret, err
}

func selfType(owner *ir.TypeDecl) *ir.TypeRef {
	args := make([]*ir.TypeRef, len(owner.TypeParams))
	for i, tp := range owner.TypeParams {
		args[i] = ir.TypeVar(tp)
	}
	return ir.Ref(owner.Generated, args...)
}
