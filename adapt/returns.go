package adapt

import (
	"github.com/broady/shimgen/ir"
)

// AdaptReturn converts call, an expression yielding a value of the original
// return type t, into the value the generated method returns. It returns
// the converted expression and the generated return type.
//
// A deferred value becomes the surface deferred abstraction and a
// push-based source becomes the surface stream, in both cases re-wrapping
// items that have a generated counterpart.
func (e *Engine) AdaptReturn(t *ir.TypeRef, call ir.Expr, scope *Scope) (ir.Expr, *ir.TypeRef, error) {
	if t == nil {
		return nil, nil, ir.Gap(nil, "missing return type")
	}
	if t.IsVoid() {
		return call, t, nil
	}
	shape, err := e.c.Classify(t)
	if err != nil {
		return nil, nil, err
	}

	switch s := shape.(type) {
	case *ir.DeferredValue:
		uni := &ir.StaticInvoke{Type: e.v.DeferredHelper, Method: "toUni", Args: []ir.Expr{call}}
		return e.surfaceItems(e.v.Deferred, t, s.Item, uni, scope)
	case *ir.StreamAsPublisher:
		multi := &ir.StaticInvoke{Type: e.v.StreamHelper, Method: "toMulti", Args: []ir.Expr{call}}
		return e.surfaceItems(e.v.Stream, t, s.Elem, multi, scope)
	}

	w, surface, err := e.wrapValue(t, call, scope)
	if err != nil {
		return nil, nil, err
	}
	if w == nil {
		return call, t, nil
	}
	return w, surface, nil
}

// CompletionItems re-wraps the items of a deferred value completed by an
// original callback of item.
func (e *Engine) CompletionItems(whole, item *ir.TypeRef, uni ir.Expr, scope *Scope) (ir.Expr, *ir.TypeRef, error) {
	return e.surfaceItems(e.v.Deferred, whole, item, uni, scope)
}

func (e *Engine) surfaceItems(container ir.QualifiedName, whole, item *ir.TypeRef, src ir.Expr, scope *Scope) (ir.Expr, *ir.TypeRef, error) {
	x, surface, err := e.wrapItems(whole, item, src, scope)
	if err != nil {
		return nil, nil, err
	}
	return x, ir.Ref(container, surface), nil
}
