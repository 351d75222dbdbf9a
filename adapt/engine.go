// Package adapt derives, for every parameter of a generated method, the
// expression that converts the generated-surface argument into the value
// the original method expects, and for return values the conversion in the
// other direction.
package adapt

import (
	"github.com/broady/shimgen/classify"
	"github.com/broady/shimgen/ir"
	"github.com/broady/shimgen/vocab"
)

// Engine adapts parameters and return values. It holds no mutable state
// and is safe for concurrent use.
type Engine struct {
	c *classify.Classifier
	v *vocab.Vocabulary
}

// New returns an engine classifying through c.
func New(c *classify.Classifier) *Engine {
	return &Engine{c: c, v: c.Vocabulary()}
}

// Adapt returns the adaptation for a single parameter, with names unique
// among that parameter alone. Use AdaptIn when several parameters share a
// method body.
func (e *Engine) Adapt(p ir.ParameterDescriptor) (ir.Adaptation, error) {
	return e.AdaptIn(p, NewScope(p.Name))
}

// AdaptIn returns the adaptation for p, drawing local and lambda parameter
// names from scope.
func (e *Engine) AdaptIn(p ir.ParameterDescriptor, scope *Scope) (ir.Adaptation, error) {
	if p.Original == nil {
		return ir.Adaptation{}, ir.Gap(nil, "parameter %s has no type", p.Name)
	}
	shape, err := e.c.ClassifyParameter(ir.ParamDecl{Name: p.Name, Type: p.Original, Surface: p.Surface})
	if err != nil {
		return ir.Adaptation{}, err
	}

	x := ir.Id(p.Name)
	expr, err := e.convert(shape, x, scope)
	if err != nil {
		return ir.Adaptation{}, err
	}
	if expr == nil {
		return ir.Adaptation{Local: p.Name, Param: p.Name, Type: p.Original, Shape: shape.Tag(), Expr: x}, nil
	}
	if p.Original.Nullable {
		expr = &ir.NilGuard{X: x, Then: expr}
	}
	return ir.Adaptation{
		Local: scope.Fresh(LocalName(p.Name)),
		Param: p.Name,
		Type:  p.Original,
		Shape: shape.Tag(),
		Expr:  expr,
	}, nil
}

// convert returns the expression turning the surface argument x into the
// original value, or nil when x passes through unchanged.
func (e *Engine) convert(shape ir.Shape, x ir.Expr, scope *Scope) (ir.Expr, error) {
	switch s := shape.(type) {
	case *ir.Plain, *ir.RunnableCallback:
		return nil, nil

	case *ir.GeneratedAPI:
		return &ir.Unwrap{X: x}, nil

	case *ir.List, *ir.Set, *ir.Map:
		return e.unwrapValue(s.Type(), x, scope)

	case *ir.Consumer:
		if s.Item == nil {
			return nil, ir.Gap(s.Of, "consumer without a type argument")
		}
		inert, err := e.Inert(s.Item)
		if err != nil || inert {
			return nil, err
		}
		item := scope.Fresh("item")
		w, _, err := e.wrapValue(s.Item, ir.Id(item), scope)
		if err != nil {
			return nil, err
		}
		return ir.Fn(item, ir.MethodCall(x, "accept", w)), nil

	case *ir.Supplier:
		if s.Item == nil {
			return nil, ir.Gap(s.Of, "supplier without a type argument")
		}
		u, err := e.unwrapValue(s.Item, ir.MethodCall(x, "get"), scope)
		if err != nil || u == nil {
			return nil, err
		}
		return &ir.Lambda{Body: u}, nil

	case *ir.SupplierOfDeferred:
		uni, err := e.unwrapItems(s.Of, s.Item, ir.MethodCall(x, "get"), scope)
		if err != nil {
			return nil, err
		}
		return &ir.Lambda{Body: e.toFuture(uni)}, nil

	case *ir.DeferredValue:
		uni, err := e.unwrapItems(s.Of, s.Item, x, scope)
		if err != nil {
			return nil, err
		}
		return e.toFuture(uni), nil

	case *ir.TransformFunction:
		return e.function(s, x, scope)

	case *ir.Callback:
		if s.Item == nil {
			return nil, ir.Gap(s.Of, "callback without a type argument")
		}
		if e.v.IsVoid(s.Item) {
			return e.runnableHandler(x, scope), nil
		}
		return e.consumerHandler(x, s.Item, scope)

	case *ir.StreamAsPublisher:
		el, err := e.element(s.Of, s.Elem)
		if err != nil {
			return nil, err
		}
		obj := scope.Fresh("obj")
		var body ir.Expr = ir.Id(obj)
		if el.generated() {
			body = &ir.Cast{Type: s.Elem, X: &ir.Unwrap{X: ir.Id(obj)}}
		}
		return &ir.StaticInvoke{
			Type:   e.v.ReadStreamSubscriber,
			Method: "asReadStream",
			Args:   []ir.Expr{x, ir.Fn(obj, body)},
		}, nil
	}
	return nil, ir.Gap(shape.Type(), "no adaptation rule for shape %s", shape.Tag())
}

// runnableHandler is `ignored -> x.run()`.
func (e *Engine) runnableHandler(x ir.Expr, scope *Scope) ir.Expr {
	return ir.Fn(scope.Fresh("ignored"), ir.MethodCall(x, "run"))
}

// consumerHandler adapts a consumer to a callback of item, re-wrapping
// each received item when the classifier says the payload is rewrapped.
func (e *Engine) consumerHandler(x ir.Expr, item *ir.TypeRef, scope *Scope) (ir.Expr, error) {
	h := &ir.New{Type: e.v.DelegatingConsumerHandler, Diamond: true, Args: []ir.Expr{x}}
	rewrap, err := e.c.Rewraps(item)
	if err != nil {
		return nil, err
	}
	if !rewrap {
		return h, nil
	}
	name := scope.Fresh("item")
	w, _, err := e.wrapValue(item, ir.Id(name), scope)
	if err != nil {
		return nil, err
	}
	return &ir.New{
		Type:    e.v.DelegatingHandler,
		Diamond: true,
		Args:    []ir.Expr{h, ir.Fn(name, w)},
	}, nil
}

// toFuture bridges a surface deferred value to the original deferred type.
func (e *Engine) toFuture(uni ir.Expr) ir.Expr {
	return &ir.StaticInvoke{Type: e.v.DeferredHelper, Method: "toFuture", Args: []ir.Expr{uni}}
}

// unwrapItems maps the items of a surface deferred value back to their
// original form.
func (e *Engine) unwrapItems(whole, item *ir.TypeRef, uni ir.Expr, scope *Scope) (ir.Expr, error) {
	if item == nil {
		return nil, ir.Gap(whole, "deferred value without a type argument")
	}
	if e.v.IsDeferred(item) {
		return nil, ir.Unsupported(whole, "deferred value of a deferred value")
	}
	inert, err := e.Inert(item)
	if err != nil || inert {
		return uni, err
	}
	i := scope.Fresh("i")
	u, err := e.unwrapValue(item, ir.Id(i), scope)
	if err != nil {
		return nil, err
	}
	return ir.MethodCall(uni, "map", ir.Fn(i, u)), nil
}

// wrapItems maps the items of a deferred value or stream to their surface
// form. It returns the converted expression and the surface item type.
func (e *Engine) wrapItems(whole, item *ir.TypeRef, src ir.Expr, scope *Scope) (ir.Expr, *ir.TypeRef, error) {
	if item == nil {
		return nil, nil, ir.Gap(whole, "%s without a type argument", whole.Name.Simple())
	}
	if e.v.IsDeferred(item) {
		return nil, nil, ir.Unsupported(whole, "deferred value of a deferred value")
	}
	inert, err := e.Inert(item)
	if err != nil {
		return nil, nil, err
	}
	if inert {
		return src, item, nil
	}
	name := scope.Fresh("item")
	w, surface, err := e.wrapValue(item, ir.Id(name), scope)
	if err != nil {
		return nil, nil, err
	}
	return ir.MethodCall(src, "map", ir.Fn(name, w)), surface, nil
}

// unwrapValue converts x, a value of the surface form of t, into t.
// Returns nil when no conversion is needed. Generated types and containers
// of generated types are supported; anything needing a deeper conversion
// is not.
func (e *Engine) unwrapValue(t *ir.TypeRef, x ir.Expr, scope *Scope) (ir.Expr, error) {
	shape, err := e.c.Classify(t)
	if err != nil {
		return nil, err
	}
	switch s := shape.(type) {
	case *ir.GeneratedAPI:
		return &ir.Unwrap{X: x}, nil
	case *ir.List:
		return e.collect(s.Of, s.Elem, ir.CollectList, x, false, scope)
	case *ir.Set:
		return e.collect(s.Of, s.Elem, ir.CollectSet, x, false, scope)
	case *ir.Map:
		return e.collectValues(s, x, false, scope)
	}
	return nil, e.requireInert(t)
}

// wrapValue converts x, a value of t, into its surface form. It returns
// the conversion (nil when none is needed) and the surface type.
func (e *Engine) wrapValue(t *ir.TypeRef, x ir.Expr, scope *Scope) (ir.Expr, *ir.TypeRef, error) {
	shape, err := e.c.Classify(t)
	if err != nil {
		return nil, nil, err
	}
	var w ir.Expr
	switch s := shape.(type) {
	case *ir.GeneratedAPI:
		w = &ir.Wrap{Type: s.Generated, X: x}
	case *ir.List:
		w, err = e.collect(s.Of, s.Elem, ir.CollectList, x, true, scope)
	case *ir.Set:
		w, err = e.collect(s.Of, s.Elem, ir.CollectSet, x, true, scope)
	case *ir.Map:
		w, err = e.collectValues(s, x, true, scope)
	default:
		err = e.requireInert(t)
	}
	if err != nil {
		return nil, nil, err
	}
	if w == nil {
		return nil, t, nil
	}
	surface, err := e.c.Surface(t)
	if err != nil {
		return nil, nil, err
	}
	return w, surface, nil
}

func (e *Engine) collect(whole, elem *ir.TypeRef, kind ir.CollectKind, x ir.Expr, wrap bool, scope *Scope) (ir.Expr, error) {
	el, err := e.element(whole, elem)
	if err != nil || !el.generated() {
		return nil, err
	}
	item := scope.Fresh("item")
	return &ir.Collect{Kind: kind, X: x, Fn: ir.Fn(item, el.convert(ir.Id(item), wrap))}, nil
}

func (e *Engine) collectValues(s *ir.Map, x ir.Expr, wrap bool, scope *Scope) (ir.Expr, error) {
	if s.Key == nil || s.Value == nil {
		return nil, ir.Gap(s.Of, "map without type arguments")
	}
	key, err := e.element(s.Of, s.Key)
	if err != nil {
		return nil, err
	}
	if key.generated() {
		return nil, ir.Unsupported(s.Of, "map keys of generated type %s", s.Key)
	}
	val, err := e.element(s.Of, s.Value)
	if err != nil || !val.generated() {
		return nil, err
	}
	item := scope.Fresh("item")
	return &ir.CollectValues{X: x, Fn: ir.Fn(item, val.convert(ir.Id(item), wrap))}, nil
}

func (e *Engine) requireInert(t *ir.TypeRef) error {
	inert, err := e.Inert(t)
	if err != nil {
		return err
	}
	if !inert {
		return ir.Unsupported(t, "no conversion for shape of %s", t)
	}
	return nil
}

// element describes a type argument that is converted at most one level
// deep: either it has a generated counterpart or it needs no conversion.
type element struct {
	t   *ir.TypeRef
	gen ir.QualifiedName
}

func (el element) generated() bool {
	return el.gen != ""
}

// convert wraps or unwraps x.
func (el element) convert(x ir.Expr, wrap bool) ir.Expr {
	if wrap {
		return &ir.Wrap{Type: el.gen, X: x}
	}
	return &ir.Unwrap{X: x}
}

// element classifies the type argument t of whole. Arguments that would
// need a conversion of their own (a list inside a list of wrappers, a
// deferred inside a callback) are outside the supported combinations.
func (e *Engine) element(whole, t *ir.TypeRef) (element, error) {
	if t == nil {
		return element{}, ir.Gap(whole, "%s without type arguments", whole.Name.Simple())
	}
	gen, ok, err := e.c.IsGenerated(t)
	if err != nil {
		return element{}, err
	}
	if ok {
		return element{t: t, gen: gen}, nil
	}
	inert, err := e.Inert(t)
	if err != nil {
		return element{}, err
	}
	if !inert {
		return element{}, ir.Unsupported(whole, "type argument %s needs its own conversion", t)
	}
	return element{t: t}, nil
}

// Inert reports whether t is the same type on both sides of the boundary.
func (e *Engine) Inert(t *ir.TypeRef) (bool, error) {
	surface, err := e.c.Surface(t)
	if err != nil {
		return false, err
	}
	return surface.Equal(t), nil
}
