package adapt

import (
	"github.com/broady/shimgen/ir"
)

// functionCase is the key of the function decision table.
type functionCase struct {
	inGen       bool // input has a generated counterpart
	outGen      bool // output has a generated counterpart
	outDeferred bool // output is a deferred value
	itemGen     bool // deferred output item has a generated counterpart
}

// functionTemplate builds the adapted function. x is the surface function,
// item the lambda parameter, in and out the generated names of input and
// output (or of the deferred item).
type functionTemplate func(e *Engine, f functionParts) ir.Expr

type functionParts struct {
	x     ir.Expr
	item  string
	inner string
	in    ir.QualifiedName
	out   ir.QualifiedName
}

// functionTable enumerates every supported combination. A function is
// adapted only through this table; anything not listed fails.
var functionTable = map[functionCase]functionTemplate{
	// item -> item
	{}: nil,

	// item -> UniHelper.toFuture(x.apply(item))
	{outDeferred: true}: func(e *Engine, f functionParts) ir.Expr {
		return e.toFuture(f.apply(ir.Id(f.item)))
	},

	// item -> UniHelper.toFuture(x.apply(item).map(i -> i.getDelegate()))
	{outDeferred: true, itemGen: true}: func(e *Engine, f functionParts) ir.Expr {
		return e.toFuture(f.unwrapMapped(f.apply(ir.Id(f.item))))
	},

	// item -> x.apply(In.newInstance(item))
	{inGen: true}: func(e *Engine, f functionParts) ir.Expr {
		return f.apply(f.wrapInput())
	},

	// item -> UniHelper.toFuture(x.apply(In.newInstance(item)))
	{inGen: true, outDeferred: true}: func(e *Engine, f functionParts) ir.Expr {
		return e.toFuture(f.apply(f.wrapInput()))
	},

	// item -> UniHelper.toFuture(x.apply(In.newInstance(item)).map(i -> i.getDelegate()))
	{inGen: true, outDeferred: true, itemGen: true}: func(e *Engine, f functionParts) ir.Expr {
		return e.toFuture(f.unwrapMapped(f.apply(f.wrapInput())))
	},

	// item -> x.apply(item).getDelegate()
	{outGen: true}: func(e *Engine, f functionParts) ir.Expr {
		return &ir.Unwrap{X: f.apply(ir.Id(f.item))}
	},

	// item -> x.apply(In.newInstance(item)).getDelegate()
	{inGen: true, outGen: true}: func(e *Engine, f functionParts) ir.Expr {
		return &ir.Unwrap{X: f.apply(f.wrapInput())}
	},
}

func (f functionParts) apply(arg ir.Expr) ir.Expr {
	return ir.MethodCall(f.x, "apply", arg)
}

func (f functionParts) wrapInput() ir.Expr {
	return &ir.Wrap{Type: f.in, X: ir.Id(f.item)}
}

func (f functionParts) unwrapMapped(uni ir.Expr) ir.Expr {
	return ir.MethodCall(uni, "map", ir.Fn(f.inner, &ir.Unwrap{X: ir.Id(f.inner)}))
}

// function adapts a single-argument, single-result function.
func (e *Engine) function(s *ir.TransformFunction, x ir.Expr, scope *Scope) (ir.Expr, error) {
	if s.Input == nil || s.Output == nil {
		return nil, ir.Gap(s.Of, "function without type arguments")
	}

	inShape, err := e.c.Classify(s.Input)
	if err != nil {
		return nil, err
	}
	switch inShape.Tag() {
	case ir.ShapeTransformFunction:
		return nil, ir.Unsupported(s.Of, "function input is itself a function")
	case ir.ShapeDeferredValue:
		return nil, ir.Unsupported(s.Of, "function input is a deferred value")
	}
	in, err := e.element(s.Of, s.Input)
	if err != nil {
		return nil, err
	}

	var key functionCase
	var parts functionParts
	key.inGen = in.generated()
	parts.in = in.gen

	outShape, err := e.c.Classify(s.Output)
	if err != nil {
		return nil, err
	}
	switch o := outShape.(type) {
	case *ir.TransformFunction:
		return nil, ir.Unsupported(s.Of, "function returning a function")
	case *ir.DeferredValue:
		if o.Item == nil {
			return nil, ir.Gap(s.Output, "deferred value without a type argument")
		}
		if e.v.IsDeferred(o.Item) {
			return nil, ir.Unsupported(s.Of, "function output is a deferred value of a deferred value")
		}
		item, err := e.element(s.Of, o.Item)
		if err != nil {
			return nil, err
		}
		key.outDeferred = true
		key.itemGen = item.generated()
		parts.out = item.gen
	default:
		out, err := e.element(s.Of, s.Output)
		if err != nil {
			return nil, err
		}
		key.outGen = out.generated()
		parts.out = out.gen
	}

	tmpl, ok := functionTable[key]
	if !ok {
		return nil, ir.Unsupported(s.Of, "no function template for %+v", key)
	}
	if tmpl == nil {
		return nil, nil
	}
	parts.x = x
	parts.item = scope.Fresh("item")
	if key.itemGen {
		parts.inner = scope.Fresh("i")
	}
	return ir.Fn(parts.item, tmpl(e, parts)), nil
}
