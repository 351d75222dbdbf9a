package java

import (
	"strings"

	"github.com/broady/shimgen/ir"
)

// expr renders x as a Java expression.
func (e *Emitter) expr(x ir.Expr) string {
	switch x := x.(type) {
	case *ir.Ident:
		return e.ident(x.Name)
	case *ir.This:
		return "this"
	case *ir.Unwrap:
		return e.operand(x.X) + "." + e.v.UnwrapMethod + "()"
	case *ir.Wrap:
		return e.imports.use(x.Type) + "." + e.v.WrapMethod + "(" + e.expr(x.X) + ")"
	case *ir.New:
		diamond := ""
		if x.Diamond {
			diamond = "<>"
		}
		return "new " + e.imports.use(x.Type) + diamond + "(" + e.args(x.Args) + ")"
	case *ir.Invoke:
		return e.operand(x.Recv) + "." + x.Method + "(" + e.args(x.Args) + ")"
	case *ir.StaticInvoke:
		return e.imports.use(x.Type) + "." + x.Method + "(" + e.args(x.Args) + ")"
	case *ir.Lambda:
		return e.lambdaParams(x.Params) + " -> " + e.expr(x.Body)
	case *ir.Cast:
		return "(" + e.typeString(x.Type) + ") " + e.operand(x.X)
	case *ir.NilGuard:
		return e.operand(x.X) + " != null ? " + e.expr(x.Then) + " : null"
	case *ir.Collect:
		collector := "toList"
		if x.Kind == ir.CollectSet {
			collector = "toSet"
		}
		return e.operand(x.X) + ".stream().map(" + e.expr(x.Fn) + ").collect(" +
			e.imports.use(e.v.Collectors) + "." + collector + "())"
	case *ir.CollectValues:
		return e.collectValues(x)
	case *ir.DelegateCall:
		target := e.delegateRef
		if x.Static {
			target = e.imports.use(x.Owner)
		}
		return target + "." + e.ident(x.Method) + "(" + e.args(x.Args) + ")"
	case nil:
		return "null"
	default:
		panic("java: unhandled expression type")
	}
}

// operand renders x for use as a receiver, parenthesizing expressions
// that bind looser than member access.
func (e *Emitter) operand(x ir.Expr) string {
	switch x.(type) {
	case *ir.Lambda, *ir.Cast, *ir.NilGuard:
		return "(" + e.expr(x) + ")"
	}
	return e.expr(x)
}

func (e *Emitter) args(xs []ir.Expr) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = e.expr(x)
	}
	return strings.Join(parts, ", ")
}

func (e *Emitter) lambdaParams(params []string) string {
	if len(params) == 1 {
		return e.ident(params[0])
	}
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = e.ident(p)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// collectValues renders a value-mapping collection over a map. The lambda
// parameter is rebound to the map entry and its reads replaced with
// entry.getValue().
func (e *Emitter) collectValues(x *ir.CollectValues) string {
	p := x.Fn.Params[0]
	value := ir.MethodCall(ir.Id(p), "getValue")
	mapName := e.imports.use(e.v.Map)
	return e.operand(x.X) + ".entrySet().stream().collect(" +
		e.imports.use(e.v.Collectors) + ".toMap(" + mapName + ".Entry::getKey, " +
		e.ident(p) + " -> " + e.expr(substitute(x.Fn.Body, p, value)) + "))"
}

// substitute returns a copy of x with every free reference to name
// replaced by with.
func substitute(x ir.Expr, name string, with ir.Expr) ir.Expr {
	sub := func(y ir.Expr) ir.Expr { return substitute(y, name, with) }
	subAll := func(ys []ir.Expr) []ir.Expr {
		out := make([]ir.Expr, len(ys))
		for i, y := range ys {
			out[i] = sub(y)
		}
		return out
	}
	subFn := func(l *ir.Lambda) *ir.Lambda {
		if l == nil {
			return nil
		}
		return sub(l).(*ir.Lambda)
	}

	switch x := x.(type) {
	case *ir.Ident:
		if x.Name == name {
			return with
		}
		return x
	case *ir.Unwrap:
		return &ir.Unwrap{X: sub(x.X)}
	case *ir.Wrap:
		return &ir.Wrap{Type: x.Type, X: sub(x.X)}
	case *ir.New:
		return &ir.New{Type: x.Type, Diamond: x.Diamond, Args: subAll(x.Args)}
	case *ir.Invoke:
		return &ir.Invoke{Recv: sub(x.Recv), Method: x.Method, Args: subAll(x.Args)}
	case *ir.StaticInvoke:
		return &ir.StaticInvoke{Type: x.Type, Method: x.Method, Args: subAll(x.Args)}
	case *ir.Lambda:
		for _, p := range x.Params {
			if p == name {
				return x
			}
		}
		return &ir.Lambda{Params: x.Params, Body: sub(x.Body)}
	case *ir.Cast:
		return &ir.Cast{Type: x.Type, X: sub(x.X)}
	case *ir.NilGuard:
		return &ir.NilGuard{X: sub(x.X), Then: sub(x.Then)}
	case *ir.Collect:
		return &ir.Collect{Kind: x.Kind, X: sub(x.X), Fn: subFn(x.Fn)}
	case *ir.CollectValues:
		return &ir.CollectValues{X: sub(x.X), Fn: subFn(x.Fn)}
	case *ir.DelegateCall:
		return &ir.DelegateCall{Static: x.Static, Owner: x.Owner, Method: x.Method, Args: subAll(x.Args)}
	default:
		return x
	}
}
