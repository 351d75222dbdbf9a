package testfixtures

import (
	"strings"

	"github.com/broady/shimgen/ir"
)

// Render prints an expression as compact Java using simple names.
func Render(x ir.Expr) string {
	switch e := x.(type) {
	case nil:
		return "<nil>"
	case *ir.Ident:
		return e.Name
	case *ir.This:
		return "this"
	case *ir.Unwrap:
		return Render(e.X) + ".getDelegate()"
	case *ir.Wrap:
		return e.Type.Simple() + ".newInstance(" + Render(e.X) + ")"
	case *ir.New:
		diamond := ""
		if e.Diamond {
			diamond = "<>"
		}
		return "new " + e.Type.Simple() + diamond + "(" + renderArgs(e.Args) + ")"
	case *ir.Invoke:
		return Render(e.Recv) + "." + e.Method + "(" + renderArgs(e.Args) + ")"
	case *ir.StaticInvoke:
		return e.Type.Simple() + "." + e.Method + "(" + renderArgs(e.Args) + ")"
	case *ir.Lambda:
		params := "(" + strings.Join(e.Params, ", ") + ")"
		if len(e.Params) == 1 {
			params = e.Params[0]
		}
		return params + " -> " + Render(e.Body)
	case *ir.Cast:
		return "(" + e.Type.Name.Simple() + ") " + Render(e.X)
	case *ir.NilGuard:
		return Render(e.X) + " != null ? " + Render(e.Then) + " : null"
	case *ir.Collect:
		to := "toList"
		if e.Kind == ir.CollectSet {
			to = "toSet"
		}
		return Render(e.X) + ".stream().map(" + Render(e.Fn) + ").collect(Collectors." + to + "())"
	case *ir.CollectValues:
		return "mapValues(" + Render(e.X) + ", " + Render(e.Fn) + ")"
	case *ir.DelegateCall:
		recv := "delegate"
		if e.Static {
			recv = e.Owner.Simple()
		}
		return recv + "." + e.Method + "(" + renderArgs(e.Args) + ")"
	}
	return "?"
}

func renderArgs(args []ir.Expr) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = Render(a)
	}
	return strings.Join(parts, ", ")
}
