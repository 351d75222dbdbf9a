package transform

import (
	"github.com/broady/shimgen/adapt"
	"github.com/broady/shimgen/ir"
)

// Assemble builds the body of the generated method described by md: one
// adaptation per parameter, declared in order, followed by the delegate
// call over the adapted locals and the conversion of its result.
func (t *Transformer) Assemble(md *ir.MethodDescriptor) (*ir.Call, error) {
	fail := func(err error, param string) error {
		return ir.Located(err, md.Owner, md.Name, param)
	}

	names := make([]string, 0, len(md.Params)+1)
	for _, p := range md.Params {
		names = append(names, p.Name)
	}
	if md.Trailing.OnSurface() {
		names = append(names, md.Trailing.Replacement.Name)
	}
	scope := adapt.NewScope(names...)

	call := &ir.Call{Method: md, Signature: md.Signature()}
	args := make([]ir.Expr, 0, len(md.Params)+1)
	for _, p := range md.Params {
		a, err := t.e.AdaptIn(p, scope)
		if err != nil {
			return nil, fail(err, p.Name)
		}
		call.Adaptations = append(call.Adaptations, a)
		args = append(args, ir.Id(a.Local))
	}

	delegate := &ir.DelegateCall{Static: md.Static, Owner: md.Owner, Method: md.Name, Args: args}
	call.Delegate = delegate

	if tc := md.Trailing; tc != nil {
		if tc.Form == ir.TrailingDeferred {
			handler := scope.Fresh("handler")
			delegate.Args = append(delegate.Args, ir.Id(handler))
			uni := &ir.StaticInvoke{
				Type:   t.v.AsyncResultDeferred,
				Method: "toUni",
				Args:   []ir.Expr{ir.Fn(handler, delegate)},
			}
			result, _, err := t.e.CompletionItems(tc.Original.Original.Arg(0), tc.Item, uni, scope)
			if err != nil {
				return nil, fail(err, tc.Original.Name)
			}
			call.Result = result
			return call, nil
		}
		h, err := t.e.Trailing(tc, scope)
		if err != nil {
			return nil, fail(err, tc.Original.Name)
		}
		delegate.Args = append(delegate.Args, h)
	}

	switch {
	case md.Fluent && !md.Static:
		call.Result = &ir.This{}
	case md.OriginalReturn == nil || md.OriginalReturn.IsVoid():
	default:
		result, _, err := t.e.AdaptReturn(md.OriginalReturn, delegate, scope)
		if err != nil {
			return nil, fail(err, "")
		}
		call.Result = result
	}
	return call, nil
}
