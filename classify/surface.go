package classify

import (
	"github.com/broady/shimgen/ir"
)

// Surface returns the type t takes on the generated API when it appears
// as a parameter or as a type argument.
//
//	Handler<T>               Consumer<S(T)> when T is rewrapped, Consumer<T>
//	                         otherwise, or Runnable when T is Void
//	List<E>, Set<E>          same container over S(E)
//	Map<K, V>                Map<K, S(V)>
//	Consumer<T>, Supplier<T> same interface over S(T)
//	Function<A, B>           Function<S(A), S(B)>
//	ReadStream<E>            Publisher<S(E)>
//	Future<T>, AsyncResult<T> Uni<S(T)>
//	generated type           its generated name over S(args)
//
// Everything else is returned unchanged. A known generic type used without
// its type arguments is a classification gap.
func (c *Classifier) Surface(t *ir.TypeRef) (*ir.TypeRef, error) {
	s, err := c.Classify(t)
	if err != nil {
		return nil, err
	}
	v := c.vocab

	var out *ir.TypeRef
	switch s := s.(type) {
	case *ir.Plain:
		return t, nil
	case *ir.RunnableCallback:
		return t, nil
	case *ir.GeneratedAPI:
		args, err := c.surfaceAll(t.Args)
		if err != nil {
			return nil, err
		}
		out = ir.Ref(s.Generated, args...)
	case *ir.Callback:
		if s.Item == nil {
			return nil, ir.Gap(t, "callback without a type argument")
		}
		if v.IsVoid(s.Item) {
			out = ir.Ref(v.Runnable)
			break
		}
		item := s.Item
		rewrap, err := c.Rewraps(item)
		if err != nil {
			return nil, err
		}
		if rewrap {
			if item, err = c.Surface(item); err != nil {
				return nil, err
			}
		}
		out = ir.Ref(v.Consumer, item)
	case *ir.List:
		out, err = c.surfaceArgs(t, v.List, s.Elem)
	case *ir.Set:
		out, err = c.surfaceArgs(t, v.Set, s.Elem)
	case *ir.Map:
		if s.Key == nil || s.Value == nil {
			return nil, ir.Gap(t, "map without type arguments")
		}
		val, err := c.Surface(s.Value)
		if err != nil {
			return nil, err
		}
		out = ir.Ref(v.Map, s.Key, val)
	case *ir.Consumer:
		out, err = c.surfaceArgs(t, v.Consumer, s.Item)
	case *ir.Supplier:
		out, err = c.surfaceArgs(t, v.Supplier, s.Item)
	case *ir.SupplierOfDeferred:
		out, err = c.surfaceArgs(t, v.Supplier, s.Deferred)
	case *ir.TransformFunction:
		out, err = c.surfaceArgs(t, v.Function, s.Input, s.Output)
	case *ir.StreamAsPublisher:
		out, err = c.surfaceArgs(t, v.Publisher, s.Elem)
	case *ir.DeferredValue:
		out, err = c.surfaceArgs(t, v.Deferred, s.Item)
	default:
		return nil, ir.Gap(t, "no surface rule for shape %s", s.Tag())
	}
	if err != nil {
		return nil, err
	}
	if t.Nullable {
		out = out.AsNullable()
	}
	return out, nil
}

// Rewraps reports whether a callback payload of type t reaches the consumer
// in its surface form. Generated types are rewrapped, as are lists and sets
// of them and maps with generated values. Any other payload is handed over
// unchanged.
func (c *Classifier) Rewraps(t *ir.TypeRef) (bool, error) {
	s, err := c.Classify(t)
	if err != nil {
		return false, err
	}
	switch s := s.(type) {
	case *ir.GeneratedAPI:
		return true, nil
	case *ir.List:
		return c.generatedArg(s.Elem)
	case *ir.Set:
		return c.generatedArg(s.Elem)
	case *ir.Map:
		return c.generatedArg(s.Value)
	}
	return false, nil
}

func (c *Classifier) generatedArg(t *ir.TypeRef) (bool, error) {
	if t == nil {
		return false, nil
	}
	_, ok, err := c.IsGenerated(t)
	return ok, err
}

// SurfaceParameter returns the declared surface of p, deriving it from the
// original type when the declaration does not override it.
func (c *Classifier) SurfaceParameter(p ir.ParamDecl) (*ir.TypeRef, error) {
	if p.Surface != nil {
		return p.Surface, nil
	}
	return c.Surface(p.Type)
}

func (c *Classifier) surfaceArgs(t *ir.TypeRef, name ir.QualifiedName, args ...*ir.TypeRef) (*ir.TypeRef, error) {
	for _, a := range args {
		if a == nil {
			return nil, ir.Gap(t, "%s without type arguments", t.Name.Simple())
		}
	}
	out, err := c.surfaceAll(args)
	if err != nil {
		return nil, err
	}
	return ir.Ref(name, out...), nil
}

func (c *Classifier) surfaceAll(args []*ir.TypeRef) ([]*ir.TypeRef, error) {
	if len(args) == 0 {
		return nil, nil
	}
	out := make([]*ir.TypeRef, len(args))
	for i, a := range args {
		s, err := c.Surface(a)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}
