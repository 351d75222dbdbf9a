package ir

// Expr is a node of the structured expressions that adaptations and calls
// are made of. Emitters render them; the core never produces source text.
type Expr interface {
	exprNode()
}

type exprBase struct{}

func (exprBase) exprNode() {}

// Ident references a parameter, local or lambda parameter.
type Ident struct {
	exprBase
	Name string
}

// This references the generated wrapper instance.
type This struct {
	exprBase
}

// Unwrap yields the delegate of a generated wrapper.
type Unwrap struct {
	exprBase
	X Expr
}

// Wrap builds the generated counterpart Type around a delegate.
type Wrap struct {
	exprBase
	Type QualifiedName
	X    Expr
}

// New instantiates Type. Diamond requests inferred type arguments.
type New struct {
	exprBase
	Type    QualifiedName
	Diamond bool
	Args    []Expr
}

// Invoke calls Method on Recv.
type Invoke struct {
	exprBase
	Recv   Expr
	Method string
	Args   []Expr
}

// StaticInvoke calls a static Method on Type.
type StaticInvoke struct {
	exprBase
	Type   QualifiedName
	Method string
	Args   []Expr
}

// Lambda is an anonymous function.
type Lambda struct {
	exprBase
	Params []string
	Body   Expr
}

// Cast converts X to Type.
type Cast struct {
	exprBase
	Type *TypeRef
	X    Expr
}

// NilGuard evaluates Then when X is non-null and yields null otherwise.
type NilGuard struct {
	exprBase
	X    Expr
	Then Expr
}

// CollectKind selects the container a Collect expression produces.
type CollectKind int

const (
	CollectList CollectKind = iota
	CollectSet
)

// String returns the string representation of the collect kind.
func (k CollectKind) String() string {
	if k == CollectSet {
		return "set"
	}
	return "list"
}

// Collect maps every element of X through Fn into a new container,
// preserving order for lists and membership for sets.
type Collect struct {
	exprBase
	Kind CollectKind
	X    Expr
	Fn   *Lambda
}

// CollectValues maps every value of the map X through Fn; keys are kept.
type CollectValues struct {
	exprBase
	X  Expr
	Fn *Lambda
}

// DelegateCall is the call to the original method. Static calls target
// Owner, instance calls the wrapped delegate.
type DelegateCall struct {
	exprBase
	Static bool
	Owner  QualifiedName
	Method string
	Args   []Expr
}

// Fn is shorthand for a single-parameter lambda.
func Fn(param string, body Expr) *Lambda {
	return &Lambda{Params: []string{param}, Body: body}
}

// Id is shorthand for an identifier.
func Id(name string) *Ident {
	return &Ident{Name: name}
}

// MethodCall is shorthand for an instance method invocation.
func MethodCall(recv Expr, method string, args ...Expr) *Invoke {
	return &Invoke{Recv: recv, Method: method, Args: args}
}

// Walk visits x and its children depth-first, stopping early when fn
// returns false.
func Walk(x Expr, fn func(Expr) bool) {
	if x == nil || !fn(x) {
		return
	}
	switch e := x.(type) {
	case *Unwrap:
		Walk(e.X, fn)
	case *Wrap:
		Walk(e.X, fn)
	case *New:
		for _, a := range e.Args {
			Walk(a, fn)
		}
	case *Invoke:
		Walk(e.Recv, fn)
		for _, a := range e.Args {
			Walk(a, fn)
		}
	case *StaticInvoke:
		for _, a := range e.Args {
			Walk(a, fn)
		}
	case *Lambda:
		Walk(e.Body, fn)
	case *Cast:
		Walk(e.X, fn)
	case *NilGuard:
		Walk(e.X, fn)
		Walk(e.Then, fn)
	case *Collect:
		Walk(e.X, fn)
		if e.Fn != nil {
			Walk(e.Fn, fn)
		}
	case *CollectValues:
		Walk(e.X, fn)
		if e.Fn != nil {
			Walk(e.Fn, fn)
		}
	case *DelegateCall:
		for _, a := range e.Args {
			Walk(a, fn)
		}
	}
}
