package ir

// MethodKind determines which rule set reshapes a method.
type MethodKind int

const (
	// KindStandard reshapes parameters and return type independently.
	KindStandard MethodKind = iota

	// KindCallbackLastArg replaces a trailing callback parameter.
	KindCallbackLastArg

	// KindStreamProducer surfaces a push-based source return as a
	// pull-based stream.
	KindStreamProducer
)

// String returns the string representation of the method kind.
func (k MethodKind) String() string {
	switch k {
	case KindStandard:
		return "STANDARD"
	case KindCallbackLastArg:
		return "CALLBACK_LAST_ARG"
	case KindStreamProducer:
		return "STREAM_PRODUCER"
	default:
		return "UNKNOWN"
	}
}

// ParameterDescriptor describes one parameter on both sides of the boundary.
type ParameterDescriptor struct {
	// Name is the declared parameter name.
	Name string `json:"name"`

	// Surface is the parameter type on the generated API.
	// Equal to Original for plain parameters.
	Surface *TypeRef `json:"surface"`

	// Original is the parameter type the original method declares.
	Original *TypeRef `json:"original"`
}

// TrailingForm selects how a trailing callback is re-derived.
type TrailingForm int

const (
	// TrailingDeferred: the callback receives a deferred result of U.
	// The method returns the deferred abstraction over U's surface type.
	TrailingDeferred TrailingForm = iota

	// TrailingRunnable: the callback carries no payload.
	TrailingRunnable

	// TrailingConsumer: the callback receives items of T.
	TrailingConsumer
)

// String returns the string representation of the trailing form.
func (f TrailingForm) String() string {
	switch f {
	case TrailingDeferred:
		return "deferred"
	case TrailingRunnable:
		return "runnable"
	case TrailingConsumer:
		return "consumer"
	default:
		return "unknown"
	}
}

// TrailingCallback records how the trailing callback of a
// CALLBACK_LAST_ARG method was replaced.
type TrailingCallback struct {
	// Original is the removed callback parameter.
	Original ParameterDescriptor `json:"original"`

	Form TrailingForm `json:"form"`

	// Item is T for consumer callbacks and U for deferred callbacks.
	// Nil for runnable callbacks.
	Item *TypeRef `json:"item,omitempty"`

	// Generated is the generated counterpart of Item, if it has one.
	Generated QualifiedName `json:"generated,omitempty"`

	// Replacement is the consumer-style or runnable parameter that stands in
	// for the callback. For the deferred form it is the completion consumer
	// the deferred abstraction hands to the delegate, so it does not appear
	// on the generated signature.
	Replacement ParameterDescriptor `json:"replacement"`
}

// OnSurface reports whether the replacement parameter is part of the
// generated signature.
func (t *TrailingCallback) OnSurface() bool {
	return t != nil && t.Form != TrailingDeferred
}

// MethodDescriptor is the transformed view of one original method.
// It is computed once and never mutated afterwards.
type MethodDescriptor struct {
	Name string `json:"name"`

	// Owner is the original type declaring the method.
	Owner QualifiedName `json:"owner"`

	// Params are the parameters that are adapted one by one. For
	// CALLBACK_LAST_ARG methods the trailing callback is not among them.
	Params []ParameterDescriptor `json:"params"`

	OriginalReturn  *TypeRef   `json:"originalReturn"`
	GeneratedReturn *TypeRef   `json:"generatedReturn"`
	Kind            MethodKind `json:"kind"`

	// Trailing is set for CALLBACK_LAST_ARG methods.
	Trailing *TrailingCallback `json:"trailing,omitempty"`

	Static bool `json:"static,omitempty"`

	// Fluent methods return the wrapper itself.
	Fluent bool `json:"fluent,omitempty"`

	TypeParams []string      `json:"typeParams,omitempty"`
	Doc        Documentation `json:"doc,omitempty"`
}

// Signature returns the generated-surface signature.
func (m *MethodDescriptor) Signature() Signature {
	sig := Signature{
		Name:       m.Name,
		Return:     m.GeneratedReturn,
		Static:     m.Static,
		TypeParams: m.TypeParams,
	}
	for _, p := range m.Params {
		sig.Params = append(sig.Params, Param{Name: p.Name, Type: p.Surface})
	}
	if m.Trailing.OnSurface() {
		r := m.Trailing.Replacement
		sig.Params = append(sig.Params, Param{Name: r.Name, Type: r.Surface})
	}
	return sig
}

// Param is a parameter of a generated signature.
type Param struct {
	Name string   `json:"name"`
	Type *TypeRef `json:"type"`
}

// Signature is the shape of a generated method.
type Signature struct {
	Name       string   `json:"name"`
	Params     []Param  `json:"params"`
	Return     *TypeRef `json:"return"`
	Static     bool     `json:"static,omitempty"`
	TypeParams []string `json:"typeParams,omitempty"`
}

// Adaptation binds a fresh local to the expression that converts a
// generated-surface argument into what the original method expects.
type Adaptation struct {
	// Local is the bound name. Equal to Param for identity adaptations,
	// which need no declaration.
	Local string `json:"local"`

	// Param is the declared parameter name the expression reads.
	Param string `json:"param"`

	// Type is the declared type of the local (the original type).
	Type *TypeRef `json:"type"`

	Shape ShapeTag `json:"shape"`

	Expr Expr `json:"expr"`
}

// IsIdentity reports whether the adaptation passes the argument through.
func (a Adaptation) IsIdentity() bool {
	id, ok := a.Expr.(*Ident)
	return ok && id.Name == a.Param && a.Local == a.Param
}

// Call is the assembled declare-then-delegate body of a generated method.
type Call struct {
	Method    *MethodDescriptor `json:"method"`
	Signature Signature         `json:"signature"`

	// Adaptations are declared in order before the delegate call.
	Adaptations []Adaptation `json:"adaptations"`

	// Delegate is the call to the original method. Its arguments reference
	// the adapted locals in parameter order.
	Delegate *DelegateCall `json:"delegate"`

	// Result is the returned expression. It contains Delegate, unless the
	// method is fluent, in which case Delegate runs as a statement and
	// Result is This. Nil for void methods.
	Result Expr `json:"result,omitempty"`
}

// Returns reports whether the generated method returns a value.
func (c *Call) Returns() bool {
	return c.Result != nil
}
