package ir

import "encoding/json"

// JSON support for IR types. Type references serialize as their textual
// form; expressions carry a "kind" field for type discrimination.

// MarshalText implements encoding.TextMarshaler.
func (t *TypeRef) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using ParseType.
func (t *TypeRef) UnmarshalText(b []byte) error {
	parsed, err := ParseType(string(b))
	if err != nil {
		return err
	}
	*t = *parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (s ShapeTag) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// MarshalText implements encoding.TextMarshaler.
func (k MethodKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// MarshalText implements encoding.TextMarshaler.
func (f TrailingForm) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func marshalNode(kind string, v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	fields["kind"], _ = json.Marshal(kind)
	return json.Marshal(fields)
}

// MarshalJSON implements json.Marshaler for Ident.
func (e *Ident) MarshalJSON() ([]byte, error) {
	type alias Ident
	return marshalNode("ident", (*alias)(e))
}

// MarshalJSON implements json.Marshaler for This.
func (e *This) MarshalJSON() ([]byte, error) {
	return []byte(`{"kind":"this"}`), nil
}

// MarshalJSON implements json.Marshaler for Unwrap.
func (e *Unwrap) MarshalJSON() ([]byte, error) {
	type alias Unwrap
	return marshalNode("unwrap", (*alias)(e))
}

// MarshalJSON implements json.Marshaler for Wrap.
func (e *Wrap) MarshalJSON() ([]byte, error) {
	type alias Wrap
	return marshalNode("wrap", (*alias)(e))
}

// MarshalJSON implements json.Marshaler for New.
func (e *New) MarshalJSON() ([]byte, error) {
	type alias New
	return marshalNode("new", (*alias)(e))
}

// MarshalJSON implements json.Marshaler for Invoke.
func (e *Invoke) MarshalJSON() ([]byte, error) {
	type alias Invoke
	return marshalNode("invoke", (*alias)(e))
}

// MarshalJSON implements json.Marshaler for StaticInvoke.
func (e *StaticInvoke) MarshalJSON() ([]byte, error) {
	type alias StaticInvoke
	return marshalNode("staticInvoke", (*alias)(e))
}

// MarshalJSON implements json.Marshaler for Lambda.
func (e *Lambda) MarshalJSON() ([]byte, error) {
	type alias Lambda
	return marshalNode("lambda", (*alias)(e))
}

// MarshalJSON implements json.Marshaler for Cast.
func (e *Cast) MarshalJSON() ([]byte, error) {
	type alias Cast
	return marshalNode("cast", (*alias)(e))
}

// MarshalJSON implements json.Marshaler for NilGuard.
func (e *NilGuard) MarshalJSON() ([]byte, error) {
	type alias NilGuard
	return marshalNode("nilGuard", (*alias)(e))
}

// MarshalJSON implements json.Marshaler for Collect.
func (e *Collect) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind      string  `json:"kind"`
		Container string  `json:"container"`
		X         Expr    `json:"x"`
		Fn        *Lambda `json:"fn"`
	}{
		Kind:      "collect",
		Container: e.Kind.String(),
		X:         e.X,
		Fn:        e.Fn,
	})
}

// MarshalJSON implements json.Marshaler for CollectValues.
func (e *CollectValues) MarshalJSON() ([]byte, error) {
	type alias CollectValues
	return marshalNode("collectValues", (*alias)(e))
}

// MarshalJSON implements json.Marshaler for DelegateCall.
func (e *DelegateCall) MarshalJSON() ([]byte, error) {
	type alias DelegateCall
	return marshalNode("delegateCall", (*alias)(e))
}
