package ir

import (
	"fmt"
	"strings"
	"unicode"
)

var primitiveNames = map[string]bool{
	"boolean": true,
	"byte":    true,
	"char":    true,
	"short":   true,
	"int":     true,
	"long":    true,
	"float":   true,
	"double":  true,
}

// objectType is what an unbounded wildcard resolves to.
const objectType QualifiedName = "java.lang.Object"

// ParseError reports a malformed type expression.
type ParseError struct {
	Input string
	Pos   int
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse type %q at offset %d: %s", e.Input, e.Pos, e.Msg)
}

// ParseType parses a resolved type expression such as
//
//	io.vertx.core.Handler<io.vertx.core.AsyncResult<java.util.List<java.lang.String>>>
//
// Supported syntax: qualified names with generic arguments, primitive
// keywords, void, array suffixes ("byte[]"), a trailing '?' marking the
// reference nullable, and wildcards ("? extends T" resolves to T, "?" to
// java.lang.Object). An unqualified identifier is a type variable.
func ParseType(s string) (*TypeRef, error) {
	return ParseTypeIn(s, nil)
}

// NameResolver maps an unqualified identifier to the type it names.
// It reports false for identifiers that are type variables.
type NameResolver func(name string) (QualifiedName, bool)

// ParseTypeIn is like ParseType, but unqualified identifiers are first
// offered to resolve; only the ones it rejects become type variables.
func ParseTypeIn(s string, resolve NameResolver) (*TypeRef, error) {
	p := &typeParser{in: s, resolve: resolve}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.in) {
		return nil, p.errorf("unexpected %q", p.in[p.pos:])
	}
	return t, nil
}

// MustParseType is like ParseType but panics on error. Intended for tests
// and package-level fixtures.
func MustParseType(s string) *TypeRef {
	t, err := ParseType(s)
	if err != nil {
		panic(err)
	}
	return t
}

type typeParser struct {
	in      string
	pos     int
	resolve NameResolver
}

func (p *typeParser) errorf(format string, args ...any) error {
	return &ParseError{Input: p.in, Pos: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.in) && p.in[p.pos] == ' ' {
		p.pos++
	}
}

func (p *typeParser) peek() byte {
	if p.pos < len(p.in) {
		return p.in[p.pos]
	}
	return 0
}

func (p *typeParser) parseType() (*TypeRef, error) {
	p.skipSpace()
	var t *TypeRef
	if p.peek() == '?' {
		w, err := p.parseWildcard()
		if err != nil {
			return nil, err
		}
		t = w
	} else {
		b, err := p.parseBase()
		if err != nil {
			return nil, err
		}
		t = b
	}

	for {
		p.skipSpace()
		if strings.HasPrefix(p.in[p.pos:], "[]") {
			p.pos += 2
			t = ArrayOf(t)
			continue
		}
		break
	}
	if p.peek() == '?' {
		p.pos++
		if t.Kind == KindVoid || t.Kind == KindPrimitive {
			return nil, p.errorf("%s cannot be nullable", t)
		}
		t = t.AsNullable()
	}
	return t, nil
}

func (p *typeParser) parseWildcard() (*TypeRef, error) {
	p.pos++ // '?'
	p.skipSpace()
	rest := p.in[p.pos:]
	for _, kw := range []string{"extends ", "super "} {
		if strings.HasPrefix(rest, kw) {
			p.pos += len(kw)
			return p.parseType()
		}
	}
	return Ref(objectType), nil
}

func (p *typeParser) parseBase() (*TypeRef, error) {
	start := p.pos
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	switch {
	case name == "void":
		return Void(), nil
	case primitiveNames[name]:
		return Primitive(name), nil
	}

	var args []*TypeRef
	p.skipSpace()
	if p.peek() == '<' {
		p.pos++
		for {
			arg, err := p.parseType()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			p.skipSpace()
			switch p.peek() {
			case ',':
				p.pos++
				continue
			case '>':
				p.pos++
			default:
				return nil, p.errorf("expected ',' or '>'")
			}
			break
		}
	}

	if !strings.Contains(name, ".") && p.resolve != nil {
		if q, ok := p.resolve(name); ok {
			return Ref(q, args...), nil
		}
	}
	if !strings.Contains(name, ".") {
		if len(args) > 0 {
			p.pos = start
			return nil, p.errorf("type variable %s cannot have arguments", name)
		}
		return TypeVar(name), nil
	}
	return Ref(QualifiedName(name), args...), nil
}

func (p *typeParser) parseName() (string, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.in) {
		r := rune(p.in[p.pos])
		if r == '.' || r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			p.pos++
			continue
		}
		break
	}
	name := p.in[start:p.pos]
	if name == "" {
		return "", p.errorf("expected type name")
	}
	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".") || strings.Contains(name, "..") {
		return "", p.errorf("malformed qualified name %q", name)
	}
	return name, nil
}
