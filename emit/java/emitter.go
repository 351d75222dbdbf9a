package java

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/broady/shimgen/ir"
	"github.com/broady/shimgen/vocab"
)

// Emitter renders a single generated type. A fresh Emitter is used per
// type since it tracks the imports of one file.
type Emitter struct {
	v       *vocab.Vocabulary
	config  GeneratorConfig
	imports *imports
	escaped []string
	emitted int

	// delegateRef is how the current method body refers to the wrapped
	// instance; "this.delegate" when a parameter shadows the field.
	delegateRef string
}

// NewEmitter returns an Emitter for the wrapper type named self.
func NewEmitter(v *vocab.Vocabulary, config GeneratorConfig, self ir.QualifiedName) *Emitter {
	return &Emitter{
		v:           v,
		config:      config,
		imports:     newImports(self),
		delegateRef: "delegate",
	}
}

type classView struct {
	Header     string
	Package    string
	Imports    []string
	Doc        []string
	Deprecated bool
	Name       string
	TypeParams string
	Wildcards  string
	Delegate   string
	Unwrap     string
	Wrap       string
	Indent     int
	Methods    []methodView
}

type methodView struct {
	Doc        []string
	Deprecated bool
	Modifiers  string
	TypeParams string
	Return     string
	Name       string
	Params     []string
	Body       []string
}

// EmitType renders gt as a complete compilation unit into buf.
func (e *Emitter) EmitType(buf *bytes.Buffer, gt *ir.GeneratedType) ([]ir.Warning, error) {
	decl := gt.Decl
	if decl.Generated.Package() == "" {
		return nil, fmt.Errorf("generated type %q has no package", decl.Generated)
	}

	view := classView{
		Package:    decl.Generated.Package(),
		Doc:        e.javadoc(decl.Doc),
		Deprecated: decl.Doc.Deprecated != nil,
		Name:       decl.Generated.Simple(),
		TypeParams: typeParams(decl.TypeParams),
		Wildcards:  wildcards(len(decl.TypeParams)),
		Unwrap:     e.v.UnwrapMethod,
		Wrap:       e.v.WrapMethod,
		Indent:     e.config.IndentSize,
	}
	if view.Indent <= 0 {
		view.Indent = 2
	}
	if !e.config.OmitHeader {
		view.Header = e.config.Header
		if view.Header == "" {
			view.Header = DefaultHeader
		}
	}

	var warnings []ir.Warning

	// Overloads that erase to the same signature cannot coexist in one
	// class; the first declared wins.
	var calls []*ir.Call
	seen := make(map[string]bool)
	for _, c := range gt.Calls {
		key := erasedSignature(c.Signature)
		if seen[key] {
			warnings = append(warnings, ir.Warning{
				Code:     "duplicate_signature",
				Message:  fmt.Sprintf("%s.%s clashes with an earlier method and was skipped", decl.Generated.Simple(), key),
				TypeName: decl.Name,
				Method:   c.Signature.Name,
			})
			continue
		}
		seen[key] = true
		calls = append(calls, c)
	}

	// Signatures first, so generated types get first claim on simple names.
	view.Methods = make([]methodView, len(calls))
	for i, c := range calls {
		view.Methods[i] = e.signature(c)
	}
	self := make([]*ir.TypeRef, len(decl.TypeParams))
	for i, tp := range decl.TypeParams {
		self[i] = ir.TypeVar(tp)
	}
	view.Delegate = e.typeString(ir.Ref(decl.Name, self...))
	for i, c := range calls {
		view.Methods[i].Body = e.body(c)
	}
	view.Imports = e.imports.list()
	e.emitted = len(calls)

	if err := wrapperTemplate.Execute(buf, view); err != nil {
		return nil, fmt.Errorf("render %s: %w", decl.Generated, err)
	}

	for _, name := range e.escaped {
		warnings = append(warnings, ir.Warning{
			Code:     "escaped_identifier",
			Message:  fmt.Sprintf("identifier %q is a Java keyword and was renamed to %q", name, escapeIdentifier(name)),
			TypeName: decl.Name,
		})
	}
	return warnings, nil
}

// MethodsEmitted returns the number of methods the last EmitType wrote.
func (e *Emitter) MethodsEmitted() int {
	return e.emitted
}

func (e *Emitter) signature(c *ir.Call) methodView {
	sig := c.Signature
	mv := methodView{
		Doc:        e.javadoc(c.Method.Doc),
		Deprecated: c.Method.Doc.Deprecated != nil,
		Modifiers:  "public",
		TypeParams: typeParams(sig.TypeParams),
		Return:     e.typeString(sig.Return),
		Name:       e.ident(sig.Name),
	}
	if sig.Static {
		mv.Modifiers = "public static"
	}
	for _, p := range sig.Params {
		mv.Params = append(mv.Params, e.typeString(p.Type)+" "+e.ident(p.Name))
	}
	return mv
}

// body renders the declare-then-delegate statements of c.
func (e *Emitter) body(c *ir.Call) []string {
	e.delegateRef = "delegate"
	for _, p := range c.Signature.Params {
		if p.Name == "delegate" {
			e.delegateRef = "this.delegate"
		}
	}
	for _, a := range c.Adaptations {
		if a.Local == "delegate" {
			e.delegateRef = "this.delegate"
		}
	}

	var lines []string
	for _, a := range c.Adaptations {
		if a.IsIdentity() {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s %s = %s;", e.typeString(a.Type), e.ident(a.Local), e.expr(a.Expr)))
	}
	switch r := c.Result.(type) {
	case nil:
		lines = append(lines, e.expr(c.Delegate)+";")
	case *ir.This:
		lines = append(lines, e.expr(c.Delegate)+";", "return this;")
	default:
		lines = append(lines, "return "+e.expr(r)+";")
	}
	return lines
}

// typeString renders t, registering the imports it needs.
func (e *Emitter) typeString(t *ir.TypeRef) string {
	if t == nil {
		return "void"
	}
	switch t.Kind {
	case ir.KindVoid:
		return "void"
	case ir.KindPrimitive, ir.KindTypeVariable:
		return string(t.Name)
	case ir.KindArray:
		return e.typeString(t.Elem) + "[]"
	}
	name := e.imports.use(t.Name)
	if len(t.Args) == 0 {
		return name
	}
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = e.typeString(a)
	}
	return name + "<" + strings.Join(args, ", ") + ">"
}

// erasedSignature is the method name with its erased parameter types, the
// key under which the JVM tells overloads apart.
func erasedSignature(sig ir.Signature) string {
	params := make([]string, len(sig.Params))
	for i, p := range sig.Params {
		params[i] = erasure(p.Type)
	}
	return sig.Name + "(" + strings.Join(params, ", ") + ")"
}

func erasure(t *ir.TypeRef) string {
	switch t.Kind {
	case ir.KindArray:
		return erasure(t.Elem) + "[]"
	case ir.KindTypeVariable:
		return "java.lang.Object"
	default:
		return string(t.Name)
	}
}

func wildcards(n int) string {
	if n == 0 {
		return ""
	}
	return "<" + strings.TrimSuffix(strings.Repeat("?, ", n), ", ") + ">"
}

func typeParams(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return "<" + strings.Join(names, ", ") + ">"
}

func (e *Emitter) ident(name string) string {
	escaped := escapeIdentifier(name)
	if escaped != name && !contains(e.escaped, name) {
		e.escaped = append(e.escaped, name)
	}
	return escaped
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

// javadoc formats doc as comment lines, or returns nil when comments are
// disabled or there is nothing to say.
func (e *Emitter) javadoc(doc ir.Documentation) []string {
	if !e.config.EmitComments || doc.IsZero() {
		return nil
	}
	text := doc.Body
	if text == "" {
		text = doc.Summary
	}
	var content []string
	if text = strings.TrimSpace(text); text != "" {
		for _, line := range strings.Split(text, "\n") {
			content = append(content, strings.TrimRight(line, " \t"))
		}
	}
	if doc.Deprecated != nil && *doc.Deprecated != "" {
		content = append(content, "@deprecated "+*doc.Deprecated)
	}
	switch len(content) {
	case 0:
		return nil
	case 1:
		return []string{"/** " + escapeComment(content[0]) + " */"}
	}
	lines := []string{"/**"}
	for _, c := range content {
		if c == "" {
			lines = append(lines, " *")
			continue
		}
		lines = append(lines, " * "+escapeComment(c))
	}
	return append(lines, " */")
}

func escapeComment(s string) string {
	return strings.ReplaceAll(s, "*/", "*&#47;")
}
