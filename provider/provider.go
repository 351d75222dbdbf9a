// Package provider loads API descriptor files and converts them into the
// intermediate representation the generator consumes.
package provider

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/broady/shimgen/ir"
	"github.com/broady/shimgen/vocab"
)

// DescriptorProvider builds an API from descriptor files.
type DescriptorProvider struct {
	// Vocabulary derives generated names that descriptors leave out.
	// Nil means the default preset.
	Vocabulary *vocab.Vocabulary
}

// DescriptorInputOptions lists the descriptor files to load.
type DescriptorInputOptions struct {
	// Files are read in order; their types are concatenated.
	Files []string
}

// BuildAPI reads every file and returns the combined API. The result is
// not validated; callers run ir.API.Validate.
func (p *DescriptorProvider) BuildAPI(ctx context.Context, opts DescriptorInputOptions) (*ir.API, error) {
	if len(opts.Files) == 0 {
		return nil, fmt.Errorf("no descriptor files specified")
	}
	api := &ir.API{}
	for _, path := range opts.Files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		format, err := FormatOf(path)
		if err != nil {
			return nil, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "read descriptor")
		}
		f, err := Decode(data, format)
		if err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "%s", path), ir.ErrInvalidInput)
		}
		if err := p.AddFile(api, path, f); err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "%s", path), ir.ErrInvalidInput)
		}
	}
	return api, nil
}

// AddFile converts a decoded descriptor and appends its types and external
// pairs to api. source names the file in ir.Source positions.
func (p *DescriptorProvider) AddFile(api *ir.API, source string, f *File) error {
	v := p.Vocabulary
	if v == nil {
		v = vocab.VertxMutiny()
	}
	b := &apiBuilder{
		api:     api,
		v:       v,
		source:  source,
		file:    f,
		imports: make(map[string]ir.QualifiedName),
	}
	return b.build()
}

// apiBuilder converts one descriptor file.
type apiBuilder struct {
	api     *ir.API
	v       *vocab.Vocabulary
	source  string
	file    *File
	imports map[string]ir.QualifiedName
}

func (b *apiBuilder) build() error {
	for _, imp := range b.file.Imports {
		if err := b.importName(ir.QualifiedName(imp)); err != nil {
			return err
		}
	}
	names := make([]ir.QualifiedName, len(b.file.Types))
	for i, ts := range b.file.Types {
		name, err := b.qualify(ts.Name)
		if err != nil {
			return err
		}
		names[i] = name
		if err := b.importName(name); err != nil {
			return err
		}
	}
	for _, ext := range b.file.External {
		if err := b.importName(ir.QualifiedName(ext.Original)); err != nil {
			return err
		}
	}

	for i, ts := range b.file.Types {
		decl, err := b.typeDecl(names[i], ts)
		if err != nil {
			return err
		}
		if i < len(b.file.lines) {
			decl.Source = ir.Source{File: b.source, Line: b.file.lines[i]}
		} else {
			decl.Source = ir.Source{File: b.source}
		}
		if len(decl.Methods) == 0 {
			b.api.AddWarning(ir.Warning{
				Code:     "empty_type",
				Message:  "type " + string(decl.Name) + " declares no methods",
				TypeName: decl.Name,
			})
		}
		b.api.AddType(decl)
	}

	for _, ext := range b.file.External {
		orig := ir.QualifiedName(ext.Original)
		gen, err := b.generatedName(orig, ext.Generated)
		if err != nil {
			return err
		}
		b.api.External = append(b.api.External, ir.RegistryEntry{Original: orig, Generated: gen})
	}
	return nil
}

// importName makes name resolvable by its simple name.
func (b *apiBuilder) importName(name ir.QualifiedName) error {
	simple := name.Simple()
	if prev, ok := b.imports[simple]; ok && prev != name {
		return errors.Newf("%s and %s are both imported as %s", prev, name, simple)
	}
	b.imports[simple] = name
	return nil
}

func (b *apiBuilder) qualify(name string) (ir.QualifiedName, error) {
	if strings.Contains(name, ".") {
		return ir.QualifiedName(name), nil
	}
	if b.file.Package == "" {
		return "", errors.Newf("type %q is not qualified and the file declares no package", name)
	}
	return ir.QualifiedName(b.file.Package + "." + name), nil
}

func (b *apiBuilder) generatedName(orig ir.QualifiedName, declared string) (ir.QualifiedName, error) {
	if declared != "" {
		return b.qualifyGenerated(declared)
	}
	gen, ok := b.v.GeneratedName(orig)
	if !ok {
		return "", errors.WithHint(
			errors.Newf("no generated name for %s", orig),
			"set \"generated\" or add a package rewrite covering it")
	}
	return gen, nil
}

func (b *apiBuilder) qualifyGenerated(name string) (ir.QualifiedName, error) {
	if !strings.Contains(name, ".") {
		return "", errors.Newf("generated name %q must be qualified", name)
	}
	return ir.QualifiedName(name), nil
}

func (b *apiBuilder) typeDecl(name ir.QualifiedName, ts TypeSpec) (*ir.TypeDecl, error) {
	gen, err := b.generatedName(name, ts.Generated)
	if err != nil {
		return nil, err
	}
	decl := &ir.TypeDecl{
		Name:       name,
		Generated:  gen,
		TypeParams: ts.TypeParams,
		Doc:        ts.Doc,
	}
	for _, ms := range ts.Methods {
		m, err := b.methodDecl(ts.TypeParams, ms)
		if err != nil {
			return nil, errors.Wrapf(err, "%s.%s", name.Simple(), ms.Name)
		}
		decl.Methods = append(decl.Methods, m)
	}
	return decl, nil
}

func (b *apiBuilder) methodDecl(classVars []string, ms MethodSpec) (*ir.MethodDecl, error) {
	vars := make(map[string]bool, len(classVars)+len(ms.TypeParams))
	for _, tv := range classVars {
		vars[tv] = true
	}
	for _, tv := range ms.TypeParams {
		vars[tv] = true
	}

	returns := ms.Returns
	if returns == "" {
		returns = "void"
	}
	ret, err := b.typeExpr(returns, vars)
	if err != nil {
		return nil, errors.Wrap(err, "return type")
	}
	m := &ir.MethodDecl{
		Name:       ms.Name,
		Returns:    ret,
		Static:     ms.Static,
		Fluent:     ms.Fluent,
		TypeParams: ms.TypeParams,
		Doc:        ms.Doc,
	}
	for _, ps := range ms.Params {
		typ, err := b.typeExpr(ps.Type, vars)
		if err != nil {
			return nil, errors.Wrapf(err, "parameter %s", ps.Name)
		}
		p := ir.ParamDecl{Name: ps.Name, Type: typ}
		if ps.Surface != "" {
			if p.Surface, err = b.typeExpr(ps.Surface, vars); err != nil {
				return nil, errors.Wrapf(err, "parameter %s surface", ps.Name)
			}
		}
		m.Params = append(m.Params, p)
	}
	return m, nil
}

// typeExpr parses s, resolving simple names through the file's imports,
// its own types and java.lang. Remaining identifiers must be type
// parameters in scope.
func (b *apiBuilder) typeExpr(s string, vars map[string]bool) (*ir.TypeRef, error) {
	t, err := ir.ParseTypeIn(s, func(name string) (ir.QualifiedName, bool) {
		if vars[name] {
			return "", false
		}
		if q, ok := b.imports[name]; ok {
			return q, true
		}
		if javaLang[name] {
			return ir.QualifiedName("java.lang." + name), true
		}
		return "", false
	})
	if err != nil {
		return nil, err
	}
	if name := unknownVar(t, vars); name != "" {
		return nil, errors.Newf("unknown type %q in %q", name, s)
	}
	return t, nil
}

// javaLang lists the java.lang types usable without import.
var javaLang = map[string]bool{
	"Boolean": true, "Byte": true, "Character": true, "CharSequence": true,
	"Double": true, "Float": true, "Integer": true, "Iterable": true,
	"Long": true, "Number": true, "Object": true, "Runnable": true,
	"Short": true, "String": true, "Throwable": true, "Void": true,
}

// unknownVar returns the first type variable in t that is not in scope.
func unknownVar(t *ir.TypeRef, vars map[string]bool) string {
	switch t.Kind {
	case ir.KindTypeVariable:
		if !vars[string(t.Name)] {
			return string(t.Name)
		}
	case ir.KindArray:
		return unknownVar(t.Elem, vars)
	case ir.KindReference:
		for _, a := range t.Args {
			if name := unknownVar(a, vars); name != "" {
				return name
			}
		}
	}
	return ""
}
