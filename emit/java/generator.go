package java

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/broady/shimgen/ir"
	"github.com/broady/shimgen/vocab"
)

//go:embed templates/wrapper.java.tmpl
var wrapperSource string

var wrapperTemplate = template.Must(template.New("wrapper").Funcs(sprig.TxtFuncMap()).Parse(wrapperSource))

var _ Generator = (*JavaGenerator)(nil)

// JavaGenerator writes one Java source file per generated type.
type JavaGenerator struct {
	// Vocabulary names the unwrap/wrap methods and runtime helpers.
	// Nil means the default preset.
	Vocabulary *vocab.Vocabulary
}

// Name returns "java".
func (g *JavaGenerator) Name() string {
	return "java"
}

// Generate renders every type of prog and writes it to opts.Sink.
func (g *JavaGenerator) Generate(ctx context.Context, prog *ir.Program, opts GenerateOptions) (*GenerateResult, error) {
	if opts.Sink == nil {
		return nil, fmt.Errorf("sink is required")
	}
	v := g.Vocabulary
	if v == nil {
		v = vocab.VertxMutiny()
	}

	result := &GenerateResult{}
	result.Warnings = append(result.Warnings, prog.Warnings...)

	// Render everything before writing so a failing type leaves no
	// partial output behind.
	rendered := make([][]byte, len(prog.Types))
	for i, gt := range prog.Types {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		em := NewEmitter(v, opts.Config, gt.Decl.Generated)
		warnings, err := em.EmitType(&buf, gt)
		if err != nil {
			return nil, err
		}
		rendered[i] = buf.Bytes()
		result.Warnings = append(result.Warnings, warnings...)
		result.MethodsGenerated += em.MethodsEmitted()
	}

	for i, gt := range prog.Types {
		path := FilePath(gt.Decl.Generated)
		if err := opts.Sink.WriteFile(ctx, path, rendered[i]); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		result.Files = append(result.Files, OutputFile{Path: path, Size: int64(len(rendered[i]))})
		result.TypesGenerated++
	}
	return result, nil
}

// FilePath returns the conventional source path of a type:
// "io.vertx.mutiny.core.Vertx" -> "io/vertx/mutiny/core/Vertx.java".
func FilePath(name ir.QualifiedName) string {
	return strings.ReplaceAll(string(name), ".", "/") + ".java"
}
