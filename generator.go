package shimgen

import (
	"context"
	"log/slog"

	"github.com/broady/shimgen/ir"
)

// Generator provides a fluent API for running the generator.
// Create with FromFiles() or FromAPI() and configure with method chaining.
//
// Example:
//
//	shimgen.FromFiles("core.shim.yaml", "file.shim.yaml").
//	    Header("// Generated for the mutiny bindings.").
//	    ToDir("./src/main/generated")
type Generator struct {
	api *ir.API
	ctx context.Context
	cfg Config
}

// FromFiles creates a Generator reading the given descriptor files.
func FromFiles(paths ...string) *Generator {
	return &Generator{cfg: Config{Inputs: paths}}
}

// FromAPI creates a Generator for an API built elsewhere.
func FromAPI(api *ir.API) *Generator {
	return &Generator{api: api}
}

// WithConfig replaces the configuration. Inputs already given to
// FromFiles are kept when cfg names none.
func (g *Generator) WithConfig(cfg Config) *Generator {
	if len(cfg.Inputs) == 0 {
		cfg.Inputs = g.cfg.Inputs
	}
	g.cfg = cfg
	return g
}

// WithVocabulary selects a vocabulary preset.
func (g *Generator) WithVocabulary(name string) *Generator {
	g.cfg.Vocabulary = name
	return g
}

// WithLogger sets the logger receiving progress reports.
func (g *Generator) WithLogger(l *slog.Logger) *Generator {
	g.cfg.Logger = l
	return g
}

// Parallelism bounds the number of methods transformed at once.
func (g *Generator) Parallelism(n int) *Generator {
	g.cfg.Parallelism = n
	return g
}

// WithoutComments drops documentation from the generated sources.
func (g *Generator) WithoutComments() *Generator {
	emit := false
	g.cfg.EmitComments = &emit
	return g
}

// Header replaces the first line of every generated file.
func (g *Generator) Header(h string) *Generator {
	g.cfg.Header = h
	return g
}

// WithContext sets the context for the run.
func (g *Generator) WithContext(ctx context.Context) *Generator {
	g.ctx = ctx
	return g
}

// ToDir generates files to the specified directory.
// This is a terminal operation that writes files to disk.
func (g *Generator) ToDir(dir string) (*Result, error) {
	g.cfg.OutDir = dir
	return g.run()
}

// Generate returns generated files in memory without writing to disk.
func (g *Generator) Generate() (*Result, error) {
	g.cfg.OutDir = ""
	return g.run()
}

func (g *Generator) run() (*Result, error) {
	ctx := g.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	api := g.api
	if api == nil {
		var err error
		if api, err = Load(ctx, &g.cfg); err != nil {
			return nil, err
		}
	}
	return Generate(ctx, api, &g.cfg)
}
