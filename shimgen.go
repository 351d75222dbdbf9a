// Package shimgen generates reactive wrapper APIs from callback-style APIs.
//
// A run has two phases. Phase one builds the registry of original and
// generated type pairs from the whole API. Phase two classifies and
// transforms every method against the frozen registry, in parallel, and
// the emitter renders the result. Nothing is written when any method
// fails.
package shimgen

import (
	"context"
	"log/slog"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/broady/shimgen/classify"
	"github.com/broady/shimgen/emit/java"
	"github.com/broady/shimgen/ir"
	"github.com/broady/shimgen/provider"
	"github.com/broady/shimgen/registry"
	"github.com/broady/shimgen/sink"
	"github.com/broady/shimgen/transform"
)

// Result describes a completed run.
type Result struct {
	Program *ir.Program
	Files   []java.OutputFile

	// Warnings collects non-fatal issues from loading and emission.
	Warnings []ir.Warning

	// Memory holds the generated files when Config.OutDir is empty.
	Memory *sink.MemorySink

	Duration time.Duration
}

// Load reads the descriptor files named by cfg.Inputs.
func Load(ctx context.Context, cfg *Config) (*ir.API, error) {
	cfg, err := applyConfigDefaults(cfg)
	if err != nil {
		return nil, err
	}
	v, err := cfg.ResolveVocabulary()
	if err != nil {
		return nil, err
	}
	p := &provider.DescriptorProvider{Vocabulary: v}
	api, err := p.BuildAPI(ctx, provider.DescriptorInputOptions{Files: cfg.Inputs})
	if err != nil {
		return nil, err
	}
	cfg.Logger.Debug("descriptors loaded",
		slog.Int("files", len(cfg.Inputs)),
		slog.Int("types", len(api.Types)),
		slog.Int("methods", api.MethodCount()))
	return api, nil
}

// Transform runs both phases over api and returns the program ready for
// emission. Per-method failures are collected and returned together as a
// *multierror.Error; a fatal failure stops the run immediately.
func Transform(ctx context.Context, api *ir.API, cfg *Config) (*ir.Program, error) {
	cfg, err := applyConfigDefaults(cfg)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	v, err := cfg.ResolveVocabulary()
	if err != nil {
		return nil, err
	}

	if errs := api.Validate(); len(errs) > 0 {
		var merr *multierror.Error
		for _, e := range errs {
			merr = multierror.Append(merr, e)
		}
		return nil, errors.Mark(merr, ir.ErrInvalidInput)
	}

	// Phase 1.
	start := time.Now()
	reg, err := registry.FromAPI(api)
	if err != nil {
		return nil, err
	}
	cfg.Logger.Info("registry built",
		slog.Int("entries", reg.Len()),
		slog.Duration("duration", time.Since(start)))

	// Phase 2.
	return transformAll(ctx, api, classify.New(v, reg), cfg)
}

// transformAll transforms every method of api with c. Calls and failures
// are stored by position so the outcome does not depend on scheduling.
func transformAll(ctx context.Context, api *ir.API, c *classify.Classifier, cfg *Config) (*ir.Program, error) {
	start := time.Now()
	tr := transform.New(c)

	calls := make([][]*ir.Call, len(api.Types))
	failures := make([][]error, len(api.Types))
	for i, decl := range api.Types {
		calls[i] = make([]*ir.Call, len(decl.Methods))
		failures[i] = make([]error, len(decl.Methods))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Parallelism, 1))

	for i, decl := range api.Types {
		for j, m := range decl.Methods {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				call, err := tr.Method(decl, m)
				if err != nil {
					if ir.IsFatal(err) {
						return err
					}
					failures[i][j] = err
					return nil
				}
				calls[i][j] = call
				cfg.Logger.Debug("method transformed",
					slog.String("type", string(decl.Name)),
					slog.String("method", m.Name),
					slog.String("kind", call.Method.Kind.String()))
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		cfg.Logger.Error("transform aborted", slog.String("error", err.Error()))
		return nil, err
	}

	var merr *multierror.Error
	prog := &ir.Program{Warnings: api.Warnings}
	for i, decl := range api.Types {
		gt := &ir.GeneratedType{Decl: decl}
		for j := range decl.Methods {
			if err := failures[i][j]; err != nil {
				cfg.Logger.Warn("method failed",
					slog.String("type", string(decl.Name)),
					slog.String("method", decl.Methods[j].Name),
					slog.String("error", err.Error()))
				merr = multierror.Append(merr, err)
				continue
			}
			gt.Calls = append(gt.Calls, calls[i][j])
		}
		prog.Types = append(prog.Types, gt)
	}
	if err := merr.ErrorOrNil(); err != nil {
		cfg.Logger.Error("transform failed", slog.Int("failures", merr.Len()))
		return nil, err
	}

	cfg.Logger.Info("transform completed",
		slog.Int("types", len(prog.Types)),
		slog.Int("methods", api.MethodCount()),
		slog.Duration("duration", time.Since(start)))
	return prog, nil
}

// Generate transforms api and writes the generated sources to cfg.OutDir,
// or to memory when OutDir is empty.
func Generate(ctx context.Context, api *ir.API, cfg *Config) (*Result, error) {
	start := time.Now()
	cfg, err := applyConfigDefaults(cfg)
	if err != nil {
		return nil, err
	}
	prog, err := Transform(ctx, api, cfg)
	if err != nil {
		return nil, err
	}
	v, err := cfg.ResolveVocabulary()
	if err != nil {
		return nil, err
	}

	result := &Result{Program: prog}
	var out sink.OutputSink
	if cfg.OutDir == "" {
		result.Memory = sink.NewMemorySink()
		out = result.Memory
	} else {
		fs := sink.NewFilesystemSink(cfg.OutDir)
		fs.SkipUnchanged = cfg.SkipUnchanged
		out = fs
	}

	gen := &java.JavaGenerator{Vocabulary: v}
	res, err := gen.Generate(ctx, prog, java.GenerateOptions{
		Sink: out,
		Config: java.GeneratorConfig{
			EmitComments: *cfg.EmitComments,
			Header:       cfg.Header,
			IndentSize:   cfg.IndentSize,
		},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "generate %s", gen.Name())
	}
	for _, w := range res.Warnings {
		cfg.Logger.Warn(w.Message, slog.String("code", w.Code))
	}

	result.Files = res.Files
	result.Warnings = res.Warnings
	result.Duration = time.Since(start)
	cfg.Logger.Info("generation completed",
		slog.Int("files", len(res.Files)),
		slog.Int("methods", res.MethodsGenerated),
		slog.Int("warnings", len(res.Warnings)),
		slog.Duration("duration", result.Duration))
	return result, nil
}
