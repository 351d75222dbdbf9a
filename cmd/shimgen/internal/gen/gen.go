package gen

import (
	"context"
	"fmt"

	"github.com/broady/shimgen"
	"github.com/broady/shimgen/cmd/shimgen/internal/flags"
	"github.com/broady/shimgen/internal/watch"
)

type Cmd struct {
	flags.Common `embed:""`

	Out   string `help:"Output directory (default: out_dir from shimgen.toml)." short:"O" type:"path"`
	Watch bool   `help:"Watch descriptors and regenerate on change." short:"w"`
}

func (c *Cmd) Run(ctx context.Context) error {
	r, err := c.resolve()
	if err != nil {
		return err
	}

	if err := generate(ctx, r.Config); err != nil {
		if !c.Watch {
			return err
		}
		r.Config.Logger.Error("generation failed", "error", err)
	}
	if !c.Watch {
		return nil
	}

	// The watched set is fixed at startup; restart to pick up new inputs.
	w, err := watch.New(r.Watched())
	if err != nil {
		return err
	}
	w.Logger = r.Config.Logger
	r.Config.Logger.Info("watching for changes", "files", len(r.Watched()))
	return w.Run(ctx, func(ctx context.Context, changed []string) error {
		next, err := c.resolve()
		if err != nil {
			return err
		}
		next.Config.SkipUnchanged = true
		return generate(ctx, next.Config)
	})
}

func (c *Cmd) resolve() (*flags.Resolved, error) {
	r, err := c.Resolve()
	if err != nil {
		return nil, err
	}
	if c.Out != "" {
		r.Config.OutDir = c.Out
	}
	if r.Config.OutDir == "" {
		return nil, fmt.Errorf("no output directory\n\nPass --out <dir> or set out_dir in %s", shimgen.ConfigFileName)
	}
	return r, nil
}

func generate(ctx context.Context, cfg *shimgen.Config) error {
	api, err := shimgen.Load(ctx, cfg)
	if err != nil {
		return err
	}
	res, err := shimgen.Generate(ctx, api, cfg)
	if err != nil {
		return err
	}
	fmt.Printf("✓ %d files written to %s", len(res.Files), cfg.OutDir)
	if n := len(res.Warnings); n > 0 {
		fmt.Printf(" (%d warnings)", n)
	}
	fmt.Println()
	return nil
}
