package check

import (
	"context"
	"fmt"

	"github.com/broady/shimgen"
	"github.com/broady/shimgen/cmd/shimgen/internal/flags"
)

type Cmd struct {
	flags.Common `embed:""`
}

func (c *Cmd) Run(ctx context.Context) error {
	r, err := c.Resolve()
	if err != nil {
		return err
	}
	cfg := r.Config

	api, err := shimgen.Load(ctx, cfg)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Loaded %d descriptor files\n", len(cfg.Inputs))

	prog, err := shimgen.Transform(ctx, api, cfg)
	if err != nil {
		return err
	}
	fmt.Printf("✓ %d types, %d methods\n", len(prog.Types), api.MethodCount())
	for _, w := range prog.Warnings {
		fmt.Printf("! %s: %s\n", w.Code, w.Message)
	}
	fmt.Println("✓ All methods transformable")
	return nil
}
