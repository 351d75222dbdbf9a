// Package dump prints the transformed program as JSON.
package dump

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/broady/shimgen"
	"github.com/broady/shimgen/cmd/shimgen/internal/flags"
)

type Cmd struct {
	flags.Common `embed:""`

	Output string `help:"Write to this file instead of stdout." short:"f" type:"path"`
}

func (c *Cmd) Run(ctx context.Context) error {
	r, err := c.Resolve()
	if err != nil {
		return err
	}
	api, err := shimgen.Load(ctx, r.Config)
	if err != nil {
		return err
	}
	prog, err := shimgen.Transform(ctx, api, r.Config)
	if err != nil {
		return err
	}

	if c.Output == "" {
		return encode(os.Stdout, prog)
	}
	f, err := os.Create(c.Output)
	if err != nil {
		return err
	}
	if err := encode(f, prog); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
