package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/broady/shimgen/cmd/shimgen/internal/check"
	"github.com/broady/shimgen/cmd/shimgen/internal/dump"
	"github.com/broady/shimgen/cmd/shimgen/internal/gen"
)

type CLI struct {
	Version VersionCmd `cmd:"" help:"Print version information."`
	Gen     gen.Cmd    `cmd:"" help:"Generate Mutiny wrapper sources."`
	Check   check.Cmd  `cmd:"" help:"Transform every method without writing files."`
	Dump    dump.Cmd   `cmd:"" help:"Print the transformed program as JSON."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli := &CLI{}
	kctx := kong.Parse(cli,
		kong.Name("shimgen"),
		kong.Description("Generate reactive wrappers for callback-style APIs."),
		kong.UsageOnError(),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)
	err := kctx.Run()
	kctx.FatalIfErrorf(err)
}
