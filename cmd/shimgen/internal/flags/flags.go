// Package flags holds the options shared by every shimgen command.
package flags

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/broady/shimgen"
	"github.com/broady/shimgen/internal/discover"
)

// Common selects the descriptors and configuration of a run.
type Common struct {
	Files    []string          `arg:"" optional:"" help:"Descriptor files (default: every *.shim.{yaml,yml,json} under --dir)." type:"existingfile"`
	Dir      string            `help:"Directory to scan for descriptors." short:"C" default:"." type:"existingdir"`
	Config   string            `help:"Configuration file (default: nearest shimgen.toml)." short:"c" type:"existingfile"`
	NoConfig bool              `help:"Ignore shimgen.toml."`
	Option   map[string]string `help:"Override a configuration value (e.g. -o indent_size=4)." short:"o" placeholder:"KEY=VALUE"`
	Verbose  bool              `help:"Log every transformed method." short:"v" xor:"verbosity"`
	Quiet    bool              `help:"Log errors only." short:"q" xor:"verbosity"`
}

// Resolved is the outcome of Resolve.
type Resolved struct {
	Config *shimgen.Config

	// ConfigFile is the configuration file that was loaded, if any.
	ConfigFile string
}

// Watched returns the files whose change should trigger a rerun.
func (r *Resolved) Watched() []string {
	files := append([]string(nil), r.Config.Inputs...)
	if r.ConfigFile != "" {
		files = append(files, r.ConfigFile)
	}
	return files
}

// Resolve builds the run configuration: the config file first, then
// explicit files, then -o overrides.
func (c *Common) Resolve() (*Resolved, error) {
	found, err := discover.Find(c.Dir)
	if err != nil {
		return nil, fmt.Errorf("discover: %w", err)
	}

	r := &Resolved{Config: &shimgen.Config{}}
	path := c.Config
	if path == "" && !c.NoConfig {
		path = found.Config
	}
	if path != "" {
		if r.Config, err = shimgen.LoadConfigFile(path); err != nil {
			return nil, err
		}
		r.ConfigFile = path
	}

	switch {
	case len(c.Files) > 0:
		r.Config.Inputs = c.Files
	case len(r.Config.Inputs) == 0:
		if r.Config.Inputs, err = discover.Select(found, nil); err != nil {
			return nil, err
		}
	}

	if err := shimgen.ApplyOptions(r.Config, c.Option); err != nil {
		return nil, err
	}
	r.Config.Logger = c.Logger(os.Stderr)
	return r, nil
}

// Logger returns a text logger at the level the flags select.
func (c *Common) Logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case c.Verbose:
		level = slog.LevelDebug
	case c.Quiet:
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
