// Package java renders generated wrapper types as Java source.
package java

import (
	"context"

	"github.com/broady/shimgen/ir"
	"github.com/broady/shimgen/sink"
)

// Generator renders a transformed program into source files.
type Generator interface {
	// Name returns the generator identifier (e.g. "java").
	Name() string

	// Generate renders every type of prog and writes the files to opts.Sink.
	Generate(ctx context.Context, prog *ir.Program, opts GenerateOptions) (*GenerateResult, error)
}

// GenerateOptions contains the sink and the rendering configuration.
type GenerateOptions struct {
	// Sink receives the rendered files. Required.
	Sink sink.OutputSink

	Config GeneratorConfig
}

// GeneratorConfig controls the layout of the emitted source.
type GeneratorConfig struct {
	// EmitComments carries type and method documentation into Javadoc.
	// @Deprecated annotations are emitted regardless.
	EmitComments bool

	// Header is written verbatim at the top of every file.
	// Default: DefaultHeader.
	Header string

	// OmitHeader suppresses the header entirely.
	OmitHeader bool

	// IndentSize is the number of spaces per indentation level. Default: 2.
	IndentSize int
}

// DefaultHeader marks emitted files as generated.
const DefaultHeader = "// Code generated by shimgen. DO NOT EDIT."

// GenerateResult describes what was written.
type GenerateResult struct {
	Files            []OutputFile
	TypesGenerated   int
	MethodsGenerated int
	Warnings         []ir.Warning
}

// OutputFile describes one written file.
type OutputFile struct {
	// Path is relative to the sink root, e.g. "io/vertx/mutiny/core/Vertx.java".
	Path string

	// Size is the content length in bytes.
	Size int64
}
