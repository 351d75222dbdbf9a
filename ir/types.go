// Package ir defines the intermediate representation shared by every phase of
// shim generation: resolved type references, shapes, method descriptors,
// adaptations and the assembled calls handed to emitters.
package ir

import "strings"

// QualifiedName is a fully qualified type name such as "io.vertx.core.Vertx".
// Nested types use '.' like any other segment ("java.util.Map.Entry").
type QualifiedName string

// Package returns everything before the last dot.
// Returns "" for unqualified names.
func (n QualifiedName) Package() string {
	s := string(n)
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		return s[:i]
	}
	return ""
}

// Simple returns the last segment of the name.
func (n QualifiedName) Simple() string {
	s := string(n)
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		return s[i+1:]
	}
	return s
}

// IsZero returns true if the name is empty.
func (n QualifiedName) IsZero() bool {
	return n == ""
}

func (n QualifiedName) String() string {
	return string(n)
}

// Documentation holds documentation carried from the original API.
type Documentation struct {
	// Summary is the first sentence, suitable for brief descriptions.
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`

	// Body is the complete documentation text, including the summary.
	Body string `json:"body,omitempty" yaml:"body,omitempty"`

	// Deprecated is non-nil if the symbol is marked deprecated.
	// The string value is the deprecation message (may be empty).
	Deprecated *string `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
}

// IsZero returns true if the documentation is empty.
func (d Documentation) IsZero() bool {
	return d.Summary == "" && d.Body == "" && d.Deprecated == nil
}

// Source represents a location in an input descriptor file.
type Source struct {
	File string `json:"file,omitempty"`
	Line int    `json:"line,omitempty"`
}

// IsZero returns true if the source location is empty.
func (s Source) IsZero() bool {
	return s.File == "" && s.Line == 0
}

// Warning represents a non-fatal issue encountered during generation.
type Warning struct {
	// Code is a machine-readable warning identifier.
	Code string `json:"code"`

	// Message is a human-readable description.
	Message string `json:"message"`

	// TypeName is the type that triggered the warning, if applicable.
	TypeName QualifiedName `json:"typeName,omitempty"`

	// Method is the method that triggered the warning, if applicable.
	Method string `json:"method,omitempty"`
}
