package provider

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/broady/shimgen/ir"
)

// File is the on-disk form of an API descriptor.
//
// Type expressions may use simple names for imported types, for types
// declared in the same file and for java.lang types; any other unqualified
// identifier must be a type parameter in scope.
type File struct {
	// Package qualifies unqualified type names declared in this file.
	Package string `yaml:"package" json:"package"`

	Imports  []string       `yaml:"imports" json:"imports" validate:"dive,required,contains=."`
	Types    []TypeSpec     `yaml:"types" json:"types" validate:"dive"`
	External []ExternalSpec `yaml:"external" json:"external" validate:"dive"`

	// lines holds the source line of each entry of Types (YAML only).
	lines []int
}

// TypeSpec declares an original type and the methods to generate.
type TypeSpec struct {
	Name string `yaml:"name" json:"name" validate:"required"`

	// Generated defaults to the vocabulary's package rewrite of Name.
	Generated  string           `yaml:"generated" json:"generated"`
	TypeParams []string         `yaml:"typeParams" json:"typeParams" validate:"dive,required"`
	Doc        ir.Documentation `yaml:"doc" json:"doc"`
	Methods    []MethodSpec     `yaml:"methods" json:"methods" validate:"dive"`
}

// MethodSpec declares one original method.
type MethodSpec struct {
	Name   string      `yaml:"name" json:"name" validate:"required"`
	Params []ParamSpec `yaml:"params" json:"params" validate:"dive"`

	// Returns defaults to void.
	Returns    string           `yaml:"returns" json:"returns"`
	Static     bool             `yaml:"static" json:"static"`
	Fluent     bool             `yaml:"fluent" json:"fluent"`
	TypeParams []string         `yaml:"typeParams" json:"typeParams" validate:"dive,required"`
	Doc        ir.Documentation `yaml:"doc" json:"doc"`
}

// ParamSpec declares one parameter.
type ParamSpec struct {
	Name    string `yaml:"name" json:"name" validate:"required"`
	Type    string `yaml:"type" json:"type" validate:"required"`
	Surface string `yaml:"surface" json:"surface"`
}

// ExternalSpec names an original type generated by another run.
type ExternalSpec struct {
	Original  string `yaml:"original" json:"original" validate:"required"`
	Generated string `yaml:"generated" json:"generated"`
}

// Format is a descriptor encoding.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
)

// FormatOf picks the encoding from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return 0, errors.Newf("unsupported descriptor extension %q", filepath.Ext(path))
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their descriptor key.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Decode parses and validates a descriptor. Unknown keys are errors.
func Decode(data []byte, format Format) (*File, error) {
	var f File
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, errors.Wrap(err, "decode json")
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, errors.Wrap(err, "decode yaml")
		}
		f.lines = typeLines(data)
	}

	if err := validate.Struct(&f); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, len(verrs))
			for i, fe := range verrs {
				msgs[i] = describe(fe)
			}
			return nil, errors.Newf("invalid descriptor: %s", strings.Join(msgs, "; "))
		}
		return nil, errors.Wrap(err, "validate descriptor")
	}
	return &f, nil
}

func describe(fe validator.FieldError) string {
	path := fe.Namespace()
	if _, rest, ok := strings.Cut(path, "."); ok {
		path = rest
	}
	switch fe.Tag() {
	case "required":
		return path + " is required"
	case "contains":
		return path + " must be a qualified name"
	}
	return path + " failed " + fe.Tag()
}

// typeLines returns the line of every item of the top-level "types"
// sequence, or nil when the document does not have that shape.
func typeLines(data []byte) []int {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil || len(doc.Content) == 0 {
		return nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value != "types" {
			continue
		}
		seq := root.Content[i+1]
		lines := make([]int, len(seq.Content))
		for j, item := range seq.Content {
			lines[j] = item.Line
		}
		return lines
	}
	return nil
}
