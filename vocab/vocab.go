// Package vocab names the well-known types the transformation recognizes
// on the original side and targets on the generated side.
package vocab

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/broady/shimgen/ir"
)

// DefaultPreset is the preset used when none is configured.
const DefaultPreset = "vertx-mutiny"

// Vocabulary is the set of qualified names the classifier matches against
// and the adaptation engine generates references to.
type Vocabulary struct {
	// Original-side shapes.
	Callback    ir.QualifiedName `toml:"callback" schema:"callback" validate:"required"`
	AsyncResult ir.QualifiedName `toml:"async_result" schema:"async_result" validate:"required"`
	Future      ir.QualifiedName `toml:"future" schema:"future" validate:"required"`
	List        ir.QualifiedName `toml:"list" schema:"list" validate:"required"`
	Set         ir.QualifiedName `toml:"set" schema:"set" validate:"required"`
	Map         ir.QualifiedName `toml:"map" schema:"map" validate:"required"`
	Consumer    ir.QualifiedName `toml:"consumer" schema:"consumer" validate:"required"`
	Supplier    ir.QualifiedName `toml:"supplier" schema:"supplier" validate:"required"`
	Function    ir.QualifiedName `toml:"function" schema:"function" validate:"required"`
	ReadStream  ir.QualifiedName `toml:"read_stream" schema:"read_stream" validate:"required"`
	Publisher   ir.QualifiedName `toml:"publisher" schema:"publisher" validate:"required"`
	Runnable    ir.QualifiedName `toml:"runnable" schema:"runnable" validate:"required"`
	Void        ir.QualifiedName `toml:"void" schema:"void" validate:"required"`

	// Generated-side abstractions.
	Deferred ir.QualifiedName `toml:"deferred" schema:"deferred" validate:"required"`
	Stream   ir.QualifiedName `toml:"stream" schema:"stream" validate:"required"`

	// Runtime helpers referenced by adaptation expressions.
	DeferredHelper            ir.QualifiedName `toml:"deferred_helper" schema:"deferred_helper" validate:"required"`
	StreamHelper              ir.QualifiedName `toml:"stream_helper" schema:"stream_helper" validate:"required"`
	AsyncResultDeferred       ir.QualifiedName `toml:"async_result_deferred" schema:"async_result_deferred" validate:"required"`
	ReadStreamSubscriber      ir.QualifiedName `toml:"read_stream_subscriber" schema:"read_stream_subscriber" validate:"required"`
	DelegatingConsumerHandler ir.QualifiedName `toml:"delegating_consumer_handler" schema:"delegating_consumer_handler" validate:"required"`
	DelegatingHandler         ir.QualifiedName `toml:"delegating_handler" schema:"delegating_handler" validate:"required"`
	Collectors                ir.QualifiedName `toml:"collectors" schema:"collectors" validate:"required"`

	// UnwrapMethod is the accessor returning a wrapper's delegate.
	UnwrapMethod string `toml:"unwrap_method" schema:"unwrap_method" validate:"required"`

	// WrapMethod is the static factory building a wrapper around a delegate.
	WrapMethod string `toml:"wrap_method" schema:"wrap_method" validate:"required"`

	// PackageRewrites map original package prefixes to generated ones.
	// Used to derive the generated name of a type that does not declare one.
	PackageRewrites map[string]string `toml:"package_rewrites" schema:"-"`
}

// VertxMutiny returns the vocabulary for wrapping the Vert.x core API
// with SmallRye Mutiny.
func VertxMutiny() *Vocabulary {
	return &Vocabulary{
		Callback:    "io.vertx.core.Handler",
		AsyncResult: "io.vertx.core.AsyncResult",
		Future:      "io.vertx.core.Future",
		List:        "java.util.List",
		Set:         "java.util.Set",
		Map:         "java.util.Map",
		Consumer:    "java.util.function.Consumer",
		Supplier:    "java.util.function.Supplier",
		Function:    "java.util.function.Function",
		ReadStream:  "io.vertx.core.streams.ReadStream",
		Publisher:   "java.util.concurrent.Flow.Publisher",
		Runnable:    "java.lang.Runnable",
		Void:        "java.lang.Void",

		Deferred: "io.smallrye.mutiny.Uni",
		Stream:   "io.smallrye.mutiny.Multi",

		DeferredHelper:            "io.smallrye.mutiny.vertx.UniHelper",
		StreamHelper:              "io.smallrye.mutiny.vertx.MultiHelper",
		AsyncResultDeferred:       "io.smallrye.mutiny.vertx.AsyncResultUni",
		ReadStreamSubscriber:      "io.smallrye.mutiny.vertx.ReadStreamSubscriber",
		DelegatingConsumerHandler: "io.smallrye.mutiny.vertx.DelegatingConsumerHandler",
		DelegatingHandler:         "io.smallrye.mutiny.vertx.DelegatingHandler",
		Collectors:                "java.util.stream.Collectors",

		UnwrapMethod: "getDelegate",
		WrapMethod:   "newInstance",

		PackageRewrites: map[string]string{
			"io.vertx.": "io.vertx.mutiny.",
		},
	}
}

var presets = map[string]func() *Vocabulary{
	DefaultPreset: VertxMutiny,
}

// Preset returns a fresh copy of the named vocabulary.
func Preset(name string) (*Vocabulary, error) {
	if name == "" {
		name = DefaultPreset
	}
	fn, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown vocabulary preset %q (available: %s)", name, strings.Join(PresetNames(), ", "))
	}
	return fn(), nil
}

// PresetNames lists the available presets in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GeneratedName derives the generated counterpart of orig by applying the
// longest matching package rewrite. Returns false when no rewrite applies.
func (v *Vocabulary) GeneratedName(orig ir.QualifiedName) (ir.QualifiedName, bool) {
	best := ""
	for prefix := range v.PackageRewrites {
		if strings.HasPrefix(string(orig), prefix) && len(prefix) > len(best) {
			best = prefix
		}
	}
	if best == "" {
		return "", false
	}
	return ir.QualifiedName(v.PackageRewrites[best] + strings.TrimPrefix(string(orig), best)), true
}

// IsDeferred reports whether t is one of the original deferred-result types.
func (v *Vocabulary) IsDeferred(t *ir.TypeRef) bool {
	return t.Is(v.Future) || t.Is(v.AsyncResult)
}

// IsVoid reports whether t carries no payload.
func (v *Vocabulary) IsVoid(t *ir.TypeRef) bool {
	return t.IsVoid() || t.Is(v.Void)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks that every name is set.
func (v *Vocabulary) Validate() error {
	return validate.Struct(v)
}
