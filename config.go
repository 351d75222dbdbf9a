package shimgen

import (
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"

	"dario.cat/mergo"
	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"

	"github.com/broady/shimgen/vocab"
)

// ConfigFileName is the configuration file looked up next to descriptors.
const ConfigFileName = "shimgen.toml"

// Config holds the configuration for a generation run.
type Config struct {
	// OutDir is the directory generated sources are written to.
	// Empty keeps the output in memory (see Result.Memory).
	OutDir string `toml:"out_dir" schema:"out_dir"`

	// Inputs are the descriptor files to load (.yaml, .yml or .json).
	Inputs []string `toml:"inputs" schema:"inputs" validate:"dive,required"`

	// Vocabulary is the preset naming the callback, deferred and stream
	// types. Default: "vertx-mutiny".
	Vocabulary string `toml:"vocabulary" schema:"vocabulary" validate:"omitempty,oneof=vertx-mutiny"`

	// VocabularyOverrides replaces individual entries of the preset.
	// Zero fields keep the preset's value.
	VocabularyOverrides vocab.Vocabulary `toml:"vocabulary_overrides" schema:"vocab" validate:"-"`

	// Parallelism bounds the number of methods transformed concurrently.
	// Default: GOMAXPROCS.
	Parallelism int `toml:"parallelism" schema:"parallelism" validate:"min=0"`

	// EmitComments carries documentation into the generated sources.
	// Default: true.
	EmitComments *bool `toml:"emit_comments" schema:"emit_comments"`

	// Header is written at the top of every generated file.
	Header string `toml:"header" schema:"header"`

	// IndentSize is the number of spaces per indentation level. Default: 2.
	IndentSize int `toml:"indent_size" schema:"indent_size" validate:"min=0,max=8"`

	// SkipUnchanged leaves generated files with identical content untouched.
	SkipUnchanged bool `toml:"skip_unchanged" schema:"skip_unchanged"`

	// Logger receives progress and failure reports. Default: slog.Default().
	Logger *slog.Logger `toml:"-" schema:"-" validate:"-"`
}

var configValidate = validator.New(validator.WithRequiredStructEnabled())

var optionDecoder = schema.NewDecoder()

func init() {
	optionDecoder.IgnoreUnknownKeys(false)
}

func defaultConfig() *Config {
	emit := true
	return &Config{
		Vocabulary:   vocab.DefaultPreset,
		Parallelism:  runtime.GOMAXPROCS(0),
		EmitComments: &emit,
		IndentSize:   2,
	}
}

// applyConfigDefaults returns a copy of cfg with unset fields filled in.
func applyConfigDefaults(cfg *Config) (*Config, error) {
	result := *cfg
	logger := result.Logger
	result.Logger = nil
	if err := mergo.Merge(&result, defaultConfig(), mergo.WithoutDereference); err != nil {
		return nil, errors.Wrap(err, "apply config defaults")
	}
	if logger == nil {
		logger = slog.Default()
	}
	result.Logger = logger
	return &result, nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	return nil
}

// ResolveVocabulary returns the configured preset with the overrides
// applied.
func (c *Config) ResolveVocabulary() (*vocab.Vocabulary, error) {
	v, err := vocab.Preset(c.Vocabulary)
	if err != nil {
		return nil, err
	}
	if err := mergo.Merge(v, c.VocabularyOverrides, mergo.WithOverride); err != nil {
		return nil, errors.Wrap(err, "apply vocabulary overrides")
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v, nil
}

// LoadConfigFile decodes a TOML configuration file. Relative input and
// output paths are resolved against the file's directory.
func LoadConfigFile(path string) (*Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.Newf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	dir := filepath.Dir(path)
	for i, in := range cfg.Inputs {
		if !filepath.IsAbs(in) {
			cfg.Inputs[i] = filepath.Join(dir, in)
		}
	}
	if cfg.OutDir != "" && !filepath.IsAbs(cfg.OutDir) {
		cfg.OutDir = filepath.Join(dir, cfg.OutDir)
	}
	return &cfg, nil
}

// ApplyOptions overrides fields of cfg from key=value pairs, keyed by the
// schema tags ("indent_size=4", "vocab.deferred=io.smallrye.mutiny.Uni").
// Values that decode to the zero value leave cfg unchanged, except for
// emit_comments which can be switched off.
func ApplyOptions(cfg *Config, opts map[string]string) error {
	if len(opts) == 0 {
		return nil
	}
	values := make(map[string][]string, len(opts))
	for k, v := range opts {
		values[k] = []string{v}
	}
	var over Config
	if err := optionDecoder.Decode(&over, values); err != nil {
		return errors.Wrap(err, "decode options")
	}
	logger := cfg.Logger
	cfg.Logger = nil
	err := mergo.Merge(cfg, over, mergo.WithOverride, mergo.WithoutDereference)
	cfg.Logger = logger
	if err != nil {
		return errors.Wrap(err, "apply options")
	}
	return nil
}
