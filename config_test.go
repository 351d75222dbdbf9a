package shimgen

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/broady/shimgen/vocab"
)

func TestApplyConfigDefaults(t *testing.T) {
	off := false
	tests := []struct {
		name   string
		input  *Config
		check  func(*Config) bool
		errMsg string
	}{
		{
			name:  "empty config gets defaults",
			input: &Config{},
			check: func(c *Config) bool {
				return c.Vocabulary == vocab.DefaultPreset &&
					c.Parallelism == runtime.GOMAXPROCS(0) &&
					c.EmitComments != nil && *c.EmitComments &&
					c.IndentSize == 2 &&
					c.Logger != nil
			},
			errMsg: "defaults not applied correctly",
		},
		{
			name:  "explicit values preserved",
			input: &Config{Parallelism: 3, IndentSize: 4, Header: "// x"},
			check: func(c *Config) bool {
				return c.Parallelism == 3 && c.IndentSize == 4 && c.Header == "// x"
			},
			errMsg: "explicit values not preserved",
		},
		{
			name:  "explicit false comments preserved",
			input: &Config{EmitComments: &off},
			check: func(c *Config) bool {
				return c.EmitComments != nil && !*c.EmitComments
			},
			errMsg: "EmitComments=false overwritten",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := applyConfigDefaults(tt.input)
			if err != nil {
				t.Fatalf("applyConfigDefaults() error = %v", err)
			}
			if !tt.check(result) {
				t.Errorf("%s: got %+v", tt.errMsg, result)
			}
		})
	}
}

func TestApplyConfigDefaults_DoesNotMutate(t *testing.T) {
	off := false
	input := &Config{EmitComments: &off}
	if _, err := applyConfigDefaults(input); err != nil {
		t.Fatal(err)
	}
	if input.Vocabulary != "" || input.IndentSize != 0 || input.Logger != nil {
		t.Errorf("input mutated: %+v", input)
	}
	if *input.EmitComments {
		t.Error("input EmitComments flipped to true")
	}

	fresh := &Config{}
	if _, err := applyConfigDefaults(fresh); err != nil {
		t.Fatal(err)
	}
	if fresh.EmitComments != nil {
		t.Error("input EmitComments set")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"zero", Config{}, false},
		{"preset", Config{Vocabulary: "vertx-mutiny"}, false},
		{"unknown preset", Config{Vocabulary: "rxjava"}, true},
		{"negative parallelism", Config{Parallelism: -1}, true},
		{"indent too large", Config{IndentSize: 9}, true},
		{"empty input", Config{Inputs: []string{"a.shim.yaml", ""}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ResolveVocabulary(t *testing.T) {
	cfg := &Config{VocabularyOverrides: vocab.Vocabulary{WrapMethod: "wrap"}}
	v, err := cfg.ResolveVocabulary()
	if err != nil {
		t.Fatalf("ResolveVocabulary() error = %v", err)
	}
	if v.WrapMethod != "wrap" {
		t.Errorf("WrapMethod = %q, want wrap", v.WrapMethod)
	}
	if v.UnwrapMethod != "getDelegate" {
		t.Errorf("UnwrapMethod = %q, want preset value getDelegate", v.UnwrapMethod)
	}
	if v.PackageRewrites["io.vertx."] != "io.vertx.mutiny." {
		t.Errorf("PackageRewrites = %v, want preset rewrites", v.PackageRewrites)
	}

	if _, err := (&Config{Vocabulary: "rxjava"}).ResolveVocabulary(); err == nil {
		t.Error("ResolveVocabulary() with unknown preset expected error")
	}
}

func TestLoadConfigFile(t *testing.T) {
	cfg, err := LoadConfigFile(filepath.Join("testdata", ConfigFileName))
	if err != nil {
		t.Fatalf("LoadConfigFile() error = %v", err)
	}
	wantInput := filepath.Join("testdata", "api", "net.shim.yaml")
	if len(cfg.Inputs) != 1 || cfg.Inputs[0] != wantInput {
		t.Errorf("Inputs = %v, want [%s]", cfg.Inputs, wantInput)
	}
	if want := filepath.Join("testdata", "gen"); cfg.OutDir != want {
		t.Errorf("OutDir = %q, want %q", cfg.OutDir, want)
	}
	if cfg.IndentSize != 4 {
		t.Errorf("IndentSize = %d, want 4", cfg.IndentSize)
	}
	if cfg.EmitComments == nil || *cfg.EmitComments {
		t.Errorf("EmitComments = %v, want false", cfg.EmitComments)
	}
	if cfg.VocabularyOverrides.WrapMethod != "wrap" {
		t.Errorf("VocabularyOverrides.WrapMethod = %q, want wrap", cfg.VocabularyOverrides.WrapMethod)
	}
}

func TestLoadConfigFile_Errors(t *testing.T) {
	dir := t.TempDir()

	unknown := filepath.Join(dir, "unknown.toml")
	if err := os.WriteFile(unknown, []byte("inputs = []\nbogus = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadConfigFile(unknown)
	if err == nil || !strings.Contains(err.Error(), "unknown keys: bogus") {
		t.Errorf("LoadConfigFile() error = %v, want unknown keys", err)
	}

	broken := filepath.Join(dir, "broken.toml")
	if err := os.WriteFile(broken, []byte("inputs = [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfigFile(broken); err == nil {
		t.Error("LoadConfigFile() with invalid TOML expected error")
	}

	if _, err := LoadConfigFile(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("LoadConfigFile() with missing file expected error")
	}
}

func TestApplyOptions(t *testing.T) {
	on := true
	cfg := &Config{OutDir: "out", IndentSize: 2, EmitComments: &on}
	err := ApplyOptions(cfg, map[string]string{
		"indent_size":    "4",
		"emit_comments":  "false",
		"vocab.deferred": "io.smallrye.mutiny.Uni",
	})
	if err != nil {
		t.Fatalf("ApplyOptions() error = %v", err)
	}
	if cfg.IndentSize != 4 {
		t.Errorf("IndentSize = %d, want 4", cfg.IndentSize)
	}
	if cfg.EmitComments == nil || *cfg.EmitComments {
		t.Errorf("EmitComments = %v, want false", cfg.EmitComments)
	}
	if cfg.VocabularyOverrides.Deferred != "io.smallrye.mutiny.Uni" {
		t.Errorf("VocabularyOverrides.Deferred = %q", cfg.VocabularyOverrides.Deferred)
	}
	if cfg.OutDir != "out" {
		t.Errorf("OutDir = %q, want unchanged out", cfg.OutDir)
	}
	if !on {
		t.Error("ApplyOptions() wrote through the caller's EmitComments pointer")
	}

	if err := ApplyOptions(cfg, map[string]string{"no_such_option": "1"}); err == nil {
		t.Error("ApplyOptions() with unknown key expected error")
	}
	if err := ApplyOptions(cfg, map[string]string{"indent_size": "wide"}); err == nil {
		t.Error("ApplyOptions() with invalid value expected error")
	}
}
