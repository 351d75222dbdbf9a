package flags

import (
	"os"
	"path/filepath"
	"testing"
)

func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"a.shim.yaml":  "package: io.vertx.core\n",
		"b.shim.json":  `{"package": "io.vertx.core"}`,
		"shimgen.toml": "inputs = [\"a.shim.yaml\"]\nout_dir = \"gen\"\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestResolve(t *testing.T) {
	dir := setup(t)

	tests := []struct {
		name       string
		common     Common
		wantInputs []string
		wantOut    string
		wantConfig bool
	}{
		{
			name:       "config file",
			common:     Common{Dir: dir},
			wantInputs: []string{filepath.Join(dir, "a.shim.yaml")},
			wantOut:    filepath.Join(dir, "gen"),
			wantConfig: true,
		},
		{
			name:       "no config discovers descriptors",
			common:     Common{Dir: dir, NoConfig: true},
			wantInputs: []string{filepath.Join(dir, "a.shim.yaml"), filepath.Join(dir, "b.shim.json")},
		},
		{
			name:       "explicit files",
			common:     Common{Dir: dir, Files: []string{"x.shim.yaml"}},
			wantInputs: []string{"x.shim.yaml"},
			wantOut:    filepath.Join(dir, "gen"),
			wantConfig: true,
		},
		{
			name:       "option override",
			common:     Common{Dir: dir, Option: map[string]string{"out_dir": "elsewhere"}},
			wantInputs: []string{filepath.Join(dir, "a.shim.yaml")},
			wantOut:    "elsewhere",
			wantConfig: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := tt.common.Resolve()
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if len(r.Config.Inputs) != len(tt.wantInputs) {
				t.Fatalf("Inputs = %v, want %v", r.Config.Inputs, tt.wantInputs)
			}
			for i := range tt.wantInputs {
				if r.Config.Inputs[i] != tt.wantInputs[i] {
					t.Errorf("Inputs[%d] = %s, want %s", i, r.Config.Inputs[i], tt.wantInputs[i])
				}
			}
			if r.Config.OutDir != tt.wantOut {
				t.Errorf("OutDir = %q, want %q", r.Config.OutDir, tt.wantOut)
			}
			if (r.ConfigFile != "") != tt.wantConfig {
				t.Errorf("ConfigFile = %q, wantConfig %v", r.ConfigFile, tt.wantConfig)
			}
			if r.Config.Logger == nil {
				t.Error("Logger = nil")
			}
			want := len(tt.wantInputs)
			if tt.wantConfig {
				want++
			}
			if got := r.Watched(); len(got) != want {
				t.Errorf("Watched() = %v, want %d files", got, want)
			}
		})
	}
}

func TestResolve_Errors(t *testing.T) {
	empty := t.TempDir()
	if _, err := (&Common{Dir: empty, NoConfig: true}).Resolve(); err == nil {
		t.Error("Resolve() without descriptors expected error")
	}
	dir := setup(t)
	if _, err := (&Common{Dir: dir, Option: map[string]string{"bogus": "1"}}).Resolve(); err == nil {
		t.Error("Resolve() with unknown option expected error")
	}
}
