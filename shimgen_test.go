package shimgen

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/go-multierror"

	"github.com/broady/shimgen/classify"
	"github.com/broady/shimgen/internal/testfixtures"
	"github.com/broady/shimgen/ir"
	"github.com/broady/shimgen/registry"
	"github.com/broady/shimgen/vocab"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

// testAPI returns the fixture types whose every method transforms.
func testAPI(t *testing.T) *ir.API {
	t.Helper()
	full := testfixtures.API()
	api := &ir.API{External: full.External}
	for _, name := range []ir.QualifiedName{
		testfixtures.Buffer,
		testfixtures.AsyncFile,
		testfixtures.FileSystem,
		testfixtures.Vertx,
	} {
		decl := full.FindType(name)
		if decl == nil {
			t.Fatalf("fixture type %s not found", name)
		}
		api.AddType(decl)
	}
	return api
}

func brokenType() *ir.TypeDecl {
	return &ir.TypeDecl{
		Name:      "io.vertx.core.Broken",
		Generated: "io.vertx.mutiny.core.Broken",
		Methods: []*ir.MethodDecl{
			{Name: "watch", Params: []ir.ParamDecl{{Name: "h", Type: testfixtures.T("io.vertx.core.Handler")}}, Returns: testfixtures.T("void")},
			{Name: "size", Returns: testfixtures.T("int")},
			{Name: "nested", Returns: testfixtures.T("java.util.List<java.util.List<io.vertx.core.buffer.Buffer>>")},
		},
	}
}

func TestTransform(t *testing.T) {
	api := testAPI(t)
	prog, err := Transform(context.Background(), api, &Config{Logger: quiet})
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if len(prog.Types) != len(api.Types) {
		t.Fatalf("len(Types) = %d, want %d", len(prog.Types), len(api.Types))
	}
	for i, gt := range prog.Types {
		if gt.Decl != api.Types[i] {
			t.Errorf("Types[%d] = %s, want %s", i, gt.Decl.Name, api.Types[i].Name)
		}
		if len(gt.Calls) != len(gt.Decl.Methods) {
			t.Errorf("%s: %d calls, want %d", gt.Decl.Name, len(gt.Calls), len(gt.Decl.Methods))
			continue
		}
		for j, call := range gt.Calls {
			if want := gt.Decl.Methods[j].Name; call.Method.Name != want {
				t.Errorf("%s calls[%d] = %s, want %s", gt.Decl.Name, j, call.Method.Name, want)
			}
		}
	}
}

func TestTransform_Failures(t *testing.T) {
	api := testAPI(t)
	api.AddType(brokenType())

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	prog, err := Transform(context.Background(), api, &Config{Logger: logger, Parallelism: 4})
	if err == nil {
		t.Fatal("Transform() expected error")
	}
	if prog != nil {
		t.Error("Transform() returned a program despite failures")
	}

	var merr *multierror.Error
	if !errors.As(err, &merr) {
		t.Fatalf("error %T is not a *multierror.Error", err)
	}
	if merr.Len() != 2 {
		t.Fatalf("failures = %d, want 2: %v", merr.Len(), err)
	}
	if !errors.Is(merr.Errors[0], ir.ErrClassificationGap) {
		t.Errorf("Errors[0] = %v, want classification gap", merr.Errors[0])
	}
	if !errors.Is(merr.Errors[1], ir.ErrUnsupportedCombination) {
		t.Errorf("Errors[1] = %v, want unsupported combination", merr.Errors[1])
	}
	var ge *ir.GenerationError
	if errors.As(merr.Errors[0], &ge) && ge.Method != "watch" {
		t.Errorf("Errors[0] method = %s, want watch", ge.Method)
	}
	if n := strings.Count(logs.String(), "method failed"); n != 2 {
		t.Errorf("logged %d method failures, want 2", n)
	}
}

func TestTransform_InvalidAPI(t *testing.T) {
	api := &ir.API{Types: []*ir.TypeDecl{
		{Name: "io.vertx.core.A", Methods: []*ir.MethodDecl{{Name: "m"}}},
	}}
	_, err := Transform(context.Background(), api, &Config{Logger: quiet})
	if !errors.Is(err, ir.ErrInvalidInput) {
		t.Fatalf("Transform() error = %v, want ErrInvalidInput", err)
	}
	var merr *multierror.Error
	if !errors.As(err, &merr) || merr.Len() != 2 {
		t.Errorf("error = %v, want 2 validation errors", err)
	}
}

func TestTransform_InvalidConfig(t *testing.T) {
	_, err := Transform(context.Background(), testAPI(t), &Config{Vocabulary: "rxjava", Logger: quiet})
	if err == nil {
		t.Error("Transform() with unknown vocabulary expected error")
	}
}

func TestTransformAll_RegistryIncomplete(t *testing.T) {
	api := testAPI(t)
	b := registry.NewBuilder()
	for _, e := range api.RegistryEntries() {
		if err := b.Add(e.Original, e.Generated); err != nil {
			t.Fatal(err)
		}
	}
	cfg, err := applyConfigDefaults(&Config{Logger: quiet, Parallelism: 2})
	if err != nil {
		t.Fatal(err)
	}

	prog, err := transformAll(context.Background(), api, classify.New(vocab.VertxMutiny(), b), cfg)
	if !errors.Is(err, ir.ErrRegistryIncomplete) {
		t.Fatalf("transformAll() error = %v, want ErrRegistryIncomplete", err)
	}
	if !ir.IsFatal(err) {
		t.Error("IsFatal() = false, want true")
	}
	if prog != nil {
		t.Error("transformAll() returned a program after a fatal error")
	}
}

func TestTransform_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Transform(ctx, testAPI(t), &Config{Logger: quiet})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Transform() error = %v, want context.Canceled", err)
	}
}

func TestGenerate_Memory(t *testing.T) {
	res, err := Generate(context.Background(), testAPI(t), &Config{Logger: quiet})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if res.Memory == nil {
		t.Fatal("Memory = nil, want in-memory output")
	}
	want := []string{
		"io/vertx/mutiny/core/Vertx.java",
		"io/vertx/mutiny/core/buffer/Buffer.java",
		"io/vertx/mutiny/core/file/AsyncFile.java",
		"io/vertx/mutiny/core/file/FileSystem.java",
	}
	if got := res.Memory.Paths(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Paths() = %v, want %v", got, want)
	}
	if len(res.Files) != len(want) {
		t.Errorf("len(Files) = %d, want %d", len(res.Files), len(want))
	}
	if res.Program == nil || len(res.Program.Types) != 4 {
		t.Errorf("Program = %v, want 4 types", res.Program)
	}

	var dup bool
	for _, w := range res.Warnings {
		if w.Code == "duplicate_signature" {
			dup = true
		}
	}
	if !dup {
		t.Errorf("Warnings = %v, want duplicate_signature", res.Warnings)
	}
}

func TestGenerate_NoOutputOnFailure(t *testing.T) {
	api := testAPI(t)
	api.AddType(brokenType())
	dir := t.TempDir()

	res, err := Generate(context.Background(), api, &Config{OutDir: dir, Logger: quiet})
	if err == nil {
		t.Fatal("Generate() expected error")
	}
	if res != nil {
		t.Errorf("Generate() result = %+v, want nil", res)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("output dir has %d entries, want none", len(entries))
	}
}

func TestGenerate_Parallelism(t *testing.T) {
	// Debug level so every worker logs concurrently.
	verbose := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
	render := func(n int) map[string]string {
		res, err := Generate(context.Background(), testAPI(t), &Config{Logger: verbose, Parallelism: n})
		if err != nil {
			t.Fatalf("Generate(parallelism=%d) error = %v", n, err)
		}
		out := make(map[string]string)
		for path, data := range res.Memory.Files() {
			out[path] = string(data)
		}
		return out
	}

	serial := render(1)
	for range 5 {
		parallel := render(8)
		if len(parallel) != len(serial) {
			t.Fatalf("parallel run produced %d files, want %d", len(parallel), len(serial))
		}
		for path, want := range serial {
			if parallel[path] != want {
				t.Errorf("%s differs between serial and parallel runs", path)
			}
		}
	}
}

func TestGenerator_FromFiles(t *testing.T) {
	dir := t.TempDir()
	res, err := FromFiles(filepath.Join("testdata", "api", "net.shim.yaml")).
		WithLogger(quiet).
		WithoutComments().
		Header("// generated").
		ToDir(dir)
	if err != nil {
		t.Fatalf("ToDir() error = %v", err)
	}
	if len(res.Files) != 1 {
		t.Fatalf("Files = %v, want 1 file", res.Files)
	}

	data, err := os.ReadFile(filepath.Join(dir, "io", "vertx", "mutiny", "core", "net", "NetSocket.java"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	got := string(data)
	if !strings.HasPrefix(got, "// generated\n") {
		t.Errorf("output does not start with the header:\n%s", got)
	}
	if !strings.Contains(got, "public Uni<Void> write(Buffer data)") {
		t.Errorf("output missing write method:\n%s", got)
	}
	if strings.Contains(got, "socket-like") {
		t.Errorf("output carries comments although disabled:\n%s", got)
	}
}

func TestGenerator_FromAPI(t *testing.T) {
	res, err := FromAPI(testAPI(t)).
		WithLogger(quiet).
		Parallelism(2).
		WithContext(context.Background()).
		Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if res.Memory.Len() != 4 {
		t.Errorf("Memory.Len() = %d, want 4", res.Memory.Len())
	}
}

func TestLoad(t *testing.T) {
	cfg, err := LoadConfigFile(filepath.Join("testdata", ConfigFileName))
	if err != nil {
		t.Fatal(err)
	}
	cfg.Logger = quiet
	api, err := Load(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(api.Types) != 1 || api.Types[0].Name != "io.vertx.core.net.NetSocket" {
		t.Fatalf("Types = %v, want NetSocket", api.Types)
	}
	if api.Types[0].Generated != "io.vertx.mutiny.core.net.NetSocket" {
		t.Errorf("Generated = %s", api.Types[0].Generated)
	}

	if _, err := Load(context.Background(), &Config{Inputs: []string{"testdata/missing.shim.yaml"}, Logger: quiet}); err == nil {
		t.Error("Load() with missing file expected error")
	}
}
