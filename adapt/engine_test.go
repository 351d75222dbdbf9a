package adapt

import (
	"testing"

	"github.com/cockroachdb/errors"

	"github.com/broady/shimgen/classify"
	"github.com/broady/shimgen/internal/testfixtures"
	"github.com/broady/shimgen/ir"
)

func newEngine(t *testing.T) (*Engine, *classify.Classifier) {
	t.Helper()
	c := testfixtures.Classifier()
	return New(c), c
}

func param(t *testing.T, c *classify.Classifier, name, typ string) ir.ParameterDescriptor {
	t.Helper()
	orig := ir.MustParseType(typ)
	surface, err := c.Surface(orig)
	if err != nil {
		t.Fatalf("Surface(%s) error = %v", typ, err)
	}
	return ir.ParameterDescriptor{Name: name, Surface: surface, Original: orig}
}

func TestAdapt(t *testing.T) {
	e, c := newEngine(t)

	tests := []struct {
		name      string
		param     string
		typ       string
		wantLocal string
		wantShape ir.ShapeTag
		wantExpr  string
	}{
		{"plain", "key", "java.lang.String", "key", ir.ShapePlain, "key"},
		{"primitive", "delay", "long", "delay", ir.ShapePlain, "delay"},
		{"generated", "buf", "io.vertx.core.buffer.Buffer", "_buf", ir.ShapeGeneratedAPI, "buf.getDelegate()"},
		{"nullable generated", "buf", "io.vertx.core.buffer.Buffer?", "_buf", ir.ShapeGeneratedAPI, "buf != null ? buf.getDelegate() : null"},
		{"snake case local", "my_buf", "io.vertx.core.buffer.Buffer", "_myBuf", ir.ShapeGeneratedAPI, "my_buf.getDelegate()"},
		{"list of generated", "bufs", "java.util.List<io.vertx.core.buffer.Buffer>", "_bufs", ir.ShapeList,
			"bufs.stream().map(item -> item.getDelegate()).collect(Collectors.toList())"},
		{"set of generated", "bufs", "java.util.Set<io.vertx.core.buffer.Buffer>", "_bufs", ir.ShapeSet,
			"bufs.stream().map(item -> item.getDelegate()).collect(Collectors.toSet())"},
		{"list of plain", "names", "java.util.List<java.lang.String>", "names", ir.ShapeList, "names"},
		{"map of generated", "files", "java.util.Map<java.lang.String, io.vertx.core.buffer.Buffer>", "_files", ir.ShapeMap,
			"mapValues(files, item -> item.getDelegate())"},
		{"map of plain", "headers", "java.util.Map<java.lang.String, java.lang.String>", "headers", ir.ShapeMap, "headers"},
		{"consumer of generated", "sink", "java.util.function.Consumer<io.vertx.core.buffer.Buffer>", "_sink", ir.ShapeConsumer,
			"item -> sink.accept(Buffer.newInstance(item))"},
		{"consumer of plain", "sink", "java.util.function.Consumer<java.lang.String>", "sink", ir.ShapeConsumer, "sink"},
		{"supplier of generated", "factory", "java.util.function.Supplier<io.vertx.core.buffer.Buffer>", "_factory", ir.ShapeSupplier,
			"() -> factory.get().getDelegate()"},
		{"supplier of plain", "factory", "java.util.function.Supplier<java.lang.String>", "factory", ir.ShapeSupplier, "factory"},
		{"supplier of deferred generated", "step", "java.util.function.Supplier<io.vertx.core.Future<io.vertx.core.buffer.Buffer>>", "_step", ir.ShapeSupplierOfDeferred,
			"() -> UniHelper.toFuture(step.get().map(i -> i.getDelegate()))"},
		{"supplier of deferred plain", "step", "java.util.function.Supplier<io.vertx.core.Future<java.lang.String>>", "_step", ir.ShapeSupplierOfDeferred,
			"() -> UniHelper.toFuture(step.get())"},
		{"deferred generated", "pending", "io.vertx.core.Future<io.vertx.core.buffer.Buffer>", "_pending", ir.ShapeDeferredValue,
			"UniHelper.toFuture(pending.map(i -> i.getDelegate()))"},
		{"deferred plain", "pending", "io.vertx.core.Future<java.lang.String>", "_pending", ir.ShapeDeferredValue,
			"UniHelper.toFuture(pending)"},
		{"callback void", "done", "io.vertx.core.Handler<java.lang.Void>", "_done", ir.ShapeCallback, "ignored -> done.run()"},
		{"callback plain", "handler", "io.vertx.core.Handler<java.lang.Long>", "_handler", ir.ShapeCallback,
			"new DelegatingConsumerHandler<>(handler)"},
		{"callback generated", "handler", "io.vertx.core.Handler<io.vertx.core.buffer.Buffer>", "_handler", ir.ShapeCallback,
			"new DelegatingHandler<>(new DelegatingConsumerHandler<>(handler), item -> Buffer.newInstance(item))"},
		{"callback list of generated", "handler", "io.vertx.core.Handler<java.util.List<io.vertx.core.buffer.Buffer>>", "_handler", ir.ShapeCallback,
			"new DelegatingHandler<>(new DelegatingConsumerHandler<>(handler), item -> item.stream().map(item1 -> Buffer.newInstance(item1)).collect(Collectors.toList()))"},
		{"callback of deferred result", "handler", "io.vertx.core.Handler<io.vertx.core.AsyncResult<java.lang.String>>", "_handler", ir.ShapeCallback,
			"new DelegatingConsumerHandler<>(handler)"},
		{"callback of callback", "handler", "io.vertx.core.Handler<io.vertx.core.Handler<java.lang.String>>", "_handler", ir.ShapeCallback,
			"new DelegatingConsumerHandler<>(handler)"},
		{"callback of list of plain", "handler", "io.vertx.core.Handler<java.util.List<java.lang.String>>", "_handler", ir.ShapeCallback,
			"new DelegatingConsumerHandler<>(handler)"},
		{"publisher of generated", "body", "io.vertx.core.streams.ReadStream<io.vertx.core.buffer.Buffer>", "_body", ir.ShapeStreamAsPublisher,
			"ReadStreamSubscriber.asReadStream(body, obj -> (Buffer) obj.getDelegate())"},
		{"publisher of plain", "body", "io.vertx.core.streams.ReadStream<java.lang.String>", "_body", ir.ShapeStreamAsPublisher,
			"ReadStreamSubscriber.asReadStream(body, obj -> obj)"},
		{"runnable", "task", "java.lang.Runnable", "task", ir.ShapeRunnableCallback, "task"},
		{"type variable", "k", "K", "k", ir.ShapePlain, "k"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := e.Adapt(param(t, c, tt.param, tt.typ))
			if err != nil {
				t.Fatalf("Adapt() error = %v", err)
			}
			if a.Local != tt.wantLocal {
				t.Errorf("Local = %q, want %q", a.Local, tt.wantLocal)
			}
			if a.Shape != tt.wantShape {
				t.Errorf("Shape = %s, want %s", a.Shape, tt.wantShape)
			}
			if got := testfixtures.Render(a.Expr); got != tt.wantExpr {
				t.Errorf("Expr = %s\nwant   %s", got, tt.wantExpr)
			}
			if a.Param != tt.param {
				t.Errorf("Param = %q, want %q", a.Param, tt.param)
			}
			if (a.Local == a.Param) != a.IsIdentity() {
				t.Errorf("IsIdentity() = %v for local %q", a.IsIdentity(), a.Local)
			}
		})
	}
}

func TestAdapt_PlainIsIdentity(t *testing.T) {
	e, c := newEngine(t)
	for _, typ := range []string{"int", "byte[]", "java.lang.String", "io.vertx.core.file.OpenOptions", "T"} {
		a, err := e.Adapt(param(t, c, "x", typ))
		if err != nil {
			t.Fatalf("Adapt(%s) error = %v", typ, err)
		}
		if !a.IsIdentity() {
			t.Errorf("Adapt(%s) = %s, want identity", typ, testfixtures.Render(a.Expr))
		}
	}
}

func TestAdapt_Failures(t *testing.T) {
	e, _ := newEngine(t)

	tests := []struct {
		name string
		typ  string
		want error
	}{
		{"raw callback", "io.vertx.core.Handler", ir.ErrClassificationGap},
		{"raw list", "java.util.List", ir.ErrClassificationGap},
		{"nested container", "java.util.List<java.util.List<io.vertx.core.buffer.Buffer>>", ir.ErrUnsupportedCombination},
		{"generated map key", "java.util.Map<io.vertx.core.buffer.Buffer, java.lang.String>", ir.ErrUnsupportedCombination},
		{"deferred of deferred", "io.vertx.core.Future<io.vertx.core.Future<java.lang.String>>", ir.ErrUnsupportedCombination},
		{"supplier of deferred of deferred", "java.util.function.Supplier<io.vertx.core.Future<io.vertx.core.Future<java.lang.String>>>", ir.ErrUnsupportedCombination},
		{"publisher of lists", "io.vertx.core.streams.ReadStream<java.util.List<io.vertx.core.buffer.Buffer>>", ir.ErrUnsupportedCombination},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := ir.MustParseType(tt.typ)
			// Surface is derived lazily so that raw types reach the engine.
			_, err := e.Adapt(ir.ParameterDescriptor{Name: "p", Surface: nil, Original: orig})
			if !errors.Is(err, tt.want) {
				t.Errorf("Adapt(%s) error = %v, want %v", tt.typ, err, tt.want)
			}
		})
	}
}

func TestAdaptIn_UniqueNames(t *testing.T) {
	e, c := newEngine(t)

	// A declared parameter named like a lambda parameter must not be shadowed.
	scope := NewScope("item", "bufs", "_bufs")
	a, err := e.AdaptIn(param(t, c, "bufs", "java.util.List<io.vertx.core.buffer.Buffer>"), scope)
	if err != nil {
		t.Fatal(err)
	}
	if a.Local != "_bufs1" {
		t.Errorf("Local = %q, want _bufs1", a.Local)
	}
	want := "bufs.stream().map(item1 -> item1.getDelegate()).collect(Collectors.toList())"
	if got := testfixtures.Render(a.Expr); got != want {
		t.Errorf("Expr = %s, want %s", got, want)
	}
}

func TestAdapt_Deterministic(t *testing.T) {
	e, c := newEngine(t)
	p := param(t, c, "handler", "java.util.function.Function<io.vertx.core.buffer.Buffer, io.vertx.core.Future<io.vertx.core.buffer.Buffer>>")
	first, err := e.Adapt(p)
	if err != nil {
		t.Fatal(err)
	}
	second, err := e.Adapt(p)
	if err != nil {
		t.Fatal(err)
	}
	if testfixtures.Render(first.Expr) != testfixtures.Render(second.Expr) || first.Local != second.Local {
		t.Errorf("Adapt() not deterministic: %s vs %s", testfixtures.Render(first.Expr), testfixtures.Render(second.Expr))
	}
}

func TestLocalName(t *testing.T) {
	tests := map[string]string{
		"handler":       "_handler",
		"resultHandler": "_resultHandler",
		"end_handler":   "_endHandler",
		"_item":         "_item",
		"__raw_data":    "_rawData",
	}
	for in, want := range tests {
		if got := LocalName(in); got != want {
			t.Errorf("LocalName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestScope_Fresh(t *testing.T) {
	s := NewScope("item")
	if got := s.Fresh("item"); got != "item1" {
		t.Errorf("Fresh(item) = %q, want item1", got)
	}
	if got := s.Fresh("item"); got != "item2" {
		t.Errorf("Fresh(item) = %q, want item2", got)
	}
	if got := s.Fresh("obj"); got != "obj" {
		t.Errorf("Fresh(obj) = %q, want obj", got)
	}
	if !s.Taken("obj") {
		t.Error("Taken(obj) = false after Fresh")
	}
}
